package main

import (
	"bufio"
	"fmt"
	"image/color"
	"os"
	"os/exec"
	"strings"

	"charm.land/lipgloss/v2"
	tint "github.com/lrstanley/bubbletint/v2"

	"github.com/tabflow/tabflow/internal/config"
)

func printConfigPath() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}
	fmt.Println(path)
	return nil
}

// findEditor picks the user's editor: $EDITOR, $VISUAL, then common
// fallbacks on PATH.
func findEditor() (string, error) {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if editor := os.Getenv(env); editor != "" {
			return editor, nil
		}
	}
	for _, editor := range []string{"vim", "vi", "nano", "emacs"} {
		if path, err := exec.LookPath(editor); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no editor found: set $EDITOR or install vim, vi, nano, or emacs")
}

func editConfigFile() error {
	// Ensure the file exists so the editor has something to open.
	if _, err := config.LoadUserConfig(); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}

	editor, err := findEditor()
	if err != nil {
		return err
	}

	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor exited with error: %w", err)
	}
	return nil
}

func resetConfigToDefaults() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}

	fmt.Printf("This will overwrite %s with defaults. Continue? [y/N] ", path)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read answer: %w", err)
	}
	if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
		fmt.Println("Aborted.")
		return nil
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove config: %w", err)
	}
	if _, err := config.LoadUserConfig(); err != nil {
		return fmt.Errorf("failed to recreate config: %w", err)
	}
	fmt.Printf("Configuration reset: %s\n", path)
	return nil
}

// previewThemeColors prints a theme's 16 ANSI colors as swatches.
func previewThemeColors(name string) error {
	tint.NewDefaultRegistry()
	if ok := tint.SetTintID(name); !ok {
		return fmt.Errorf("unknown theme %q (run --list-themes to see all)", name)
	}
	t := tint.Current()

	colors := []color.Color{
		t.Black, t.Red, t.Green, t.Yellow,
		t.Blue, t.Purple, t.Cyan, t.White,
		t.BrightBlack, t.BrightRed, t.BrightGreen, t.BrightYellow,
		t.BrightBlue, t.BrightPurple, t.BrightCyan, t.BrightWhite,
	}

	fmt.Printf("%s\n\n", name)
	var row strings.Builder
	for i, c := range colors {
		row.WriteString(lipgloss.NewStyle().Background(c).Render("    "))
		if i == 7 || i == 15 {
			fmt.Println(row.String())
			row.Reset()
		}
	}
	return nil
}
