// Package main implements tabflow, a terminal demo of draggable editor
// tabs: reorder tabs inside a window's strip, tear them out into new
// windows, and drop them into other windows with their unsaved state
// intact.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	tint "github.com/lrstanley/bubbletint/v2"
	"github.com/spf13/cobra"

	"github.com/tabflow/tabflow/internal/theme"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Global flags
var (
	debugMode     bool
	cpuProfile    string
	asciiOnly     bool
	themeName     string
	listThemes    bool
	previewTheme  string
	stripPosition string
	noAnimations  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tabflow",
		Short: "Draggable tab strips in the terminal",
		Long: `tabflow - draggable editor tabs

A terminal demo of the tab gestures a desktop markdown editor uses:
hold and drag a tab to reorder it within its window, drag it off the
strip to tear it out into a new window, or drop it onto another window
to move it there along with its unsaved document state.`,
		Example: `  # Run tabflow
  tabflow

  # Run with debug logging
  tabflow --debug

  # Run with ASCII-only mode (no decorative glyphs)
  tabflow --ascii-only

  # Dock the tab strips at the bottom of each window
  tabflow --strip-position bottom

  # Run with a specific theme
  tabflow --theme dracula

  # List all available themes
  tabflow --list-themes

  # Preview a theme's colors
  tabflow --preview-theme dracula

  # Run as SSH server
  tabflow ssh --port 2222

  # Edit configuration
  tabflow config edit`,
		Version: version,
		RunE: func(_ *cobra.Command, _ []string) error {
			if previewTheme != "" {
				return previewThemeColors(previewTheme)
			}

			if listThemes {
				if err := theme.Initialize("default"); err != nil {
					return fmt.Errorf("failed to initialize themes: %w", err)
				}
				for _, t := range tint.TintIDs() {
					fmt.Println(t)
				}
				return nil
			}
			return runLocal()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&cpuProfile, "cpuprofile", "", "Write CPU profile to file")
	rootCmd.PersistentFlags().BoolVar(&asciiOnly, "ascii-only", false, "Use ASCII characters instead of decorative glyphs")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "Color theme to use (e.g., dracula, nord, tokyonight). Leave empty to use standard terminal colors without theming")
	rootCmd.PersistentFlags().BoolVar(&listThemes, "list-themes", false, "List all available themes and exit")
	rootCmd.PersistentFlags().StringVar(&previewTheme, "preview-theme", "", "Preview a theme's 16 ANSI colors")
	rootCmd.PersistentFlags().StringVar(&stripPosition, "strip-position", "", "Tab strip position: top, bottom (default: from config or top)")
	rootCmd.PersistentFlags().BoolVar(&noAnimations, "no-animations", false, "Disable UI animations for instant transitions")

	var sshPort, sshHost, sshKeyPath string

	sshCmd := &cobra.Command{
		Use:   "ssh",
		Short: "Run tabflow as SSH server",
		Long: `Run tabflow as an SSH server

Allows remote connections to the tabflow demo via SSH. The server will
generate a host key automatically if not specified. Each connection gets
its own isolated workspace.`,
		Example: `  # Start SSH server on default port
  tabflow ssh

  # Start on custom port
  tabflow ssh --port 2222

  # Specify custom host key
  tabflow ssh --key-path /path/to/host_key`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runSSHServer(sshHost, sshPort, sshKeyPath)
		},
	}

	sshCmd.Flags().StringVar(&sshPort, "port", "2222", "SSH server port")
	sshCmd.Flags().StringVar(&sshHost, "host", "localhost", "SSH server host")
	sshCmd.Flags().StringVar(&sshKeyPath, "key-path", "", "Path to SSH host key (auto-generated if not specified)")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage tabflow configuration",
		Long:  `Manage tabflow configuration file and settings`,
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		Long:  `Print the path to the tabflow configuration file`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return printConfigPath()
		},
	}

	configEditCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration in $EDITOR",
		Long: `Open the tabflow configuration file in your default editor

The editor is determined by checking $EDITOR, $VISUAL, or common editors
like vim, vi, nano, and emacs in that order.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return editConfigFile()
		},
	}

	configResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		Long: `Reset the tabflow configuration file to default settings

This will overwrite your existing configuration after confirmation.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return resetConfigToDefaults()
		},
	}

	configCmd.AddCommand(configPathCmd, configEditCmd, configResetCmd)

	rootCmd.AddCommand(sshCmd, configCmd)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}
