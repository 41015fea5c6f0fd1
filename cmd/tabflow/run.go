package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"

	tea "charm.land/bubbletea/v2"

	"github.com/tabflow/tabflow/internal/app"
	"github.com/tabflow/tabflow/internal/config"
	"github.com/tabflow/tabflow/internal/input"
	"github.com/tabflow/tabflow/internal/server"
	"github.com/tabflow/tabflow/internal/theme"
)

// filterMouseMotion filters out redundant mouse motion events to reduce CPU
// usage. Motion only matters while a drag gesture is live.
func filterMouseMotion(model tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.MouseMotionMsg); !ok {
		return msg
	}

	m, ok := model.(*app.Workspace)
	if !ok {
		return msg
	}
	if m.Machine != nil && m.Machine.Active() {
		return msg
	}
	return nil
}

func runLocal() error {
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		log.Printf("Warning: Failed to load config, using defaults: %v", err)
		userConfig = config.DefaultConfig()
	}

	config.ApplyOverrides(config.Overrides{
		ASCIIOnly:     asciiOnly,
		StripPosition: stripPosition,
		NoAnimations:  noAnimations,
	}, userConfig)

	effectiveTheme := themeName
	if effectiveTheme == "" {
		effectiveTheme = userConfig.Appearance.Theme
	}
	if err := theme.Initialize(effectiveTheme); err != nil {
		log.Printf("Warning: Failed to initialize theme: %v", err)
	}

	if cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil {
				log.Printf("Warning: failed to close CPU profile file: %v", closeErr)
			}
		}()

		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	app.SetInputHandler(input.HandleInput)

	if debugMode {
		configPath, _ := config.GetConfigPath()
		log.Printf("Configuration: %s", configPath)
	}

	workspace := app.NewWorkspace(userConfig)
	workspace.AutoSeed = true

	p := tea.NewProgram(
		workspace,
		tea.WithFPS(config.NormalFPS),
		tea.WithoutSignalHandler(),
		tea.WithFilter(filterMouseMotion),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		p.Send(tea.QuitMsg{})
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

func runSSHServer(sshHost, sshPort, sshKeyPath string) error {
	config.ApplyOverrides(config.Overrides{
		ASCIIOnly:     asciiOnly,
		StripPosition: stripPosition,
		NoAnimations:  noAnimations,
	}, nil)

	if err := theme.Initialize(themeName); err != nil {
		log.Printf("Warning: Failed to initialize theme: %v", err)
	}

	app.SetInputHandler(input.HandleInput)

	log.Printf("Starting tabflow SSH server on %s:%s", sshHost, sshPort)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Println("Shutting down SSH server...")
		cancel()
	}()

	cfg := &server.SSHServerConfig{
		Host:    sshHost,
		Port:    sshPort,
		KeyPath: sshKeyPath,
		Version: version,
	}
	if err := server.StartSSHServer(ctx, cfg); err != nil {
		return fmt.Errorf("SSH server error: %w", err)
	}
	return nil
}
