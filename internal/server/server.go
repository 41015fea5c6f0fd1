// Package server provides SSH server functionality for tabflow, letting
// remote users try the tab drag demo over SSH. Each connection gets its own
// isolated workspace; nothing is shared between sessions.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/wish/v2"
	"charm.land/wish/v2/activeterm"
	bm "charm.land/wish/v2/bubbletea"
	"charm.land/wish/v2/logging"
	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/ssh"

	"github.com/tabflow/tabflow/internal/app"
	"github.com/tabflow/tabflow/internal/config"
)

// SSHServerConfig holds the SSH server configuration.
type SSHServerConfig struct {
	Host    string
	Port    string
	KeyPath string
	Version string
}

// shutdownTimeout is how long in-flight sessions get to finish on shutdown.
const shutdownTimeout = 30 * time.Second

// StartSSHServer runs the SSH server until ctx is cancelled.
func StartSSHServer(ctx context.Context, cfg *SSHServerConfig) error {
	keyPath := cfg.KeyPath
	if keyPath == "" {
		keyPath = ".ssh/tabflow_ed25519"
	}

	srv, err := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(cfg.Host, cfg.Port)),
		wish.WithHostKeyPath(keyPath),
		wish.WithMiddleware(
			bm.Middleware(teaHandler),
			activeterm.Middleware(),
			logging.Middleware(),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	log.Printf("SSH server listening on %s:%s", cfg.Host, cfg.Port)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return fmt.Errorf("shutdown error: %w", err)
	}
	return nil
}

// teaHandler builds a fresh workspace for one SSH session.
func teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		userConfig = config.DefaultConfig()
	}

	workspace := app.NewWorkspace(userConfig)
	workspace.AutoSeed = true

	pty, _, _ := sess.Pty()
	if pty.Window.Width > 0 && pty.Window.Height > 0 {
		workspace.SeedDemo(pty.Window.Width, pty.Window.Height)
	}

	return workspace, []tea.ProgramOption{
		tea.WithFPS(config.NormalFPS),
		tea.WithFilter(filterMouseMotion),
		tea.WithColorProfile(colorprofile.Detect(sess, sess.Environ())),
	}
}

// filterMouseMotion drops motion events outside of a live drag, same as the
// local run path.
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
