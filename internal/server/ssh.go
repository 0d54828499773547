// Package server serves the desktop to remote clients over SSH and to
// browsers through a web terminal.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"charm.land/wish/v2"
	"charm.land/wish/v2/activeterm"
	"charm.land/wish/v2/bubbletea"
	"charm.land/wish/v2/logging"
	"github.com/Gaurav-Gosain/deskos/internal/config"
	"github.com/adrg/xdg"
	"github.com/charmbracelet/ssh"
)

// ModelFactory builds the desktop for one remote client. user is the name
// the client connected as.
type ModelFactory func(user string, width, height int) (tea.Model, []tea.ProgramOption)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	Host     string
	Port     string
	KeyPath  string // Generated on first start if missing
	Version  string
	NewModel ModelFactory
}

const hostKeyRelPath = "deskos/ssh_host_ed25519"

// StartSSHServer serves a desktop per SSH session until ctx is cancelled.
func StartSSHServer(ctx context.Context, cfg *SSHServerConfig) error {
	if cfg.NewModel == nil {
		return errors.New("ssh server: no model factory")
	}
	keyPath, err := hostKeyPath(cfg.KeyPath)
	if err != nil {
		return err
	}

	s, err := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(cfg.Host, cfg.Port)),
		wish.WithHostKeyPath(keyPath),
		wish.WithVersion("deskos-"+cfg.Version),
		wish.WithMiddleware(
			bubbletea.Middleware(sessionHandler(cfg.NewModel)),
			activeterm.Middleware(),
			logging.Middleware(),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create SSH server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting SSH server", "host", cfg.Host, "port", cfg.Port, "key", keyPath)
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("SSH server stopped: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Stopping SSH server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return fmt.Errorf("SSH server shutdown: %w", err)
	}
	return nil
}

// sessionHandler sizes a fresh desktop to the client's pty.
func sessionHandler(newModel ModelFactory) bubbletea.Handler {
	return func(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
		pty, _, _ := sess.Pty()
		log.Debug("SSH session", "user", sess.User(), "term", pty.Term,
			"width", pty.Window.Width, "height", pty.Window.Height)
		return newModel(sess.User(), pty.Window.Width, pty.Window.Height)
	}
}

// hostKeyPath returns path, or the default location in the XDG data dir.
func hostKeyPath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	p, err := xdg.DataFile(hostKeyRelPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve host key path: %w", err)
	}
	return p, nil
}
