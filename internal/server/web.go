package server

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"github.com/Gaurav-Gosain/sip"
)

// WebServerConfig holds configuration for the browser terminal server.
type WebServerConfig struct {
	Host     string
	Port     string
	NewModel ModelFactory
}

// webUser names browser sessions, which carry no login.
const webUser = "web"

// StartWebServer serves a desktop per browser tab until ctx is cancelled.
func StartWebServer(ctx context.Context, cfg *WebServerConfig) error {
	if cfg.NewModel == nil {
		return errors.New("web server: no model factory")
	}

	sipCfg := sip.DefaultConfig()
	sipCfg.Host = cfg.Host
	sipCfg.Port = cfg.Port

	server := sip.NewServer(sipCfg)
	log.Info("Starting web server", "host", cfg.Host, "port", cfg.Port)
	err := server.Serve(ctx, func(sess sip.Session) (tea.Model, []tea.ProgramOption) {
		pty := sess.Pty()
		log.Debug("Web session", "width", pty.Width, "height", pty.Height)
		return cfg.NewModel(webUser, pty.Width, pty.Height)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("web server stopped: %w", err)
	}
	return nil
}
