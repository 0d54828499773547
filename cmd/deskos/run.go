package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"github.com/Gaurav-Gosain/deskos/internal/config"
	"github.com/Gaurav-Gosain/deskos/internal/server"
	"github.com/Gaurav-Gosain/deskos/pkg/deskos"
	"golang.org/x/term"
)

// setupLogging points the process logger at stderr and honors --debug.
func setupLogging() {
	log.SetOutput(os.Stderr)
	log.SetReportTimestamp(true)
	if debugMode {
		log.SetLevel(log.DebugLevel)
		log.Debug("Debug logging enabled")
	}
}

// loadConfig loads the user config, falling back to defaults on error.
func loadConfig() *config.UserConfig {
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		log.Warn("Failed to load config, using defaults", "err", err)
		return config.DefaultConfig()
	}
	if debugMode {
		configPath, _ := config.GetConfigPath()
		log.Debug("Configuration loaded", "path", configPath)
	}
	return userConfig
}

// desktopOptions turns the global flags into desktop options.
func desktopOptions(userConfig *config.UserConfig) []deskos.Option {
	return []deskos.Option{
		deskos.WithUserConfig(userConfig),
		deskos.WithTheme(themeName),
		deskos.WithShellStyle(shellStyle),
		deskos.WithASCIIOnly(asciiOnly),
		deskos.WithBorderStyle(borderStyle),
		deskos.WithHideClock(hideClock),
	}
}

// localUser picks the session user: the flag, the config, then $USER.
func localUser(userConfig *config.UserConfig) string {
	switch {
	case userName != "":
		return userName
	case userConfig.Session.User != "":
		return userConfig.Session.User
	default:
		return os.Getenv("USER")
	}
}

func runLocal() error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("deskos needs an interactive terminal, try 'deskos ssh' or 'deskos web'")
	}
	setupLogging()
	userConfig := loadConfig()

	opts := append(desktopOptions(userConfig), deskos.WithSession(localUser(userConfig), roles...))
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		opts = append(opts, deskos.WithSize(w, h))
	}
	model := deskos.New(opts...)

	p := tea.NewProgram(
		model,
		append(deskos.ProgramOptions(), tea.WithoutSignalHandler())...,
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

// remoteFactory applies the shared settings once and returns a factory
// that builds a fresh desktop for each remote client. Remote sessions get
// session.remote_roles unless --role is given.
func remoteFactory(userConfig *config.UserConfig) server.ModelFactory {
	base := deskos.Setup(desktopOptions(userConfig)...)
	return func(user string, width, height int) (tea.Model, []tea.ProgramOption) {
		model := deskos.NewDesktop(base,
			deskos.WithRemote(true),
			deskos.WithSession(user, roles...),
			deskos.WithSize(width, height),
		)
		return model, deskos.ProgramOptions()
	}
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(what string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Info("Shutting down " + what + " server...")
		cancel()
	}()
	return ctx, cancel
}

func runSSHServer(sshHost, sshPort, sshKeyPath string) error {
	setupLogging()
	userConfig := loadConfig()

	ctx, cancel := signalContext("SSH")
	defer cancel()

	cfg := &server.SSHServerConfig{
		Host:     sshHost,
		Port:     sshPort,
		KeyPath:  sshKeyPath,
		Version:  version,
		NewModel: remoteFactory(userConfig),
	}
	if err := server.StartSSHServer(ctx, cfg); err != nil {
		return fmt.Errorf("SSH server error: %w", err)
	}
	return nil
}

func runWebServer(webHost, webPort string) error {
	setupLogging()
	userConfig := loadConfig()

	ctx, cancel := signalContext("web")
	defer cancel()

	cfg := &server.WebServerConfig{
		Host:     webHost,
		Port:     webPort,
		NewModel: remoteFactory(userConfig),
	}
	if err := server.StartWebServer(ctx, cfg); err != nil {
		return fmt.Errorf("web server error: %w", err)
	}
	return nil
}
