// Package deskos provides the desktop shell as a reusable Bubble Tea model
// that can be embedded in other programs or served over SSH and the web.
//
// # Basic Usage
//
// Create a desktop with default options:
//
//	model := deskos.New()
//	p := tea.NewProgram(model, deskos.ProgramOptions()...)
//	if _, err := p.Run(); err != nil {
//		log.Fatal(err)
//	}
//
// # Custom Configuration
//
//	model := deskos.New(
//		deskos.WithTheme("dracula"),
//		deskos.WithShellStyle("dock"),
//		deskos.WithSession("ada", "user", "admin"),
//	)
package deskos

import (
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/deskos/internal/app"
	"github.com/Gaurav-Gosain/deskos/internal/config"
	"github.com/Gaurav-Gosain/deskos/internal/input"
	"github.com/Gaurav-Gosain/deskos/internal/session"
)

// Model is the desktop model. It implements tea.Model.
type Model = app.Desktop

// Options configures a desktop.
type Options struct {
	// Theme is the color theme name (e.g., "dracula", "nord").
	// Leave empty to use the built-in colors.
	Theme string

	// ShellStyle selects the shell layout: "taskbar" or "dock".
	ShellStyle string

	// ASCIIOnly uses ASCII characters instead of Nerd Font icons.
	ASCIIOnly bool

	// BorderStyle sets the window border style.
	// Valid values: "rounded", "normal", "thick", "double", "hidden", "block", "ascii"
	BorderStyle string

	// HideClock hides the clock.
	HideClock bool

	// User and Roles describe the signed-in session. When Roles is empty the
	// roles come from the user config.
	User  string
	Roles []string

	// Width is the initial width (set automatically if 0).
	Width int
	// Height is the initial height (set automatically if 0).
	Height int

	// Remote marks a desktop served over SSH or the web. Remote sessions
	// take their default roles from session.remote_roles.
	Remote bool

	// UserConfig is a custom user configuration. If nil, the user's config
	// file is loaded.
	UserConfig *config.UserConfig
}

// Option is a functional option for configuring a desktop.
type Option func(*Options)

// WithTheme sets the color theme.
func WithTheme(name string) Option {
	return func(o *Options) {
		o.Theme = name
	}
}

// WithShellStyle sets the shell layout.
func WithShellStyle(style string) Option {
	return func(o *Options) {
		o.ShellStyle = style
	}
}

// WithASCIIOnly enables ASCII-only mode (no Nerd Font icons).
func WithASCIIOnly(enabled bool) Option {
	return func(o *Options) {
		o.ASCIIOnly = enabled
	}
}

// WithBorderStyle sets the window border style.
func WithBorderStyle(style string) Option {
	return func(o *Options) {
		o.BorderStyle = style
	}
}

// WithHideClock hides the clock.
func WithHideClock(hide bool) Option {
	return func(o *Options) {
		o.HideClock = hide
	}
}

// WithSession sets the user name and roles.
func WithSession(user string, roles ...string) Option {
	return func(o *Options) {
		o.User = user
		o.Roles = roles
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(o *Options) {
		o.Width = width
		o.Height = height
	}
}

// WithRemote marks the desktop as served to a remote client.
func WithRemote(enabled bool) Option {
	return func(o *Options) {
		o.Remote = enabled
	}
}

// WithUserConfig sets a custom user configuration.
func WithUserConfig(cfg *config.UserConfig) Option {
	return func(o *Options) {
		o.UserConfig = cfg
	}
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{}
}

// New creates a desktop with the given options. It applies the
// process-wide settings first, so call it from a single goroutine. Servers
// call Setup once and NewDesktop per client instead.
func New(opts ...Option) *Model {
	return NewDesktop(Setup(opts...))
}

// Setup applies the options' appearance settings and theme to the
// process-wide config and registers the input handler. The returned
// options carry the loaded user config and are the base for NewDesktop.
func Setup(opts ...Option) Options {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	if options.UserConfig == nil {
		userConfig, err := config.LoadUserConfig()
		if err != nil {
			userConfig = config.DefaultConfig()
		}
		options.UserConfig = userConfig
	}

	app.SetInputHandler(input.HandleInput)
	config.ApplyOverrides(config.Overrides{
		ASCIIOnly:   options.ASCIIOnly,
		BorderStyle: options.BorderStyle,
		ShellStyle:  options.ShellStyle,
		HideClock:   options.HideClock,
		ThemeName:   options.Theme,
	}, options.UserConfig)
	return options
}

// NewDesktop builds a desktop from options returned by Setup, with opts
// applied on top for the session, size and remote flag. It only reads
// process-wide state and is safe to call from concurrent sessions.
func NewDesktop(base Options, opts ...Option) *Model {
	options := base
	for _, opt := range opts {
		opt(&options)
	}
	userConfig := options.UserConfig
	if userConfig == nil {
		userConfig = config.DefaultConfig()
	}

	return app.New(app.Config{
		Session:    sessionFor(options, userConfig),
		Keybinds:   config.NewKeybindRegistry(userConfig),
		ShellStyle: config.ShellStyle,
		Width:      options.Width,
		Height:     options.Height,
		Remote:     options.Remote,
	})
}

// sessionFor resolves the session from explicit options, then the config.
func sessionFor(options Options, cfg *config.UserConfig) session.Session {
	user := options.User
	if user == "" {
		user = cfg.Session.User
	}
	roles := options.Roles
	if len(roles) == 0 {
		if options.Remote {
			roles = cfg.Session.RemoteRoles
		} else {
			roles = cfg.Session.Roles
		}
	}
	return session.New(user, roles...)
}

// ProgramOptions returns recommended tea.ProgramOption values for running
// the desktop:
//
//	model := deskos.New()
//	p := tea.NewProgram(model, deskos.ProgramOptions()...)
func ProgramOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithFPS(config.NormalFPS),
		tea.WithFilter(FilterMouseMotion),
	}
}

// FilterMouseMotion is a tea.WithFilter function that drops mouse motion
// unless a window is being dragged or resized.
//
//	p := tea.NewProgram(model, tea.WithFilter(deskos.FilterMouseMotion))
var FilterMouseMotion = app.FilterMouseMotion

// Config re-exports the config package for customization.
// This allows users to access configuration types without importing internal packages.
var Config = struct {
	// LoadUserConfig loads the user's configuration file.
	LoadUserConfig func() (*config.UserConfig, error)
	// DefaultConfig returns the default configuration.
	DefaultConfig func() *config.UserConfig
	// GetConfigPath returns the path to the configuration file.
	GetConfigPath func() (string, error)
}{
	LoadUserConfig: config.LoadUserConfig,
	DefaultConfig:  config.DefaultConfig,
	GetConfigPath:  config.GetConfigPath,
}
