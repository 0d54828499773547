// Package main implements DeskOS, a desktop shell simulation for the
// terminal. Mock applications run in movable, stackable windows with a
// taskbar or dock, a start menu and an app switcher. The desktop can also
// be served over SSH or to a browser.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Gaurav-Gosain/deskos/internal/config"
	"github.com/Gaurav-Gosain/deskos/internal/theme"
	"github.com/charmbracelet/fang"
	tint "github.com/lrstanley/bubbletint/v2"
	"github.com/spf13/cobra"
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
	debugMode    bool
	asciiOnly    bool
	themeName    string
	listThemes   bool
	previewTheme string
	borderStyle  string
	shellStyle   string
	hideClock    bool
	userName     string
	roles        []string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "deskos",
		Short: "Desktop shell simulation for the terminal",
		Long: `DeskOS - a desktop in your terminal

Run mock applications in movable, stackable windows. Switch between them
with the app switcher, launch them from the start menu, dock them to the
screen edges or maximize them.`,
		Example: `  # Run DeskOS
  deskos

  # Run with the dock shell and a theme
  deskos --shell-style dock --theme dracula

  # Sign in as an admin to unlock the admin console
  deskos --user ada --role admin

  # Run with ASCII-only mode (no Nerd Font icons)
  deskos --ascii-only

  # List all available themes
  deskos --list-themes

  # Preview a theme's colors
  deskos --preview-theme dracula

  # Serve over SSH
  deskos ssh --port 2222

  # Serve to a browser
  deskos web --port 7681

  # Edit configuration
  deskos config edit

  # List all keybindings
  deskos keybinds list`,
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
	rootCmd.PersistentFlags().BoolVar(&asciiOnly, "ascii-only", false, "Use ASCII characters instead of Nerd Font icons")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "Color theme to use (e.g., dracula, nord, tokyonight). Leave empty to use the built-in colors")
	rootCmd.PersistentFlags().BoolVar(&listThemes, "list-themes", false, "List all available themes and exit")
	rootCmd.PersistentFlags().StringVar(&previewTheme, "preview-theme", "", "Preview a theme's 16 ANSI colors")
	rootCmd.PersistentFlags().StringVar(&borderStyle, "border-style", "", "Window border style: rounded, normal, thick, double, hidden, block, ascii (default: from config or rounded)")
	rootCmd.PersistentFlags().StringVar(&shellStyle, "shell-style", "", "Shell layout: taskbar or dock (default: from config or taskbar)")
	rootCmd.PersistentFlags().BoolVar(&hideClock, "hide-clock", false, "Hide the clock")
	rootCmd.PersistentFlags().StringVar(&userName, "user", "", "User name shown by the shell (default: from config or $USER)")
	rootCmd.PersistentFlags().StringSliceVar(&roles, "role", nil, "Roles granted to the session, repeatable or comma separated (e.g., --role admin)")

	var sshPort, sshHost, sshKeyPath string

	sshCmd := &cobra.Command{
		Use:   "ssh",
		Short: "Run DeskOS as SSH server",
		Long: `Run DeskOS as an SSH server

Every connection gets its own desktop. The SSH user name becomes the
session user and session.remote_roles from the config grants its roles.
The server generates a host key automatically if not specified.`,
		Example: `  # Start SSH server on default port
  deskos ssh

  # Start on custom port
  deskos ssh --port 2222

  # Specify custom host key
  deskos ssh --key-path /path/to/host_key`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runSSHServer(sshHost, sshPort, sshKeyPath)
		},
	}

	sshCmd.Flags().StringVar(&sshPort, "port", config.DefaultSSHPort, "SSH server port")
	sshCmd.Flags().StringVar(&sshHost, "host", config.DefaultSSHHost, "SSH server host")
	sshCmd.Flags().StringVar(&sshKeyPath, "key-path", "", "Path to SSH host key (auto-generated if not specified)")

	var webPort, webHost string

	webCmd := &cobra.Command{
		Use:   "web",
		Short: "Serve DeskOS to a browser",
		Long: `Serve DeskOS through a web terminal

Every browser tab gets its own desktop with the roles from
session.remote_roles.`,
		Example: `  # Serve on the default port
  deskos web

  # Serve on all interfaces
  deskos web --host 0.0.0.0 --port 8080`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runWebServer(webHost, webPort)
		},
	}

	webCmd.Flags().StringVar(&webPort, "port", config.DefaultWebPort, "Web server port")
	webCmd.Flags().StringVar(&webHost, "host", config.DefaultSSHHost, "Web server host")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage DeskOS configuration",
		Long:  `Manage DeskOS configuration file and settings`,
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		Long:  `Print the path to the DeskOS configuration file`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return printConfigPath()
		},
	}

	configEditCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration in $EDITOR",
		Long: `Open the DeskOS configuration file in your default editor

The editor is determined by checking $EDITOR, $VISUAL, or common editors
like vim, vi, nano, and emacs in that order.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return editConfigFile()
		},
	}

	var resetYes bool
	configResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		Long: `Reset the DeskOS configuration file to default settings

This will overwrite your existing configuration after confirmation.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return resetConfigToDefaults(resetYes)
		},
	}
	configResetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Skip the confirmation prompt")

	configCmd.AddCommand(configPathCmd, configEditCmd, configResetCmd)

	keybindsCmd := &cobra.Command{
		Use:     "keybinds",
		Aliases: []string{"keys", "kb"},
		Short:   "View keybinding configuration",
		Long:    `View and inspect DeskOS keybinding configuration`,
	}

	keybindsListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all keybindings",
		Long:  `Display all configured keybindings in a formatted table`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return listKeybindings()
		},
	}

	keybindsCmd.AddCommand(keybindsListCmd)

	appsCmd := &cobra.Command{
		Use:   "apps",
		Short: "Inspect the application catalog",
	}

	appsListCmd := &cobra.Command{
		Use:   "list",
		Short: "List installed applications",
		Long:  `Display every application in the catalog with its default size and required role`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return listApps()
		},
	}

	appsCmd.AddCommand(appsListCmd)

	rootCmd.AddCommand(sshCmd, webCmd, configCmd, keybindsCmd, appsCmd)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}
