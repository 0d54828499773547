package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/deskos/internal/config"
	"github.com/Gaurav-Gosain/deskos/internal/registry"
	"github.com/Gaurav-Gosain/deskos/internal/theme"
	"github.com/charmbracelet/colorprofile"
	tint "github.com/lrstanley/bubbletint/v2"
)

// stdout downsamples styled output to what the terminal supports.
func stdout() io.Writer {
	return colorprofile.NewWriter(os.Stdout, os.Environ())
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(theme.CLITableHeader())
	keyStyle    = lipgloss.NewStyle().Foreground(theme.CLITableKey())
	dimStyle    = lipgloss.NewStyle().Foreground(theme.CLITableDim())
)

func printConfigPath() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	fmt.Println(path)
	return nil
}

// findEditor returns $EDITOR, $VISUAL or the first common editor on PATH.
func findEditor() (string, error) {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if e := os.Getenv(env); e != "" {
			return e, nil
		}
	}
	for _, e := range []string{"vim", "vi", "nano", "emacs"} {
		if path, err := exec.LookPath(e); err == nil {
			return path, nil
		}
	}
	return "", errors.New("no editor found, set $EDITOR")
}

func editConfigFile() error {
	// Loading writes the default file on first use.
	if _, err := config.LoadUserConfig(); err != nil {
		return err
	}
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	editor, err := findEditor()
	if err != nil {
		return err
	}

	// The editor may carry arguments, e.g. "code --wait".
	fields := strings.Fields(editor)
	// #nosec G204 - the editor is chosen by the user
	cmd := exec.Command(fields[0], append(fields[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor exited: %w", err)
	}

	if _, err := config.LoadUserConfigFile(path); err != nil {
		return fmt.Errorf("edited config is invalid: %w", err)
	}
	return nil
}

func resetConfigToDefaults(yes bool) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	if !yes && !confirm(os.Stdin, fmt.Sprintf("Overwrite %s with the defaults? [y/N] ", path)) {
		fmt.Println("Aborted.")
		return nil
	}
	if err := config.WriteConfig(path, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Println("Configuration reset:", path)
	return nil
}

// confirm asks a yes/no question on r.
func confirm(r io.Reader, prompt string) bool {
	fmt.Print(prompt)
	answer, _ := bufio.NewReader(r).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

func listKeybindings() error {
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		userConfig = config.DefaultConfig()
	}
	w := stdout()
	printKeybindings(w, config.GetKeybindings(config.NewKeybindRegistry(userConfig)))
	return nil
}

func printKeybindings(w io.Writer, sections []config.KeybindingSection) {
	width := 0
	for _, s := range sections {
		for _, b := range s.Bindings {
			width = max(width, lipgloss.Width(b.Key))
		}
	}
	for i, s := range sections {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, headerStyle.Render(s.Title))
		for _, b := range s.Bindings {
			fmt.Fprintf(w, "  %s  %s\n", keyStyle.Width(width).Render(b.Key), b.Description)
		}
	}
}

func listApps() error {
	reg, err := registry.Load()
	if err != nil {
		return fmt.Errorf("failed to load app catalog: %w", err)
	}
	printApps(stdout(), reg)
	return nil
}

func printApps(w io.Writer, reg *registry.Registry) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-10s %-16s %-8s %s", "ID", "TITLE", "SIZE", "REQUIRES")))
	for _, d := range reg.All() {
		requires := d.RequiresCapability
		if requires == "" {
			requires = dimStyle.Render("-")
		}
		size := fmt.Sprintf("%dx%d", d.DefaultSize.Width, d.DefaultSize.Height)
		fmt.Fprintf(w, "%s %-16s %-8s %s\n", keyStyle.Render(fmt.Sprintf("%-10s", d.ID)), d.Title, size, requires)
	}
}

// previewThemeColors prints the 16 ANSI colors of a theme as swatches.
func previewThemeColors(name string) error {
	if err := theme.Initialize(name); err != nil {
		return err
	}
	t := theme.Current()
	if t == nil {
		return fmt.Errorf("theme %q not found", name)
	}

	w := stdout()
	fmt.Fprintln(w, headerStyle.Render(t.DisplayName))
	rows := [][]*tint.Color{
		{t.Black, t.Red, t.Green, t.Yellow, t.Blue, t.Purple, t.Cyan, t.White},
		{t.BrightBlack, t.BrightRed, t.BrightGreen, t.BrightYellow, t.BrightBlue, t.BrightPurple, t.BrightCyan, t.BrightWhite},
	}
	for _, row := range rows {
		var sb strings.Builder
		for _, c := range row {
			if c == nil {
				sb.WriteString("    ")
				continue
			}
			sb.WriteString(lipgloss.NewStyle().Background(c).Render("    "))
		}
		fmt.Fprintln(w, sb.String())
	}
	if t.Fg != nil && t.Bg != nil {
		fmt.Fprintln(w, lipgloss.NewStyle().Foreground(t.Fg).Background(t.Bg).Render(" foreground on background "))
	}
	return nil
}
