package server

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
)

func TestHostKeyPath(t *testing.T) {
	explicit := filepath.Join(t.TempDir(), "key")
	got, err := hostKeyPath(explicit)
	if err != nil || got != explicit {
		t.Errorf("hostKeyPath(%q) = %q, %v", explicit, got, err)
	}

	dataHome := t.TempDir()
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_DATA_HOME", dataHome)
	xdg.Reload()

	got, err = hostKeyPath("")
	if err != nil {
		t.Fatalf("default host key path: %v", err)
	}
	if got != filepath.Join(dataHome, filepath.FromSlash(hostKeyRelPath)) {
		t.Errorf("default host key path = %q", got)
	}
}

func TestServersRequireFactory(t *testing.T) {
	ctx := context.Background()
	if err := StartSSHServer(ctx, &SSHServerConfig{Host: "localhost", Port: "0"}); err == nil {
		t.Error("ssh server started without a model factory")
	}
	if err := StartWebServer(ctx, &WebServerConfig{Host: "localhost", Port: "0"}); err == nil {
		t.Error("web server started without a model factory")
	}
}
