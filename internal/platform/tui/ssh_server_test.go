package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestSSHServerLifecycle(t *testing.T) {
	keyPath := filepath.Join(t.TempDir(), "keys", "host_ed25519")

	var logs strings.Builder
	srv, err := NewSSHServer(SSHServerConfig{
		Address:     "127.0.0.1:0",
		HostKeyPath: keyPath,
		IdleTimeout: time.Minute,
	}, SSHDeps{Logger: log.New(&logs), TickRate: 30})
	if err != nil {
		t.Fatalf("NewSSHServer failed: %v", err)
	}

	if _, err := os.Stat(keyPath); err != nil {
		t.Errorf("host key not created: %v", err)
	}
	if srv.Addr() != "127.0.0.1:0" {
		t.Errorf("Addr = %q", srv.Addr())
	}
	if srv.Sessions().Count() != 0 {
		t.Errorf("fresh server has %d sessions", srv.Sessions().Count())
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v after cancel", err)
		}
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
