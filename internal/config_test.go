package internal

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.State.Dir == "" {
		t.Error("default state dir empty")
	}
}

func TestDefaultStateDir_RespectsXDG(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/tmp/xdg-state")
	if got, want := defaultStateDir(), filepath.Join("/tmp/xdg-state", "hl"); got != want {
		t.Errorf("defaultStateDir = %q, want %q", got, want)
	}
}

func TestHTTPConfig_PortBounds(t *testing.T) {
	cfg := HTTPConfig{Port: 0}
	if err := cfg.Validate(); err == nil {
		t.Error("port 0 should fail validation")
	}
	cfg.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Error("port 70000 should fail validation")
	}
	cfg.Port = 8484
	if err := cfg.Validate(); err != nil {
		t.Errorf("port 8484 should pass: %v", err)
	}
}

func TestHTTPConfig_AddressIsLoopback(t *testing.T) {
	cfg := HTTPConfig{Port: 9000}
	if got := cfg.Address(); got != "127.0.0.1:9000" {
		t.Errorf("Address = %q", got)
	}
}

func TestStateConfig_Paths(t *testing.T) {
	cfg := StateConfig{Dir: "/var/state/hl"}
	if got := cfg.DBPath(); got != filepath.Join("/var/state/hl", "highlights.db") {
		t.Errorf("DBPath = %q", got)
	}
	if got := cfg.LocksDir(); got != filepath.Join("/var/state/hl", "locks") {
		t.Errorf("LocksDir = %q", got)
	}
}

func TestStateConfig_RequiresDir(t *testing.T) {
	cfg := StateConfig{}
	if err := cfg.Validate(); err == nil {
		t.Error("empty state dir should fail validation")
	}
}
