package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfigVersions(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.CompositorVersion != 3 || cfg.SeatVersion != 4 || cfg.XDGShellVersion != 1 || cfg.ShmVersion != 1 {
		t.Fatalf("unexpected protocol versions in default config: %+v", cfg)
	}
	if cfg.LoopFeederIntervalMS != 60 {
		t.Fatalf("LoopFeederIntervalMS = %d, want 60", cfg.LoopFeederIntervalMS)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := DefaultConfig()
	cfg.SocketName = "wayland-test"
	cfg.Debug = true

	if err := SaveConfig(path, cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	loaded := DefaultConfig()
	if err := LoadConfig(path, &loaded); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if loaded.SocketName != "wayland-test" || !loaded.Debug {
		t.Fatalf("loaded config = %+v, want SocketName=wayland-test Debug=true", loaded)
	}
}

func TestSocketPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RuntimeDir = "/run/user/1000"
	cfg.SocketName = "wayland-0"

	if got, want := cfg.SocketPath(), "/run/user/1000/wayland-0"; got != want {
		t.Fatalf("SocketPath() = %q, want %q", got, want)
	}
}

func TestValidateDefaultsMissingFields(t *testing.T) {
	cfg := Configuration{}
	if err := validate(&cfg); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if cfg.SocketName != "wayland-0" || cfg.LoopFeederIntervalMS != 60 {
		t.Fatalf("validate did not fill defaults: %+v", cfg)
	}
}
