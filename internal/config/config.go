// Package config loads and validates the frontend's configuration:
// JSON load/save/default/validate over the runtime paths and protocol
// versions this frontend needs.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Configuration holds everything about the runtime environment and
// advertised protocol versions that an operator can override.
type Configuration struct {
	// RuntimeDir overrides $XDG_RUNTIME_DIR; falls back to /tmp.
	RuntimeDir string `json:"runtime_dir"`
	// SocketName is the UNIX socket basename bound under RuntimeDir.
	SocketName string `json:"socket_name"`
	// DataHome overrides $XDG_DATA_HOME; falls back to /tmp.
	DataHome string `json:"data_home"`

	CompositorVersion  uint32 `json:"compositor_version"`
	SubcompositorVersion uint32 `json:"subcompositor_version"`
	DataDeviceManagerVersion uint32 `json:"data_device_manager_version"`
	ShellVersion       uint32 `json:"shell_version"`
	XDGShellVersion    uint32 `json:"xdg_shell_version"`
	SeatVersion        uint32 `json:"seat_version"`
	OutputVersion      uint32 `json:"output_version"`
	ShmVersion         uint32 `json:"shm_version"`
	ScreenshooterVersion uint32 `json:"screenshooter_version"`

	LoopFeederIntervalMS int `json:"loop_feeder_interval_ms"`

	Debug bool `json:"debug"`
}

// DefaultConfig resolves environment-relative defaults, falling back
// to /tmp when the XDG directories aren't set.
func DefaultConfig() Configuration {
	runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
	if runtimeDir == "" {
		runtimeDir = "/tmp"
	}
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = "/tmp"
	}

	return Configuration{
		RuntimeDir:               runtimeDir,
		SocketName:               "wayland-0",
		DataHome:                 dataHome,
		CompositorVersion:        3,
		SubcompositorVersion:     1,
		DataDeviceManagerVersion: 2,
		ShellVersion:             1,
		XDGShellVersion:          1,
		SeatVersion:              4,
		OutputVersion:            2,
		ShmVersion:               1,
		ScreenshooterVersion:     1,
		LoopFeederIntervalMS:     60,
	}
}

// LoadConfig reads a JSON configuration file over top of a default
// and validates the result.
func LoadConfig(path string, cfg *Configuration) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return validate(cfg)
}

// SaveConfig writes cfg as indented JSON.
func SaveConfig(path string, cfg Configuration) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func validate(cfg *Configuration) error {
	if cfg.SocketName == "" {
		cfg.SocketName = "wayland-0"
	}
	if cfg.LoopFeederIntervalMS <= 0 {
		cfg.LoopFeederIntervalMS = 60
	}
	return nil
}

// SocketPath is the full UNIX socket path the Engine binds.
func (c Configuration) SocketPath() string {
	return filepath.Join(c.RuntimeDir, c.SocketName)
}
