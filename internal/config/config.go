// Package config loads the static tunables. The file is read once at
// startup; there is no hot-reload.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	yaml "go.yaml.in/yaml/v3"
)

// Config holds the six tunables. Immutable after load.
//
// Intervals and the threshold are whole seconds in the file, matching the
// on-disk format this tool has always used.
type Config struct {
	// HeartbeatInterval is the scheduler tick period in seconds.
	HeartbeatInterval int `yaml:"heartbeat_interval"`

	// WorkerInterval is accepted for compatibility but drives nothing;
	// only heartbeat_interval feeds the triggering decision.
	WorkerInterval int `yaml:"worker_interval"`

	// InactivityThreshold is the idle duration in seconds that arms a move.
	InactivityThreshold int `yaml:"inactivity_threshold"`

	// MovementDelta is the per-axis move distance in pixels.
	MovementDelta int `yaml:"movement_delta"`

	// MaxErrors is the consecutive-failure count that raises the alert.
	MaxErrors uint `yaml:"max_errors"`

	// AutoStart enables triggering immediately at launch.
	AutoStart bool `yaml:"auto_start"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		HeartbeatInterval:   60,
		WorkerInterval:      10,
		InactivityThreshold: 60,
		MovementDelta:       10,
		MaxErrors:           10,
		AutoStart:           false,
	}
}

// Load reads the config file at path. A missing file is not an error: the
// defaults apply. Any other read, decode, or validation failure is fatal to
// startup and propagates.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the effective configuration to path, creating parent
// directories as needed.
func (c Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// Validate rejects values the core cannot run with.
func (c Config) Validate() error {
	if c.HeartbeatInterval < 1 {
		return fmt.Errorf("heartbeat_interval must be >= 1s, got %d", c.HeartbeatInterval)
	}
	if c.WorkerInterval < 1 {
		return fmt.Errorf("worker_interval must be >= 1s, got %d", c.WorkerInterval)
	}
	if c.InactivityThreshold < 1 {
		return fmt.Errorf("inactivity_threshold must be >= 1s, got %d", c.InactivityThreshold)
	}
	if c.MovementDelta < 1 {
		return fmt.Errorf("movement_delta must be >= 1px, got %d", c.MovementDelta)
	}
	if c.MaxErrors < 1 {
		return fmt.Errorf("max_errors must be >= 1, got %d", c.MaxErrors)
	}
	return nil
}

// Heartbeat returns the scheduler tick period.
func (c Config) Heartbeat() time.Duration {
	return time.Duration(c.HeartbeatInterval) * time.Second
}

// Threshold returns the idle duration that arms a move.
func (c Config) Threshold() time.Duration {
	return time.Duration(c.InactivityThreshold) * time.Second
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "nudge.yaml"
	}
	return filepath.Join(dir, "nudge", "nudge.yaml")
}
