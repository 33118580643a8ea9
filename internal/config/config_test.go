package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	if cfg.HeartbeatInterval != 60 {
		t.Errorf("heartbeat_interval = %d, want 60", cfg.HeartbeatInterval)
	}
	if cfg.WorkerInterval != 10 {
		t.Errorf("worker_interval = %d, want 10", cfg.WorkerInterval)
	}
	if cfg.InactivityThreshold != 60 {
		t.Errorf("inactivity_threshold = %d, want 60", cfg.InactivityThreshold)
	}
	if cfg.MovementDelta != 10 {
		t.Errorf("movement_delta = %d, want 10", cfg.MovementDelta)
	}
	if cfg.MaxErrors != 10 {
		t.Errorf("max_errors = %d, want 10", cfg.MaxErrors)
	}
	if cfg.AutoStart {
		t.Error("auto_start should default to false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults failed validation: %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load() on missing file: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nudge.yaml")
	content := []byte(
		"heartbeat_interval: 5\n" +
			"worker_interval: 2\n" +
			"inactivity_threshold: 30\n" +
			"movement_delta: 15\n" +
			"max_errors: 3\n" +
			"auto_start: true\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.HeartbeatInterval != 5 || cfg.InactivityThreshold != 30 {
		t.Errorf("intervals not loaded: %+v", cfg)
	}
	if cfg.MovementDelta != 15 || cfg.MaxErrors != 3 || !cfg.AutoStart {
		t.Errorf("fields not loaded: %+v", cfg)
	}
	if got := cfg.Heartbeat(); got != 5*time.Second {
		t.Errorf("Heartbeat() = %v, want 5s", got)
	}
	if got := cfg.Threshold(); got != 30*time.Second {
		t.Errorf("Threshold() = %v, want 30s", got)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nudge.yaml")
	if err := os.WriteFile(path, []byte("movement_delta: 25\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.MovementDelta != 25 {
		t.Errorf("movement_delta = %d, want 25", cfg.MovementDelta)
	}
	if cfg.HeartbeatInterval != 60 {
		t.Errorf("heartbeat_interval = %d, want default 60", cfg.HeartbeatInterval)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nudge.yaml")
	if err := os.WriteFile(path, []byte("movment_delta: 25\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for misspelled key")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero heartbeat", func(c *Config) { c.HeartbeatInterval = 0 }},
		{"zero worker interval", func(c *Config) { c.WorkerInterval = 0 }},
		{"zero threshold", func(c *Config) { c.InactivityThreshold = 0 }},
		{"zero delta", func(c *Config) { c.MovementDelta = 0 }},
		{"negative delta", func(c *Config) { c.MovementDelta = -10 }},
		{"zero max errors", func(c *Config) { c.MaxErrors = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "nudge.yaml")

	want := Default()
	want.MovementDelta = 20
	want.AutoStart = true
	if err := want.Save(path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got != want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}
