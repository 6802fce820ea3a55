package types

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config must validate: %v", err)
	}
}

func TestLoadConfig_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "netperf.yaml")
	content := `target: 1.1.1.1
iterations: 5
iperf_server: 10.0.0.2
udp: true
speedtest: false
pause: 2s
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Target != "1.1.1.1" {
		t.Errorf("Expected target 1.1.1.1, got %q", cfg.Target)
	}
	if cfg.Iterations != 5 {
		t.Errorf("Expected 5 iterations, got %d", cfg.Iterations)
	}
	if cfg.IperfServer != "10.0.0.2" {
		t.Errorf("Expected iperf server, got %q", cfg.IperfServer)
	}
	if !cfg.UDP {
		t.Error("Expected UDP enabled")
	}
	if cfg.Speedtest {
		t.Error("Expected speedtest disabled")
	}
	if cfg.Pause != 2*time.Second {
		t.Errorf("Expected 2s pause, got %v", cfg.Pause)
	}

	// Untouched fields keep their defaults.
	if cfg.PingCount != DefaultPingCount {
		t.Errorf("Expected default ping count, got %d", cfg.PingCount)
	}
	if cfg.CSVPath != DefaultCSVPath {
		t.Errorf("Expected default CSV path, got %q", cfg.CSVPath)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty target", func(c *Config) { c.Target = "" }},
		{"zero ping count", func(c *Config) { c.PingCount = 0 }},
		{"zero iterations", func(c *Config) { c.Iterations = 0 }},
		{"zero duration", func(c *Config) { c.Duration = 0 }},
		{"bad port", func(c *Config) { c.IperfPort = 70000 }},
		{"local transfer without path", func(c *Config) { c.LocalPath = "" }},
		{"zero payload", func(c *Config) { c.PayloadMB = 0 }},
		{"no outputs", func(c *Config) { c.CSVPath = ""; c.JSONPath = "" }},
		{"negative pause", func(c *Config) { c.Pause = -time.Second }},
	}

	for _, c := range cases {
		cfg := DefaultConfig()
		c.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", c.name)
		}
	}
}
