package types

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultLatencyTarget = "8.8.8.8"
	DefaultPingCount     = 20
	DefaultIterations    = 3
	DefaultIperfPort     = 5201
	DefaultDuration      = 10
	DefaultPayloadMB     = 100
	DefaultPause         = 5 * time.Second
	DefaultCSVPath       = "netperf_results.csv"
	DefaultJSONPath      = "netperf_results.json"
)

// Config holds everything one run needs. Zero values are filled in by
// DefaultConfig; a YAML file and CLI flags layer on top of that.
type Config struct {
	// Target is the host latency probes ping.
	Target string `yaml:"target"`
	// PingCount is the number of echo requests per latency probe.
	PingCount int `yaml:"ping_count"`
	// Iterations is the number of full passes over all enabled probes.
	Iterations int `yaml:"iterations"`

	// IperfServer enables the throughput probe when non-empty.
	IperfServer string `yaml:"iperf_server"`
	IperfPort   int    `yaml:"iperf_port"`
	// Duration is the iperf3 transfer length in seconds.
	Duration int  `yaml:"duration_seconds"`
	UDP      bool `yaml:"udp"`
	// Reverse measures download instead of upload (iperf3 -R).
	Reverse bool `yaml:"reverse"`

	// Speedtest toggles the internet speed probe. It is independently
	// disableable because it is slow and consumes metered bandwidth.
	Speedtest bool `yaml:"speedtest"`

	LocalTransfer bool   `yaml:"local_transfer"`
	LocalPath     string `yaml:"local_path"`
	PayloadMB     int    `yaml:"payload_mb"`

	CSVPath  string `yaml:"csv_path"`
	JSONPath string `yaml:"json_path"`

	// Pause is the wait between iterations.
	Pause time.Duration `yaml:"pause"`

	Debug bool `yaml:"debug,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		Target:        DefaultLatencyTarget,
		PingCount:     DefaultPingCount,
		Iterations:    DefaultIterations,
		IperfPort:     DefaultIperfPort,
		Duration:      DefaultDuration,
		Speedtest:     true,
		LocalTransfer: true,
		LocalPath:     os.TempDir(),
		PayloadMB:     DefaultPayloadMB,
		CSVPath:       DefaultCSVPath,
		JSONPath:      DefaultJSONPath,
		Pause:         DefaultPause,
	}
}

// LoadConfig reads a YAML file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Target == "" {
		return fmt.Errorf("latency target must not be empty")
	}
	if c.PingCount < 1 {
		return fmt.Errorf("ping count must be at least 1, got %d", c.PingCount)
	}
	if c.Iterations < 1 {
		return fmt.Errorf("iterations must be at least 1, got %d", c.Iterations)
	}
	if c.Duration < 1 {
		return fmt.Errorf("duration must be at least 1 second, got %d", c.Duration)
	}
	if c.IperfPort < 1 || c.IperfPort > 65535 {
		return fmt.Errorf("invalid iperf port %d", c.IperfPort)
	}
	if c.LocalTransfer {
		if c.LocalPath == "" {
			return fmt.Errorf("local transfer enabled but no path configured")
		}
		if c.PayloadMB < 1 {
			return fmt.Errorf("payload size must be at least 1 MB, got %d", c.PayloadMB)
		}
	}
	if c.CSVPath == "" && c.JSONPath == "" {
		return fmt.Errorf("at least one output path (csv or json) is required")
	}
	if c.Pause < 0 {
		return fmt.Errorf("pause must not be negative")
	}
	return nil
}
