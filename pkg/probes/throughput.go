package probes

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/ryanelliottsmith/netperf/pkg/types"
)

// ThroughputProbe runs an iperf3 client against a configured server.
// With no server it is skipped, never attempted.
type ThroughputProbe struct {
	Server   string
	Port     int
	Duration int
	UDP      bool
	// Reverse measures download (server to client) instead of upload.
	Reverse bool
}

func NewThroughputProbe(cfg types.Config) *ThroughputProbe {
	return &ThroughputProbe{
		Server:   cfg.IperfServer,
		Port:     cfg.IperfPort,
		Duration: cfg.Duration,
		UDP:      cfg.UDP,
		Reverse:  cfg.Reverse,
	}
}

func (p *ThroughputProbe) Kind() types.ProbeKind {
	return types.KindThroughput
}

// Timeout is the transfer duration plus handshake grace.
func (p *ThroughputProbe) Timeout() time.Duration {
	return time.Duration(p.Duration)*time.Second + 15*time.Second
}

func (p *ThroughputProbe) protocol() string {
	if p.UDP {
		return "udp"
	}
	return "tcp"
}

func (p *ThroughputProbe) Run(ctx context.Context) (*types.ProbeResult, error) {
	result := &types.ProbeResult{
		Kind:   p.Kind(),
		Target: p.Server,
		Status: types.StatusPass,
	}

	if p.Server == "" {
		result.Status = types.StatusSkipped
		result.Error = "no iperf3 server configured"
		return result, nil
	}

	args := []string{"-c", p.Server, "-p", strconv.Itoa(p.Port), "-t", strconv.Itoa(p.Duration), "-J"}
	if p.UDP {
		args = append(args, "-u")
	}
	if p.Reverse {
		args = append(args, "-R")
	}

	log.Printf("[throughput] Starting iperf3 %s test to %s:%d for %d seconds", p.protocol(), p.Server, p.Port, p.Duration)
	cmd := exec.CommandContext(ctx, "iperf3", args...)
	output, err := cmd.CombinedOutput()

	metrics, parseErr := parseIperf3Output(output, p.UDP, p.Reverse, p.Duration)
	if parseErr != nil {
		result.Status = types.StatusFail
		result.RawOutput = string(output)
		if err != nil {
			result.Error = fmt.Sprintf("iperf3 failed: %v: %v", err, parseErr)
		} else {
			result.Error = parseErr.Error()
		}
		log.Printf("[throughput] Failed: %s", result.Error)
		return result, nil
	}

	log.Printf("[throughput] Result: %.2f Mbps (%s)", metrics.Mbps, p.protocol())
	result.Throughput = metrics
	return result, nil
}

// parseIperf3Output translates iperf3's JSON report into metrics,
// falling back to scraping the human-readable sender line when the
// output is not valid JSON. This is the only place the iperf3 format is
// interpreted.
func parseIperf3Output(output []byte, udp, reverse bool, duration int) (*types.ThroughputMetrics, error) {
	protocol := "tcp"
	if udp {
		protocol = "udp"
	}

	var payload struct {
		Error string `json:"error"`
		End   struct {
			SumSent struct {
				BitsPerSecond float64 `json:"bits_per_second"`
				Retransmits   int     `json:"retransmits"`
			} `json:"sum_sent"`
			SumReceived struct {
				BitsPerSecond float64 `json:"bits_per_second"`
			} `json:"sum_received"`
			Sum struct {
				BitsPerSecond float64 `json:"bits_per_second"`
				JitterMS      float64 `json:"jitter_ms"`
				LostPercent   float64 `json:"lost_percent"`
			} `json:"sum"`
		} `json:"end"`
	}

	if err := json.Unmarshal(output, &payload); err != nil {
		if mbps, ok := scrapeSenderMbps(string(output)); ok {
			return &types.ThroughputMetrics{
				Mbps:     mbps,
				Protocol: protocol,
				Reverse:  reverse,
				Duration: duration,
			}, nil
		}
		return nil, fmt.Errorf("failed to parse iperf3 output: %w", err)
	}

	if payload.Error != "" {
		return nil, fmt.Errorf("iperf3: %s", payload.Error)
	}

	metrics := &types.ThroughputMetrics{
		Protocol: protocol,
		Reverse:  reverse,
		Duration: duration,
	}

	if udp {
		metrics.Mbps = payload.End.Sum.BitsPerSecond / 1e6
		metrics.JitterMS = payload.End.Sum.JitterMS
		metrics.LostPercent = payload.End.Sum.LostPercent
	} else {
		if reverse {
			metrics.Mbps = payload.End.SumReceived.BitsPerSecond / 1e6
		} else {
			metrics.Mbps = payload.End.SumSent.BitsPerSecond / 1e6
		}
		metrics.Retransmits = payload.End.SumSent.Retransmits
	}

	if metrics.Mbps == 0 {
		return nil, fmt.Errorf("iperf3 reported 0 bandwidth - test may have failed")
	}

	return metrics, nil
}

// scrapeSenderMbps pulls the achieved bitrate out of iperf3's plain-text
// sender summary line, e.g.
// "[  5]  0.00-10.00 sec  1.10 GBytes  941 Mbits/sec  0  sender".
func scrapeSenderMbps(output string) (float64, bool) {
	for _, line := range strings.Split(output, "\n") {
		if !strings.Contains(line, "Mbits/sec") || !strings.Contains(line, "sender") {
			continue
		}
		fields := strings.Fields(line)
		for i, field := range fields {
			if strings.HasPrefix(field, "Mbits/sec") && i > 0 {
				if v, err := strconv.ParseFloat(fields[i-1], 64); err == nil {
					return v, true
				}
			}
		}
	}
	return 0, false
}
