package probes

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os/exec"
	"strconv"
	"strings"

	"github.com/ryanelliottsmith/netperf/pkg/types"
)

// speedtestTools are the known CLI variants, tried in order. The two
// tools emit different JSON shapes; parseSpeedtestOutput handles both.
var speedtestTools = []struct {
	binary string
	args   []string
}{
	{"speedtest-cli", []string{"--json"}},
	{"speedtest", []string{"--format=json"}},
}

// SpeedtestProbe measures internet download/upload throughput via an
// external speed-test CLI.
type SpeedtestProbe struct {
	// lookPath is swappable for tests.
	lookPath func(string) (string, error)
}

func NewSpeedtestProbe() *SpeedtestProbe {
	return &SpeedtestProbe{lookPath: exec.LookPath}
}

func (p *SpeedtestProbe) Kind() types.ProbeKind {
	return types.KindInternetSpeed
}

// Available reports whether any known speed-test tool is installed.
func (p *SpeedtestProbe) Available() bool {
	for _, tool := range speedtestTools {
		if _, err := p.lookPath(tool.binary); err == nil {
			return true
		}
	}
	return false
}

func (p *SpeedtestProbe) Run(ctx context.Context) (*types.ProbeResult, error) {
	result := &types.ProbeResult{
		Kind:   p.Kind(),
		Status: types.StatusPass,
	}

	var binary string
	var args []string
	for _, tool := range speedtestTools {
		if path, err := p.lookPath(tool.binary); err == nil {
			binary = path
			args = tool.args
			break
		}
	}
	if binary == "" {
		result.Status = types.StatusFail
		result.Error = "no speed-test tool found (install speedtest-cli or speedtest)"
		return result, nil
	}

	log.Printf("[internet-speed] Running %s (this may take a minute)", binary)
	cmd := exec.CommandContext(ctx, binary, args...)
	output, err := cmd.CombinedOutput()

	metrics, parseErr := parseSpeedtestOutput(output)
	if parseErr != nil {
		result.Status = types.StatusFail
		result.RawOutput = string(output)
		if err != nil {
			result.Error = fmt.Sprintf("speed test failed: %v: %v", err, parseErr)
		} else {
			result.Error = parseErr.Error()
		}
		log.Printf("[internet-speed] Failed: %s", result.Error)
		return result, nil
	}

	log.Printf("[internet-speed] Result: %.2f Mbps down, %.2f Mbps up, %.2f ms ping",
		metrics.DownloadMbps, metrics.UploadMbps, metrics.PingMS)
	result.InternetSpeed = metrics
	return result, nil
}

// parseSpeedtestOutput accepts the Ookla CLI format (bandwidth in
// bytes/s under download/upload objects), the legacy speedtest-cli
// format (bits/s as plain numbers), or the tools' human-readable text.
func parseSpeedtestOutput(output []byte) (*types.InternetSpeedMetrics, error) {
	var ookla struct {
		Download struct {
			Bandwidth float64 `json:"bandwidth"`
		} `json:"download"`
		Upload struct {
			Bandwidth float64 `json:"bandwidth"`
		} `json:"upload"`
		Ping struct {
			Latency float64 `json:"latency"`
			Jitter  float64 `json:"jitter"`
		} `json:"ping"`
		Server struct {
			Name    string `json:"name"`
			Country string `json:"country"`
		} `json:"server"`
	}
	if err := json.Unmarshal(output, &ookla); err == nil && ookla.Download.Bandwidth > 0 {
		return &types.InternetSpeedMetrics{
			DownloadMbps:  ookla.Download.Bandwidth * 8 / 1e6,
			UploadMbps:    ookla.Upload.Bandwidth * 8 / 1e6,
			PingMS:        ookla.Ping.Latency,
			JitterMS:      ookla.Ping.Jitter,
			Server:        ookla.Server.Name,
			ServerCountry: ookla.Server.Country,
		}, nil
	}

	var legacy struct {
		Download float64 `json:"download"`
		Upload   float64 `json:"upload"`
		Ping     float64 `json:"ping"`
		Server   struct {
			Sponsor string `json:"sponsor"`
			Country string `json:"country"`
		} `json:"server"`
	}
	if err := json.Unmarshal(output, &legacy); err == nil && legacy.Download > 0 {
		return &types.InternetSpeedMetrics{
			DownloadMbps:  legacy.Download / 1e6,
			UploadMbps:    legacy.Upload / 1e6,
			PingMS:        legacy.Ping,
			Server:        legacy.Server.Sponsor,
			ServerCountry: legacy.Server.Country,
		}, nil
	}

	if metrics, ok := scrapeSpeedtestText(string(output)); ok {
		return metrics, nil
	}

	return nil, fmt.Errorf("unrecognized speed-test output")
}

// scrapeSpeedtestText handles the tools' non-JSON output, lines like
// "Download: 93.81 Mbit/s".
func scrapeSpeedtestText(output string) (*types.InternetSpeedMetrics, bool) {
	metrics := &types.InternetSpeedMetrics{}
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "Download:"):
			metrics.DownloadMbps = firstNumberAfterColon(line)
		case strings.HasPrefix(line, "Upload:"):
			metrics.UploadMbps = firstNumberAfterColon(line)
		case strings.HasPrefix(line, "Ping:"):
			metrics.PingMS = firstNumberAfterColon(line)
		}
	}
	if metrics.DownloadMbps == 0 && metrics.UploadMbps == 0 {
		return nil, false
	}
	return metrics, true
}

func firstNumberAfterColon(line string) float64 {
	_, rest, found := strings.Cut(line, ":")
	if !found {
		return 0
	}
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return 0
	}
	v, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0
	}
	return v
}
