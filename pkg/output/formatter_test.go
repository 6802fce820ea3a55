package output

import (
	"strings"
	"testing"

	"github.com/ryanelliottsmith/netperf/pkg/types"
)

func TestMetricsLine(t *testing.T) {
	latency := &types.ProbeResult{
		Kind: types.KindLatency,
		Latency: &types.LatencyMetrics{
			MinLatencyMS: 8.12, AvgLatencyMS: 12.4, MaxLatencyMS: 20.9,
			JitterMS: 1.2, PacketLoss: 5,
		},
	}
	line := metricsLine(latency)
	if !strings.Contains(line, "8.12/12.40/20.90") {
		t.Errorf("Unexpected latency line: %q", line)
	}
	if !strings.Contains(line, "5.0% loss") {
		t.Errorf("Expected loss in line: %q", line)
	}

	udp := &types.ProbeResult{
		Kind: types.KindThroughput,
		Throughput: &types.ThroughputMetrics{
			Mbps: 100, Protocol: "udp", Duration: 10, JitterMS: 0.042, LostPercent: 1.5,
		},
	}
	line = metricsLine(udp)
	if !strings.Contains(line, "udp") || !strings.Contains(line, "jitter") {
		t.Errorf("Unexpected udp line: %q", line)
	}

	tcp := &types.ProbeResult{
		Kind: types.KindThroughput,
		Throughput: &types.ThroughputMetrics{
			Mbps: 941, Protocol: "tcp", Duration: 10, Retransmits: 3, Reverse: true,
		},
	}
	line = metricsLine(tcp)
	if !strings.Contains(line, "reverse") || !strings.Contains(line, "3 retransmits") {
		t.Errorf("Unexpected tcp line: %q", line)
	}

	failed := &types.ProbeResult{Kind: types.KindLatency, Status: types.StatusFail}
	if line = metricsLine(failed); line != "" {
		t.Errorf("Expected empty line for failed result, got %q", line)
	}
}

func TestInterfaceLine(t *testing.T) {
	signal := -56
	info := types.InterfaceInfo{
		Name:      "wlan0",
		Kind:      types.InterfaceWireless,
		Addresses: []string{"192.168.1.10/24"},
		SpeedMbps: 867,
		SSID:      "HomeNet",
		SignalDBM: &signal,
	}

	line := interfaceLine(&info)
	for _, want := range []string{"wlan0", "192.168.1.10/24", "wireless", "867 Mbps", `"HomeNet"`, "-56 dBm"} {
		if !strings.Contains(line, want) {
			t.Errorf("Expected %q in line %q", want, line)
		}
	}

	wired := types.InterfaceInfo{
		Name:      "eth0",
		Kind:      types.InterfaceWired,
		Addresses: []string{"10.0.0.5/24"},
	}
	line = interfaceLine(&wired)
	if strings.Contains(line, "Mbps") || strings.Contains(line, "SSID") {
		t.Errorf("Unexpected wireless details on wired line: %q", line)
	}
}

func TestPrintResult_UnknownFormat(t *testing.T) {
	result := &types.ProbeResult{Kind: types.KindLatency, Status: types.StatusPass}
	if err := PrintResult(result, "xml"); err == nil {
		t.Error("Expected error for unknown format")
	}
}

func TestValidateFormat(t *testing.T) {
	for _, format := range []string{"table", "json", "yaml"} {
		if err := ValidateFormat(format); err != nil {
			t.Errorf("Expected %q to be accepted: %v", format, err)
		}
	}
	if err := ValidateFormat("bogus"); err == nil {
		t.Error("Expected error for unknown format")
	}
}
