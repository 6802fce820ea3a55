package inspect

import (
	"strconv"
	"strings"

	"github.com/ryanelliottsmith/netperf/pkg/types"
)

// classifyKind guesses an interface's kind from its name. The sysfs
// wireless check overrides this on Linux; the heuristic covers platforms
// where no authoritative source exists.
func classifyKind(name string) types.InterfaceKind {
	lower := strings.ToLower(name)
	for _, prefix := range []string{"wlan", "wlp", "wlx", "wifi", "ath", "wl"} {
		if strings.HasPrefix(lower, prefix) {
			return types.InterfaceWireless
		}
	}
	for _, prefix := range []string{"eth", "eno", "ens", "enp", "enx", "en", "em", "lan"} {
		if strings.HasPrefix(lower, prefix) {
			return types.InterfaceWired
		}
	}
	return types.InterfaceUnknown
}

// parseProcWireless extracts per-interface signal level (dBm) from
// /proc/net/wireless. The first two lines are headers; the level is the
// fourth column, printed with a trailing dot.
func parseProcWireless(content string) map[string]int {
	signals := make(map[string]int)
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if i < 2 {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 || !strings.HasSuffix(fields[0], ":") {
			continue
		}
		name := strings.TrimSuffix(fields[0], ":")
		level := strings.TrimSuffix(fields[3], ".")
		if v, err := strconv.ParseFloat(level, 64); err == nil {
			signals[name] = int(v)
		}
	}
	return signals
}

type airportInfo struct {
	SSID       string
	RSSI       *int
	TxRateMbps int
}

// parseAirportOutput reads the macOS airport utility's "-I" report.
func parseAirportOutput(output string) airportInfo {
	var info airportInfo
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "SSID:"):
			info.SSID = strings.TrimSpace(strings.TrimPrefix(line, "SSID:"))
		case strings.HasPrefix(line, "agrCtlRSSI:"):
			raw := strings.TrimSpace(strings.TrimPrefix(line, "agrCtlRSSI:"))
			if v, err := strconv.Atoi(raw); err == nil {
				rssi := v
				info.RSSI = &rssi
			}
		case strings.HasPrefix(line, "lastTxRate:"):
			raw := strings.TrimSpace(strings.TrimPrefix(line, "lastTxRate:"))
			if v, err := strconv.Atoi(raw); err == nil {
				info.TxRateMbps = v
			}
		}
	}
	return info
}

// parseWifiDevice finds the Wi-Fi device name in
// `networksetup -listallhardwareports` output, which lists
// "Hardware Port:" / "Device:" pairs per interface. Empty when the
// machine has no Wi-Fi port.
func parseWifiDevice(output string) string {
	var port string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "Hardware Port:"):
			port = strings.TrimSpace(strings.TrimPrefix(line, "Hardware Port:"))
		case strings.HasPrefix(line, "Device:"):
			if port == "Wi-Fi" || port == "AirPort" {
				return strings.TrimSpace(strings.TrimPrefix(line, "Device:"))
			}
		}
	}
	return ""
}

// parseMediaSpeed extracts the negotiated speed in Mbps from
// `networksetup -getmedia` output, e.g. "Active: 1000baseT".
func parseMediaSpeed(output string) int {
	for _, line := range strings.Split(output, "\n") {
		lower := strings.ToLower(line)
		if !strings.Contains(lower, "baset") {
			continue
		}
		for _, field := range strings.Fields(line) {
			idx := strings.Index(strings.ToLower(field), "baset")
			if idx <= 0 {
				continue
			}
			if v, err := strconv.Atoi(field[:idx]); err == nil {
				return v
			}
		}
	}
	return 0
}
