// Package output renders probe results and run reports to stdout in
// table, json, or yaml form. Table output is for humans; the structured
// forms carry the same data as the report files.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ryanelliottsmith/netperf/pkg/types"
	"gopkg.in/yaml.v3"
)

// ValidateFormat rejects unknown output formats up front, so a bad
// --output value fails before any measurement runs.
func ValidateFormat(format string) error {
	switch format {
	case "table", "json", "yaml":
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func PrintResult(result *types.ProbeResult, format string) error {
	switch format {
	case "json":
		return printJSON(result)
	case "yaml":
		return printYAML(result)
	case "table":
		return printResultTable(result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func PrintReport(report *types.RunReport, format string) error {
	switch format {
	case "json":
		return printJSON(report)
	case "yaml":
		return printYAML(report)
	case "table":
		return printReportTable(report)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func PrintInterfaces(ifaces []types.InterfaceInfo, format string) error {
	switch format {
	case "json":
		return printJSON(ifaces)
	case "yaml":
		return printYAML(ifaces)
	case "table":
		printInterfacesTable(ifaces)
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func printYAML(v interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)
	defer encoder.Close()
	return encoder.Encode(v)
}

func statusGlyph(status types.ProbeStatus) string {
	switch status {
	case types.StatusPass:
		return "✓"
	case types.StatusPartial:
		return "~"
	case types.StatusSkipped:
		return "-"
	default:
		return "✗"
	}
}

func printResultTable(result *types.ProbeResult) error {
	fmt.Printf("Probe:    %s\n", result.Kind)
	if result.Target != "" {
		fmt.Printf("Target:   %s\n", result.Target)
	}
	fmt.Printf("Status:   %s %s\n", statusGlyph(result.Status), result.Status)
	fmt.Printf("Duration: %v\n", result.Duration)

	if result.Error != "" {
		fmt.Printf("Error:    %s\n", result.Error)
	}
	if line := metricsLine(result); line != "" {
		fmt.Printf("Metrics:  %s\n", line)
	}

	return nil
}

// metricsLine renders a result's kind-specific metrics as one compact
// human-readable line. Empty for failed and skipped results.
func metricsLine(r *types.ProbeResult) string {
	switch {
	case r.Latency != nil:
		return fmt.Sprintf("min/avg/max = %.2f/%.2f/%.2f ms, jitter %.2f ms, %.1f%% loss",
			r.Latency.MinLatencyMS, r.Latency.AvgLatencyMS, r.Latency.MaxLatencyMS,
			r.Latency.JitterMS, r.Latency.PacketLoss)
	case r.Throughput != nil:
		t := r.Throughput
		direction := ""
		if t.Reverse {
			direction = ", reverse"
		}
		if t.Protocol == "udp" {
			return fmt.Sprintf("%.1f Mbps (udp, %ds%s), jitter %.3f ms, %.2f%% lost",
				t.Mbps, t.Duration, direction, t.JitterMS, t.LostPercent)
		}
		return fmt.Sprintf("%.1f Mbps (tcp, %ds%s), %d retransmits",
			t.Mbps, t.Duration, direction, t.Retransmits)
	case r.InternetSpeed != nil:
		s := r.InternetSpeed
		line := fmt.Sprintf("down %.1f Mbps, up %.1f Mbps, ping %.1f ms",
			s.DownloadMbps, s.UploadMbps, s.PingMS)
		if s.Server != "" {
			line += fmt.Sprintf(" (%s)", s.Server)
		}
		return line
	case r.LocalTransfer != nil:
		l := r.LocalTransfer
		return fmt.Sprintf("write %.1f Mbps, read %.1f Mbps (%d MB in %.2fs)",
			l.WriteMbps, l.ReadMbps, l.PayloadMB, l.ElapsedSeconds)
	}
	return ""
}

func printInterfacesTable(ifaces []types.InterfaceInfo) {
	if len(ifaces) == 0 {
		fmt.Println("No active network interfaces found.")
		return
	}
	fmt.Println("Network Interfaces")
	fmt.Println("------------------")
	for _, info := range ifaces {
		fmt.Println(interfaceLine(&info))
	}
}

func interfaceLine(info *types.InterfaceInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "- %s: %s (%s", info.Name, strings.Join(info.Addresses, ", "), info.Kind)
	if info.SpeedMbps > 0 {
		fmt.Fprintf(&b, ", %d Mbps", info.SpeedMbps)
	}
	b.WriteString(")")
	if info.SSID != "" {
		fmt.Fprintf(&b, " SSID %q", info.SSID)
	}
	if info.SignalDBM != nil {
		fmt.Fprintf(&b, " signal %d dBm", *info.SignalDBM)
	}
	return b.String()
}

func printReportTable(report *types.RunReport) error {
	fmt.Printf("Run %s on %s (%s)\n", report.RunID, report.Hostname, report.OS)
	fmt.Printf("Target: %s, iterations: %d, started %s\n\n",
		report.Target, report.Iterations, report.StartTime.Format("2006-01-02 15:04:05"))

	printInterfacesTable(report.Interfaces)

	kindWidth := len("Kind")
	for _, r := range report.Results {
		if len(r.Kind) > kindWidth {
			kindWidth = len(r.Kind)
		}
	}

	fmt.Println("\nResults")
	fmt.Println("-------")
	fmt.Printf("%-4s   %-*s   %-9s   %s\n", "Iter", kindWidth, "Kind", "Status", "Details")
	for i := range report.Results {
		r := &report.Results[i]
		details := metricsLine(r)
		if r.Error != "" {
			if details != "" {
				details = details + " | " + r.Error
			} else {
				details = r.Error
			}
		}
		status := fmt.Sprintf("%s %s", statusGlyph(r.Status), r.Status)
		fmt.Printf("%-4d   %-*s   %-9s   %s\n", r.Iteration+1, kindWidth, string(r.Kind), status, details)
	}

	fmt.Println()
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("Summary")
	for _, ks := range report.Summary.Kinds {
		fmt.Printf("\n%s: %d passed, %d partial, %d failed, %d skipped\n",
			strings.ToUpper(string(ks.Kind)), ks.Passed, ks.Partial, ks.Failed, ks.Skipped)

		names := make([]string, 0, len(ks.Metrics))
		for name := range ks.Metrics {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			m := ks.Metrics[name]
			fmt.Printf("  %-22s mean %.3f  min %.3f  max %.3f  stddev %.3f  (n=%d)\n",
				name, m.Mean, m.Min, m.Max, m.StdDev, m.Count)
		}
	}

	return nil
}
