package commands

import (
	"fmt"
	"os"

	"github.com/ryanelliottsmith/netperf/pkg/output"
	"github.com/ryanelliottsmith/netperf/pkg/probes"
	"github.com/ryanelliottsmith/netperf/pkg/types"
	"github.com/spf13/cobra"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Run a single probe once",
	Long:  "Run one probe in isolation, without iterations or report files.",
}

var probeLatencyCmd = &cobra.Command{
	Use:   "latency",
	Short: "Measure ICMP latency and jitter",
	RunE: func(cmd *cobra.Command, args []string) error {
		target, _ := cmd.Flags().GetString("target")
		count, _ := cmd.Flags().GetInt("count")

		probe := probes.NewLatencyProbe(target, count)
		result := probes.RunWithTimeout(cmd.Context(), probe, 0, probe.Timeout())

		format, _ := cmd.Flags().GetString("output")
		return output.PrintResult(result, format)
	},
}

var probeThroughputCmd = &cobra.Command{
	Use:   "throughput",
	Short: "Measure throughput against an iperf3 server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := types.DefaultConfig()
		cfg.IperfServer, _ = cmd.Flags().GetString("server")
		cfg.IperfPort, _ = cmd.Flags().GetInt("port")
		cfg.Duration, _ = cmd.Flags().GetInt("time")
		cfg.UDP, _ = cmd.Flags().GetBool("udp")
		cfg.Reverse, _ = cmd.Flags().GetBool("reverse")

		if cfg.IperfServer == "" {
			return fmt.Errorf("iperf3 server required (use --server)")
		}

		probe := probes.NewThroughputProbe(cfg)
		result := probes.RunWithTimeout(cmd.Context(), probe, 0, probe.Timeout())

		format, _ := cmd.Flags().GetString("output")
		return output.PrintResult(result, format)
	},
}

var probeSpeedtestCmd = &cobra.Command{
	Use:   "speedtest",
	Short: "Measure internet speed",
	RunE: func(cmd *cobra.Command, args []string) error {
		probe := probes.NewSpeedtestProbe()
		result := probes.RunWithTimeout(cmd.Context(), probe, 0, probes.SpeedtestTimeout)

		format, _ := cmd.Flags().GetString("output")
		return output.PrintResult(result, format)
	},
}

var probeTransferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Measure local file transfer rates",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("path")
		payloadMB, _ := cmd.Flags().GetInt("payload-mb")
		if path == "" {
			path = os.TempDir()
		}

		probe := probes.NewLocalTransferProbe(path, payloadMB)
		result := probes.RunWithTimeout(cmd.Context(), probe, 0, probes.LocalTransferTimeout)

		format, _ := cmd.Flags().GetString("output")
		return output.PrintResult(result, format)
	},
}

func init() {
	probeCmd.AddCommand(probeLatencyCmd)
	probeCmd.AddCommand(probeThroughputCmd)
	probeCmd.AddCommand(probeSpeedtestCmd)
	probeCmd.AddCommand(probeTransferCmd)

	probeLatencyCmd.Flags().String("target", types.DefaultLatencyTarget, "Target host to ping")
	probeLatencyCmd.Flags().Int("count", types.DefaultPingCount, "ICMP echo requests to send")

	probeThroughputCmd.Flags().StringP("server", "s", "", "iperf3 server")
	probeThroughputCmd.Flags().Int("port", types.DefaultIperfPort, "iperf3 server port")
	probeThroughputCmd.Flags().IntP("time", "t", types.DefaultDuration, "Test duration in seconds")
	probeThroughputCmd.Flags().Bool("udp", false, "Use UDP")
	probeThroughputCmd.Flags().Bool("reverse", false, "Measure download instead of upload")

	probeTransferCmd.Flags().String("path", "", "Directory for test files (default: system temp)")
	probeTransferCmd.Flags().Int("payload-mb", types.DefaultPayloadMB, "Payload size in MB")
}
