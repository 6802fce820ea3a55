package commands

import (
	"github.com/spf13/cobra"
)

var (
	version   string
	commit    string
	buildDate string
)

func SetVersionInfo(v, c, b string) {
	version = v
	commit = c
	buildDate = b
}

var rootCmd = &cobra.Command{
	Use:   "netperf",
	Short: "Network performance measurement for a single host",
	Long: `Measures network performance from the machine it runs on: ICMP latency
and jitter, iperf3 throughput against a server you control, internet
speed via an installed speed-test tool, and local disk transfer rates
as a baseline. Results are written as CSV and JSON for comparison
across runs.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(interfacesCmd)

	rootCmd.PersistentFlags().StringP("output", "o", "table", "Output format (table, json, yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
}
