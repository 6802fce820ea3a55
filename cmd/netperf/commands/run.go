package commands

import (
	"log"
	"os"
	"os/signal"

	"github.com/ryanelliottsmith/netperf/pkg/aggregate"
	"github.com/ryanelliottsmith/netperf/pkg/output"
	"github.com/ryanelliottsmith/netperf/pkg/report"
	"github.com/ryanelliottsmith/netperf/pkg/types"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full measurement suite",
	Long: `Runs every configured probe for the requested number of iterations,
prints the per-iteration results and summary, and writes CSV and JSON
report files. Interrupting with Ctrl-C stops before the next probe;
whatever was already measured is still summarized and written.`,
	RunE: runSuite,
}

func runSuite(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("output")
	if err := output.ValidateFormat(format); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	runner := aggregate.NewRunner(cfg, aggregate.BuildSlots(cfg))
	rep := runner.Run(ctx)

	// Report files are written even if console printing fails, so a
	// completed run is never lost to a rendering problem.
	if printErr := output.PrintReport(rep, format); printErr != nil {
		log.Printf("[run] Console output failed: %v", printErr)
	}

	written, werr := report.Write(rep, cfg.CSVPath, cfg.JSONPath)
	for _, path := range written {
		log.Printf("[run] Wrote %s", path)
	}
	if werr != nil {
		log.Printf("[run] Report write errors: %v", werr)
		// One surviving output still counts as a successful run.
		if len(written) == 0 {
			return werr
		}
	}

	return nil
}

// buildConfig layers the sources lowest to highest: built-in defaults,
// then the config file if given, then any flag the user actually set.
func buildConfig(cmd *cobra.Command) (types.Config, error) {
	flags := cmd.Flags()

	cfg := types.DefaultConfig()
	if path, _ := flags.GetString("config"); path != "" {
		loaded, err := types.LoadConfig(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if flags.Changed("target") {
		cfg.Target, _ = flags.GetString("target")
	}
	if flags.Changed("count") {
		cfg.PingCount, _ = flags.GetInt("count")
	}
	if flags.Changed("iterations") {
		cfg.Iterations, _ = flags.GetInt("iterations")
	}
	if flags.Changed("server") {
		cfg.IperfServer, _ = flags.GetString("server")
	}
	if flags.Changed("port") {
		cfg.IperfPort, _ = flags.GetInt("port")
	}
	if flags.Changed("time") {
		cfg.Duration, _ = flags.GetInt("time")
	}
	if flags.Changed("udp") {
		cfg.UDP, _ = flags.GetBool("udp")
	}
	if flags.Changed("reverse") {
		cfg.Reverse, _ = flags.GetBool("reverse")
	}
	if flags.Changed("no-speedtest") {
		noSpeedtest, _ := flags.GetBool("no-speedtest")
		cfg.Speedtest = !noSpeedtest
	}
	if flags.Changed("no-local") {
		noLocal, _ := flags.GetBool("no-local")
		cfg.LocalTransfer = !noLocal
	}
	if flags.Changed("local-path") {
		cfg.LocalPath, _ = flags.GetString("local-path")
	}
	if flags.Changed("payload-mb") {
		cfg.PayloadMB, _ = flags.GetInt("payload-mb")
	}
	if flags.Changed("csv") {
		cfg.CSVPath, _ = flags.GetString("csv")
	}
	if flags.Changed("json") {
		cfg.JSONPath, _ = flags.GetString("json")
	}
	if flags.Changed("pause") {
		cfg.Pause, _ = flags.GetDuration("pause")
	}
	if flags.Changed("debug") {
		cfg.Debug, _ = flags.GetBool("debug")
	}

	return cfg, nil
}

func init() {
	runCmd.Flags().String("config", "", "Path to YAML config file")
	runCmd.Flags().String("target", types.DefaultLatencyTarget, "Target host for latency probes")
	runCmd.Flags().Int("count", types.DefaultPingCount, "ICMP echo requests per latency probe")
	runCmd.Flags().IntP("iterations", "i", types.DefaultIterations, "Number of iterations over the probe set")
	runCmd.Flags().StringP("server", "s", "", "iperf3 server for throughput probes (empty = skip)")
	runCmd.Flags().Int("port", types.DefaultIperfPort, "iperf3 server port")
	runCmd.Flags().IntP("time", "t", types.DefaultDuration, "Duration of each throughput probe in seconds")
	runCmd.Flags().Bool("udp", false, "Use UDP for throughput probes")
	runCmd.Flags().Bool("reverse", false, "Measure download (server sends) instead of upload")
	runCmd.Flags().Bool("no-speedtest", false, "Skip internet speed probes")
	runCmd.Flags().Bool("no-local", false, "Skip local transfer probes")
	runCmd.Flags().String("local-path", "", "Directory for local transfer test files (default: system temp)")
	runCmd.Flags().Int("payload-mb", types.DefaultPayloadMB, "Local transfer payload size in MB")
	runCmd.Flags().String("csv", types.DefaultCSVPath, "CSV report path (empty = disable)")
	runCmd.Flags().String("json", types.DefaultJSONPath, "JSON report path (empty = disable)")
	runCmd.Flags().Duration("pause", types.DefaultPause, "Pause between iterations")
}
