// Package aggregate drives the iteration loop and derives the run
// summary. Probes execute strictly sequentially: overlapping network
// tests would contend for the link and corrupt each other's numbers.
package aggregate

import (
	"context"
	"log"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/ryanelliottsmith/netperf/pkg/inspect"
	"github.com/ryanelliottsmith/netperf/pkg/probes"
	"github.com/ryanelliottsmith/netperf/pkg/types"
)

type State string

const (
	StateIdle        State = "idle"
	StateRunning     State = "running"
	StateSummarizing State = "summarizing"
	StateDone        State = "done"
)

// Slot binds one probe position in the iteration order. A non-empty
// SkipReason means the probe is recorded as skipped instead of run.
type Slot struct {
	Kind       types.ProbeKind
	Probe      probes.Probe
	Timeout    time.Duration
	SkipReason string
}

// Runner executes the configured probe set for N iterations. Results are
// append-only and never mutated after collection.
type Runner struct {
	cfg   types.Config
	slots []Slot

	// Inspector captures the interface snapshot; swappable for tests.
	Inspector func() ([]types.InterfaceInfo, error)
	// NewRunID generates report identifiers; swappable for tests.
	NewRunID func() string

	state   State
	results []types.ProbeResult
}

func NewRunner(cfg types.Config, slots []Slot) *Runner {
	return &Runner{
		cfg:       cfg,
		slots:     slots,
		Inspector: inspect.Inspect,
		NewRunID:  func() string { return uuid.New().String() },
		state:     StateIdle,
	}
}

func (r *Runner) State() State {
	return r.state
}

// BuildSlots assembles the probe sequence for a config, in the fixed
// order latency, throughput, internet-speed, local-transfer. Probes
// disabled or unconfigured become skip slots; missing external tools
// only warn here and surface as failures when the probe actually runs.
func BuildSlots(cfg types.Config) []Slot {
	latency := probes.NewLatencyProbe(cfg.Target, cfg.PingCount)
	throughput := probes.NewThroughputProbe(cfg)
	speedtest := probes.NewSpeedtestProbe()

	slots := []Slot{
		{Kind: types.KindLatency, Probe: latency, Timeout: latency.Timeout()},
	}

	tp := Slot{Kind: types.KindThroughput, Probe: throughput, Timeout: throughput.Timeout()}
	if cfg.IperfServer == "" {
		tp.SkipReason = "no iperf3 server configured"
	} else if _, err := exec.LookPath("iperf3"); err != nil {
		log.Printf("[run] Warning: iperf3 not found, throughput probes will fail (install with 'apt install iperf3' or 'brew install iperf3')")
	}
	slots = append(slots, tp)

	st := Slot{Kind: types.KindInternetSpeed, Probe: speedtest, Timeout: probes.SpeedtestTimeout}
	if !cfg.Speedtest {
		st.SkipReason = "disabled by configuration"
	} else if !speedtest.Available() {
		log.Printf("[run] Warning: no speed-test tool found, internet-speed probes will fail (install with 'pip install speedtest-cli')")
	}
	slots = append(slots, st)

	lt := Slot{
		Kind:    types.KindLocalTransfer,
		Probe:   probes.NewLocalTransferProbe(cfg.LocalPath, cfg.PayloadMB),
		Timeout: probes.LocalTransferTimeout,
	}
	if !cfg.LocalTransfer {
		lt.SkipReason = "disabled by configuration"
	}
	slots = append(slots, lt)

	return slots
}

// Run executes the configured iterations and returns the report. A
// cancelled context stops before the next probe starts; whatever was
// already collected is still summarized, never discarded.
func (r *Runner) Run(ctx context.Context) *types.RunReport {
	r.state = StateRunning

	report := &types.RunReport{
		RunID:      r.NewRunID(),
		Hostname:   hostname(),
		OS:         runtime.GOOS,
		Target:     r.cfg.Target,
		Iterations: r.cfg.Iterations,
		StartTime:  time.Now(),
	}

	if ifaces, err := r.Inspector(); err != nil {
		log.Printf("[run] Failed to inspect interfaces: %v", err)
	} else {
		report.Interfaces = ifaces
	}

iterations:
	for i := 0; i < r.cfg.Iterations; i++ {
		if ctx.Err() != nil {
			log.Printf("[run] Cancelled, stopping after %d iterations", i)
			break
		}
		log.Printf("[run] Iteration %d of %d", i+1, r.cfg.Iterations)

		for _, slot := range r.slots {
			if ctx.Err() != nil {
				log.Printf("[run] Cancelled, stopping before next probe")
				break iterations
			}
			if slot.SkipReason != "" {
				r.results = append(r.results, *probes.Skipped(slot.Kind, i, slot.SkipReason))
				continue
			}
			result := probes.RunWithTimeout(ctx, slot.Probe, i, slot.Timeout)
			r.results = append(r.results, *result)
		}

		if i < r.cfg.Iterations-1 && r.cfg.Pause > 0 {
			log.Printf("[run] Waiting %s before next iteration", r.cfg.Pause)
			select {
			case <-time.After(r.cfg.Pause):
			case <-ctx.Done():
			}
		}
	}

	r.state = StateSummarizing
	report.Results = append([]types.ProbeResult(nil), r.results...)
	report.Summary = Summarize(report.Results)
	report.EndTime = time.Now()
	r.state = StateDone

	return report
}

func hostname() string {
	h, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return h
}
