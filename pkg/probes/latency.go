package probes

import (
	"context"
	"fmt"
	"log"
	"time"

	probing "github.com/prometheus-community/pro-bing"
	"github.com/ryanelliottsmith/netperf/pkg/types"
)

// LatencyProbe measures round-trip time and jitter with ICMP echoes.
type LatencyProbe struct {
	Target string
	Count  int
	// Privileged selects raw ICMP sockets (requires CAP_NET_RAW);
	// unprivileged UDP pings are used otherwise.
	Privileged bool
}

func NewLatencyProbe(target string, count int) *LatencyProbe {
	if count == 0 {
		count = types.DefaultPingCount
	}
	return &LatencyProbe{Target: target, Count: count}
}

func (p *LatencyProbe) Kind() types.ProbeKind {
	return types.KindLatency
}

// Timeout is one second per echo request plus fixed grace.
func (p *LatencyProbe) Timeout() time.Duration {
	return time.Duration(p.Count)*time.Second + 5*time.Second
}

func (p *LatencyProbe) Run(ctx context.Context) (*types.ProbeResult, error) {
	result := &types.ProbeResult{
		Kind:   p.Kind(),
		Target: p.Target,
		Status: types.StatusPass,
	}

	pinger, err := probing.NewPinger(p.Target)
	if err != nil {
		result.Status = types.StatusFail
		result.Error = fmt.Sprintf("failed to create pinger: %v", err)
		return result, nil
	}

	pinger.SetPrivileged(p.Privileged)
	pinger.Count = p.Count
	pinger.Timeout = p.Timeout() - time.Second
	pinger.Interval = 200 * time.Millisecond

	log.Printf("[latency] Pinging %s (%d requests)", p.Target, p.Count)
	if err := pinger.RunWithContext(ctx); err != nil {
		result.Status = types.StatusFail
		result.Error = fmt.Sprintf("ping failed: %v", err)
		return result, nil
	}

	applyLatencyStats(result, pinger.Statistics())

	if result.Latency != nil {
		log.Printf("[latency] Result: min/avg/max = %.2f/%.2f/%.2f ms, jitter %.2f ms, %.1f%% loss",
			result.Latency.MinLatencyMS, result.Latency.AvgLatencyMS, result.Latency.MaxLatencyMS,
			result.Latency.JitterMS, result.Latency.PacketLoss)
	}

	return result, nil
}

// applyLatencyStats converts pinger statistics into a result, deciding
// pass/partial/fail from how many echoes came back. Metrics are computed
// only from the samples that survived.
func applyLatencyStats(result *types.ProbeResult, stats *probing.Statistics) {
	if stats.PacketsRecv == 0 {
		result.Status = types.StatusFail
		result.Error = "no echo replies received"
		result.RawOutput = fmt.Sprintf("%d packets transmitted, 0 received, 100%% packet loss", stats.PacketsSent)
		return
	}

	result.Latency = &types.LatencyMetrics{
		PacketsSent:     stats.PacketsSent,
		PacketsReceived: stats.PacketsRecv,
		PacketLoss:      stats.PacketLoss,
		MinLatencyMS:    ms(stats.MinRtt),
		AvgLatencyMS:    ms(stats.AvgRtt),
		MaxLatencyMS:    ms(stats.MaxRtt),
		StdDevMS:        ms(stats.StdDevRtt),
		JitterMS:        jitter(stats.Rtts),
	}

	if stats.PacketsRecv < stats.PacketsSent {
		result.Status = types.StatusPartial
		result.Error = fmt.Sprintf("%.1f%% packet loss", stats.PacketLoss)
	}
}

// jitter is the mean absolute difference between consecutive round-trip
// samples, in milliseconds. Fewer than two samples yield 0.
func jitter(rtts []time.Duration) float64 {
	if len(rtts) < 2 {
		return 0
	}
	var sum float64
	for i := 1; i < len(rtts); i++ {
		d := ms(rtts[i]) - ms(rtts[i-1])
		if d < 0 {
			d = -d
		}
		sum += d
	}
	return sum / float64(len(rtts)-1)
}

func ms(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}
