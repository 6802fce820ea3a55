package aggregate

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ryanelliottsmith/netperf/pkg/types"
)

// Summarize derives per-kind counts and aggregate statistics over the
// successful results. It runs once, after all iterations complete; a
// kind with zero successes keeps its counts but gets no metrics block,
// so NaN never reaches the output.
func Summarize(results []types.ProbeResult) types.RunSummary {
	var summary types.RunSummary

	for _, kind := range types.KindOrder {
		ks := types.KindSummary{Kind: kind}
		samples := make(map[string][]float64)
		present := false

		for _, r := range results {
			if r.Kind != kind {
				continue
			}
			present = true

			switch r.Status {
			case types.StatusPass:
				ks.Passed++
			case types.StatusPartial:
				ks.Partial++
			case types.StatusFail:
				ks.Failed++
			case types.StatusSkipped:
				ks.Skipped++
			}

			if r.Succeeded() {
				for name, v := range metricValues(&r) {
					samples[name] = append(samples[name], v)
				}
			}
		}

		if !present {
			continue
		}
		if len(samples) > 0 {
			ks.Metrics = make(map[string]types.MetricSummary, len(samples))
			for name, vals := range samples {
				ks.Metrics[name] = summarizeSamples(vals)
			}
		}
		summary.Kinds = append(summary.Kinds, ks)
	}

	return summary
}

func summarizeSamples(vals []float64) types.MetricSummary {
	ms := types.MetricSummary{
		Count: len(vals),
		Mean:  stat.Mean(vals, nil),
		Min:   floats.Min(vals),
		Max:   floats.Max(vals),
	}
	// StdDev of a single sample is NaN; report 0 instead.
	if len(vals) > 1 {
		ms.StdDev = stat.StdDev(vals, nil)
	}
	return ms
}

// metricValues flattens a result's kind-specific metrics into named
// samples for aggregation.
func metricValues(r *types.ProbeResult) map[string]float64 {
	switch {
	case r.Latency != nil:
		return map[string]float64{
			"min_latency_ms":      r.Latency.MinLatencyMS,
			"avg_latency_ms":      r.Latency.AvgLatencyMS,
			"max_latency_ms":      r.Latency.MaxLatencyMS,
			"jitter_ms":           r.Latency.JitterMS,
			"packet_loss_percent": r.Latency.PacketLoss,
		}
	case r.Throughput != nil:
		m := map[string]float64{"mbps": r.Throughput.Mbps}
		if r.Throughput.Protocol == "udp" {
			m["jitter_ms"] = r.Throughput.JitterMS
			m["lost_percent"] = r.Throughput.LostPercent
		} else {
			m["retransmits"] = float64(r.Throughput.Retransmits)
		}
		return m
	case r.InternetSpeed != nil:
		return map[string]float64{
			"download_mbps": r.InternetSpeed.DownloadMbps,
			"upload_mbps":   r.InternetSpeed.UploadMbps,
			"ping_ms":       r.InternetSpeed.PingMS,
		}
	case r.LocalTransfer != nil:
		return map[string]float64{
			"write_mbps":      r.LocalTransfer.WriteMbps,
			"read_mbps":       r.LocalTransfer.ReadMbps,
			"elapsed_seconds": r.LocalTransfer.ElapsedSeconds,
		}
	}
	return nil
}
