package aggregate

import (
	"testing"

	"github.com/ryanelliottsmith/netperf/pkg/types"
)

func TestSummarize_OnlySuccessesFeedMetrics(t *testing.T) {
	results := []types.ProbeResult{
		{
			Kind: types.KindLatency, Status: types.StatusPass,
			Latency: &types.LatencyMetrics{AvgLatencyMS: 10, MinLatencyMS: 8, MaxLatencyMS: 14, JitterMS: 1},
		},
		{
			Kind: types.KindLatency, Status: types.StatusPartial, Error: "5.0% packet loss",
			Latency: &types.LatencyMetrics{AvgLatencyMS: 20, MinLatencyMS: 12, MaxLatencyMS: 40, JitterMS: 3, PacketLoss: 5},
		},
		{Kind: types.KindLatency, Status: types.StatusFail, Error: "no echo replies received"},
	}

	summary := Summarize(results)

	ks, ok := summary.ByKind(types.KindLatency)
	if !ok {
		t.Fatal("Expected a latency summary")
	}
	if ks.Passed != 1 || ks.Partial != 1 || ks.Failed != 1 {
		t.Errorf("Expected counts 1/1/1, got %+v", ks)
	}

	avg, ok := ks.Metrics["avg_latency_ms"]
	if !ok {
		t.Fatal("Expected avg_latency_ms metric")
	}
	if avg.Count != 2 {
		t.Errorf("Expected 2 samples (failed result excluded), got %d", avg.Count)
	}
	if avg.Mean != 15 {
		t.Errorf("Expected mean of 15, got %f", avg.Mean)
	}
	if avg.Min != 10 || avg.Max != 20 {
		t.Errorf("Expected min/max 10/20, got %f/%f", avg.Min, avg.Max)
	}
}

func TestSummarize_ZeroSuccessesHasNoMetrics(t *testing.T) {
	results := []types.ProbeResult{
		{Kind: types.KindThroughput, Status: types.StatusFail, Error: "iperf3 failed"},
		{Kind: types.KindThroughput, Status: types.StatusFail, Error: "iperf3 failed"},
	}

	summary := Summarize(results)

	ks, ok := summary.ByKind(types.KindThroughput)
	if !ok {
		t.Fatal("Expected a throughput summary")
	}
	if ks.Failed != 2 {
		t.Errorf("Expected 2 failures, got %d", ks.Failed)
	}
	if len(ks.Metrics) != 0 {
		t.Errorf("Expected no metrics with zero successes, got %v", ks.Metrics)
	}
}

func TestSummarize_SingleSampleStdDevIsZero(t *testing.T) {
	results := []types.ProbeResult{
		{
			Kind: types.KindLocalTransfer, Status: types.StatusPass,
			LocalTransfer: &types.LocalTransferMetrics{WriteMbps: 800, ReadMbps: 1200, ElapsedSeconds: 2},
		},
	}

	summary := Summarize(results)

	ks, _ := summary.ByKind(types.KindLocalTransfer)
	m := ks.Metrics["write_mbps"]
	if m.Count != 1 {
		t.Fatalf("Expected 1 sample, got %d", m.Count)
	}
	if m.StdDev != 0 {
		t.Errorf("Expected zero stddev for a single sample, got %f", m.StdDev)
	}
	if m.Mean != 800 || m.Min != 800 || m.Max != 800 {
		t.Errorf("Expected all stats equal to the sample, got %+v", m)
	}
}

func TestSummarize_AbsentKindsOmitted(t *testing.T) {
	results := []types.ProbeResult{
		{
			Kind: types.KindLatency, Status: types.StatusPass,
			Latency: &types.LatencyMetrics{AvgLatencyMS: 10},
		},
	}

	summary := Summarize(results)

	if len(summary.Kinds) != 1 {
		t.Fatalf("Expected one kind in summary, got %d", len(summary.Kinds))
	}
	if _, ok := summary.ByKind(types.KindInternetSpeed); ok {
		t.Error("Expected no summary entry for a kind with no results")
	}
}

func TestSummarize_UDPThroughputMetrics(t *testing.T) {
	results := []types.ProbeResult{
		{
			Kind: types.KindThroughput, Status: types.StatusPass,
			Throughput: &types.ThroughputMetrics{Mbps: 100, Protocol: "udp", JitterMS: 0.05, LostPercent: 1},
		},
	}

	summary := Summarize(results)

	ks, _ := summary.ByKind(types.KindThroughput)
	if _, ok := ks.Metrics["jitter_ms"]; !ok {
		t.Error("Expected jitter_ms for udp throughput")
	}
	if _, ok := ks.Metrics["retransmits"]; ok {
		t.Error("Did not expect retransmits for udp throughput")
	}
}
