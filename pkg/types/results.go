package types

import "time"

// ProbeKind identifies one category of measurement.
type ProbeKind string

const (
	KindLatency       ProbeKind = "latency"
	KindThroughput    ProbeKind = "throughput"
	KindInternetSpeed ProbeKind = "internet-speed"
	KindLocalTransfer ProbeKind = "local-transfer"
)

// KindOrder is the fixed execution order within an iteration.
var KindOrder = []ProbeKind{KindLatency, KindThroughput, KindInternetSpeed, KindLocalTransfer}

type ProbeStatus string

const (
	StatusPass ProbeStatus = "pass"
	// StatusPartial means some samples were lost but a usable
	// measurement was still produced.
	StatusPartial ProbeStatus = "partial"
	StatusFail    ProbeStatus = "fail"
	// StatusSkipped means the probe was intentionally not run
	// (e.g. no iperf3 server configured). Distinct from a failed attempt.
	StatusSkipped ProbeStatus = "skipped"
)

// ProbeResult is one probe outcome for one iteration. Exactly one of the
// metrics pointers is set when the probe produced a measurement; all are
// nil for failed or skipped probes so a failure is never conflated with
// a legitimate zero reading.
type ProbeResult struct {
	Kind      ProbeKind   `json:"kind"`
	Iteration int         `json:"iteration"`
	Target    string      `json:"target,omitempty"`
	Status    ProbeStatus `json:"status"`
	Error     string      `json:"error,omitempty"`
	RawOutput string      `json:"raw_output,omitempty"`

	Latency       *LatencyMetrics       `json:"latency,omitempty"`
	Throughput    *ThroughputMetrics    `json:"throughput,omitempty"`
	InternetSpeed *InternetSpeedMetrics `json:"internet_speed,omitempty"`
	LocalTransfer *LocalTransferMetrics `json:"local_transfer,omitempty"`

	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`
}

// Succeeded reports whether the result carries a usable measurement.
func (r *ProbeResult) Succeeded() bool {
	return r.Status == StatusPass || r.Status == StatusPartial
}

type LatencyMetrics struct {
	PacketsSent     int     `json:"packets_sent"`
	PacketsReceived int     `json:"packets_received"`
	PacketLoss      float64 `json:"packet_loss_percent"`
	MinLatencyMS    float64 `json:"min_latency_ms"`
	AvgLatencyMS    float64 `json:"avg_latency_ms"`
	MaxLatencyMS    float64 `json:"max_latency_ms"`
	StdDevMS        float64 `json:"stddev_latency_ms"`
	JitterMS        float64 `json:"jitter_ms"`
}

type ThroughputMetrics struct {
	Mbps        float64 `json:"mbps"`
	Protocol    string  `json:"protocol"`
	Reverse     bool    `json:"reverse,omitempty"`
	Duration    int     `json:"duration_seconds"`
	Retransmits int     `json:"retransmits,omitempty"`
	JitterMS    float64 `json:"jitter_ms,omitempty"`
	LostPercent float64 `json:"lost_percent,omitempty"`
}

type InternetSpeedMetrics struct {
	DownloadMbps  float64 `json:"download_mbps"`
	UploadMbps    float64 `json:"upload_mbps"`
	PingMS        float64 `json:"ping_ms"`
	JitterMS      float64 `json:"jitter_ms,omitempty"`
	Server        string  `json:"server,omitempty"`
	ServerCountry string  `json:"server_country,omitempty"`
}

type LocalTransferMetrics struct {
	PayloadMB      int     `json:"payload_mb"`
	WriteMbps      float64 `json:"write_mbps"`
	ReadMbps       float64 `json:"read_mbps"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
}

// MetricSummary is the aggregate of one numeric metric over the
// successful results of a probe kind.
type MetricSummary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"stddev"`
}

// KindSummary aggregates one probe kind across all iterations. Metrics
// is empty (not NaN-filled) when no iteration of the kind succeeded.
type KindSummary struct {
	Kind    ProbeKind                `json:"kind"`
	Passed  int                      `json:"passed"`
	Partial int                      `json:"partial"`
	Failed  int                      `json:"failed"`
	Skipped int                      `json:"skipped"`
	Metrics map[string]MetricSummary `json:"metrics,omitempty"`
}

// Successes counts results that produced a usable measurement.
func (k KindSummary) Successes() int {
	return k.Passed + k.Partial
}

type RunSummary struct {
	Kinds []KindSummary `json:"kinds"`
}

// ByKind returns the summary block for a kind, if present.
func (s RunSummary) ByKind(kind ProbeKind) (KindSummary, bool) {
	for _, k := range s.Kinds {
		if k.Kind == kind {
			return k, true
		}
	}
	return KindSummary{}, false
}

// RunReport is the complete artifact for one invocation.
type RunReport struct {
	RunID      string          `json:"run_id"`
	Hostname   string          `json:"hostname"`
	OS         string          `json:"os"`
	Target     string          `json:"target,omitempty"`
	Iterations int             `json:"iterations"`
	StartTime  time.Time       `json:"start_time"`
	EndTime    time.Time       `json:"end_time"`
	Interfaces []InterfaceInfo `json:"interfaces"`
	Results    []ProbeResult   `json:"results"`
	Summary    RunSummary      `json:"summary"`
}
