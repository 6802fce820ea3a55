package probes

import (
	"context"
	"time"

	"github.com/ryanelliottsmith/netperf/pkg/types"
)

const (
	// SpeedtestTimeout bounds the internet speed test, which routinely
	// takes close to a minute on slow links.
	SpeedtestTimeout = 120 * time.Second

	// LocalTransferTimeout bounds the file-copy test; network shares can
	// be very slow without being broken.
	LocalTransferTimeout = 300 * time.Second
)

// Probe runs one external measurement and translates its output into a
// typed result. Probe-level failures are encoded in the result, never
// returned as errors; the error return is reserved for faults that
// prevent building a result at all.
type Probe interface {
	Kind() types.ProbeKind
	Run(ctx context.Context) (*types.ProbeResult, error)
}

// RunWithTimeout executes a probe under a deadline and stamps timing and
// iteration metadata onto the result. A deadline hit is reported as a
// failed result, never a hang.
func RunWithTimeout(ctx context.Context, p Probe, iteration int, timeout time.Duration) *types.ProbeResult {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	startTime := time.Now()
	result, err := p.Run(ctx)
	endTime := time.Now()

	if result == nil {
		result = &types.ProbeResult{
			Kind:   p.Kind(),
			Status: types.StatusFail,
		}
	}

	result.Iteration = iteration
	result.StartTime = startTime
	result.EndTime = endTime
	result.Duration = endTime.Sub(startTime)

	if err != nil {
		result.Status = types.StatusFail
		if ctx.Err() == context.DeadlineExceeded {
			result.Error = "timeout after " + timeout.String()
		} else {
			result.Error = err.Error()
		}
	} else if result.Status == types.StatusFail && ctx.Err() == context.DeadlineExceeded && result.Error == "" {
		result.Error = "timeout after " + timeout.String()
	}

	return result
}

// Skipped builds the record for a probe that was intentionally not run.
func Skipped(kind types.ProbeKind, iteration int, reason string) *types.ProbeResult {
	now := time.Now()
	return &types.ProbeResult{
		Kind:      kind,
		Iteration: iteration,
		Status:    types.StatusSkipped,
		Error:     reason,
		StartTime: now,
		EndTime:   now,
	}
}
