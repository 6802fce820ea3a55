package probes

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/ryanelliottsmith/netperf/pkg/types"
)

type blockingProbe struct{}

func (b *blockingProbe) Kind() types.ProbeKind { return types.KindLatency }

func (b *blockingProbe) Run(ctx context.Context) (*types.ProbeResult, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

type instantProbe struct {
	status types.ProbeStatus
}

func (i *instantProbe) Kind() types.ProbeKind { return types.KindLatency }

func (i *instantProbe) Run(ctx context.Context) (*types.ProbeResult, error) {
	return &types.ProbeResult{Kind: i.Kind(), Status: i.status}, nil
}

func TestRunWithTimeout_DeadlineBecomesFailure(t *testing.T) {
	result := RunWithTimeout(context.Background(), &blockingProbe{}, 2, 50*time.Millisecond)

	if result.Status != types.StatusFail {
		t.Errorf("Expected fail status on timeout, got %s", result.Status)
	}
	if !strings.Contains(result.Error, "timeout after") {
		t.Errorf("Expected timeout error message, got %q", result.Error)
	}
	if result.Iteration != 2 {
		t.Errorf("Expected iteration 2 stamped on result, got %d", result.Iteration)
	}
	if result.Duration <= 0 {
		t.Error("Expected non-zero duration")
	}
}

func TestRunWithTimeout_StampsMetadata(t *testing.T) {
	result := RunWithTimeout(context.Background(), &instantProbe{status: types.StatusPass}, 0, time.Second)

	if result.Status != types.StatusPass {
		t.Errorf("Expected pass status, got %s", result.Status)
	}
	if result.StartTime.IsZero() || result.EndTime.IsZero() {
		t.Error("Expected start and end times to be stamped")
	}
	if result.EndTime.Before(result.StartTime) {
		t.Error("Expected end time at or after start time")
	}
}

func TestSkipped(t *testing.T) {
	result := Skipped(types.KindThroughput, 1, "no iperf3 server configured")

	if result.Status != types.StatusSkipped {
		t.Errorf("Expected skipped status, got %s", result.Status)
	}
	if result.Succeeded() {
		t.Error("A skipped result must not count as a success")
	}
	if result.Error != "no iperf3 server configured" {
		t.Errorf("Expected reason in error field, got %q", result.Error)
	}
	if result.Iteration != 1 {
		t.Errorf("Expected iteration 1, got %d", result.Iteration)
	}
}
