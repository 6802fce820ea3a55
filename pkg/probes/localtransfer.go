package probes

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/ryanelliottsmith/netperf/pkg/types"
)

const transferChunkSize = 1 << 20 // 1 MiB

// LocalTransferProbe measures file transfer speed by writing and reading
// back a pseudo-random payload on a network-mounted or local path.
type LocalTransferProbe struct {
	Path      string
	PayloadMB int
}

func NewLocalTransferProbe(path string, payloadMB int) *LocalTransferProbe {
	if payloadMB == 0 {
		payloadMB = types.DefaultPayloadMB
	}
	return &LocalTransferProbe{Path: path, PayloadMB: payloadMB}
}

func (p *LocalTransferProbe) Kind() types.ProbeKind {
	return types.KindLocalTransfer
}

func (p *LocalTransferProbe) Run(ctx context.Context) (*types.ProbeResult, error) {
	result := &types.ProbeResult{
		Kind:   p.Kind(),
		Target: p.Path,
		Status: types.StatusPass,
	}

	payloadBytes := int64(p.PayloadMB) << 20

	// Preflight: the payload plus 25% headroom must fit.
	if free, err := freeSpace(p.Path); err == nil {
		needed := uint64(payloadBytes + payloadBytes/4)
		if free < needed {
			result.Status = types.StatusFail
			result.Error = fmt.Sprintf("insufficient space on %s: %d bytes free, %d needed", p.Path, free, needed)
			return result, nil
		}
	}

	name := filepath.Join(p.Path, fmt.Sprintf("netperf_%d_%04d.bin", time.Now().Unix(), rand.Intn(10000)))
	defer os.Remove(name)

	log.Printf("[local-transfer] Writing %d MB payload to %s", p.PayloadMB, p.Path)

	start := time.Now()
	writeElapsed, err := p.writePayload(ctx, name, payloadBytes)
	if err != nil {
		result.Status = types.StatusFail
		result.Error = fmt.Sprintf("write failed: %v", err)
		result.RawOutput = err.Error()
		return result, nil
	}

	readElapsed, err := p.readPayload(ctx, name)
	if err != nil {
		result.Status = types.StatusFail
		result.Error = fmt.Sprintf("read-back failed: %v", err)
		result.RawOutput = err.Error()
		return result, nil
	}

	bits := float64(payloadBytes) * 8
	result.LocalTransfer = &types.LocalTransferMetrics{
		PayloadMB:      p.PayloadMB,
		WriteMbps:      bits / writeElapsed.Seconds() / 1e6,
		ReadMbps:       bits / readElapsed.Seconds() / 1e6,
		ElapsedSeconds: time.Since(start).Seconds(),
	}

	log.Printf("[local-transfer] Result: %.2f Mbps write, %.2f Mbps read",
		result.LocalTransfer.WriteMbps, result.LocalTransfer.ReadMbps)
	return result, nil
}

func (p *LocalTransferProbe) writePayload(ctx context.Context, name string, size int64) (time.Duration, error) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	chunk := make([]byte, transferChunkSize)

	start := time.Now()
	f, err := os.Create(name)
	if err != nil {
		return 0, err
	}

	var written int64
	for written < size {
		if err := ctx.Err(); err != nil {
			f.Close()
			return 0, err
		}
		n := int64(len(chunk))
		if size-written < n {
			n = size - written
		}
		rng.Read(chunk[:n])
		if _, err := f.Write(chunk[:n]); err != nil {
			f.Close()
			return 0, err
		}
		written += n
	}

	// Flush to the underlying device so write speed reflects the path,
	// not the page cache alone.
	if err := f.Sync(); err != nil {
		f.Close()
		return 0, err
	}
	if err := f.Close(); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}

func (p *LocalTransferProbe) readPayload(ctx context.Context, name string) (time.Duration, error) {
	start := time.Now()
	f, err := os.Open(name)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	buf := make([]byte, transferChunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if _, err := f.Read(buf); err != nil {
			if err == io.EOF {
				break
			}
			return 0, err
		}
	}
	return time.Since(start), nil
}
