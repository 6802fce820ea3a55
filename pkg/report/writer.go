// Package report persists a RunReport to disk in two comparable forms:
// a flat CSV (one row per iteration and probe kind, plus trailing
// summary rows) and a lossless nested JSON document with stable field
// names, so before/after files stay diffable.
package report

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/ryanelliottsmith/netperf/pkg/types"
)

var csvHeader = []string{
	"timestamp", "iteration", "kind", "target", "status", "error",
	"latency_min_ms", "latency_avg_ms", "latency_max_ms", "jitter_ms", "packet_loss_percent",
	"throughput_mbps", "retransmits",
	"download_mbps", "upload_mbps", "ping_ms",
	"local_write_mbps", "local_read_mbps", "local_elapsed_s",
}

// Write attempts both outputs and reports each failure independently:
// one unwritable path never discards the other file. It returns the
// paths actually written alongside the joined errors.
func Write(report *types.RunReport, csvPath, jsonPath string) ([]string, error) {
	var written []string
	var errs []error

	if csvPath != "" {
		if err := WriteCSV(report, csvPath); err != nil {
			errs = append(errs, fmt.Errorf("csv %s: %w", csvPath, err))
		} else {
			written = append(written, csvPath)
		}
	}
	if jsonPath != "" {
		if err := WriteJSON(report, jsonPath); err != nil {
			errs = append(errs, fmt.Errorf("json %s: %w", jsonPath, err))
		} else {
			written = append(written, jsonPath)
		}
	}

	return written, errors.Join(errs...)
}

func WriteJSON(report *types.RunReport, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func WriteCSV(report *types.RunReport, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		f.Close()
		return err
	}
	for i := range report.Results {
		if err := w.Write(resultRow(&report.Results[i])); err != nil {
			f.Close()
			return err
		}
	}
	for _, row := range summaryRows(report.Summary) {
		if err := w.Write(row); err != nil {
			f.Close()
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// resultRow flattens one ProbeResult. Failed and skipped probes leave
// every metric cell empty: absent, never zero.
func resultRow(r *types.ProbeResult) []string {
	row := make([]string, len(csvHeader))
	row[0] = r.StartTime.Format(time.RFC3339)
	row[1] = strconv.Itoa(r.Iteration)
	row[2] = string(r.Kind)
	row[3] = r.Target
	row[4] = string(r.Status)
	row[5] = r.Error

	switch {
	case r.Latency != nil:
		row[6] = f3(r.Latency.MinLatencyMS)
		row[7] = f3(r.Latency.AvgLatencyMS)
		row[8] = f3(r.Latency.MaxLatencyMS)
		row[9] = f3(r.Latency.JitterMS)
		row[10] = f3(r.Latency.PacketLoss)
	case r.Throughput != nil:
		row[11] = f3(r.Throughput.Mbps)
		if r.Throughput.Protocol == "udp" {
			row[9] = f3(r.Throughput.JitterMS)
			row[10] = f3(r.Throughput.LostPercent)
		} else {
			row[12] = strconv.Itoa(r.Throughput.Retransmits)
		}
	case r.InternetSpeed != nil:
		row[13] = f3(r.InternetSpeed.DownloadMbps)
		row[14] = f3(r.InternetSpeed.UploadMbps)
		row[15] = f3(r.InternetSpeed.PingMS)
		if r.InternetSpeed.JitterMS > 0 {
			row[9] = f3(r.InternetSpeed.JitterMS)
		}
	case r.LocalTransfer != nil:
		row[16] = f3(r.LocalTransfer.WriteMbps)
		row[17] = f3(r.LocalTransfer.ReadMbps)
		row[18] = f3(r.LocalTransfer.ElapsedSeconds)
	}

	return row
}

// summaryRows renders the trailing summary block. The literal "summary"
// in the first column keeps the file one flat table.
func summaryRows(s types.RunSummary) [][]string {
	rows := [][]string{
		{""},
		{"summary", "kind", "metric", "count", "mean", "min", "max", "stddev"},
	}

	for _, ks := range s.Kinds {
		counts := fmt.Sprintf("pass=%d partial=%d fail=%d skipped=%d", ks.Passed, ks.Partial, ks.Failed, ks.Skipped)
		rows = append(rows, []string{"summary", string(ks.Kind), "results", counts, "", "", "", ""})

		names := make([]string, 0, len(ks.Metrics))
		for name := range ks.Metrics {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			m := ks.Metrics[name]
			rows = append(rows, []string{
				"summary", string(ks.Kind), name,
				strconv.Itoa(m.Count), f3(m.Mean), f3(m.Min), f3(m.Max), f3(m.StdDev),
			})
		}
	}

	return rows
}

func f3(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
