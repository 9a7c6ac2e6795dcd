// Package output serializes circle sets and coverage statistics into the
// CSV layout the downstream targeting tools consume: one file per
// constituency under CSVs/, a combined bubbles.csv, and statistics.csv with
// batch summary rows.
package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ctessum/geom/proj"

	"constituency-bubbles/internal/analysis"
	"constituency-bubbles/internal/coverage"
)

// Writer owns the output directory for one batch run. Not safe for
// concurrent use; the runner hands results over sequentially.
type Writer struct {
	csvDir  string
	toWGS84 proj.Transformer

	bubblesFile *os.File
	statsFile   *os.File
	bubbles     *csv.Writer
	stats       *csv.Writer

	coverages    []float64
	circleCounts []float64
}

// NewWriter creates the output directory tree and the combined CSV files.
// toWGS84 converts working-CRS coordinates to longitude/latitude for the
// output rows; nil means coordinates are written unconverted.
func NewWriter(dir string, toWGS84 proj.Transformer) (*Writer, error) {
	csvDir := filepath.Join(dir, "CSVs")
	if err := os.MkdirAll(csvDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	bubblesFile, err := os.Create(filepath.Join(dir, "bubbles.csv"))
	if err != nil {
		return nil, err
	}
	statsFile, err := os.Create(filepath.Join(dir, "statistics.csv"))
	if err != nil {
		bubblesFile.Close()
		return nil, err
	}

	w := &Writer{
		csvDir:      csvDir,
		toWGS84:     toWGS84,
		bubblesFile: bubblesFile,
		statsFile:   statsFile,
		bubbles:     csv.NewWriter(bubblesFile),
		stats:       csv.NewWriter(statsFile),
	}
	if err := w.bubbles.Write([]string{"bubble", "name", "type"}); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.stats.Write([]string{"name", "coverage_percent", "circle_count", "reason"}); err != nil {
		w.Close()
		return nil, err
	}
	return w, nil
}

// WriteResult writes one constituency's per-boundary CSV, its rows in the
// combined file, and its statistics line (including per-radius counts).
func (w *Writer) WriteResult(id string, res coverage.Result) error {
	f, err := os.Create(filepath.Join(w.csvDir, sanitizeFilename(id)+".csv"))
	if err != nil {
		return err
	}
	cw := csv.NewWriter(f)
	if err := cw.Write([]string{"bubble_type", "coordinates", "radius_km"}); err != nil {
		f.Close()
		return err
	}
	for _, c := range res.Circles {
		s, err := w.formatBubble(c)
		if err != nil {
			f.Close()
			return fmt.Errorf("boundary %q: %w", id, err)
		}
		if err := cw.Write([]string{"inclusion", s, strconv.Itoa(c.Units)}); err != nil {
			f.Close()
			return err
		}
		if err := w.bubbles.Write([]string{s, id, "inclusion"}); err != nil {
			f.Close()
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	row := []string{
		id,
		fmt.Sprintf("%.1f", res.CoveragePercent()),
		strconv.Itoa(res.CircleCount()),
		res.Reason.String(),
	}
	for _, n := range analysis.RadiusCounts(res.Circles) {
		row = append(row, strconv.Itoa(n))
	}
	if err := w.stats.Write(row); err != nil {
		return err
	}

	w.coverages = append(w.coverages, res.CoveragePercent())
	w.circleCounts = append(w.circleCounts, float64(res.CircleCount()))
	return nil
}

// WriteFailure records a constituency that produced no result, so the
// statistics file accounts for every input boundary.
func (w *Writer) WriteFailure(id string, cause error) error {
	return w.stats.Write([]string{id, "", "", "error: " + cause.Error()})
}

// Close appends the batch summary rows and flushes both combined files.
func (w *Writer) Close() error {
	var firstErr error
	record := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if len(w.coverages) > 0 {
		record(w.stats.Write([]string{"", "", "", ""}))
		record(w.writeSummary("coverage_percent", analysis.Summarize(w.coverages)))
		record(w.writeSummary("circle_count", analysis.Summarize(w.circleCounts)))
	}

	w.bubbles.Flush()
	record(w.bubbles.Error())
	w.stats.Flush()
	record(w.stats.Error())
	record(w.bubblesFile.Close())
	record(w.statsFile.Close())
	return firstErr
}

func (w *Writer) writeSummary(metric string, s analysis.Summary) error {
	rows := [][2]string{
		{metric + "_mean", formatStat(s.Mean)},
		{metric + "_median", formatStat(s.Median)},
		{metric + "_min", formatStat(s.Min)},
		{metric + "_max", formatStat(s.Max)},
		{metric + "_sigma", formatStat(s.Sigma)},
	}
	for _, r := range rows {
		if err := w.stats.Write([]string{r[0], r[1]}); err != nil {
			return err
		}
	}
	return nil
}

func formatStat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// formatBubble renders the "(lat, lon) +Nkm" string the targeting tools
// expect, converting the center out of the working CRS when a transform is
// configured.
func (w *Writer) formatBubble(c coverage.Circle) (string, error) {
	lon, lat := c.X, c.Y
	if w.toWGS84 != nil {
		var err error
		lon, lat, err = w.toWGS84(c.X, c.Y)
		if err != nil {
			return "", fmt.Errorf("convert circle center: %w", err)
		}
	}
	return fmt.Sprintf("(%.6f, %.6f) +%dkm", lat, lon, c.Units), nil
}

// sanitizeFilename replaces path separators so constituency names like
// "Ynys Môn / Anglesey" cannot escape the output directory.
func sanitizeFilename(name string) string {
	return strings.NewReplacer("/", "&", "\\", "&").Replace(name)
}
