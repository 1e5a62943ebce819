package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/netcreators/occupancy-audit-worker/internal/model"
)

// utf8BOM is prepended to the comparison export so spreadsheet tools
// recognize the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// fileDateFormat is the date form embedded in report file names.
const fileDateFormat = "2006-01-02"

// Writer renders the light duration and occupancy comparison reports as
// CSV files under a fixed output directory.
type Writer struct {
	outputDir string
}

// NewWriter creates a report writer rooted at outputDir
func NewWriter(outputDir string) *Writer {
	return &Writer{outputDir: outputDir}
}

// WriteLightDurationReport renders the interval report and returns the
// written file path.
func (w *Writer) WriteLightDurationReport(intervals []model.LightInterval, start, end time.Time) (string, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	if err := cw.Write([]string{"Room", "Light ON", "Light OFF", "Duration (min)", "Activity Type"}); err != nil {
		return "", fmt.Errorf("failed to write header: %w", err)
	}
	for _, iv := range intervals {
		if err := cw.Write(intervalFields(iv)); err != nil {
			return "", fmt.Errorf("failed to write row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("failed to render light duration report: %w", err)
	}

	name := fmt.Sprintf("light_duration_report_%s_to_%s.csv",
		start.Format(fileDateFormat), end.Format(fileDateFormat))
	return w.writeFile(name, buf.Bytes())
}

// WriteComparisonReport renders the reconciliation report and returns the
// written file path. The export is UTF-8 with a byte-order mark, and any
// decorative status glyphs are stripped to plain status words.
func (w *Writer) WriteComparisonReport(records []model.ReconciliationRecord, start, end time.Time) (string, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)
	cw := csv.NewWriter(&buf)

	header := []string{"Room", "Light ON", "Light OFF", "Duration (min)", "Activity Type", "Status", "Discrepancy", "Guest"}
	if err := cw.Write(header); err != nil {
		return "", fmt.Errorf("failed to write header: %w", err)
	}
	for _, rec := range records {
		row := append(intervalFields(rec.LightInterval),
			model.StripStatusGlyphs(rec.Status.Display()),
			rec.Discrepancy,
			rec.Guest,
		)
		if err := cw.Write(row); err != nil {
			return "", fmt.Errorf("failed to write row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("failed to render comparison report: %w", err)
	}

	name := fmt.Sprintf("occupancy_comparison_%s_to_%s.csv",
		start.Format(fileDateFormat), end.Format(fileDateFormat))
	return w.writeFile(name, buf.Bytes())
}

func intervalFields(iv model.LightInterval) []string {
	return []string{
		iv.Room,
		iv.OnTime.Format(model.DisplayTimeFormat),
		iv.OffTime.Format(model.DisplayTimeFormat),
		strconv.FormatFloat(iv.DurationMinutes, 'f', 2, 64),
		string(iv.ActivityType),
	}
}

func (w *Writer) writeFile(name string, data []byte) (string, error) {
	if err := os.MkdirAll(w.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}
	path := filepath.Join(w.outputDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write report '%s': %w", path, err)
	}
	return path, nil
}
