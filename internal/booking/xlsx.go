package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/netcreators/occupancy-audit-worker/internal/model"
	"github.com/netcreators/occupancy-audit-worker/tools/timeparser"
)

// SheetName is the ledger sheet holding the booking rows.
const SheetName = "Occupancy Statistics"

// headerRowIndex is the zero-based index of the header row (the 4th row).
const headerRowIndex = 3

// requiredColumns must all be present in the header row. The ledger has
// two columns literally named "Time"; the second is addressed as "Time.1"
// after positional dedup, matching the published column contract.
var requiredColumns = []string{"Room No", "Arrival Date", "Time", "Departure Date", "Time.1", "Guest Name"}

// ErrNoValidBookings is returned when every ledger row was dropped for
// unparseable dates. Per-row drops are silent; only the aggregate
// condition is surfaced, and it is terminal for the run.
var ErrNoValidBookings = errors.New("no valid booking records found after cleaning")

// XLSXLoader reads booking windows from the hotel's spreadsheet ledger.
type XLSXLoader struct {
	analysisYear int
	logger       *zap.Logger
}

// NewXLSXLoader creates a spreadsheet ledger loader stamping every row
// with the given analysis year.
func NewXLSXLoader(analysisYear int, logger *zap.Logger) *XLSXLoader {
	return &XLSXLoader{
		analysisYear: analysisYear,
		logger:       logger,
	}
}

// Load reads the ledger at path and returns its booking windows in row
// order. Structural problems (unreadable file, missing sheet or columns)
// are input-shape errors and fail the run before reconciliation starts.
// Rows whose arrival/departure pair does not parse are dropped silently.
func (l *XLSXLoader) Load(ctx context.Context, path string) ([]model.BookingWindow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open booking ledger '%s': %w", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet '%s': %w", SheetName, err)
	}
	if len(rows) <= headerRowIndex {
		return nil, fmt.Errorf("sheet '%s' has no header row at row %d", SheetName, headerRowIndex+1)
	}

	columns := headerIndex(rows[headerRowIndex])

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := columns[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	var windows []model.BookingWindow
	dropped := 0
	for _, row := range rows[headerRowIndex+1:] {
		arrival, err := timeparser.ParseBookingDateTime(
			cell(row, columns["Arrival Date"]), cell(row, columns["Time"]), l.analysisYear)
		if err != nil {
			dropped++
			continue
		}

		departure, err := timeparser.ParseBookingDateTime(
			cell(row, columns["Departure Date"]), cell(row, columns["Time.1"]), l.analysisYear)
		if err != nil {
			dropped++
			continue
		}

		windows = append(windows, model.BookingWindow{
			Room:      strings.TrimSpace(cell(row, columns["Room No"])),
			Arrival:   arrival,
			Departure: departure,
			GuestName: strings.TrimSpace(cell(row, columns["Guest Name"])),
		})
	}

	if dropped > 0 {
		l.logger.Warn("dropped booking rows with unparseable dates",
			zap.Int("dropped", dropped),
			zap.String("path", path),
		)
	}

	if len(windows) == 0 {
		return nil, ErrNoValidBookings
	}

	return windows, nil
}

// headerIndex maps trimmed column names to their positions. Duplicate
// names get ".1", ".2", ... suffixes in order of appearance, so the
// second "Time" column becomes "Time.1".
func headerIndex(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	seen := make(map[string]int, len(header))
	for i, raw := range header {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n)
		} else {
			seen[name] = 1
		}
		columns[name] = i
	}
	return columns
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
