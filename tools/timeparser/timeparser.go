package timeparser

import (
	"fmt"
	"strings"
	"time"
)

// sensorLayout matches the light log timestamps, which place the meridiem
// before a 12-hour clock time, e.g. "2025-03-14 PM 02:30".
const sensorLayout = "2006-01-02 PM 03:04"

// bookingLayout matches ledger date/time pairs once the analysis year has
// been spliced in, e.g. "Mar 14 2025 14:00".
const bookingLayout = "Jan 2 2006 15:04"

// ParseSensorTimestamp parses a sensor log timestamp.
func ParseSensorTimestamp(value string) (time.Time, error) {
	t, err := time.Parse(sensorLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse sensor timestamp '%s': %w", value, err)
	}
	return t, nil
}

// ParseBookingDateTime combines a ledger date ("Mar 14"), a time ("14:00")
// and the fixed analysis year into a single timestamp. The ledger itself
// carries no year; stamping every row with one configured year is a known
// limitation for stays that cross a year boundary.
func ParseBookingDateTime(dateStr, timeStr string, year int) (time.Time, error) {
	combined := fmt.Sprintf("%s %d %s", strings.TrimSpace(dateStr), year, strings.TrimSpace(timeStr))
	t, err := time.Parse(bookingLayout, combined)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse booking datetime '%s': %w", combined, err)
	}
	return t, nil
}
