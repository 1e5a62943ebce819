package model

import (
	"strings"
	"time"
)

// DisplayTimeFormat is the timestamp layout used in reports and discrepancy text.
const DisplayTimeFormat = "2006-01-02 15:04"

// LightStatus is the state reported by a room light sensor.
type LightStatus string

const (
	LightOn  LightStatus = "ON"
	LightOff LightStatus = "OFF"
)

// SensorEvent is a single light transition extracted from the sensor log.
// Input order is file order; events are not guaranteed sorted or deduplicated.
type SensorEvent struct {
	Room      string
	Timestamp time.Time
	Status    LightStatus
}

// ActivityType classifies an interval by its duration.
type ActivityType string

const (
	ActivityHousekeeping ActivityType = "Housekeeping"
	ActivityGuest        ActivityType = "Guest"
)

// LightInterval is a paired ON->OFF span for one room. OnTime is strictly
// before OffTime, and within a room intervals never overlap.
type LightInterval struct {
	Room            string
	OnTime          time.Time
	OffTime         time.Time
	DurationMinutes float64
	ActivityType    ActivityType
}

// BookingWindow is one row of the booking ledger: the reserved
// arrival-to-departure span for a room.
type BookingWindow struct {
	Room      string
	Arrival   time.Time
	Departure time.Time
	GuestName string
}

// ReconciliationStatus is the verdict for one interval.
type ReconciliationStatus string

const (
	StatusValid        ReconciliationStatus = "Valid"
	StatusMismatch     ReconciliationStatus = "Mismatch"
	StatusUnregistered ReconciliationStatus = "Unregistered"
)

// String returns the plain-text status word.
func (s ReconciliationStatus) String() string {
	return string(s)
}

// Display returns the status decorated with its glyph, as shown in
// human-facing summaries.
func (s ReconciliationStatus) Display() string {
	switch s {
	case StatusValid:
		return "✅ Valid"
	case StatusMismatch:
		return "❌ Mismatch"
	case StatusUnregistered:
		return "⚠️ Unregistered"
	default:
		return string(s)
	}
}

// ReconciliationRecord is a LightInterval joined with its booking verdict.
// Exactly one record exists per interval; none are dropped.
type ReconciliationRecord struct {
	LightInterval
	Status      ReconciliationStatus
	Discrepancy string
	Guest       string
}

// StripStatusGlyphs removes decorative status glyphs, leaving the plain
// status word. Exports must carry plain text.
func StripStatusGlyphs(s string) string {
	for _, glyph := range []string{"✅", "❌", "⚠️"} {
		s = strings.ReplaceAll(s, glyph, "")
	}
	return strings.TrimSpace(s)
}
