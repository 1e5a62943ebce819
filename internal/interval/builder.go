package interval

import (
	"math"
	"sort"

	"github.com/netcreators/occupancy-audit-worker/internal/model"
)

// Builder pairs raw light events into ON->OFF intervals and classifies
// them by duration against the configured housekeeping threshold.
type Builder struct {
	housekeepingThresholdMinutes float64
}

// NewBuilder creates a new interval builder with the specified threshold
func NewBuilder(housekeepingThresholdMinutes float64) *Builder {
	return &Builder{
		housekeepingThresholdMinutes: housekeepingThresholdMinutes,
	}
}

// Build converts an unordered batch of sensor events into well-formed
// intervals for every room. Input may be unsorted and may contain
// unmatched events; output intervals per room never overlap and ascend
// by ON time. Rooms with no pairable events simply contribute nothing —
// an empty result is a valid outcome, not an error.
func (b *Builder) Build(events []model.SensorEvent) []model.LightInterval {
	byRoom := make(map[string][]model.SensorEvent)
	for _, ev := range events {
		byRoom[ev.Room] = append(byRoom[ev.Room], ev)
	}

	rooms := make([]string, 0, len(byRoom))
	for room := range byRoom {
		rooms = append(rooms, room)
	}
	sort.Strings(rooms)

	var intervals []model.LightInterval
	for _, room := range rooms {
		intervals = append(intervals, b.buildRoom(room, byRoom[room])...)
	}

	return intervals
}

// buildRoom runs the two-pointer pairing for one room's events.
func (b *Builder) buildRoom(room string, events []model.SensorEvent) []model.LightInterval {
	var onEvents, offEvents []model.SensorEvent
	for _, ev := range events {
		if ev.Status == model.LightOn {
			onEvents = append(onEvents, ev)
		} else {
			offEvents = append(offEvents, ev)
		}
	}

	// Stable sort keeps input order for identical timestamps, so pairing
	// is deterministic for any permutation of the same event multiset.
	sort.SliceStable(onEvents, func(i, j int) bool {
		return onEvents[i].Timestamp.Before(onEvents[j].Timestamp)
	})
	sort.SliceStable(offEvents, func(i, j int) bool {
		return offEvents[i].Timestamp.Before(offEvents[j].Timestamp)
	})

	// Greedy earliest-available pairing: each ON takes the earliest OFF
	// that strictly follows it. An OFF at or before the current ON has no
	// unpaired ON preceding it and is discarded; trailing ONs with no OFF
	// left are dropped without emitting an interval.
	var intervals []model.LightInterval
	i, j := 0, 0
	for i < len(onEvents) && j < len(offEvents) {
		on, off := onEvents[i], offEvents[j]
		if !on.Timestamp.Before(off.Timestamp) {
			j++
			continue
		}

		duration := roundTo2(off.Timestamp.Sub(on.Timestamp).Minutes())

		activity := model.ActivityGuest
		if duration < b.housekeepingThresholdMinutes {
			activity = model.ActivityHousekeeping
		}

		intervals = append(intervals, model.LightInterval{
			Room:            room,
			OnTime:          on.Timestamp,
			OffTime:         off.Timestamp,
			DurationMinutes: duration,
			ActivityType:    activity,
		})
		i++
		j++
	}

	return intervals
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
