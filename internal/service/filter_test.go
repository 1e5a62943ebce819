package service_test

import (
	"testing"
	"time"

	"github.com/netcreators/occupancy-audit-worker/internal/model"
	"github.com/netcreators/occupancy-audit-worker/internal/service"
)

func event(room string, t time.Time) model.SensorEvent {
	return model.SensorEvent{Room: room, Timestamp: t, Status: model.LightOn}
}

func TestFilterEvents_RoomSelection(t *testing.T) {
	base := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	events := []model.SensorEvent{
		event("101", base),
		event("102", base),
		event("103", base),
	}

	filtered := service.FilterEvents(events, service.FilterOptions{Rooms: []string{"101", "103"}})

	if len(filtered) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(filtered))
	}
	if filtered[0].Room != "101" || filtered[1].Room != "103" {
		t.Errorf("Unexpected rooms after filtering: %s, %s", filtered[0].Room, filtered[1].Room)
	}
}

func TestFilterEvents_EmptyRoomSelectionKeepsAll(t *testing.T) {
	base := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	events := []model.SensorEvent{event("101", base), event("102", base)}

	filtered := service.FilterEvents(events, service.FilterOptions{})

	if len(filtered) != 2 {
		t.Errorf("Expected all events kept, got %d", len(filtered))
	}
}

func TestFilterEvents_DateBounds(t *testing.T) {
	start := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	events := []model.SensorEvent{
		event("101", start.Add(-time.Minute)), // before range
		event("101", start),                   // on the start bound
		event("101", start.Add(9*time.Hour)),  // inside
		event("101", end),                     // on the end bound (midnight)
		event("101", end.Add(30*time.Minute)), // later on the end date
	}

	filtered := service.FilterEvents(events, service.FilterOptions{Start: &start, End: &end})

	if len(filtered) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(filtered))
	}
	if !filtered[0].Timestamp.Equal(start) {
		t.Errorf("Expected start-bound event kept, got %v", filtered[0].Timestamp)
	}
	// The end bound is midnight of the end date; events later that day
	// fall outside the range.
	if !filtered[2].Timestamp.Equal(end) {
		t.Errorf("Expected end-bound event kept, got %v", filtered[2].Timestamp)
	}
}
