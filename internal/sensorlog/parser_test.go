package sensorlog_test

import (
	"strings"
	"testing"
	"time"

	"github.com/netcreators/occupancy-audit-worker/internal/model"
	"github.com/netcreators/occupancy-audit-worker/internal/sensorlog"
)

func TestParse_ExtractsLightEvents(t *testing.T) {
	log := strings.Join([]string{
		"2025-03-14 AM 09:00\tRoom no. 101 light is ON",
		"2025-03-14 AM 09:10\tRoom no. 101 light is OFF",
		"2025-03-14 PM 02:00\tRoom no. 102 light is ON",
	}, "\n")

	result, err := sensorlog.Parse(strings.NewReader(log))
	if err != nil {
		t.Fatalf("Expected successful parse, got error: %v", err)
	}

	if len(result.Events) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(result.Events))
	}
	if result.DroppedLines != 0 {
		t.Errorf("Expected no dropped lines, got %d", result.DroppedLines)
	}

	first := result.Events[0]
	if first.Room != "101" {
		t.Errorf("Expected room 101, got %s", first.Room)
	}
	if first.Status != model.LightOn {
		t.Errorf("Expected ON, got %s", first.Status)
	}
	if !first.Timestamp.Equal(time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected timestamp %v", first.Timestamp)
	}

	second := result.Events[1]
	if second.Status != model.LightOff {
		t.Errorf("Expected OFF, got %s", second.Status)
	}

	third := result.Events[2]
	if third.Room != "102" {
		t.Errorf("Expected room 102, got %s", third.Room)
	}
	if !third.Timestamp.Equal(time.Date(2025, 3, 14, 14, 0, 0, 0, time.UTC)) {
		t.Errorf("Expected 14:00, got %v", third.Timestamp)
	}
}

func TestParse_RepairsGluedRoomNumber(t *testing.T) {
	log := "2025-03-14 AM 09:00\tRoom no.205 light is ON"

	result, err := sensorlog.Parse(strings.NewReader(log))
	if err != nil {
		t.Fatalf("Expected successful parse, got error: %v", err)
	}

	if len(result.Events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(result.Events))
	}
	if result.Events[0].Room != "205" {
		t.Errorf("Expected room 205, got %s", result.Events[0].Room)
	}
}

func TestParse_IgnoresNonLightLines(t *testing.T) {
	log := strings.Join([]string{
		"2025-03-14 AM 08:55\tRoom no. 101 door opened",
		"system heartbeat ok",
		"2025-03-14 AM 09:00\tRoom no. 101 light is ON",
	}, "\n")

	result, err := sensorlog.Parse(strings.NewReader(log))
	if err != nil {
		t.Fatalf("Expected successful parse, got error: %v", err)
	}

	if len(result.Events) != 1 {
		t.Errorf("Expected 1 event, got %d", len(result.Events))
	}
	if result.DroppedLines != 0 {
		t.Errorf("Non-light lines are skipped, not dropped; got %d dropped", result.DroppedLines)
	}
}

func TestParse_DropsMalformedLightLines(t *testing.T) {
	log := strings.Join([]string{
		"garbled light is ON line with no tab",
		"not-a-timestamp\tRoom no. 103 light is ON",
		"2025-03-14 AM 09:00\tRoom no. 101 light is ON",
	}, "\n")

	result, err := sensorlog.Parse(strings.NewReader(log))
	if err != nil {
		t.Fatalf("Expected successful parse, got error: %v", err)
	}

	if len(result.Events) != 1 {
		t.Errorf("Expected 1 event, got %d", len(result.Events))
	}
	if result.DroppedLines != 2 {
		t.Errorf("Expected 2 dropped lines, got %d", result.DroppedLines)
	}
}

func TestParse_EmptyInput(t *testing.T) {
	result, err := sensorlog.Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Expected successful parse, got error: %v", err)
	}
	if len(result.Events) != 0 {
		t.Errorf("Expected no events, got %d", len(result.Events))
	}
}
