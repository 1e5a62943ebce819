package reconcile_test

import (
	"testing"
	"time"

	"github.com/netcreators/occupancy-audit-worker/internal/model"
	"github.com/netcreators/occupancy-audit-worker/internal/reconcile"
)

func ts(hour, min int) time.Time {
	return time.Date(2025, 3, 14, hour, min, 0, 0, time.UTC)
}

func lightInterval(room string, on, off time.Time) model.LightInterval {
	return model.LightInterval{
		Room:            room,
		OnTime:          on,
		OffTime:         off,
		DurationMinutes: off.Sub(on).Minutes(),
		ActivityType:    model.ActivityGuest,
	}
}

func booking(room string, arrival, departure time.Time, guest string) model.BookingWindow {
	return model.BookingWindow{Room: room, Arrival: arrival, Departure: departure, GuestName: guest}
}

func TestReconcile_WithinBookedPeriod(t *testing.T) {
	r := reconcile.NewReconciler()

	records := r.Reconcile(
		[]model.LightInterval{lightInterval("101", ts(9, 0), ts(9, 10))},
		[]model.BookingWindow{booking("101", ts(8, 0), ts(18, 0), "John Doe")},
	)

	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}

	rec := records[0]
	if rec.Status != model.StatusValid {
		t.Errorf("Expected Valid, got %s", rec.Status)
	}
	if rec.Discrepancy != "Within booked period" {
		t.Errorf("Expected 'Within booked period', got '%s'", rec.Discrepancy)
	}
	if rec.Guest != "John Doe" {
		t.Errorf("Expected guest 'John Doe', got '%s'", rec.Guest)
	}
}

func TestReconcile_NoBookingRecord(t *testing.T) {
	r := reconcile.NewReconciler()

	records := r.Reconcile(
		[]model.LightInterval{lightInterval("101", ts(9, 0), ts(9, 30))},
		nil,
	)

	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}

	rec := records[0]
	if rec.Status != model.StatusUnregistered {
		t.Errorf("Expected Unregistered, got %s", rec.Status)
	}
	if rec.Discrepancy != "No booking record" {
		t.Errorf("Expected 'No booking record', got '%s'", rec.Discrepancy)
	}
	if rec.Guest != "N/A" {
		t.Errorf("Expected guest 'N/A', got '%s'", rec.Guest)
	}
}

func TestReconcile_OnBeforeArrival(t *testing.T) {
	r := reconcile.NewReconciler()

	records := r.Reconcile(
		[]model.LightInterval{lightInterval("101", ts(7, 0), ts(9, 0))},
		[]model.BookingWindow{booking("101", ts(8, 0), ts(18, 0), "John Doe")},
	)

	rec := records[0]
	if rec.Status != model.StatusMismatch {
		t.Errorf("Expected Mismatch, got %s", rec.Status)
	}

	expected := "Outside booked period (2025-03-14 08:00 to 2025-03-14 18:00)"
	if rec.Discrepancy != expected {
		t.Errorf("Expected '%s', got '%s'", expected, rec.Discrepancy)
	}
}

func TestReconcile_OffAfterDeparture(t *testing.T) {
	r := reconcile.NewReconciler()

	records := r.Reconcile(
		[]model.LightInterval{lightInterval("101", ts(17, 0), ts(19, 0))},
		[]model.BookingWindow{booking("101", ts(8, 0), ts(18, 0), "John Doe")},
	)

	if records[0].Status != model.StatusMismatch {
		t.Errorf("Expected Mismatch for offTime after departure, got %s", records[0].Status)
	}
}

func TestReconcile_InclusiveBounds(t *testing.T) {
	r := reconcile.NewReconciler()

	// Interval exactly spanning the booked window is Valid.
	records := r.Reconcile(
		[]model.LightInterval{lightInterval("101", ts(8, 0), ts(18, 0))},
		[]model.BookingWindow{booking("101", ts(8, 0), ts(18, 0), "John Doe")},
	)

	if records[0].Status != model.StatusValid {
		t.Errorf("Expected Valid for interval on the window bounds, got %s", records[0].Status)
	}
}

func TestReconcile_FirstMatchingRowWins(t *testing.T) {
	r := reconcile.NewReconciler()

	// The first ledger row for the room is always used, even when a later
	// row would contain the interval.
	records := r.Reconcile(
		[]model.LightInterval{lightInterval("101", ts(9, 0), ts(9, 30))},
		[]model.BookingWindow{
			booking("101", ts(12, 0), ts(18, 0), "Early Row"),
			booking("101", ts(8, 0), ts(18, 0), "Later Row"),
		},
	)

	rec := records[0]
	if rec.Status != model.StatusMismatch {
		t.Errorf("Expected Mismatch against the first row, got %s", rec.Status)
	}
	if rec.Guest != "Early Row" {
		t.Errorf("Expected guest from first row, got '%s'", rec.Guest)
	}
}

func TestReconcile_OneRecordPerInterval(t *testing.T) {
	r := reconcile.NewReconciler()

	intervals := []model.LightInterval{
		lightInterval("101", ts(9, 0), ts(9, 10)),
		lightInterval("102", ts(10, 0), ts(10, 30)),
		lightInterval("101", ts(11, 0), ts(11, 45)),
	}

	records := r.Reconcile(intervals, []model.BookingWindow{
		booking("101", ts(8, 0), ts(18, 0), "John Doe"),
	})

	if len(records) != len(intervals) {
		t.Fatalf("Expected %d records, got %d", len(intervals), len(records))
	}
	for i := range records {
		if records[i].LightInterval != intervals[i] {
			t.Errorf("Record %d does not preserve interval order: %+v", i, records[i].LightInterval)
		}
	}
}
