package reconcile

import (
	"fmt"

	"github.com/netcreators/occupancy-audit-worker/internal/model"
)

// Reconciler matches light intervals against the booking ledger and
// assigns each interval a verdict.
type Reconciler struct{}

// NewReconciler creates a new reconciler
func NewReconciler() *Reconciler {
	return &Reconciler{}
}

// Reconcile produces exactly one record per interval, in input order. For
// each interval the first ledger row (in ledger order) whose room number
// string-equals the interval's room is used; later rows for the same room
// are ignored. Picking the first row rather than the best-fitting window
// is a known limitation of the reconciliation contract, kept on purpose.
func (r *Reconciler) Reconcile(intervals []model.LightInterval, bookings []model.BookingWindow) []model.ReconciliationRecord {
	records := make([]model.ReconciliationRecord, 0, len(intervals))

	for _, iv := range intervals {
		booking, found := firstBookingForRoom(bookings, iv.Room)

		record := model.ReconciliationRecord{LightInterval: iv}
		switch {
		case !found:
			record.Status = model.StatusUnregistered
			record.Discrepancy = "No booking record"
			record.Guest = "N/A"
		case iv.OnTime.Before(booking.Arrival) || iv.OffTime.After(booking.Departure):
			record.Status = model.StatusMismatch
			record.Discrepancy = fmt.Sprintf("Outside booked period (%s to %s)",
				booking.Arrival.Format(model.DisplayTimeFormat),
				booking.Departure.Format(model.DisplayTimeFormat))
			record.Guest = booking.GuestName
		default:
			record.Status = model.StatusValid
			record.Discrepancy = "Within booked period"
			record.Guest = booking.GuestName
		}

		records = append(records, record)
	}

	return records
}

func firstBookingForRoom(bookings []model.BookingWindow, room string) (model.BookingWindow, bool) {
	for _, b := range bookings {
		if b.Room == room {
			return b, true
		}
	}
	return model.BookingWindow{}, false
}
