package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/netcreators/occupancy-audit-worker/internal/model"
)

// Repository reads booking windows from the hotel PMS database, used when
// a job does not ship its own spreadsheet ledger.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListBookingWindows returns all booking windows in ledger row order.
// Row order matters: reconciliation always uses the first row per room.
func (r *Repository) ListBookingWindows(ctx context.Context) ([]model.BookingWindow, error) {
	query := `
		SELECT room_no, arrival_at, departure_at, guest_name
		FROM booking_windows
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query booking windows: %w", err)
	}
	defer rows.Close()

	var windows []model.BookingWindow
	for rows.Next() {
		var w model.BookingWindow
		if err := rows.Scan(&w.Room, &w.Arrival, &w.Departure, &w.GuestName); err != nil {
			return nil, fmt.Errorf("failed to scan booking window: %w", err)
		}
		windows = append(windows, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return windows, nil
}

// ListBookingWindowsForRooms returns booking windows restricted to the
// given rooms, preserving ledger row order.
func (r *Repository) ListBookingWindowsForRooms(ctx context.Context, rooms []string) ([]model.BookingWindow, error) {
	query := `
		SELECT room_no, arrival_at, departure_at, guest_name
		FROM booking_windows
		WHERE room_no = ANY($1)
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, rooms)
	if err != nil {
		return nil, fmt.Errorf("failed to query booking windows: %w", err)
	}
	defer rows.Close()

	var windows []model.BookingWindow
	for rows.Next() {
		var w model.BookingWindow
		if err := rows.Scan(&w.Room, &w.Arrival, &w.Departure, &w.GuestName); err != nil {
			return nil, fmt.Errorf("failed to scan booking window: %w", err)
		}
		windows = append(windows, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return windows, nil
}
