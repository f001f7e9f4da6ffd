package database

import (
	"github.com/islandexpress/bus-booking-backend/internal/models"
)

// SeatRepository handles read-side operations on the seats table. Status
// transitions go through the ReservationStore only.
type SeatRepository struct {
	db DB
}

// NewSeatRepository creates a new SeatRepository
func NewSeatRepository(db DB) *SeatRepository {
	return &SeatRepository{db: db}
}

// ListSeats returns every seat for a (bus, route) trip in layout order.
// The snapshot is non-blocking with respect to in-flight reservations: it
// sees either the pre- or post-reservation state, never a partial write.
func (r *SeatRepository) ListSeats(busID, routeID int64) ([]models.Seat, error) {
	query := `
		SELECT id, bus_id, route_id, seat_number, status, created_at, updated_at
		FROM seats
		WHERE bus_id = $1 AND route_id = $2
		ORDER BY id
	`

	var seats []models.Seat
	if err := r.db.Select(&seats, query, busID, routeID); err != nil {
		return nil, models.StoreError("list seats", err)
	}

	// Trips are provisioned with their full seat map, so an empty result
	// means the (bus, route) pair does not exist.
	if len(seats) == 0 {
		return nil, models.ErrNotFound
	}

	return seats, nil
}

// CountAvailable returns how many seats are still open on a trip
func (r *SeatRepository) CountAvailable(busID, routeID int64) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM seats
		WHERE bus_id = $1 AND route_id = $2 AND status = 'available'
	`

	var count int
	if err := r.db.Get(&count, query, busID, routeID); err != nil {
		return 0, models.StoreError("count available seats", err)
	}

	return count, nil
}
