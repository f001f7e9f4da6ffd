package database

import (
	"database/sql"
	"time"

	"github.com/islandexpress/bus-booking-backend/internal/models"
)

// BusRepository handles read-only operations on the buses table
type BusRepository struct {
	db DB
}

// NewBusRepository creates a new BusRepository
func NewBusRepository(db DB) *BusRepository {
	return &BusRepository{db: db}
}

// GetByID returns a single bus
func (r *BusRepository) GetByID(busID int64) (*models.Bus, error) {
	query := `
		SELECT id, operator, bus_type, departure_time, arrival_time,
			   duration, fare, rating, reviews
		FROM buses
		WHERE id = $1
	`

	var bus models.Bus
	err := r.db.Get(&bus, query, busID)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, models.StoreError("get bus", err)
	}

	return &bus, nil
}

// Search returns buses serving origin→destination on the given date, with
// their route id and remaining seat count. Fully booked buses are excluded.
func (r *BusRepository) Search(origin, destination string, date time.Time) ([]models.BusSearchResult, error) {
	query := `
		SELECT b.id, b.operator, b.bus_type, b.departure_time, b.arrival_time,
			   b.duration, b.fare, b.rating, b.reviews,
			   r.id AS route_id,
			   COUNT(*) FILTER (WHERE s.status = 'available') AS available_seats
		FROM buses b
		JOIN routes r ON b.id = r.bus_id
		JOIN seats s ON b.id = s.bus_id AND r.id = s.route_id
		WHERE r.origin = $1 AND r.destination = $2 AND r.travel_date = $3
		GROUP BY b.id, r.id
		HAVING COUNT(*) FILTER (WHERE s.status = 'available') > 0
		ORDER BY b.departure_time
	`

	var results []models.BusSearchResult
	if err := r.db.Select(&results, query, origin, destination, date); err != nil {
		return nil, models.StoreError("search buses", err)
	}

	return results, nil
}
