package database

import (
	"database/sql"

	"github.com/islandexpress/bus-booking-backend/internal/models"
)

// RouteRepository handles read-only operations on the routes table
type RouteRepository struct {
	db DB
}

// NewRouteRepository creates a new RouteRepository
func NewRouteRepository(db DB) *RouteRepository {
	return &RouteRepository{db: db}
}

// ListUpcoming returns routes dated today or later, soonest first
func (r *RouteRepository) ListUpcoming(limit int) ([]models.Route, error) {
	query := `
		SELECT id, bus_id, origin, destination, travel_date
		FROM routes
		WHERE travel_date >= CURRENT_DATE
		ORDER BY travel_date
		LIMIT $1
	`

	var routes []models.Route
	if err := r.db.Select(&routes, query, limit); err != nil {
		return nil, models.StoreError("list upcoming routes", err)
	}

	return routes, nil
}

// ListPopular returns the routes surfaced on the landing page
func (r *RouteRepository) ListPopular(limit int) ([]models.Route, error) {
	query := `
		SELECT id, bus_id, origin, destination, travel_date
		FROM routes
		ORDER BY travel_date
		LIMIT $1
	`

	var routes []models.Route
	if err := r.db.Select(&routes, query, limit); err != nil {
		return nil, models.StoreError("list popular routes", err)
	}

	return routes, nil
}

// ListJourneys returns upcoming routes joined with their buses
func (r *RouteRepository) ListJourneys(limit int) ([]models.Journey, error) {
	query := `
		SELECT r.id AS route_id, r.origin, r.destination, r.travel_date,
			   b.id AS bus_id, b.operator, b.bus_type,
			   b.departure_time, b.arrival_time, b.fare
		FROM routes r
		JOIN buses b ON r.bus_id = b.id
		WHERE r.travel_date >= CURRENT_DATE
		ORDER BY r.travel_date
		LIMIT $1
	`

	var journeys []models.Journey
	if err := r.db.Select(&journeys, query, limit); err != nil {
		return nil, models.StoreError("list journeys", err)
	}

	return journeys, nil
}

// ActiveForBus returns the earliest current-or-future route for a bus.
// Non-locking counterpart of ReservationStore.ActiveRouteForBus, used by
// the boarding/drop point lookup.
func (r *RouteRepository) ActiveForBus(busID int64) (*models.Route, error) {
	query := `
		SELECT id, bus_id, origin, destination, travel_date
		FROM routes
		WHERE bus_id = $1 AND travel_date >= CURRENT_DATE
		ORDER BY travel_date
		LIMIT 1
	`

	var route models.Route
	err := r.db.Get(&route, query, busID)
	if err == sql.ErrNoRows {
		return nil, models.ErrRouteNotFound
	}
	if err != nil {
		return nil, models.StoreError("get active route", err)
	}

	return &route, nil
}
