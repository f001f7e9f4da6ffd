package database

import (
	"github.com/islandexpress/bus-booking-backend/internal/models"
)

// PointRepository handles read-only operations on boarding and drop points
type PointRepository struct {
	db DB
}

// NewPointRepository creates a new PointRepository
func NewPointRepository(db DB) *PointRepository {
	return &PointRepository{db: db}
}

// PointsForRoute returns the boarding and drop points belonging to a route
func (r *PointRepository) PointsForRoute(routeID int64) (*models.RoutePoints, error) {
	points := &models.RoutePoints{
		BoardingPoints: []models.BoardingPoint{},
		DropPoints:     []models.DropPoint{},
	}

	boardingQuery := `
		SELECT id, route_id, name
		FROM boarding_points
		WHERE route_id = $1
		ORDER BY id
	`
	if err := r.db.Select(&points.BoardingPoints, boardingQuery, routeID); err != nil {
		return nil, models.StoreError("list boarding points", err)
	}

	dropQuery := `
		SELECT id, route_id, name
		FROM drop_points
		WHERE route_id = $1
		ORDER BY id
	`
	if err := r.db.Select(&points.DropPoints, dropQuery, routeID); err != nil {
		return nil, models.StoreError("list drop points", err)
	}

	return points, nil
}
