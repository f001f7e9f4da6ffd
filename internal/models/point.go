package models

// BoardingPoint is a pickup stop belonging to a route
type BoardingPoint struct {
	ID      int64  `json:"boarding_point_id" db:"id"`
	RouteID int64  `json:"route_id" db:"route_id"`
	Name    string `json:"name" db:"name"`
}

// DropPoint is an alighting stop belonging to a route
type DropPoint struct {
	ID      int64  `json:"drop_point_id" db:"id"`
	RouteID int64  `json:"route_id" db:"route_id"`
	Name    string `json:"name" db:"name"`
}

// RoutePoints bundles both point lists for a trip
type RoutePoints struct {
	BoardingPoints []BoardingPoint `json:"boarding_points"`
	DropPoints     []DropPoint     `json:"drop_points"`
}
