package models

// Bus represents a vehicle operating one or more routes
type Bus struct {
	ID            int64   `json:"bus_id" db:"id"`
	Operator      string  `json:"operator" db:"operator"`
	BusType       string  `json:"type" db:"bus_type"`
	DepartureTime string  `json:"departure_time" db:"departure_time"`
	ArrivalTime   string  `json:"arrival_time" db:"arrival_time"`
	Duration      string  `json:"duration" db:"duration"`
	Fare          float64 `json:"fare" db:"fare"`
	Rating        float64 `json:"rating" db:"rating"`
	Reviews       int     `json:"reviews" db:"reviews"`
}

// BusSearchResult is a bus matched by a from/to/date search, annotated with
// the route it runs that day and how many seats are still open.
type BusSearchResult struct {
	Bus
	RouteID        int64 `json:"route_id" db:"route_id"`
	AvailableSeats int   `json:"available_seats" db:"available_seats"`
}
