package models

import "time"

// Route is one scheduled service of a bus on a given date. A route is a
// distinct inventory partition: the same bus on two dates has two routes,
// each with its own seat rows.
type Route struct {
	ID          int64     `json:"route_id" db:"id"`
	BusID       int64     `json:"bus_id" db:"bus_id"`
	Origin      string    `json:"from" db:"origin"`
	Destination string    `json:"to" db:"destination"`
	TravelDate  time.Time `json:"date" db:"travel_date"`
}

// Journey is a route joined with its bus, as shown on the home screen
type Journey struct {
	RouteID       int64     `json:"route_id" db:"route_id"`
	Origin        string    `json:"from" db:"origin"`
	Destination   string    `json:"to" db:"destination"`
	TravelDate    time.Time `json:"date" db:"travel_date"`
	BusID         int64     `json:"bus_id" db:"bus_id"`
	Operator      string    `json:"operator" db:"operator"`
	BusType       string    `json:"type" db:"bus_type"`
	DepartureTime string    `json:"departure_time" db:"departure_time"`
	ArrivalTime   string    `json:"arrival_time" db:"arrival_time"`
	Fare          float64   `json:"fare" db:"fare"`
}
