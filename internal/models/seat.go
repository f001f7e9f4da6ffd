package models

import "time"

// SeatStatus represents the availability of a single seat on a trip
type SeatStatus string

const (
	SeatStatusAvailable SeatStatus = "available"
	SeatStatusBooked    SeatStatus = "booked"
)

// Seat is one seat on a (bus, route) trip. Seat numbers are unique only
// within the trip, never globally.
type Seat struct {
	ID         int64      `json:"seat_id" db:"id"`
	BusID      int64      `json:"bus_id" db:"bus_id"`
	RouteID    int64      `json:"route_id" db:"route_id"`
	SeatNumber string     `json:"seat_number" db:"seat_number"`
	Status     SeatStatus `json:"status" db:"status"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
}
