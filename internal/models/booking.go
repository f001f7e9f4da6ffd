package models

import (
	"errors"
	"time"
)

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// CanTransitionTo reports whether moving to next is a legal lifecycle step.
// The legal set is pending→confirmed, pending→cancelled and confirmed→cancelled.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingStatusPending:
		return next == BookingStatusConfirmed || next == BookingStatusCancelled
	case BookingStatusConfirmed:
		return next == BookingStatusCancelled
	default:
		return false
	}
}

// Booking pairs a user with exactly one seat on a trip. It is created in
// pending state by the reservation engine, in the same transaction that
// marks the seat booked.
type Booking struct {
	ID              string        `json:"booking_id" db:"id"`
	UserID          string        `json:"user_id" db:"user_id"`
	BusID           int64         `json:"bus_id" db:"bus_id"`
	SeatID          int64         `json:"seat_id" db:"seat_id"`
	BoardingPointID int64         `json:"boarding_point_id" db:"boarding_point_id"`
	DropPointID     int64         `json:"drop_point_id" db:"drop_point_id"`
	Status          BookingStatus `json:"status" db:"status"`
	CreatedAt       time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at" db:"updated_at"`
}

// CreateBookingRequest represents the request to reserve a seat
type CreateBookingRequest struct {
	BusID           int64  `json:"bus_id" binding:"required"`
	SeatNumber      string `json:"seat_number" binding:"required"`
	BoardingPointID int64  `json:"boarding_point_id" binding:"required"`
	DropPointID     int64  `json:"drop_point_id" binding:"required"`
}

// Validate checks the identifier fields before any lock is taken.
// Seat number format is validated separately by the reservation engine.
func (r *CreateBookingRequest) Validate() error {
	if r.BusID <= 0 {
		return errors.New("bus_id must be a positive integer")
	}
	if r.SeatNumber == "" {
		return errors.New("seat_number is required")
	}
	if r.BoardingPointID <= 0 {
		return errors.New("boarding_point_id must be a positive integer")
	}
	if r.DropPointID <= 0 {
		return errors.New("drop_point_id must be a positive integer")
	}
	return nil
}

// BookingResponse is returned after a successful reservation. The booking id
// is the only datum the payment flow needs.
type BookingResponse struct {
	BookingID string `json:"booking_id"`
	Message   string `json:"message"`
}
