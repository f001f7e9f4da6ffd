package database

import (
	"database/sql"

	"github.com/islandexpress/bus-booking-backend/internal/models"
)

// BookingRepository handles read-side operations on the bookings ledger.
// Rows are only ever written by the reservation engine through the
// ReservationStore.
type BookingRepository struct {
	db DB
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// GetByID retrieves a booking by ID
func (r *BookingRepository) GetByID(bookingID string) (*models.Booking, error) {
	query := `
		SELECT id, user_id, bus_id, seat_id, boarding_point_id, drop_point_id,
			   status, created_at, updated_at
		FROM bookings
		WHERE id = $1
	`

	var booking models.Booking
	err := r.db.Get(&booking, query, bookingID)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, models.StoreError("get booking", err)
	}

	return &booking, nil
}

// GetByUserID retrieves all bookings for a user, newest first
func (r *BookingRepository) GetByUserID(userID string) ([]models.Booking, error) {
	query := `
		SELECT id, user_id, bus_id, seat_id, boarding_point_id, drop_point_id,
			   status, created_at, updated_at
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	var bookings []models.Booking
	if err := r.db.Select(&bookings, query, userID); err != nil {
		return nil, models.StoreError("list bookings by user", err)
	}

	return bookings, nil
}
