package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/islandexpress/bus-booking-backend/internal/models"
	"github.com/jmoiron/sqlx"
)

// ReservationStore is the write-side storage for the reservation engine.
// All mutating methods must run inside WithTx; the seat row lock taken by
// SeatForUpdate is what serializes concurrent reservations on the same key.
type ReservationStore struct {
	db *sqlx.DB
}

// NewReservationStore creates a new ReservationStore
func NewReservationStore(db *sqlx.DB) *ReservationStore {
	return &ReservationStore{db: db}
}

// WithTx runs fn as one atomic unit of work
func (s *ReservationStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, s.db, fn)
}

// ext returns the ambient transaction when inside WithTx, the pool otherwise
func (s *ReservationStore) ext(ctx context.Context) sqlx.ExtContext {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return s.db
}

// ActiveRouteForBus resolves the route the bus is currently selling seats
// for: the earliest route dated today or later.
func (s *ReservationStore) ActiveRouteForBus(ctx context.Context, busID int64) (*models.Route, error) {
	const query = `
		SELECT id, bus_id, origin, destination, travel_date
		FROM routes
		WHERE bus_id = $1 AND travel_date >= CURRENT_DATE
		ORDER BY travel_date
		LIMIT 1
	`

	var route models.Route
	err := sqlx.GetContext(ctx, s.ext(ctx), &route, query, busID)
	if err == sql.ErrNoRows {
		return nil, models.ErrRouteNotFound
	}
	if err != nil {
		return nil, models.StoreError("get active route", err)
	}

	return &route, nil
}

// SeatForUpdate locks the seat row for the remainder of the transaction.
// A concurrent reservation for the same key blocks here until this unit
// commits or rolls back. Returns nil when no such seat exists.
func (s *ReservationStore) SeatForUpdate(ctx context.Context, busID, routeID int64, seatNumber string) (*models.Seat, error) {
	const query = `
		SELECT id, bus_id, route_id, seat_number, status, created_at, updated_at
		FROM seats
		WHERE bus_id = $1 AND route_id = $2 AND seat_number = $3
		FOR UPDATE
	`

	var seat models.Seat
	err := sqlx.GetContext(ctx, s.ext(ctx), &seat, query, busID, routeID, seatNumber)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, models.StoreError("get seat for update", err)
	}

	return &seat, nil
}

// SeatByIDForUpdate locks a seat row by primary key, used when releasing a
// booking back to the pool.
func (s *ReservationStore) SeatByIDForUpdate(ctx context.Context, seatID int64) (*models.Seat, error) {
	const query = `
		SELECT id, bus_id, route_id, seat_number, status, created_at, updated_at
		FROM seats
		WHERE id = $1
		FOR UPDATE
	`

	var seat models.Seat
	err := sqlx.GetContext(ctx, s.ext(ctx), &seat, query, seatID)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, models.StoreError("get seat by id", err)
	}

	return &seat, nil
}

// UpdateSeatStatus transitions a seat's status. The caller must already hold
// the row lock.
func (s *ReservationStore) UpdateSeatStatus(ctx context.Context, seatID int64, status models.SeatStatus) error {
	const query = `
		UPDATE seats
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := s.ext(ctx).ExecContext(ctx, query, seatID, status)
	if err != nil {
		return models.StoreError("update seat status", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return models.StoreError("update seat status", err)
	}
	if rows == 0 {
		return models.ErrNotFound
	}

	return nil
}

// InsertBooking writes the booking row paired with the seat transition
func (s *ReservationStore) InsertBooking(ctx context.Context, booking *models.Booking) error {
	const query = `
		INSERT INTO bookings (
			id, user_id, bus_id, seat_id, boarding_point_id, drop_point_id, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := sqlx.GetContext(ctx, s.ext(ctx), booking, query,
		booking.ID, booking.UserID, booking.BusID, booking.SeatID,
		booking.BoardingPointID, booking.DropPointID, booking.Status,
	)
	if err != nil {
		if isUniqueViolation(err) {
			// One live booking per booked seat, enforced by the partial unique index
			return models.ErrSeatUnavailable
		}
		return models.StoreError("insert booking", err)
	}

	return nil
}

// BookingForUpdate locks a booking row so a confirm racing a release resolves
// to one winner.
func (s *ReservationStore) BookingForUpdate(ctx context.Context, bookingID string) (*models.Booking, error) {
	const query = `
		SELECT id, user_id, bus_id, seat_id, boarding_point_id, drop_point_id,
			   status, created_at, updated_at
		FROM bookings
		WHERE id = $1
		FOR UPDATE
	`

	var booking models.Booking
	err := sqlx.GetContext(ctx, s.ext(ctx), &booking, query, bookingID)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, models.StoreError("get booking for update", err)
	}

	return &booking, nil
}

// UpdateBookingStatus moves a booking to a new lifecycle state. Legality of
// the transition is checked by the reservation engine under the row lock.
func (s *ReservationStore) UpdateBookingStatus(ctx context.Context, bookingID string, status models.BookingStatus) error {
	const query = `
		UPDATE bookings
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := s.ext(ctx).ExecContext(ctx, query, bookingID, status)
	if err != nil {
		return models.StoreError("update booking status", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return models.StoreError("update booking status", err)
	}
	if rows == 0 {
		return models.ErrNotFound
	}

	return nil
}

// ExpiredPendingBookings lists bookings that have sat pending since before
// the cutoff. Read outside any transaction; each release re-checks state
// under its own lock.
func (s *ReservationStore) ExpiredPendingBookings(ctx context.Context, cutoff time.Time) ([]string, error) {
	const query = `
		SELECT id
		FROM bookings
		WHERE status = 'pending' AND created_at < $1
		ORDER BY created_at
	`

	var ids []string
	err := sqlx.SelectContext(ctx, s.ext(ctx), &ids, query, cutoff)
	if err != nil {
		return nil, models.StoreError("list expired pending bookings", err)
	}

	return ids, nil
}
