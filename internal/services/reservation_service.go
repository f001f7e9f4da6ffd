package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/islandexpress/bus-booking-backend/internal/models"
	"github.com/islandexpress/bus-booking-backend/pkg/validator"
	"github.com/sirupsen/logrus"
)

// ReservationStore is the transactional storage the engine drives. WithTx
// runs its function as one atomic unit: every write inside either commits
// together or is discarded together. The ...ForUpdate reads take row locks
// scoped to that unit, so concurrent units on the same seat key serialize.
type ReservationStore interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	ActiveRouteForBus(ctx context.Context, busID int64) (*models.Route, error)
	SeatForUpdate(ctx context.Context, busID, routeID int64, seatNumber string) (*models.Seat, error)
	SeatByIDForUpdate(ctx context.Context, seatID int64) (*models.Seat, error)
	UpdateSeatStatus(ctx context.Context, seatID int64, status models.SeatStatus) error
	InsertBooking(ctx context.Context, booking *models.Booking) error
	BookingForUpdate(ctx context.Context, bookingID string) (*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, bookingID string, status models.BookingStatus) error
	ExpiredPendingBookings(ctx context.Context, cutoff time.Time) ([]string, error)
}

// ReservationService is the sole authority for moving seats out of
// `available` and for the booking status lifecycle. All seat and booking
// writes in the system go through it.
type ReservationService struct {
	store         ReservationStore
	seatValidator *validator.SeatNumberValidator
	logger        *logrus.Logger
}

// NewReservationService creates a new ReservationService
func NewReservationService(store ReservationStore, seatValidator *validator.SeatNumberValidator, logger *logrus.Logger) *ReservationService {
	return &ReservationService{
		store:         store,
		seatValidator: seatValidator,
		logger:        logger,
	}
}

// Reserve books one seat for the bus's active route and creates the paired
// pending booking, as a single atomic unit. On any failure after the seat
// lock is taken, both writes are rolled back and the seat is left unchanged.
func (s *ReservationService) Reserve(ctx context.Context, userID string, req *models.CreateBookingRequest) (string, error) {
	// Reject malformed input before taking any lock
	if userID == "" {
		return "", fmt.Errorf("user id is required: %w", models.ErrInvalidInput)
	}
	if err := req.Validate(); err != nil {
		return "", fmt.Errorf("%v: %w", err, models.ErrInvalidInput)
	}

	seatNumber, err := s.seatValidator.Validate(req.SeatNumber)
	if err != nil {
		return "", fmt.Errorf("%v: %w", err, models.ErrInvalidInput)
	}

	bookingID := uuid.New().String()

	err = s.store.WithTx(ctx, func(txCtx context.Context) error {
		route, err := s.store.ActiveRouteForBus(txCtx, req.BusID)
		if err != nil {
			return err
		}

		seat, err := s.store.SeatForUpdate(txCtx, req.BusID, route.ID, seatNumber)
		if err != nil {
			return err
		}
		// An unknown seat number and a taken seat answer the same way;
		// the caller picked from the seat map either way.
		if seat == nil || seat.Status != models.SeatStatusAvailable {
			return models.ErrSeatUnavailable
		}

		booking := &models.Booking{
			ID:              bookingID,
			UserID:          userID,
			BusID:           req.BusID,
			SeatID:          seat.ID,
			BoardingPointID: req.BoardingPointID,
			DropPointID:     req.DropPointID,
			Status:          models.BookingStatusPending,
		}
		if err := s.store.InsertBooking(txCtx, booking); err != nil {
			return err
		}

		return s.store.UpdateSeatStatus(txCtx, seat.ID, models.SeatStatusBooked)
	})
	if err != nil {
		return "", err
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id":  bookingID,
		"user_id":     userID,
		"bus_id":      req.BusID,
		"seat_number": seatNumber,
	}).Info("Seat reserved")

	return bookingID, nil
}

// Confirm moves a pending booking to confirmed. The seat stays booked, so
// no seat lock is needed; the booking row lock resolves a race with Release.
func (s *ReservationService) Confirm(ctx context.Context, bookingID string) error {
	if bookingID == "" {
		return fmt.Errorf("booking id is required: %w", models.ErrInvalidInput)
	}

	err := s.store.WithTx(ctx, func(txCtx context.Context) error {
		booking, err := s.store.BookingForUpdate(txCtx, bookingID)
		if err != nil {
			return err
		}
		if booking.Status != models.BookingStatusPending {
			return fmt.Errorf("booking is %s: %w", booking.Status, models.ErrInvalidState)
		}

		return s.store.UpdateBookingStatus(txCtx, bookingID, models.BookingStatusConfirmed)
	})
	if err != nil {
		return err
	}

	s.logger.WithField("booking_id", bookingID).Info("Booking confirmed")
	return nil
}

// Release cancels a pending or confirmed booking and returns its seat to the
// pool, atomically. Lock order is booking row first, then seat row; Reserve
// only ever locks seats, so the two cannot deadlock.
func (s *ReservationService) Release(ctx context.Context, bookingID string) error {
	if bookingID == "" {
		return fmt.Errorf("booking id is required: %w", models.ErrInvalidInput)
	}

	err := s.store.WithTx(ctx, func(txCtx context.Context) error {
		booking, err := s.store.BookingForUpdate(txCtx, bookingID)
		if err != nil {
			return err
		}
		if !booking.Status.CanTransitionTo(models.BookingStatusCancelled) {
			return fmt.Errorf("booking is %s: %w", booking.Status, models.ErrInvalidState)
		}

		seat, err := s.store.SeatByIDForUpdate(txCtx, booking.SeatID)
		if err != nil {
			return err
		}

		if err := s.store.UpdateBookingStatus(txCtx, bookingID, models.BookingStatusCancelled); err != nil {
			return err
		}

		return s.store.UpdateSeatStatus(txCtx, seat.ID, models.SeatStatusAvailable)
	})
	if err != nil {
		return err
	}

	s.logger.WithField("booking_id", bookingID).Info("Booking released")
	return nil
}
