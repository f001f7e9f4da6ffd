package services

import (
	"context"
	"errors"
	"time"

	"github.com/islandexpress/bus-booking-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// ExpiryService releases bookings that never completed payment. It stands in
// for the external payment collaborator deciding a reservation timed out.
type ExpiryService struct {
	store        ReservationStore
	reservations *ReservationService
	pendingTTL   time.Duration
	logger       *logrus.Logger
}

// NewExpiryService creates a new ExpiryService
func NewExpiryService(store ReservationStore, reservations *ReservationService, pendingTTL time.Duration, logger *logrus.Logger) *ExpiryService {
	return &ExpiryService{
		store:        store,
		reservations: reservations,
		pendingTTL:   pendingTTL,
		logger:       logger,
	}
}

// ReleaseExpired cancels every booking that has been pending longer than the
// TTL. Each release runs in its own transaction and re-checks status under
// the booking lock, so a payment confirming concurrently simply wins the
// race and the release is skipped.
func (s *ExpiryService) ReleaseExpired(ctx context.Context) (int, error) {
	cutoff := time.Now().Add(-s.pendingTTL)

	ids, err := s.store.ExpiredPendingBookings(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	released := 0
	for _, id := range ids {
		if err := s.reservations.Release(ctx, id); err != nil {
			if errors.Is(err, models.ErrInvalidState) || errors.Is(err, models.ErrNotFound) {
				// Confirmed or cancelled since we listed it
				continue
			}
			s.logger.WithError(err).WithField("booking_id", id).Warn("Failed to release expired booking")
			continue
		}
		released++
	}

	if released > 0 {
		s.logger.WithField("count", released).Info("Released expired pending bookings")
	}

	return released, nil
}
