package models

import (
	"errors"
	"fmt"
)

// Domain error taxonomy. Handlers map these to HTTP statuses; the
// services and database layers only ever return members of this set
// (wrapped with context) or plain internal errors.
var (
	// ErrInvalidInput marks a malformed request rejected before any lock is taken.
	ErrInvalidInput = errors.New("invalid input")

	// ErrRouteNotFound means the bus has no route scheduled for today or later.
	ErrRouteNotFound = errors.New("no current or upcoming route for bus")

	// ErrSeatUnavailable means the seat does not exist for the trip or is already taken.
	ErrSeatUnavailable = errors.New("seat is not available")

	// ErrInvalidState marks an illegal booking status transition.
	ErrInvalidState = errors.New("illegal booking status transition")

	// ErrNotFound means the referenced booking, seat or trip does not exist.
	ErrNotFound = errors.New("not found")

	// ErrStoreUnavailable means the database could not be reached. The core
	// never retries; retry policy belongs to the caller.
	ErrStoreUnavailable = errors.New("storage unavailable")
)

// StoreError wraps a driver-level failure so callers can match
// ErrStoreUnavailable while the underlying cause stays in the message.
func StoreError(op string, err error) error {
	return fmt.Errorf("%s: %v: %w", op, err, ErrStoreUnavailable)
}
