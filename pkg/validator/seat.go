package validator

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrEmptySeatNumber indicates the seat number is empty
	ErrEmptySeatNumber = errors.New("seat number cannot be empty")

	// ErrInvalidSeatFormat indicates the seat number does not match row-letter + number
	ErrInvalidSeatFormat = errors.New("seat number must be a row letter followed by digits, e.g. A1")
)

// seatRegex matches a single uppercase row letter followed by the seat index
var seatRegex = regexp.MustCompile(`^[A-Z][0-9]+$`)

// SeatNumberValidator handles seat number validation
type SeatNumberValidator struct{}

// NewSeatNumberValidator creates a new seat number validator instance
func NewSeatNumberValidator() *SeatNumberValidator {
	return &SeatNumberValidator{}
}

// Validate validates a seat number like "A1" or "C12".
// Accepts lowercase input and surrounding whitespace; returns the
// normalized form and an error if invalid.
func (v *SeatNumberValidator) Validate(seatNumber string) (string, error) {
	if seatNumber == "" {
		return "", ErrEmptySeatNumber
	}

	sanitized := strings.ToUpper(strings.TrimSpace(seatNumber))
	if !seatRegex.MatchString(sanitized) {
		return "", ErrInvalidSeatFormat
	}

	return sanitized, nil
}
