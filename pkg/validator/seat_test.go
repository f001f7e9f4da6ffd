package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeatNumberValidator(t *testing.T) {
	validator := NewSeatNumberValidator()
	assert.NotNil(t, validator)
}

func TestValidate_ValidSeatNumbers(t *testing.T) {
	validator := NewSeatNumberValidator()

	validSeats := []struct {
		input    string
		expected string
		name     string
	}{
		{"A1", "A1", "Standard format"},
		{"C12", "C12", "Two digit index"},
		{"a1", "A1", "Lowercase row letter"},
		{" B4 ", "B4", "Surrounding whitespace"},
		{"Z99", "Z99", "Last row"},
	}

	for _, tc := range validSeats {
		t.Run(tc.name, func(t *testing.T) {
			sanitized, err := validator.Validate(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, sanitized)
		})
	}
}

func TestValidate_InvalidSeatNumbers(t *testing.T) {
	validator := NewSeatNumberValidator()

	invalidSeats := []struct {
		input string
		err   error
		name  string
	}{
		{"", ErrEmptySeatNumber, "Empty"},
		{"1A", ErrInvalidSeatFormat, "Digits first"},
		{"AA1", ErrInvalidSeatFormat, "Two row letters"},
		{"A", ErrInvalidSeatFormat, "Missing index"},
		{"A-1", ErrInvalidSeatFormat, "Separator"},
		{"12", ErrInvalidSeatFormat, "Digits only"},
	}

	for _, tc := range invalidSeats {
		t.Run(tc.name, func(t *testing.T) {
			_, err := validator.Validate(tc.input)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}
