package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusTransitions(t *testing.T) {
	cases := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{BookingStatusPending, BookingStatusConfirmed, true},
		{BookingStatusPending, BookingStatusCancelled, true},
		{BookingStatusConfirmed, BookingStatusCancelled, true},
		{BookingStatusConfirmed, BookingStatusPending, false},
		{BookingStatusConfirmed, BookingStatusConfirmed, false},
		{BookingStatusCancelled, BookingStatusPending, false},
		{BookingStatusCancelled, BookingStatusConfirmed, false},
		{BookingStatusCancelled, BookingStatusCancelled, false},
	}

	for _, tc := range cases {
		t.Run(string(tc.from)+"_to_"+string(tc.to), func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestCreateBookingRequestValidate(t *testing.T) {
	valid := CreateBookingRequest{BusID: 7, SeatNumber: "A1", BoardingPointID: 10, DropPointID: 20}
	assert.NoError(t, valid.Validate())

	cases := []struct {
		name string
		req  CreateBookingRequest
	}{
		{"Missing bus", CreateBookingRequest{SeatNumber: "A1", BoardingPointID: 10, DropPointID: 20}},
		{"Missing seat", CreateBookingRequest{BusID: 7, BoardingPointID: 10, DropPointID: 20}},
		{"Negative boarding point", CreateBookingRequest{BusID: 7, SeatNumber: "A1", BoardingPointID: -1, DropPointID: 20}},
		{"Missing drop point", CreateBookingRequest{BusID: 7, SeatNumber: "A1", BoardingPointID: 10}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, tc.req.Validate())
		})
	}
}
