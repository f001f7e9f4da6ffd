package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/islandexpress/bus-booking-backend/internal/middleware"
	"github.com/islandexpress/bus-booking-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEngine struct {
	reserveID  string
	reserveErr error
	confirmErr error
	releaseErr error

	gotUserID string
	gotReq    *models.CreateBookingRequest
}

func (f *fakeEngine) Reserve(ctx context.Context, userID string, req *models.CreateBookingRequest) (string, error) {
	f.gotUserID = userID
	f.gotReq = req
	return f.reserveID, f.reserveErr
}

func (f *fakeEngine) Confirm(ctx context.Context, bookingID string) error {
	return f.confirmErr
}

func (f *fakeEngine) Release(ctx context.Context, bookingID string) error {
	return f.releaseErr
}

func newTestRouter(engine *fakeEngine, authed bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handler := NewBookingHandler(engine, nil)

	group := router.Group("/api/v1/bookings")
	if authed {
		group.Use(func(c *gin.Context) {
			c.Set(middleware.UserContextKey, &middleware.UserContext{
				UserID: "user-1",
				Email:  "rider@example.com",
			})
		})
	}
	group.POST("", handler.CreateBooking)
	group.POST("/:id/confirm", handler.ConfirmBooking)
	group.POST("/:id/cancel", handler.CancelBooking)

	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func validRequest() *models.CreateBookingRequest {
	return &models.CreateBookingRequest{
		BusID:           7,
		SeatNumber:      "A1",
		BoardingPointID: 10,
		DropPointID:     20,
	}
}

func TestCreateBooking_Success(t *testing.T) {
	engine := &fakeEngine{reserveID: "booking-123"}
	router := newTestRouter(engine, true)

	w := postJSON(t, router, "/api/v1/bookings", validRequest())

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp models.BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "booking-123", resp.BookingID)
	assert.Equal(t, "user-1", engine.gotUserID)
	assert.Equal(t, "A1", engine.gotReq.SeatNumber)
}

func TestCreateBooking_Unauthorized(t *testing.T) {
	router := newTestRouter(&fakeEngine{}, false)

	w := postJSON(t, router, "/api/v1/bookings", validRequest())

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateBooking_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"Seat taken", models.ErrSeatUnavailable, http.StatusConflict},
		{"No route", models.ErrRouteNotFound, http.StatusNotFound},
		{"Bad input", models.ErrInvalidInput, http.StatusBadRequest},
		{"Store down", models.ErrStoreUnavailable, http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(&fakeEngine{reserveErr: tc.err}, true)

			w := postJSON(t, router, "/api/v1/bookings", validRequest())

			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestCreateBooking_MalformedBody(t *testing.T) {
	router := newTestRouter(&fakeEngine{}, true)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConfirmBooking(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		router := newTestRouter(&fakeEngine{}, true)

		w := postJSON(t, router, "/api/v1/bookings/booking-123/confirm", nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Already Confirmed", func(t *testing.T) {
		router := newTestRouter(&fakeEngine{confirmErr: models.ErrInvalidState}, true)

		w := postJSON(t, router, "/api/v1/bookings/booking-123/confirm", nil)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestCancelBooking(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		router := newTestRouter(&fakeEngine{}, true)

		w := postJSON(t, router, "/api/v1/bookings/booking-123/cancel", nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Unknown Booking", func(t *testing.T) {
		router := newTestRouter(&fakeEngine{releaseErr: models.ErrNotFound}, true)

		w := postJSON(t, router, "/api/v1/bookings/booking-123/cancel", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
