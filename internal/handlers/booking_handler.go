package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/islandexpress/bus-booking-backend/internal/database"
	"github.com/islandexpress/bus-booking-backend/internal/middleware"
	"github.com/islandexpress/bus-booking-backend/internal/models"
)

// ReservationEngine is the slice of the reservation service the handler uses
type ReservationEngine interface {
	Reserve(ctx context.Context, userID string, req *models.CreateBookingRequest) (string, error)
	Confirm(ctx context.Context, bookingID string) error
	Release(ctx context.Context, bookingID string) error
}

// BookingHandler handles passenger booking operations
type BookingHandler struct {
	reservations ReservationEngine
	bookingRepo  *database.BookingRepository
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(reservations ReservationEngine, bookingRepo *database.BookingRepository) *BookingHandler {
	return &BookingHandler{
		reservations: reservations,
		bookingRepo:  bookingRepo,
	}
}

// CreateBooking reserves a seat and creates the pending booking
// POST /api/v1/bookings
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	bookingID, err := h.reservations.Reserve(c.Request.Context(), userCtx.UserID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.BookingResponse{
		BookingID: bookingID,
		Message:   "Booking created successfully",
	})
}

// GetBooking returns one booking owned by the caller
// GET /api/v1/bookings/:id
func (h *BookingHandler) GetBooking(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	booking, err := h.bookingRepo.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if booking.UserID != userCtx.UserID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}

	c.JSON(http.StatusOK, booking)
}

// ListBookings returns the caller's bookings, newest first
// GET /api/v1/bookings
func (h *BookingHandler) ListBookings(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	bookings, err := h.bookingRepo.GetByUserID(userCtx.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// ConfirmBooking marks a pending booking paid
// POST /api/v1/bookings/:id/confirm
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	if _, exists := middleware.GetUserContext(c); !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.reservations.Confirm(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking confirmed"})
}

// CancelBooking releases the booking's seat back to the pool
// POST /api/v1/bookings/:id/cancel
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	if _, exists := middleware.GetUserContext(c); !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.reservations.Release(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled"})
}
