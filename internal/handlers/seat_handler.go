package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/islandexpress/bus-booking-backend/internal/database"
)

// SeatHandler serves the seat map for a trip
type SeatHandler struct {
	seatRepo *database.SeatRepository
}

// NewSeatHandler creates a new SeatHandler
func NewSeatHandler(seatRepo *database.SeatRepository) *SeatHandler {
	return &SeatHandler{seatRepo: seatRepo}
}

// ListSeats returns every seat for a (bus, route) pair
// GET /api/v1/seats?busId=&routeId=
func (h *SeatHandler) ListSeats(c *gin.Context) {
	busID, err := strconv.ParseInt(c.Query("busId"), 10, 64)
	if err != nil || busID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "busId must be a positive integer"})
		return
	}

	routeID, err := strconv.ParseInt(c.Query("routeId"), 10, 64)
	if err != nil || routeID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "routeId must be a positive integer"})
		return
	}

	seats, err := h.seatRepo.ListSeats(busID, routeID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, seats)
}
