package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/islandexpress/bus-booking-backend/internal/database"
)

// BusHandler serves bus search and lookup
type BusHandler struct {
	busRepo *database.BusRepository
}

// NewBusHandler creates a new BusHandler
func NewBusHandler(busRepo *database.BusRepository) *BusHandler {
	return &BusHandler{busRepo: busRepo}
}

// Search returns buses for a from/to/date query, with seat availability
// GET /api/v1/buses?from=&to=&date=
func (h *BusHandler) Search(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to are required"})
		return
	}

	date := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	buses, err := h.busRepo.Search(from, to, date)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, buses)
}

// GetBus returns a single bus
// GET /api/v1/buses/:busId
func (h *BusHandler) GetBus(c *gin.Context) {
	busID, err := strconv.ParseInt(c.Param("busId"), 10, 64)
	if err != nil || busID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "busId must be a positive integer"})
		return
	}

	bus, err := h.busRepo.GetByID(busID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bus)
}
