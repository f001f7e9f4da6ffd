package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/islandexpress/bus-booking-backend/internal/database"
)

// PointHandler serves boarding and drop points for a bus's active route
type PointHandler struct {
	routeRepo *database.RouteRepository
	pointRepo *database.PointRepository
}

// NewPointHandler creates a new PointHandler
func NewPointHandler(routeRepo *database.RouteRepository, pointRepo *database.PointRepository) *PointHandler {
	return &PointHandler{
		routeRepo: routeRepo,
		pointRepo: pointRepo,
	}
}

// ListPoints resolves the bus's active route and returns its stops
// GET /api/v1/buses/:busId/points
func (h *PointHandler) ListPoints(c *gin.Context) {
	busID, err := strconv.ParseInt(c.Param("busId"), 10, 64)
	if err != nil || busID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "busId must be a positive integer"})
		return
	}

	route, err := h.routeRepo.ActiveForBus(busID)
	if err != nil {
		respondError(c, err)
		return
	}

	points, err := h.pointRepo.PointsForRoute(route.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, points)
}
