package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/islandexpress/bus-booking-backend/internal/database"
)

const routeListLimit = 5

// RouteHandler serves route listings for the landing and search screens
type RouteHandler struct {
	routeRepo *database.RouteRepository
}

// NewRouteHandler creates a new RouteHandler
func NewRouteHandler(routeRepo *database.RouteRepository) *RouteHandler {
	return &RouteHandler{routeRepo: routeRepo}
}

// ListUpcoming returns routes dated today or later
// GET /api/v1/routes
func (h *RouteHandler) ListUpcoming(c *gin.Context) {
	routes, err := h.routeRepo.ListUpcoming(routeListLimit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, routes)
}

// ListPopular returns the landing-page route shortlist
// GET /api/v1/routes/popular
func (h *RouteHandler) ListPopular(c *gin.Context) {
	routes, err := h.routeRepo.ListPopular(routeListLimit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, routes)
}

// ListJourneys returns upcoming routes joined with their buses
// GET /api/v1/journeys
func (h *RouteHandler) ListJourneys(c *gin.Context) {
	journeys, err := h.routeRepo.ListJourneys(2)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, journeys)
}
