package handlers

import (
	"net/http"

	"rideconnect/services/booking"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the dashboard endpoints behind the admin key.
type AdminHandler struct {
	Bookings booking.BookingService
}

func NewAdminHandler(bookings booking.BookingService) *AdminHandler {
	return &AdminHandler{Bookings: bookings}
}

func (ah *AdminHandler) DashboardStatsHandler(c *gin.Context) {
	stats, err := ah.Bookings.DashboardStats(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to fetch dashboard stats", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// AuthUserHandler confirms the caller holds the admin key.
func (ah *AdminHandler) AuthUserHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"id": "admin", "role": "admin", "authenticated": true})
}
