package handlers

import (
	"errors"
	"net/http"

	"rideconnect/services/booking"
	"rideconnect/services/timeslot"
	"rideconnect/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps service errors onto HTTP statuses.
func respondError(c *gin.Context, fallback string, err error) {
	var (
		bookingErr *booking.BookingError
		slotErr    *timeslot.ValidationError
	)
	switch {
	case errors.As(err, &slotErr):
		utils.JSONError(c, http.StatusBadRequest, "Invalid time slot", slotErr.Message)
	case errors.Is(err, timeslot.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "Time slot not found", err.Error())
	case errors.Is(err, timeslot.ErrDuplicate):
		utils.JSONError(c, http.StatusConflict, "Time slot already exists", err.Error())
	case errors.Is(err, booking.ErrPaymentsDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":          "Payment processing is not configured",
			"stripeDisabled": true,
		})
	case errors.As(err, &bookingErr):
		status := http.StatusBadRequest
		switch bookingErr.Code {
		case booking.CodeNotFound:
			status = http.StatusNotFound
		case booking.CodeSlotUnavailable:
			status = http.StatusConflict
		case booking.CodePaymentIncomplete:
			status = http.StatusPaymentRequired
		}
		utils.JSONError(c, status, bookingErr.Code, bookingErr.Message)
	default:
		getLogger(c).Error(fallback, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
