package handlers

import (
	"net/http"

	"rideconnect/models"
	"rideconnect/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BookingHandler struct {
	Service booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var input models.BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	b, err := h.Service.CreateBooking(c.Request.Context(), input)
	if err != nil {
		respondError(c, "Failed to create booking", err)
		return
	}
	getLogger(c).Info("Booking accepted", zap.String("bookingId", b.ID))
	c.JSON(http.StatusCreated, b)
}

func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	b, err := h.Service.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "Failed to fetch booking", err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	bookings, err := h.Service.ListBookings(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to fetch bookings", err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) ListBookingsByDateHandler(c *gin.Context) {
	bookings, err := h.Service.ListBookingsByDate(c.Request.Context(), c.Param("date"))
	if err != nil {
		respondError(c, "Failed to fetch bookings", err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

type statusUpdateRequest struct {
	Status          models.BookingStatus `json:"status" binding:"required"`
	PaymentIntentID string               `json:"paymentIntentId"`
}

func (h *BookingHandler) UpdateBookingStatusHandler(c *gin.Context) {
	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	b, err := h.Service.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status, req.PaymentIntentID)
	if err != nil {
		respondError(c, "Failed to update booking status", err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) CreatePaymentIntentHandler(c *gin.Context) {
	var req models.PaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	intent, err := h.Service.CreatePaymentIntent(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Failed to create payment intent", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clientSecret": intent.ClientSecret, "paymentIntentId": intent.ID})
}

func (h *BookingHandler) ConfirmPaymentHandler(c *gin.Context) {
	var req models.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	b, err := h.Service.ConfirmPayment(c.Request.Context(), c.Param("id"), req.PaymentIntentID)
	if err != nil {
		respondError(c, "Failed to confirm payment", err)
		return
	}
	c.JSON(http.StatusOK, b)
}
