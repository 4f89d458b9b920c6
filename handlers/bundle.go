package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	AdminKey string

	// Pricing endpoints
	QuoteHandler gin.HandlerFunc

	// Timeslot endpoints
	GetTimeslotsHandler          gin.HandlerFunc
	GetAvailableTimeslotsHandler gin.HandlerFunc
	CreateTimeslotHandler        gin.HandlerFunc
	UpdateTimeslotHandler        gin.HandlerFunc
	DeleteTimeslotHandler        gin.HandlerFunc

	// Booking endpoints
	CreateBookingHandler       gin.HandlerFunc
	GetBookingHandler          gin.HandlerFunc
	ListBookingsHandler        gin.HandlerFunc
	ListBookingsByDateHandler  gin.HandlerFunc
	UpdateBookingStatusHandler gin.HandlerFunc

	// Payment endpoints
	CreatePaymentIntentHandler gin.HandlerFunc
	ConfirmPaymentHandler      gin.HandlerFunc

	// Admin endpoints
	AdminHandler *AdminHandler
}

// NewHandlerBundle wires handler methods into a bundle.
func NewHandlerBundle(adminKey string, p *PricingHandler, t *TimeslotHandler, b *BookingHandler, a *AdminHandler) *HandlerBundle {
	return &HandlerBundle{
		AdminKey: adminKey,

		QuoteHandler: p.QuoteHandler,

		GetTimeslotsHandler:          t.GetTimeslotsHandler,
		GetAvailableTimeslotsHandler: t.GetAvailableTimeslotsHandler,
		CreateTimeslotHandler:        t.CreateTimeslotHandler,
		UpdateTimeslotHandler:        t.UpdateTimeslotHandler,
		DeleteTimeslotHandler:        t.DeleteTimeslotHandler,

		CreateBookingHandler:       b.CreateBookingHandler,
		GetBookingHandler:          b.GetBookingHandler,
		ListBookingsHandler:        b.ListBookingsHandler,
		ListBookingsByDateHandler:  b.ListBookingsByDateHandler,
		UpdateBookingStatusHandler: b.UpdateBookingStatusHandler,

		CreatePaymentIntentHandler: b.CreatePaymentIntentHandler,
		ConfirmPaymentHandler:      b.ConfirmPaymentHandler,

		AdminHandler: a,
	}
}
