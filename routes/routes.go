package routes

import (
	"time"

	"rideconnect/handlers"
	"rideconnect/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterPricingRoutes registers the fare estimate endpoint.
func RegisterPricingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/pricing")
	{
		api.POST("/quote", hb.QuoteHandler)
	}
}

// RegisterTimeslotRoutes registers slot lookups and admin slot management.
func RegisterTimeslotRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/timeslots")
	{
		api.GET("/:date", hb.GetTimeslotsHandler)
		api.GET("/:date/available", hb.GetAvailableTimeslotsHandler)

		admin := api.Group("")
		admin.Use(middleware.AdminKeyMiddleware(hb.AdminKey))
		admin.POST("", hb.CreateTimeslotHandler)
		admin.PATCH("/:id", hb.UpdateTimeslotHandler)
		admin.DELETE("/:id", hb.DeleteTimeslotHandler)
	}
}

// RegisterBookingRoutes registers customer booking and payment endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.POST("/bookings", hb.CreateBookingHandler)
		api.GET("/bookings/:id", hb.GetBookingHandler)
		api.GET("/bookings/date/:date", hb.ListBookingsByDateHandler)
		api.POST("/bookings/:id/confirm-payment", hb.ConfirmPaymentHandler)
		api.POST("/create-payment-intent", hb.CreatePaymentIntentHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for the admin dashboard.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api")
	{
		adminGroup.Use(middleware.AdminKeyMiddleware(hb.AdminKey))
		adminGroup.GET("/bookings", hb.ListBookingsHandler)
		adminGroup.PATCH("/bookings/:id/status", hb.UpdateBookingStatusHandler)
		adminGroup.GET("/dashboard/stats", hb.AdminHandler.DashboardStatsHandler)
		adminGroup.GET("/auth/user", hb.AdminHandler.AuthUserHandler)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", middleware.AdminKeyHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterPricingRoutes(r, hb)
	RegisterTimeslotRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
