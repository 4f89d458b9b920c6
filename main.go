package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rideconnect/config"
	"rideconnect/cron"
	"rideconnect/database"
	bookingRepo "rideconnect/database/repository/booking"
	timeslotRepo "rideconnect/database/repository/timeslot"
	"rideconnect/handlers"
	"rideconnect/middleware"
	"rideconnect/routes"
	"rideconnect/services/booking"
	"rideconnect/services/calendar"
	"rideconnect/services/pricing"
	"rideconnect/services/timeslot"
	"rideconnect/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()
	cfg := config.AppConfig
	loc := config.BusinessLocation()

	if err := database.InitDB(); err != nil {
		logger.Fatal("main: database unavailable", zap.Error(err))
	}
	logger.Info("main: connected to MongoDB", zap.String("database", cfg.DatabaseName))
	if err := utils.InitCache(); err != nil {
		logger.Warn("main: route cache disabled", zap.Error(err))
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))

	// repositories.
	db := database.Database()
	slotStore := timeslotRepo.NewMongoTimeSlotRepo(db)
	bookingStore := bookingRepo.NewMongoBookingRepo(db)

	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), 15*time.Second)
	if err := slotStore.EnsureIndexes(indexCtx); err != nil {
		logger.Fatal("main: failed to create timeslot indexes", zap.Error(err))
	}
	if err := bookingStore.EnsureIndexes(indexCtx); err != nil {
		logger.Fatal("main: failed to create booking indexes", zap.Error(err))
	}
	cancelIndexes()

	// pricing.
	var geocoder pricing.Geocoder
	if cfg.LocationIQAPIKey != "" {
		geocoder = pricing.NewLocationIQGeocoder(cfg.LocationIQAPIKey, cfg.HTTPTimeout)
	} else {
		logger.Warn("main: LOCATIONIQ_API_KEY not set, using landmark table for geocoding")
	}
	var routeSource pricing.Router
	if cfg.OpenRouteAPIKey != "" {
		routeSource = pricing.NewOpenRouteServiceRouter(cfg.OpenRouteAPIKey, cfg.HTTPTimeout)
		if cache := utils.GetCacheClient(); cache != nil {
			routeSource = pricing.NewCachedRouter(routeSource, cache, cfg.RouteCacheTTL, logger.Named("routecache"))
		}
	} else {
		logger.Warn("main: OPENROUTE_API_KEY not set, using local route estimates")
	}
	estimator := pricing.NewFareEstimator(pricing.PolicyFromConfig(cfg), geocoder, routeSource, logger.Named("pricing"))

	// services.
	slotManager := timeslot.NewSlotManager(slotStore, timeslot.ConfigFromApp(cfg), logger.Named("timeslots"))

	taskClient := asynq.NewClient(utils.TaskQueueRedisOpt())
	defer taskClient.Close()

	payments := booking.NewStripeGateway(cfg.StripeSecretKey)
	if !payments.Enabled() {
		logger.Warn("main: STRIPE_SECRET_KEY not set, payment endpoints will return 503")
	}

	bookingService := &booking.DefaultBookingService{
		Repo:     bookingStore,
		Slots:    slotManager,
		Pricing:  estimator,
		Payments: payments,
		Tasks:    taskClient,
		Location: loc,
		Logger:   logger.Named("bookings"),
	}

	// calendar sync worker.
	syncHandler := &cron.CalendarSyncHandler{Bookings: bookingStore, Logger: logger.Named("calendar")}
	if cfg.GoogleServiceAccountKeyPath != "" && cfg.GoogleCalendarID != "" {
		syncer, err := calendar.NewGoogleSyncer(context.Background(), cfg.GoogleServiceAccountKeyPath, cfg.GoogleCalendarID, loc)
		if err != nil {
			logger.Error("main: calendar sync disabled", zap.Error(err))
		} else {
			syncHandler.Syncer = syncer
		}
	} else {
		logger.Warn("main: Google Calendar not configured, calendar sync disabled")
	}
	worker := cron.StartWorker(utils.TaskQueueRedisOpt(), syncHandler, logger.Named("worker"))

	// Assemble the handler bundle.
	handlerBundle := handlers.NewHandlerBundle(
		cfg.AdminKey,
		handlers.NewPricingHandler(estimator),
		handlers.NewTimeslotHandler(slotManager),
		handlers.NewBookingHandler(bookingService),
		handlers.NewAdminHandler(bookingService),
	)

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	worker.Shutdown()
	if err := utils.CloseCache(); err != nil {
		logger.Sugar().Warnf("main: failed to close Redis cache: %v", err)
	}
	if err := database.Disconnect(ctx); err != nil {
		logger.Sugar().Errorf("main: failed to disconnect from MongoDB: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
