package pricing

import (
	"context"
	"fmt"
	"strings"

	"rideconnect/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type QuoteStatus string

const (
	StatusOK       QuoteStatus = "ok"
	StatusDegraded QuoteStatus = "degraded"
	StatusFailed   QuoteStatus = "failed"
)

// QuoteResult tells a live quote apart from an estimate or an emergency fallback.
// Quote is set for ok and degraded results, Err for failed ones.
type QuoteResult struct {
	Status  QuoteStatus       `json:"status"`
	Quote   *models.FareQuote `json:"quote,omitempty"`
	Reasons []string          `json:"reasons,omitempty"`
	Err     *PricingError     `json:"error,omitempty"`
}

// Price is the usable amount regardless of status.
func (r QuoteResult) Price() float64 {
	if r.Quote != nil {
		return r.Quote.TotalPrice
	}
	if r.Err != nil {
		return r.Err.FallbackPrice
	}
	return 0
}

// FareEstimator turns two addresses into a fare. Geocoder and router are
// optional; when nil the static fallbacks are used.
type FareEstimator struct {
	policy   Policy
	geocoder Geocoder
	router   Router
	logger   *zap.Logger
}

func NewFareEstimator(policy Policy, geocoder Geocoder, router Router, logger *zap.Logger) *FareEstimator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FareEstimator{policy: policy, geocoder: geocoder, router: router, logger: logger}
}

func (e *FareEstimator) Policy() Policy {
	return e.policy
}

// Quote never returns a Go error. Every provider failure degrades to a local
// estimate; anything worse yields a failed result that still carries a price.
func (e *FareEstimator) Quote(ctx context.Context, req models.QuoteRequest) (result QuoteResult) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("fare estimation panicked", zap.Any("panic", r))
			result = e.failed("Pricing service temporarily unavailable", req.IsAirportRoute)
		}
	}()

	pickup := strings.TrimSpace(req.Pickup)
	dropoff := strings.TrimSpace(req.Dropoff)
	if pickup == "" || dropoff == "" {
		return e.failed("Pickup and dropoff locations are required", req.IsAirportRoute)
	}

	var (
		origin, destination models.Coordinate
		originWhy, destWhy  string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		defer recoverInto(&err)
		origin, originWhy = e.resolve(gctx, "pickup", pickup)
		return nil
	})
	g.Go(func() (err error) {
		defer recoverInto(&err)
		destination, destWhy = e.resolve(gctx, "dropoff", dropoff)
		return nil
	})
	if err := g.Wait(); err != nil {
		e.logger.Error("geocoding failed unexpectedly", zap.Error(err))
		return e.failed("Pricing service temporarily unavailable", req.IsAirportRoute)
	}

	var reasons []string
	for _, why := range []string{originWhy, destWhy} {
		if why != "" {
			reasons = append(reasons, why)
		}
	}

	route, routeWhy := e.route(ctx, origin, destination)
	if routeWhy != "" {
		reasons = append(reasons, routeWhy)
	}

	durationHours := route.DurationSeconds / 3600
	passengers := ClampPassengers(req.PassengerCount)
	total, breakdown := e.policy.Price(durationHours, req.IsAirportRoute, passengers)

	quote := &models.FareQuote{
		TotalPrice:     total,
		DurationHours:  durationHours,
		DistanceMiles:  route.DistanceMeters * MetersToMiles,
		IsAirportRoute: req.IsAirportRoute,
		RateType:       RateTypeFor(req.IsAirportRoute),
		PassengerCount: passengers,
		Breakdown:      breakdown,
	}

	if len(reasons) > 0 {
		e.logger.Info("fare estimated with fallbacks",
			zap.Float64("price", total), zap.Strings("reasons", reasons))
		return QuoteResult{Status: StatusDegraded, Quote: quote, Reasons: reasons}
	}
	return QuoteResult{Status: StatusOK, Quote: quote}
}

// resolve returns a coordinate and, when the static table had to be used, the reason.
func (e *FareEstimator) resolve(ctx context.Context, role, address string) (models.Coordinate, string) {
	if e.geocoder == nil {
		return ResolveFallback(address), role + ": geocoding provider not configured"
	}
	coord, err := e.geocoder.Resolve(ctx, address)
	if err != nil {
		e.logger.Warn("geocoding failed, using landmark table",
			zap.String("role", role), zap.String("address", address), zap.Error(err))
		return ResolveFallback(address), role + ": geocoding failed"
	}
	if coord == nil {
		return ResolveFallback(address), role + ": no geocoding result"
	}
	return *coord, ""
}

func (e *FareEstimator) route(ctx context.Context, origin, destination models.Coordinate) (models.RouteEstimate, string) {
	if e.router == nil {
		return EstimateRoute(origin, destination), "routing provider not configured"
	}
	est, err := e.router.Route(ctx, origin, destination)
	if err != nil {
		e.logger.Warn("routing failed, using local estimate", zap.Error(err))
		return EstimateRoute(origin, destination), "routing failed"
	}
	if est == nil {
		return EstimateRoute(origin, destination), "no route returned"
	}
	return *est, ""
}

func (e *FareEstimator) failed(message string, isAirportRoute bool) QuoteResult {
	return QuoteResult{
		Status: StatusFailed,
		Err: &PricingError{
			Message:       message,
			FallbackPrice: e.policy.FallbackPrice(isAirportRoute),
		},
	}
}

func recoverInto(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("panic: %v", r)
	}
}
