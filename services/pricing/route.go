package pricing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"rideconnect/models"
)

// Router returns a driving estimate between two coordinates.
type Router interface {
	Route(ctx context.Context, origin, destination models.Coordinate) (*models.RouteEstimate, error)
}

const (
	earthRadiusKm = 6371.0
	// Driving distance is roughly 1.2-1.4x the straight line.
	roadInflation   = 1.3
	highwaySpeedKmh = 70.0
	urbanSpeedKmh   = 35.0
	mixedSpeedKmh   = 50.0
	longTripKm      = 100.0
	shortTripKm     = 20.0

	MetersToMiles = 0.000621371
)

// HaversineKm is the great-circle distance between a and b.
func HaversineKm(a, b models.Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

// EstimateRoute approximates a drive from the straight-line distance.
func EstimateRoute(start, end models.Coordinate) models.RouteEstimate {
	drivingKm := HaversineKm(start, end) * roadInflation

	speed := mixedSpeedKmh
	switch {
	case drivingKm > longTripKm:
		speed = highwaySpeedKmh
	case drivingKm < shortTripKm:
		speed = urbanSpeedKmh
	}

	return models.RouteEstimate{
		DurationSeconds: drivingKm / speed * 3600,
		DistanceMeters:  drivingKm * 1000,
	}
}

const openRouteDirectionsURL = "https://api.openrouteservice.org/v2/directions/driving-car"

// OpenRouteServiceRouter asks OpenRouteService for a driving route.
type OpenRouteServiceRouter struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewOpenRouteServiceRouter(apiKey string, timeout time.Duration) *OpenRouteServiceRouter {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &OpenRouteServiceRouter{
		apiKey:     apiKey,
		baseURL:    openRouteDirectionsURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// WithBaseURL points the client at another endpoint.
func (r *OpenRouteServiceRouter) WithBaseURL(u string) *OpenRouteServiceRouter {
	r.baseURL = u
	return r
}

type orsRequest struct {
	Coordinates [][2]float64 `json:"coordinates"`
	Format      string       `json:"format"`
}

type orsResponse struct {
	Routes []struct {
		Summary struct {
			Duration float64 `json:"duration"` // seconds
			Distance float64 `json:"distance"` // meters
		} `json:"summary"`
	} `json:"routes"`
}

func (r *OpenRouteServiceRouter) Route(ctx context.Context, origin, destination models.Coordinate) (*models.RouteEstimate, error) {
	body, err := json.Marshal(orsRequest{
		Coordinates: [][2]float64{{origin.Lon, origin.Lat}, {destination.Lon, destination.Lat}},
		Format:      "json",
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create route request: %w", err)
	}
	req.Header.Set("Authorization", r.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call OpenRouteService: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("OpenRouteService returned status %d", resp.StatusCode)
	}

	var out orsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode OpenRouteService response: %w", err)
	}
	if len(out.Routes) == 0 {
		return nil, fmt.Errorf("no routes found in OpenRouteService response")
	}

	s := out.Routes[0].Summary
	return &models.RouteEstimate{DurationSeconds: s.Duration, DistanceMeters: s.Distance}, nil
}
