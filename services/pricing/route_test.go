package pricing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rideconnect/models"
)

func TestEstimateRoute_SamePoint(t *testing.T) {
	est := EstimateRoute(DefaultCenter, DefaultCenter)
	assert.InDelta(t, 0, est.DistanceMeters, 1e-6)
	assert.InDelta(t, 0, est.DurationSeconds, 1e-6)
}

func TestEstimateRoute_SpeedBuckets(t *testing.T) {
	strip := models.Coordinate{Lon: -115.1725, Lat: 36.1147}
	airport := models.Coordinate{Lon: -115.1522, Lat: 36.0840}
	losAngeles := models.Coordinate{Lon: -118.2437, Lat: 34.0522}

	short := EstimateRoute(strip, airport)
	km := short.DistanceMeters / 1000
	require.Less(t, km, 20.0)
	assert.InDelta(t, km/35*3600, short.DurationSeconds, 1e-6)

	long := EstimateRoute(strip, losAngeles)
	km = long.DistanceMeters / 1000
	require.Greater(t, km, 100.0)
	assert.InDelta(t, km/70*3600, long.DurationSeconds, 1e-6)
}

func TestHaversineKm(t *testing.T) {
	a := models.Coordinate{Lon: 0, Lat: 0}
	b := models.Coordinate{Lon: 1, Lat: 0}
	assert.InDelta(t, 111.19, HaversineKm(a, b), 0.01)
	assert.InDelta(t, HaversineKm(a, b), HaversineKm(b, a), 1e-9)
}

func TestOpenRouteServiceRouter_Route(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "ors-key", r.Header.Get("Authorization"))

		var body orsRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if !assert.Len(t, body.Coordinates, 2) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		assert.Equal(t, -115.1725, body.Coordinates[0][0])
		assert.Equal(t, 36.1147, body.Coordinates[0][1])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"routes":[{"summary":{"duration":900.5,"distance":8046.7}}]}`))
	}))
	defer srv.Close()

	r := NewOpenRouteServiceRouter("ors-key", time.Second).WithBaseURL(srv.URL)
	est, err := r.Route(context.Background(),
		models.Coordinate{Lon: -115.1725, Lat: 36.1147},
		models.Coordinate{Lon: -115.1522, Lat: 36.0840})
	require.NoError(t, err)
	assert.Equal(t, 900.5, est.DurationSeconds)
	assert.Equal(t, 8046.7, est.DistanceMeters)
}

func TestOpenRouteServiceRouter_NonSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	r := NewOpenRouteServiceRouter("bad", time.Second).WithBaseURL(srv.URL)
	est, err := r.Route(context.Background(), DefaultCenter, DefaultCenter)
	assert.Error(t, err)
	assert.Nil(t, est)
}
