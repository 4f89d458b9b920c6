package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"rideconnect/models"

	"github.com/go-redis/redis/v8"
	"github.com/mmcloughlin/geohash"
	"go.uber.org/zap"
)

// geohash precision 7 cells are ~150m across.
const routeCachePrecision = 7

// CachedRouter keeps live routing answers in Redis, keyed by the geohash cells
// of both endpoints. Cache trouble never fails a lookup.
type CachedRouter struct {
	next   Router
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedRouter(next Router, client *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedRouter {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &CachedRouter{next: next, client: client, ttl: ttl, logger: logger}
}

func routeCacheKey(origin, destination models.Coordinate) string {
	return "route:" +
		geohash.EncodeWithPrecision(origin.Lat, origin.Lon, routeCachePrecision) + ":" +
		geohash.EncodeWithPrecision(destination.Lat, destination.Lon, routeCachePrecision)
}

func (c *CachedRouter) Route(ctx context.Context, origin, destination models.Coordinate) (*models.RouteEstimate, error) {
	key := routeCacheKey(origin, destination)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var est models.RouteEstimate
		if jsonErr := json.Unmarshal(raw, &est); jsonErr == nil {
			return &est, nil
		}
		c.logger.Warn("discarding unreadable cached route", zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("route cache read failed", zap.String("key", key), zap.Error(err))
	}

	est, err := c.next.Route(ctx, origin, destination)
	if err != nil || est == nil {
		return est, err
	}

	if data, jsonErr := json.Marshal(est); jsonErr == nil {
		if setErr := c.client.Set(ctx, key, data, c.ttl).Err(); setErr != nil {
			c.logger.Warn("route cache write failed", zap.String("key", key), zap.Error(setErr))
		}
	}
	return est, nil
}
