package geocoding

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"movers/internal/core/domain/model/kernel"
	"movers/internal/core/ports"
	"movers/internal/pkg/log"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	cacheKeyPrefix  = "movers:geocode:"
	DefaultCacheTTL = 24 * time.Hour
)

var _ ports.Geocoder = (*CachedGeocoder)(nil)

// Connect initializes a Redis client from a redis:// URL or a host:port pair.
func Connect(redisURL string) (*redis.Client, error) {
	if strings.HasPrefix(redisURL, "redis://") || strings.HasPrefix(redisURL, "rediss://") {
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url | %w", err)
		}
		return redis.NewClient(opt), nil
	}
	return redis.NewClient(&redis.Options{Addr: redisURL}), nil
}

// CachedGeocoder serves repeated lookups from Redis. Only successful lookups
// are cached. Redis failures degrade to calling the wrapped geocoder.
type CachedGeocoder struct {
	next   ports.Geocoder
	client *redis.Client
	ttl    time.Duration
	logger *log.Zap
}

func NewCachedGeocoder(next ports.Geocoder, client *redis.Client, ttl time.Duration, logger *log.Zap) *CachedGeocoder {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if logger == nil {
		logger = log.NewNop()
	}
	return &CachedGeocoder{next: next, client: client, ttl: ttl, logger: logger.Named("geocode-cache")}
}

func (c *CachedGeocoder) Geocode(ctx context.Context, addressOrIP string) (kernel.Location, error) {
	key := cacheKey(addressOrIP)

	raw, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		if loc, decodeErr := decodeLocation(raw); decodeErr == nil {
			return loc, nil
		}
		c.logger.Warn("dropping malformed cache entry", zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("geocode cache read failed", zap.Error(err))
	}

	loc, err := c.next.Geocode(ctx, addressOrIP)
	if err != nil {
		return kernel.Location{}, err
	}

	if err = c.client.Set(ctx, key, encodeLocation(loc), c.ttl).Err(); err != nil {
		c.logger.Warn("geocode cache write failed", zap.Error(err))
	}

	return loc, nil
}

func cacheKey(addressOrIP string) string {
	return cacheKeyPrefix + strings.ToLower(strings.Join(strings.Fields(addressOrIP), " "))
}

func encodeLocation(loc kernel.Location) string {
	return strconv.FormatFloat(loc.Latitude(), 'f', -1, 64) + "," +
		strconv.FormatFloat(loc.Longitude(), 'f', -1, 64)
}

func decodeLocation(raw string) (kernel.Location, error) {
	latStr, lngStr, ok := strings.Cut(raw, ",")
	if !ok {
		return kernel.Location{}, fmt.Errorf("malformed location %q", raw)
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return kernel.Location{}, err
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return kernel.Location{}, err
	}
	return kernel.NewLocation(lat, lng)
}
