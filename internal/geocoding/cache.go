package geocoding

import (
	"context"
	"fmt"
	"strings"

	"github.com/UnknownOlympus/treemap/internal/models"
	lru "github.com/hashicorp/golang-lru/v2"
)

// CacheRecorder observes cache lookups.
type CacheRecorder interface {
	RecordGeocodeCache(hit bool)
}

// CachedProvider wraps a Provider with an in-memory LRU cache. Only successful
// lookups are cached so that misses and provider errors are retried.
type CachedProvider struct {
	inner    Provider
	cache    *lru.Cache[string, models.Coordinates]
	recorder CacheRecorder
}

// NewCachedProvider creates a cache decorator holding at most size addresses.
// recorder may be nil.
func NewCachedProvider(inner Provider, size int, recorder CacheRecorder) (*CachedProvider, error) {
	cache, err := lru.New[string, models.Coordinates](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create geocode cache: %w", err)
	}

	return &CachedProvider{inner: inner, cache: cache, recorder: recorder}, nil
}

func (c *CachedProvider) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	key := strings.ToLower(strings.Join(strings.Fields(address), " "))
	if coords, ok := c.cache.Get(key); ok {
		c.record(true)
		return &coords, nil
	}
	c.record(false)

	coords, err := c.inner.Geocode(ctx, address)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, *coords)

	return coords, nil
}

// Len returns the number of cached addresses.
func (c *CachedProvider) Len() int {
	return c.cache.Len()
}

func (c *CachedProvider) record(hit bool) {
	if c.recorder != nil {
		c.recorder.RecordGeocodeCache(hit)
	}
}
