package geo

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedProvider memoises walking distances in a bounded, concurrency-safe LRU.
// Geocoding calls pass straight through.
type CachedProvider struct {
	Provider
	distances *lru.Cache[string, float64]
}

func NewCachedProvider(p Provider, size int) (*CachedProvider, error) {
	c, err := lru.New[string, float64](size)
	if err != nil {
		return nil, err
	}
	return &CachedProvider{Provider: p, distances: c}, nil
}

func distanceKey(from, to Coordinates) string {
	return fmt.Sprintf("%.6f,%.6f|%.6f,%.6f", from[0], from[1], to[0], to[1])
}

func (c *CachedProvider) WalkingDistance(ctx context.Context, from, to Coordinates) (float64, error) {
	key := distanceKey(from, to)
	if d, ok := c.distances.Get(key); ok {
		return d, nil
	}
	d, err := c.Provider.WalkingDistance(ctx, from, to)
	if err != nil {
		return 0, err
	}
	c.distances.Add(key, d)
	return d, nil
}
