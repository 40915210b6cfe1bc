package geocode

import (
	"context"
	"coordinates-service/internal/domain"
	"coordinates-service/internal/platform/logger"
	"coordinates-service/internal/platform/obs"
	"coordinates-service/internal/ports"
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedGeocoder implements ports.BatchGeocoder in front of another
// geocoder.
//
// Lookups go through:
//   - an in-process LRU
//   - the persistent GeocodeCache (optional)
//   - the upstream geocoder
//
// Answers are keyed by normalized query, and empty answers are cached too.
// The geocoder is safe for concurrent use.
type CachedGeocoder struct {
	upstream ports.Geocoder
	cache    ports.GeocodeCache
	recent   *lru.Cache[string, []domain.Place]
}

func NewCachedGeocoder(upstream ports.Geocoder, cache ports.GeocodeCache, lruSize int) (*CachedGeocoder, error) {
	if upstream == nil {
		return nil, errors.New("cached geocoder: upstream is nil")
	}

	recent, err := lru.New[string, []domain.Place](lruSize)
	if err != nil {
		return nil, fmt.Errorf("cached geocoder: create lru: %w", err)
	}

	return &CachedGeocoder{upstream: upstream, cache: cache, recent: recent}, nil
}

// Delegate to batched path to reuse caching logic.
func (c *CachedGeocoder) Geocode(ctx context.Context, query string) ([]domain.Place, error) {
	q := normalize(query)
	if q == "" {
		return nil, errors.New("geocode: query must be non-empty")
	}

	results, err := c.GeocodeMany(ctx, []string{q})
	if err != nil {
		return nil, err
	}
	return results[q], nil
}

// GeocodeMany returns places for every query, keyed by the query exactly as
// given. Blank queries are skipped.
func (c *CachedGeocoder) GeocodeMany(
	ctx context.Context,
	queries []string,
) (_ map[string][]domain.Place, err error) {
	defer obs.Time(ctx, "geocode.GeocodeMany")(&err)

	byKey := make(map[string][]domain.Place, len(queries))
	misses := make([]string, 0, len(queries))
	seen := make(map[string]struct{}, len(queries))
	for _, q := range queries {
		k := normalize(q)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}

		if places, ok := c.recent.Get(k); ok {
			byKey[k] = places
			continue
		}
		misses = append(misses, k)
	}

	// Check persistent cache before issuing upstream calls.
	if c.cache != nil && len(misses) > 0 {
		hits, err := c.cache.GetMany(ctx, misses)
		if err != nil {
			return nil, fmt.Errorf("get geocode cache: %w", err)
		}

		remaining := misses[:0]
		for _, k := range misses {
			places, ok := hits[k]
			if !ok {
				remaining = append(remaining, k)
				continue
			}
			byKey[k] = places
			c.recent.Add(k, places)
		}
		misses = remaining
	}

	if len(misses) > 0 {
		fresh, err := c.fetch(ctx, misses)
		if err != nil {
			return nil, err
		}

		if c.cache != nil {
			if err := c.cache.PutMany(ctx, fresh); err != nil {
				logger.Error("req_id=%s geocode cache write failed: %v", obs.RequestID(ctx), err)
			}
		}
		for k, places := range fresh {
			byKey[k] = places
			c.recent.Add(k, places)
		}
	}

	out := make(map[string][]domain.Place, len(queries))
	for _, q := range queries {
		if places, ok := byKey[normalize(q)]; ok {
			out[q] = places
		}
	}
	return out, nil
}

func (c *CachedGeocoder) fetch(ctx context.Context, keys []string) (map[string][]domain.Place, error) {
	if bg, ok := c.upstream.(ports.BatchGeocoder); ok {
		fresh, err := bg.GeocodeMany(ctx, keys)
		if err != nil {
			return nil, fmt.Errorf("retrieving places: %w", err)
		}
		return fresh, nil
	}

	fresh := make(map[string][]domain.Place, len(keys))
	for _, k := range keys {
		places, err := c.upstream.Geocode(ctx, k)
		if err != nil {
			return nil, fmt.Errorf("retrieving places for %q: %w", k, err)
		}
		if places == nil {
			places = []domain.Place{}
		}
		fresh[k] = places
	}
	return fresh, nil
}

var _ ports.BatchGeocoder = (*CachedGeocoder)(nil)
