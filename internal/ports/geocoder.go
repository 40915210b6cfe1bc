package ports

import (
	"context"
	"coordinates-service/internal/domain"
)

// Contract for resolving free-text place names to locations.
type Geocoder interface {
	// Return the places matching query, best match first.
	Geocode(ctx context.Context, query string) ([]domain.Place, error)
}

// Optional extension of Geocoder that supports batched lookups.
type BatchGeocoder interface {
	Geocoder
	// Return places for many queries keyed by the query text.
	GeocodeMany(ctx context.Context, queries []string) (map[string][]domain.Place, error)
}
