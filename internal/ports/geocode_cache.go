package ports

import (
	"context"
	"coordinates-service/internal/domain"
)

// Port: persistent storage of geocoder answers keyed by normalized query.
type GeocodeCache interface {
	// Return cached places for the queries that have an entry. Missing
	// queries are absent from the map; an empty slice is a cached miss.
	GetMany(ctx context.Context, queries []string) (map[string][]domain.Place, error)
	// Store query -> places mappings, replacing existing entries.
	PutMany(ctx context.Context, results map[string][]domain.Place) error
}
