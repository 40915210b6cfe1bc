package repositories

import (
	"context"
	"coordinates-service/internal/domain"
	"coordinates-service/internal/ports"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// GazetteerSeed is one known place. Coordinates may be written in any
// notation domain.FromString accepts.
type GazetteerSeed struct {
	Query       string `json:"query"`
	Name        string `json:"name"`
	CountryCode string `json:"country_code"`
	CountryName string `json:"country_name"`
	Region      string `json:"region"`
	Feature     string `json:"feature"`
	Coordinates string `json:"coordinates"`
}

// Populate the geocode cache with places from a JSON file so that those
// queries never reach the upstream geocoder. Entries sharing a query are
// stored together in file order. Returns the number of queries written.
func SeedFromJSON(ctx context.Context, cache ports.GeocodeCache, jsonPath string) (int, error) {
	if cache == nil {
		return 0, errors.New("seed gazetteer: cache is nil")
	}

	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("seed gazetteer: read %q: %w", jsonPath, err)
	}

	var data []GazetteerSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return 0, fmt.Errorf("seed gazetteer: parse json: %w", err)
	}

	byQuery := make(map[string][]domain.Place, len(data))
	for i, item := range data {
		query := strings.Join(strings.Fields(item.Query), " ")
		if query == "" {
			return 0, fmt.Errorf("seed gazetteer: item at index %d: query cannot be empty", i+1)
		}

		name := strings.TrimSpace(item.Name)
		if name == "" {
			name = query
		}

		c, err := domain.FromString(item.Coordinates)
		if err != nil {
			return 0, fmt.Errorf("seed gazetteer: item at index %d: %w", i+1, err)
		}

		byQuery[query] = append(byQuery[query], domain.Place{
			Name:        name,
			CountryCode: strings.TrimSpace(item.CountryCode),
			CountryName: strings.TrimSpace(item.CountryName),
			Region:      strings.TrimSpace(item.Region),
			Feature:     strings.TrimSpace(item.Feature),
			Coordinates: c,
		})
	}

	if err := cache.PutMany(ctx, byQuery); err != nil {
		return 0, fmt.Errorf("seed gazetteer: %w", err)
	}

	return len(byQuery), nil
}
