package cache

import (
	"coordinates-service/internal/domain"
	"encoding/json"
	"fmt"
	"strings"
)

// Places are stored as a JSON array; coordinates use their "lat;lng" text form.
func encodePlaces(places []domain.Place) (string, error) {
	if places == nil {
		places = []domain.Place{}
	}
	b, err := json.Marshal(places)
	if err != nil {
		return "", fmt.Errorf("encode places: %w", err)
	}
	return string(b), nil
}

func decodePlaces(s string) ([]domain.Place, error) {
	var places []domain.Place
	if err := json.Unmarshal([]byte(s), &places); err != nil {
		return nil, fmt.Errorf("decode places: %w", err)
	}
	if places == nil {
		places = []domain.Place{}
	}
	return places, nil
}

// uniqueKeys trims keys and drops blanks and duplicates, keeping order.
func uniqueKeys(keys []string) []string {
	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}

		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		uniq = append(uniq, k)
	}
	return uniq
}
