package cache

import (
	"context"
	"coordinates-service/internal/domain"
	"coordinates-service/internal/platform/obs"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// SQLGeocodeCache is a Postgres-backed cache mapping normalized queries to
// geocoder answers.
type SQLGeocodeCache struct {
	DB *sql.DB
}

func NewSQLGeocodeCache(db *sql.DB) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db}
}

// Fetch cached places for the given queries.
func (s *SQLGeocodeCache) GetMany(
	ctx context.Context,
	queries []string,
) (_ map[string][]domain.Place, err error) {
	defer obs.Time(ctx, "geocode.cache.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("geocode cache: db is nil")
	}

	uniq := uniqueKeys(queries)
	if len(uniq) == 0 {
		return map[string][]domain.Place{}, nil
	}

	q := `
	SELECT query, places::text
	FROM geocode_cache
	WHERE query = ANY($1::text[]);
	`

	rows, err := s.DB.QueryContext(ctx, q, uniq)
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]domain.Place, len(uniq))
	for rows.Next() {
		var query, raw string
		if err := rows.Scan(&query, &raw); err != nil {
			return nil, fmt.Errorf("get geocode cache: scan rows: %w", err)
		}
		places, err := decodePlaces(raw)
		if err != nil {
			return nil, fmt.Errorf("get geocode cache query=%q: %w", query, err)
		}
		out[query] = places
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get geocode cache: row iteration: %w", err)
	}

	return out, nil
}

// Store query -> places mappings in the cache.
func (s *SQLGeocodeCache) PutMany(ctx context.Context, results map[string][]domain.Place) (err error) {
	defer obs.Time(ctx, "geocode.cache.PutMany")(&err)

	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	if len(results) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert geocode cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO geocode_cache (query, places, fetched_at)
	VALUES ($1, $2::jsonb, NOW())
	ON CONFLICT (query) DO UPDATE
	SET places = EXCLUDED.places,
		fetched_at = EXCLUDED.fetched_at;
	`)
	if err != nil {
		return fmt.Errorf("insert geocode cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for query, places := range results {
		if strings.TrimSpace(query) == "" {
			return fmt.Errorf("insert geocode cache: empty query key")
		}

		raw, err := encodePlaces(places)
		if err != nil {
			return fmt.Errorf("insert geocode cache query=%q: %w", query, err)
		}
		if _, err := stmt.ExecContext(ctx, query, raw); err != nil {
			return fmt.Errorf("insert geocode cache query=%q: %w", query, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert geocode cache commit: %w", err)
	}

	return nil
}
