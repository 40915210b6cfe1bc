package repositories

import (
	"context"
	"coordinates-service/internal/domain"
	"coordinates-service/internal/platform/obs"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Postgres-backed implementation of the HistoryRepository port.
type SQLHistoryRepository struct{ DB *sql.DB }

func NewSQLHistoryRepository(db *sql.DB) *SQLHistoryRepository {
	return &SQLHistoryRepository{DB: db}
}

func (s *SQLHistoryRepository) Record(ctx context.Context, entry domain.HistoryEntry) (_ int64, err error) {
	defer obs.Time(ctx, "history.sql.Record")(&err)

	if s.DB == nil {
		return 0, errors.New("sql history repository: DB is nil")
	}

	lat, lng := nullCoordinates(entry.Coordinates)
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `
	INSERT INTO search_history (query, source, lat, lng, created_at)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id;
	`
	var id int64
	if err := s.DB.QueryRowContext(ctx, query,
		entry.Query, string(entry.Source), lat, lng, createdAt.UTC(),
	).Scan(&id); err != nil {
		return 0, fmt.Errorf("record history: insert: %w", err)
	}

	return id, nil
}

// Return the most recent entries first.
func (s *SQLHistoryRepository) Recent(ctx context.Context, limit int) (_ []domain.HistoryEntry, err error) {
	defer obs.Time(ctx, "history.sql.Recent")(&err)

	if s.DB == nil {
		return nil, errors.New("sql history repository: DB is nil")
	}
	if limit < 1 {
		return nil, fmt.Errorf("list history: limit must be positive, got %d", limit)
	}

	query := `
	SELECT id, query, source, lat, lng, created_at
	FROM search_history
	ORDER BY created_at DESC, id DESC
	LIMIT $1;
	`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list history: query search_history table: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.HistoryEntry, 0, limit)
	for rows.Next() {
		var e domain.HistoryEntry
		var source string
		var lat, lng sql.NullFloat64
		if err := rows.Scan(&e.ID, &e.Query, &source, &lat, &lng, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("list history: scan row: %w", err)
		}
		e.Source = domain.PlaceSource(source)
		e.Coordinates = coordinatesFromNull(lat, lng)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list history: row iteration: %w", err)
	}

	return entries, nil
}
