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

// SQLite-backed implementation of the HistoryRepository port.
// Timestamps are stored as RFC 3339 text in UTC.
type SqliteHistoryRepository struct{ DB *sql.DB }

func NewSqliteHistoryRepository(db *sql.DB) *SqliteHistoryRepository {
	return &SqliteHistoryRepository{DB: db}
}

func (s *SqliteHistoryRepository) Record(ctx context.Context, entry domain.HistoryEntry) (_ int64, err error) {
	defer obs.Time(ctx, "history.sqlite.Record")(&err)

	if s.DB == nil {
		return 0, errors.New("sqlite history repository: DB is nil")
	}

	lat, lng := nullCoordinates(entry.Coordinates)
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `
	INSERT INTO search_history (
		query,
		source,
		lat,
		lng,
		created_at
	)
	VALUES (?, ?, ?, ?, ?);
	`
	res, err := s.DB.ExecContext(ctx, query,
		entry.Query, string(entry.Source), lat, lng,
		createdAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("record history: insert: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("record history: last insert id: %w", err)
	}

	return id, nil
}

// Return the most recent entries first.
func (s *SqliteHistoryRepository) Recent(ctx context.Context, limit int) (_ []domain.HistoryEntry, err error) {
	defer obs.Time(ctx, "history.sqlite.Recent")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite history repository: DB is nil")
	}
	if limit < 1 {
		return nil, fmt.Errorf("list history: limit must be positive, got %d", limit)
	}

	query := `
	SELECT
		id,
		query,
		source,
		lat,
		lng,
		created_at
	FROM search_history
	ORDER BY id DESC
	LIMIT ?;
	`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list history: query search_history table: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.HistoryEntry, 0, limit)
	for rows.Next() {
		var e domain.HistoryEntry
		var source, createdAt string
		var lat, lng sql.NullFloat64
		if err := rows.Scan(&e.ID, &e.Query, &source, &lat, &lng, &createdAt); err != nil {
			return nil, fmt.Errorf("list history: scan row: %w", err)
		}

		e.Source = domain.PlaceSource(source)
		e.Coordinates = coordinatesFromNull(lat, lng)
		e.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("list history: parse created_at id=%d: %w", e.ID, err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list history: row iteration: %w", err)
	}

	return entries, nil
}

func nullCoordinates(c *domain.Coordinates) (lat, lng sql.NullFloat64) {
	if c == nil {
		return sql.NullFloat64{}, sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: c.RawLat(), Valid: true},
		sql.NullFloat64{Float64: c.RawLng(), Valid: true}
}

func coordinatesFromNull(lat, lng sql.NullFloat64) *domain.Coordinates {
	if !lat.Valid || !lng.Valid {
		return nil
	}
	c := domain.NewCoordinates(lat.Float64, lng.Float64)
	return &c
}
