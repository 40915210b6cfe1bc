package repositories

import (
	"context"
	"coordinates-service/internal/adapters/cache"
	"coordinates-service/internal/domain"
	"coordinates-service/internal/platform/db"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := db.OpenSqlite(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	if err := InitSchema(conn); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return conn
}

func TestInitSchemaIsIdempotent(t *testing.T) {
	conn := newTestDB(t)
	if err := InitSchema(conn); err != nil {
		t.Fatalf("second init: %v", err)
	}
	if err := InitSchema(nil); err == nil {
		t.Fatalf("expected error for nil DB")
	}
}

func TestSqliteHistoryRepository(t *testing.T) {
	repo := NewSqliteHistoryRepository(newTestDB(t))
	ctx := context.Background()

	c := domain.NewCoordinates(50.11042, 8.68213)
	at := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

	if _, err := repo.Record(ctx, domain.HistoryEntry{Query: "Nowhere", Source: domain.SourceGeocoder, CreatedAt: at}); err != nil {
		t.Fatalf("record: %v", err)
	}
	id, err := repo.Record(ctx, domain.HistoryEntry{Query: "N 50.11042 E 8.68213", Source: domain.SourceCoordinates, Coordinates: &c, CreatedAt: at.Add(time.Minute)})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if id != 2 {
		t.Fatalf("id = %d, want 2", id)
	}

	entries, err := repo.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	first := entries[0]
	if first.Query != "N 50.11042 E 8.68213" || first.Source != domain.SourceCoordinates {
		t.Fatalf("unexpected first entry %+v", first)
	}
	if first.Coordinates == nil || !first.Coordinates.Equal(c) {
		t.Fatalf("coordinates = %v, want %v", first.Coordinates, c)
	}
	if !first.CreatedAt.Equal(at.Add(time.Minute)) {
		t.Fatalf("created_at = %s, want %s", first.CreatedAt, at.Add(time.Minute))
	}
	if entries[1].Coordinates != nil {
		t.Fatalf("expected nil coordinates for unresolved search, got %v", entries[1].Coordinates)
	}

	limited, err := repo.Recent(ctx, 1)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(limited))
	}

	if _, err := repo.Recent(ctx, 0); err == nil {
		t.Fatalf("expected error for zero limit")
	}
}

func TestSeedFromJSON(t *testing.T) {
	geocodeCache := cache.NewSqliteGeocodeCache(newTestDB(t))
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "gazetteer.json")
	data := `[
		{"query": "Frankfurt", "name": "Frankfurt am Main", "country_code": "DE", "coordinates": "N 50° 06.625' E 008° 40.928'"},
		{"query": " Frankfurt ", "name": "Frankfurt (Oder)", "coordinates": "52.3471, 14.5506"},
		{"query": "Sydney", "coordinates": "-33.8568 151.2153"}
	]`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	n, err := SeedFromJSON(ctx, geocodeCache, path)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if n != 2 {
		t.Fatalf("seeded %d queries, want 2", n)
	}

	got, err := geocodeCache.GetMany(ctx, []string{"Frankfurt", "Sydney"})
	if err != nil {
		t.Fatalf("get many: %v", err)
	}
	if len(got["Frankfurt"]) != 2 || got["Frankfurt"][1].Name != "Frankfurt (Oder)" {
		t.Fatalf("Frankfurt = %+v", got["Frankfurt"])
	}
	if !got["Frankfurt"][1].Coordinates.Equal(domain.NewCoordinates(52.3471, 14.5506)) {
		t.Fatalf("Frankfurt (Oder) coordinates = %v", got["Frankfurt"][1].Coordinates)
	}
	if len(got["Sydney"]) != 1 || got["Sydney"][0].Name != "Sydney" {
		t.Fatalf("Sydney = %+v", got["Sydney"])
	}
}

func TestSeedFromJSONRejectsBadCoordinates(t *testing.T) {
	geocodeCache := cache.NewSqliteGeocodeCache(newTestDB(t))

	path := filepath.Join(t.TempDir(), "gazetteer.json")
	if err := os.WriteFile(path, []byte(`[{"query": "x", "coordinates": "somewhere"}]`), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	if _, err := SeedFromJSON(context.Background(), geocodeCache, path); err == nil {
		t.Fatalf("expected error")
	}
}
