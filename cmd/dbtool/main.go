package main

import (
	"context"
	"coordinates-service/internal/adapters/cache"
	"coordinates-service/internal/adapters/repositories"
	"coordinates-service/internal/config"
	"coordinates-service/internal/platform/db"
	"coordinates-service/internal/platform/logger"
	"coordinates-service/internal/ports"
	"database/sql"
	"flag"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"
)

// dbtool prepares storage ahead of a deployment: it creates the schema and
// loads the gazetteer into the geocode cache. Postgres is used when
// DATABASE_URL is set, the SQLite file at DB_PATH otherwise.
func main() {
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found (using environment variables)")
	}

	seedPath := flag.String("seed", config.Get("SEED_PATH", "data/seeds/gazetteer.json"), "gazetteer JSON file; empty skips seeding")
	flag.Parse()

	cfg := config.Load()
	logger.SetDebug(cfg.Debug)

	if err := run(context.Background(), cfg, *seedPath); err != nil {
		logger.Fatal("%v", err)
	}
}

func run(ctx context.Context, cfg config.Config, seedPath string) error {
	conn, geocodeCache, err := openStorage(cfg)
	if err != nil {
		return err
	}
	defer conn.Close()
	logger.Info("Schema ready.")

	if seedPath == "" {
		return nil
	}

	logger.Info("Seeding geocode cache path=%s...", seedPath)
	n, err := repositories.SeedFromJSON(ctx, geocodeCache, seedPath)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	logger.Info("Seeding complete (%d queries).", n)
	return nil
}

func openStorage(cfg config.Config) (*sql.DB, ports.GeocodeCache, error) {
	if cfg.DatabaseURL != "" {
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}

		logger.Info("Initializing postgres schema...")
		if err := repositories.InitPostgresSchema(conn); err != nil {
			conn.Close()
			return nil, nil, fmt.Errorf("schema initialization failed: %w", err)
		}
		return conn, cache.NewSQLGeocodeCache(conn), nil
	}

	conn, err := db.OpenSqlite(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("Initializing sqlite schema path=%s...", cfg.DBPath)
	if err := repositories.InitSchema(conn); err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("schema initialization failed: %w", err)
	}
	return conn, cache.NewSqliteGeocodeCache(conn), nil
}
