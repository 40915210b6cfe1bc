package main

import (
	"context"
	"coordinates-service/internal/adapters/cache"
	"coordinates-service/internal/adapters/geocode"
	"coordinates-service/internal/adapters/geodesy"
	"coordinates-service/internal/adapters/repositories"
	"coordinates-service/internal/api"
	"coordinates-service/internal/config"
	"coordinates-service/internal/platform/db"
	"coordinates-service/internal/platform/logger"
	"coordinates-service/internal/ports"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"
)

// storage is the persistence picked at startup: Postgres when DATABASE_URL is
// set, a local SQLite file otherwise.
type storage struct {
	db      *sql.DB
	cache   ports.GeocodeCache
	history ports.HistoryRepository
}

// main is the application composition root.
// It wires concrete adapters (SQLite or Postgres, Redis, Nominatim) behind
// ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found (using environment variables)")
	}

	cfg := config.Load()
	logger.SetDebug(cfg.Debug)

	ctx := context.Background()

	st, err := openStorage(cfg)
	if err != nil {
		logger.Fatal("%v", err)
	}
	defer st.db.Close()

	geocodeCache := st.cache
	if cfg.RedisURL != "" {
		client, err := cache.OpenRedis(ctx, cfg.RedisURL)
		if err != nil {
			logger.Fatal("%v", err)
		}
		defer client.Close()
		geocodeCache = cache.NewRedisGeocodeCache(client, cfg.RedisTTL)
		logger.Info("Geocode cache backend=redis ttl=%s", cfg.RedisTTL)
	}

	if cfg.SeedPath != "" {
		n, err := repositories.SeedFromJSON(ctx, geocodeCache, cfg.SeedPath)
		if err != nil {
			logger.Fatal("%v", err)
		}
		logger.Info("Seeded gazetteer path=%s queries=%d", cfg.SeedPath, n)
	}

	nominatim, err := geocode.NewNominatimGeocoder(geocode.NominatimOptions{
		Server:      cfg.NominatimServer,
		Retries:     cfg.NominatimRetries,
		MinInterval: cfg.NominatimMinInterval,
	})
	if err != nil {
		logger.Fatal("%v", err)
	}

	// Nominatim asks clients to cache; repeated queries never leave the process.
	geocoder, err := geocode.NewCachedGeocoder(nominatim, geocodeCache, cfg.GeocodeLRUSize)
	if err != nil {
		logger.Fatal("%v", err)
	}

	router := api.NewRouter(api.Deps{
		Geodesic: geodesy.NewWGS84(),
		Geocoder: geocoder,
		History:  st.history,
		Format:   cfg.Format,
		Ping:     st.db.PingContext,
	})

	// Timeouts allow for a cold-cache batch search against a throttled geocoder.
	logger.Info("Server listening addr=:%s", cfg.Port)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	logger.Fatal("%v", srv.ListenAndServe())
}

func openStorage(cfg config.Config) (storage, error) {
	if cfg.DatabaseURL != "" {
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return storage{}, err
		}
		if err := repositories.InitPostgresSchema(conn); err != nil {
			conn.Close()
			return storage{}, fmt.Errorf("open storage: %w", err)
		}
		logger.Info("Storage backend=postgres")
		return storage{
			db:      conn,
			cache:   cache.NewSQLGeocodeCache(conn),
			history: repositories.NewSQLHistoryRepository(conn),
		}, nil
	}

	conn, err := db.OpenSqlite(cfg.DBPath)
	if err != nil {
		return storage{}, err
	}
	if err := repositories.InitSchema(conn); err != nil {
		conn.Close()
		return storage{}, fmt.Errorf("open storage: %w", err)
	}
	logger.Info("Storage backend=sqlite path=%s", cfg.DBPath)
	return storage{
		db:      conn,
		cache:   cache.NewSqliteGeocodeCache(conn),
		history: repositories.NewSqliteHistoryRepository(conn),
	}, nil
}
