package config

import (
	"coordinates-service/internal/domain"
	"coordinates-service/internal/platform/logger"
	"os"
	"strconv"
	"strings"
	"time"
)

// Get returns the environment variable key, or fallback when it is unset or
// blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// GetInt is Get for integers. Malformed values are logged and ignored.
func GetInt(key string, fallback int) int {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logger.Error("config: invalid integer key=%s value=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func GetBool(key string, fallback bool) bool {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		logger.Error("config: invalid boolean key=%s value=%q, using %t", key, v, fallback)
		return fallback
	}
	return b
}

func GetDuration(key string, fallback time.Duration) time.Duration {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		logger.Error("config: invalid duration key=%s value=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}

// Config holds the settings shared by the binaries.
type Config struct {
	Port        string
	DBPath      string
	DatabaseURL string
	SeedPath    string

	RedisURL string
	RedisTTL time.Duration

	NominatimServer      string
	NominatimRetries     int
	NominatimMinInterval time.Duration
	GeocodeLRUSize       int

	Format domain.Format
	Debug  bool
}

// Load reads Config from the environment. Call godotenv.Load first to pick
// up a .env file.
func Load() Config {
	retries := GetInt("NOMINATIM_RETRIES", 1)
	if retries < 0 || retries > 5 {
		logger.Error("config: NOMINATIM_RETRIES=%d out of range 0..5, using 1", retries)
		retries = 1
	}

	lruSize := GetInt("GEOCODE_LRU_SIZE", 512)
	if lruSize < 1 {
		logger.Error("config: GEOCODE_LRU_SIZE=%d must be positive, using 512", lruSize)
		lruSize = 512
	}

	return Config{
		Port:        Get("PORT", "8080"),
		DBPath:      Get("DB_PATH", "data/app.db"),
		DatabaseURL: Get("DATABASE_URL", ""),
		SeedPath:    Get("SEED_PATH", ""),

		RedisURL: Get("REDIS_URL", ""),
		RedisTTL: GetDuration("REDIS_TTL", 24*time.Hour),

		NominatimServer:      Get("NOMINATIM_SERVER", "https://nominatim.openstreetmap.org"),
		NominatimRetries:     retries,
		NominatimMinInterval: GetDuration("NOMINATIM_MIN_INTERVAL", time.Second),
		GeocodeLRUSize:       lruSize,

		Format: domain.ParseFormat(Get("COORDINATES_FORMAT", ""), domain.FormatDMM),
		Debug:  GetBool("LOG_DEBUG", false),
	}
}
