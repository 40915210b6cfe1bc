package cache

import (
	"context"
	"coordinates-service/internal/domain"
	"coordinates-service/internal/platform/obs"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "geocode:"

// RedisGeocodeCache stores geocoder answers as JSON strings that expire
// after TTL. A zero TTL keeps entries forever.
type RedisGeocodeCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisGeocodeCache(client *redis.Client, ttl time.Duration) *RedisGeocodeCache {
	return &RedisGeocodeCache{Client: client, TTL: ttl}
}

// OpenRedis connects to the server described by a redis:// URL.
func OpenRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("open redis: parse url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("open redis: ping: %w", err)
	}

	return client, nil
}

// Fetch cached places for the given queries with a single MGET.
func (r *RedisGeocodeCache) GetMany(
	ctx context.Context,
	queries []string,
) (_ map[string][]domain.Place, err error) {
	defer obs.Time(ctx, "geocode.redis.GetMany")(&err)

	if r.Client == nil {
		return nil, errors.New("geocode cache: redis client is nil")
	}

	uniq := uniqueKeys(queries)
	if len(uniq) == 0 {
		return map[string][]domain.Place{}, nil
	}

	keys := make([]string, 0, len(uniq))
	for _, q := range uniq {
		keys = append(keys, redisKeyPrefix+q)
	}

	vals, err := r.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: mget: %w", err)
	}

	out := make(map[string][]domain.Place, len(uniq))
	for i, v := range vals {
		// Missing keys come back as nil.
		s, ok := v.(string)
		if !ok {
			continue
		}
		places, err := decodePlaces(s)
		if err != nil {
			return nil, fmt.Errorf("get geocode cache query=%q: %w", uniq[i], err)
		}
		out[uniq[i]] = places
	}

	return out, nil
}

// Store query -> places mappings in one pipeline.
func (r *RedisGeocodeCache) PutMany(ctx context.Context, results map[string][]domain.Place) (err error) {
	defer obs.Time(ctx, "geocode.redis.PutMany")(&err)

	if r.Client == nil {
		return errors.New("geocode cache: redis client is nil")
	}

	if len(results) == 0 {
		return nil
	}

	pipe := r.Client.Pipeline()
	for query, places := range results {
		if strings.TrimSpace(query) == "" {
			return fmt.Errorf("insert geocode cache: empty query key")
		}

		raw, err := encodePlaces(places)
		if err != nil {
			return fmt.Errorf("insert geocode cache query=%q: %w", query, err)
		}
		pipe.Set(ctx, redisKeyPrefix+query, raw, r.TTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("insert geocode cache: pipeline exec: %w", err)
	}

	return nil
}
