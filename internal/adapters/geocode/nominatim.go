package geocode

import (
	"context"
	"coordinates-service/internal/domain"
	"coordinates-service/internal/platform/logger"
	"coordinates-service/internal/platform/obs"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/muesli/gominatim"
)

const (
	DefaultNominatimServer = "https://nominatim.openstreetmap.org"
	defaultResultLimit     = 50
)

type searchFunc func(q gominatim.SearchQuery) ([]gominatim.SearchResult, error)

// gominatim keeps the server in a package variable.
var setServerOnce sync.Once

// NominatimGeocoder implements ports.Geocoder against an OpenStreetMap
// Nominatim server.
//
// Requests are spaced by at least minInterval (the public server allows one
// request per second) and transient decode failures are retried with
// exponential backoff. The geocoder is safe for concurrent use; concurrent
// calls are serialized by the throttle.
type NominatimGeocoder struct {
	retries     int
	minInterval time.Duration
	limit       int
	search      searchFunc

	mu   sync.Mutex
	last time.Time
}

type NominatimOptions struct {
	Server      string
	Retries     int
	MinInterval time.Duration
	// Maximum number of places requested per query.
	Limit int
}

func NewNominatimGeocoder(opts NominatimOptions) (*NominatimGeocoder, error) {
	if opts.Retries < 0 {
		return nil, fmt.Errorf("nominatim: retries must be non-negative, got %d", opts.Retries)
	}
	if opts.MinInterval < 0 {
		return nil, errors.New("nominatim: min interval must be non-negative")
	}

	server := strings.TrimSpace(opts.Server)
	if server == "" {
		server = DefaultNominatimServer
	}
	setServerOnce.Do(func() {
		gominatim.SetServer(server)
	})

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultResultLimit
	}

	return &NominatimGeocoder{
		retries:     opts.Retries,
		minInterval: opts.MinInterval,
		limit:       limit,
		search: func(q gominatim.SearchQuery) ([]gominatim.SearchResult, error) {
			return q.Get()
		},
	}, nil
}

func (n *NominatimGeocoder) Geocode(ctx context.Context, query string) (_ []domain.Place, err error) {
	defer obs.Time(ctx, "nominatim.Geocode")(&err)

	q := normalize(query)
	if q == "" {
		return nil, errors.New("nominatim: query must be non-empty")
	}

	res, err := n.searchWithRetry(ctx, gominatim.SearchQuery{Q: q, Limit: n.limit})
	if err != nil {
		return nil, fmt.Errorf("nominatim search %q: %w", q, err)
	}

	places := make([]domain.Place, 0, len(res))
	for _, r := range res {
		p, err := toPlace(r)
		if err != nil {
			logger.Debug("nominatim: skip result query=%q err=%v", q, err)
			continue
		}
		places = append(places, p)
	}

	return places, nil
}

// searchWithRetry retries transient failures (truncated or empty bodies)
// using exponential backoff while respecting context cancellation.
func (n *NominatimGeocoder) searchWithRetry(
	ctx context.Context,
	q gominatim.SearchQuery,
) ([]gominatim.SearchResult, error) {
	attempts := n.retries + 1
	backoff := 150 * time.Millisecond

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := n.wait(ctx); err != nil {
			return nil, err
		}

		res, err := n.search(q)
		if err == nil {
			if attempt > 1 {
				logger.Info("nominatim recovered after %d attempt(s) for %q", attempt, q.Q)
			}
			return res, nil
		}
		lastErr = err

		if !isTransient(err) || attempt == attempts {
			return nil, lastErr
		}
		logger.Error("transient nominatim error (attempt %d/%d, will retry) query=%q err=%v", attempt, attempts, q.Q, err)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}

// wait blocks until minInterval has passed since the previous request.
func (n *NominatimGeocoder) wait(ctx context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if delta := time.Since(n.last); !n.last.IsZero() && delta < n.minInterval {
		timer := time.NewTimer(n.minInterval - delta)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	n.last = time.Now()
	return nil
}

func isTransient(err error) bool {
	s := err.Error()
	return strings.Contains(s, "unexpected end of JSON") || strings.Contains(s, "EOF")
}

// toPlace maps a search hit. The display name is a comma separated list from
// the most specific part to the country.
func toPlace(r gominatim.SearchResult) (domain.Place, error) {
	lat, err := strconv.ParseFloat(r.Lat, 64)
	if err != nil {
		return domain.Place{}, fmt.Errorf("latitude %q: %w", r.Lat, err)
	}
	lng, err := strconv.ParseFloat(r.Lon, 64)
	if err != nil {
		return domain.Place{}, fmt.Errorf("longitude %q: %w", r.Lon, err)
	}

	parts := strings.Split(r.DisplayName, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	p := domain.Place{
		Name:        parts[0],
		Feature:     strings.Trim(r.Class+"/"+r.Type, "/"),
		Coordinates: domain.NewCoordinates(lat, lng),
	}
	if len(parts) > 1 {
		p.CountryName = parts[len(parts)-1]
	}
	if len(parts) > 2 {
		p.Region = parts[len(parts)-2]
	}

	return p, nil
}
