package services

import (
	"context"
	"coordinates-service/internal/domain"
	"coordinates-service/internal/platform/logger"
	"coordinates-service/internal/platform/obs"
	"coordinates-service/internal/ports"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/width"
)

const (
	DefaultSearchLimit = 20
	MaxSearchLimit     = 50
)

var ErrEmptyQuery = errors.New("search query is empty")

type SearchRequest struct {
	Query string
	// Label of a result produced by parsing coordinates.
	Name   string
	Format domain.Format
	Limit  int
	Offset int
}

// NormalizeQuery folds full-width characters to their ASCII forms and
// collapses whitespace. Geocode cache keys use the same normalization.
func NormalizeQuery(q string) string {
	return strings.Join(strings.Fields(width.Fold.String(q)), " ")
}

// Search resolves a free-text query. Text that parses as coordinates yields a
// single place without contacting the geocoder; anything else is geocoded.
//
// The search is recorded in history when history is non-nil. History
// failures are logged and do not fail the search.
func Search(
	ctx context.Context,
	req SearchRequest,
	geocoder ports.Geocoder,
	history ports.HistoryRepository,
) (_ domain.SearchResult, err error) {
	defer obs.Time(ctx, "search.Search")(&err)

	query := NormalizeQuery(req.Query)
	if query == "" {
		return domain.SearchResult{}, ErrEmptyQuery
	}

	limit, err := searchLimit(req.Limit)
	if err != nil {
		return domain.SearchResult{}, err
	}
	if req.Offset < 0 {
		return domain.SearchResult{}, fmt.Errorf("search: offset must be non-negative, got %d", req.Offset)
	}

	var res domain.SearchResult
	if c, perr := domain.FromString(query); perr == nil {
		res = coordinateResult(query, c, req)
	} else {
		if geocoder == nil {
			return domain.SearchResult{}, fmt.Errorf("search %q: no geocoder configured: %w", query, perr)
		}
		places, gerr := geocoder.Geocode(ctx, query)
		if gerr != nil {
			return domain.SearchResult{}, fmt.Errorf("search %q: geocode: %w", query, gerr)
		}
		res = page(query, domain.SourceGeocoder, places, req.Offset, limit)
	}

	record(ctx, history, res)

	return res, nil
}

func searchLimit(limit int) (int, error) {
	if limit == 0 {
		return DefaultSearchLimit, nil
	}
	if limit < 1 || limit > MaxSearchLimit {
		return 0, fmt.Errorf("search: limit must be between 1 and %d, got %d", MaxSearchLimit, limit)
	}
	return limit, nil
}

// coordinateResult describes parsed coordinates the way a geocoder hit is
// described: the rendering stands in for the country and the typed text is
// kept as the feature.
func coordinateResult(query string, c domain.Coordinates, req SearchRequest) domain.SearchResult {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "Coordinates"
	}
	return domain.SearchResult{
		Query:  query,
		Source: domain.SourceCoordinates,
		Places: []domain.Place{{
			Name:        name,
			CountryName: c.Format(req.Format),
			Feature:     query,
			Coordinates: c,
		}},
		Total: 1,
	}
}

func page(query string, source domain.PlaceSource, places []domain.Place, offset, limit int) domain.SearchResult {
	total := len(places)
	start := min(offset, total)
	end := min(start+limit, total)

	return domain.SearchResult{
		Query:  query,
		Source: source,
		Places: places[start:end],
		Offset: start,
		Total:  total,
	}
}

func record(ctx context.Context, history ports.HistoryRepository, res domain.SearchResult) {
	if history == nil {
		return
	}

	entry := domain.HistoryEntry{
		Query:     res.Query,
		Source:    res.Source,
		CreatedAt: time.Now().UTC(),
	}
	if len(res.Places) > 0 {
		c := res.Places[0].Coordinates
		entry.Coordinates = &c
	}

	if _, err := history.Record(ctx, entry); err != nil {
		logger.Error("req_id=%s record search history query=%q err=%v", obs.RequestID(ctx), res.Query, err)
	}
}
