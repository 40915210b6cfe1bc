package services

import (
	"context"
	"coordinates-service/internal/domain"
	"coordinates-service/internal/platform/obs"
	"coordinates-service/internal/ports"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Maximum number of concurrent geocoder calls when the geocoder has no
// batch support.
const batchConcurrency = 5

const MaxBatchQueries = 100

type BatchSearchRequest struct {
	Queries []string
	Name    string
	Format  domain.Format
	Limit   int
}

// BatchSearchItem is the outcome for one query of a batch. Err is set
// instead of Result when that query failed.
type BatchSearchItem struct {
	Result domain.SearchResult
	Err    error
}

// SearchBatch resolves many queries. Queries that parse as coordinates are
// answered locally; the rest are geocoded in one batch when the geocoder
// supports it, otherwise concurrently. Items keep the order of req.Queries.
func SearchBatch(
	ctx context.Context,
	req BatchSearchRequest,
	geocoder ports.Geocoder,
	history ports.HistoryRepository,
) (_ []BatchSearchItem, err error) {
	defer obs.Time(ctx, "search.SearchBatch")(&err)

	if len(req.Queries) == 0 {
		return []BatchSearchItem{}, nil
	}
	if len(req.Queries) > MaxBatchQueries {
		return nil, fmt.Errorf("search batch: at most %d queries allowed, got %d", MaxBatchQueries, len(req.Queries))
	}

	limit, err := searchLimit(req.Limit)
	if err != nil {
		return nil, err
	}

	items := make([]BatchSearchItem, len(req.Queries))
	queries := make([]string, len(req.Queries))
	pending := make([]int, 0, len(req.Queries))

	for i, raw := range req.Queries {
		q := NormalizeQuery(raw)
		queries[i] = q
		if q == "" {
			items[i].Err = ErrEmptyQuery
			continue
		}
		if c, perr := domain.FromString(q); perr == nil {
			items[i].Result = coordinateResult(q, c, SearchRequest{Name: req.Name, Format: req.Format})
			continue
		}
		pending = append(pending, i)
	}

	if len(pending) > 0 {
		if geocoder == nil {
			for _, i := range pending {
				items[i].Err = fmt.Errorf("search %q: no geocoder configured", queries[i])
			}
		} else if err := geocodePending(ctx, geocoder, queries, pending, limit, items); err != nil {
			return nil, err
		}
	}

	for _, it := range items {
		if it.Err == nil {
			record(ctx, history, it.Result)
		}
	}

	return items, nil
}

func geocodePending(
	ctx context.Context,
	geocoder ports.Geocoder,
	queries []string,
	pending []int,
	limit int,
	items []BatchSearchItem,
) error {
	if bg, ok := geocoder.(ports.BatchGeocoder); ok {
		uniq := make([]string, 0, len(pending))
		seen := make(map[string]struct{}, len(pending))
		for _, i := range pending {
			if _, ok := seen[queries[i]]; ok {
				continue
			}
			seen[queries[i]] = struct{}{}
			uniq = append(uniq, queries[i])
		}

		found, err := bg.GeocodeMany(ctx, uniq)
		if err != nil {
			return fmt.Errorf("search batch: geocode many: %w", err)
		}
		for _, i := range pending {
			items[i].Result = page(queries[i], domain.SourceGeocoder, found[queries[i]], 0, limit)
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)

	// Each goroutine writes only its own item.
	for _, i := range pending {
		g.Go(func() error {
			places, err := geocoder.Geocode(gctx, queries[i])
			if err != nil {
				// One failed lookup does not cancel the rest of the batch.
				if errors.Is(err, context.Canceled) && ctx.Err() != nil {
					return err
				}
				items[i].Err = fmt.Errorf("search %q: geocode: %w", queries[i], err)
				return nil
			}
			items[i].Result = page(queries[i], domain.SourceGeocoder, places, 0, limit)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("search batch: %w", err)
	}
	return nil
}
