package services

import (
	"context"
	"coordinates-service/internal/adapters/geocode"
	"coordinates-service/internal/domain"
	"errors"
	"fmt"
	"sync"
	"testing"
)

type memoryHistory struct {
	mu      sync.Mutex
	entries []domain.HistoryEntry
	err     error
}

func (h *memoryHistory) Record(ctx context.Context, e domain.HistoryEntry) (int64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.err != nil {
		return 0, h.err
	}
	h.entries = append(h.entries, e)
	return int64(len(h.entries)), nil
}

func (h *memoryHistory) Recent(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries, nil
}

func cities(n int) []domain.Place {
	places := make([]domain.Place, 0, n)
	for i := 0; i < n; i++ {
		places = append(places, domain.Place{Name: fmt.Sprintf("City %d", i), Coordinates: domain.NewCoordinates(float64(i), float64(i))})
	}
	return places
}

func TestSearchParsesCoordinates(t *testing.T) {
	gc := geocode.NewMockGeocoder(nil)
	history := &memoryHistory{}

	res, err := Search(context.Background(), SearchRequest{
		Query:  "  N 50° 06.625'   E 008° 40.928' ",
		Name:   "Marker",
		Format: domain.FormatDEC,
	}, gc, history)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Source != domain.SourceCoordinates {
		t.Fatalf("source = %q, want coordinates", res.Source)
	}
	if len(res.Places) != 1 || res.Total != 1 || res.More() {
		t.Fatalf("unexpected result %+v", res)
	}

	p := res.Places[0]
	if p.Name != "Marker" {
		t.Fatalf("name = %q, want Marker", p.Name)
	}
	if p.CountryName != p.Coordinates.StringDEC() {
		t.Fatalf("country name = %q, want DEC rendering %q", p.CountryName, p.Coordinates.StringDEC())
	}
	if p.Feature != "N 50° 06.625' E 008° 40.928'" {
		t.Fatalf("feature = %q, want the normalized query", p.Feature)
	}
	if gc.Calls() != 0 {
		t.Fatalf("geocoder calls = %d, want 0", gc.Calls())
	}

	if len(history.entries) != 1 || history.entries[0].Coordinates == nil {
		t.Fatalf("expected one history entry with coordinates, got %+v", history.entries)
	}
}

func TestSearchFoldsFullWidthInput(t *testing.T) {
	res, err := Search(context.Background(), SearchRequest{Query: "Ｎ５０.５　Ｅ８.２５"}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Places[0].Coordinates.Equal(domain.NewCoordinates(50.5, 8.25)) {
		t.Fatalf("coordinates = %v, want (50.5, 8.25)", res.Places[0].Coordinates)
	}
	if res.Places[0].Name != "Coordinates" {
		t.Fatalf("default name = %q, want Coordinates", res.Places[0].Name)
	}
}

func TestSearchGeocodesText(t *testing.T) {
	gc := geocode.NewMockGeocoder(map[string][]domain.Place{"Springfield": cities(30)})
	history := &memoryHistory{}

	res, err := Search(context.Background(), SearchRequest{Query: "Springfield"}, gc, history)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Source != domain.SourceGeocoder {
		t.Fatalf("source = %q, want geocoder", res.Source)
	}
	if len(res.Places) != DefaultSearchLimit || res.Total != 30 || !res.More() {
		t.Fatalf("got %d places of %d, want %d of 30", len(res.Places), res.Total, DefaultSearchLimit)
	}

	res, err = Search(context.Background(), SearchRequest{Query: "Springfield", Offset: 25, Limit: 10}, gc, history)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Places) != 5 || res.Places[0].Name != "City 25" || res.More() {
		t.Fatalf("unexpected second page %+v", res)
	}

	if len(history.entries) != 2 {
		t.Fatalf("history entries = %d, want 2", len(history.entries))
	}
}

func TestSearchNoResultsIsRecordedWithoutCoordinates(t *testing.T) {
	history := &memoryHistory{}
	res, err := Search(context.Background(), SearchRequest{Query: "Atlantis"}, geocode.NewMockGeocoder(nil), history)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Places) != 0 {
		t.Fatalf("expected no places, got %d", len(res.Places))
	}
	if len(history.entries) != 1 || history.entries[0].Coordinates != nil {
		t.Fatalf("unexpected history %+v", history.entries)
	}
}

func TestSearchValidates(t *testing.T) {
	gc := geocode.NewMockGeocoder(nil)

	if _, err := Search(context.Background(), SearchRequest{Query: "   "}, gc, nil); !errors.Is(err, ErrEmptyQuery) {
		t.Fatalf("got err %v, want ErrEmptyQuery", err)
	}
	if _, err := Search(context.Background(), SearchRequest{Query: "x", Limit: MaxSearchLimit + 1}, gc, nil); err == nil {
		t.Fatalf("expected limit error")
	}
	if _, err := Search(context.Background(), SearchRequest{Query: "x", Offset: -1}, gc, nil); err == nil {
		t.Fatalf("expected offset error")
	}
	if _, err := Search(context.Background(), SearchRequest{Query: "Paris"}, nil, nil); !errors.Is(err, domain.ErrUnparseable) {
		t.Fatalf("got err %v, want it to wrap ErrUnparseable", err)
	}
}

func TestSearchIgnoresHistoryFailure(t *testing.T) {
	history := &memoryHistory{err: errors.New("disk full")}
	if _, err := Search(context.Background(), SearchRequest{Query: "50.5 8.25"}, nil, history); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSearchGeocoderFailure(t *testing.T) {
	gc := geocode.NewMockGeocoder(nil)
	gc.FailWith(errors.New("upstream down"))

	if _, err := Search(context.Background(), SearchRequest{Query: "Paris"}, gc, nil); err == nil {
		t.Fatalf("expected error")
	}
}

func TestSearchBatchKeepsOrder(t *testing.T) {
	gc := geocode.NewMockGeocoder(map[string][]domain.Place{
		"Paris": {{Name: "Paris", Coordinates: domain.NewCoordinates(48.85, 2.35)}},
		"Rome":  {{Name: "Roma", Coordinates: domain.NewCoordinates(41.9, 12.5)}},
	})
	history := &memoryHistory{}

	items, err := SearchBatch(context.Background(), BatchSearchRequest{
		Queries: []string{"Rome", "50.5 8.25", "", "Paris", "Atlantis"},
	}, gc, history)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("expected 5 items, got %d", len(items))
	}

	if items[0].Err != nil || items[0].Result.Places[0].Name != "Roma" {
		t.Fatalf("item 0 = %+v", items[0])
	}
	if items[1].Result.Source != domain.SourceCoordinates {
		t.Fatalf("item 1 source = %q, want coordinates", items[1].Result.Source)
	}
	if !errors.Is(items[2].Err, ErrEmptyQuery) {
		t.Fatalf("item 2 err = %v, want ErrEmptyQuery", items[2].Err)
	}
	if items[3].Result.Places[0].Name != "Paris" {
		t.Fatalf("item 3 = %+v", items[3])
	}
	if items[4].Err != nil || len(items[4].Result.Places) != 0 {
		t.Fatalf("item 4 = %+v", items[4])
	}

	if gc.Calls() != 3 {
		t.Fatalf("geocoder calls = %d, want 3", gc.Calls())
	}
	if len(history.entries) != 4 {
		t.Fatalf("history entries = %d, want 4", len(history.entries))
	}
}

func TestSearchBatchUsesBatchGeocoder(t *testing.T) {
	upstream := geocode.NewMockGeocoder(map[string][]domain.Place{
		"Paris": {{Name: "Paris"}},
	})
	cached, err := geocode.NewCachedGeocoder(upstream, nil, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items, err := SearchBatch(context.Background(), BatchSearchRequest{
		Queries: []string{"Paris", "Paris", " Paris "},
	}, cached, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, it := range items {
		if it.Err != nil || len(it.Result.Places) != 1 {
			t.Fatalf("item %d = %+v", i, it)
		}
	}
	if upstream.Calls() != 1 {
		t.Fatalf("upstream calls = %d, want 1", upstream.Calls())
	}
}

func TestSearchBatchPerQueryFailure(t *testing.T) {
	gc := geocode.NewMockGeocoder(nil)
	gc.FailWith(errors.New("upstream down"))

	items, err := SearchBatch(context.Background(), BatchSearchRequest{
		Queries: []string{"Paris", "1.5 2.5"},
	}, gc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items[0].Err == nil {
		t.Fatalf("expected item 0 to fail")
	}
	if items[1].Err != nil {
		t.Fatalf("item 1 err = %v, want nil", items[1].Err)
	}
}

func TestSearchBatchTooManyQueries(t *testing.T) {
	queries := make([]string, MaxBatchQueries+1)
	if _, err := SearchBatch(context.Background(), BatchSearchRequest{Queries: queries}, nil, nil); err == nil {
		t.Fatalf("expected error")
	}
}
