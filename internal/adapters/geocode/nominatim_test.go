package geocode

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/muesli/gominatim"
)

func newTestNominatim(t *testing.T, retries int, search searchFunc) *NominatimGeocoder {
	t.Helper()
	n, err := NewNominatimGeocoder(NominatimOptions{Retries: retries, Limit: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n.search = search
	return n
}

func TestNominatimGeocodeConvertsResults(t *testing.T) {
	var gotQuery gominatim.SearchQuery
	n := newTestNominatim(t, 0, func(q gominatim.SearchQuery) ([]gominatim.SearchResult, error) {
		gotQuery = q
		return []gominatim.SearchResult{
			{DisplayName: "Frankfurt am Main, Hessen, Deutschland", Lat: "50.1106444", Lon: "8.6820917", Class: "boundary", Type: "administrative"},
			{DisplayName: "broken", Lat: "north", Lon: "8"},
		}, nil
	})

	places, err := n.Geocode(context.Background(), "  Frankfurt   am Main ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery.Q != "Frankfurt am Main" || gotQuery.Limit != 5 {
		t.Fatalf("query = %+v, want normalized text and limit 5", gotQuery)
	}
	if len(places) != 1 {
		t.Fatalf("expected 1 place, got %d", len(places))
	}

	p := places[0]
	if p.Name != "Frankfurt am Main" || p.Region != "Hessen" || p.CountryName != "Deutschland" {
		t.Fatalf("unexpected place %+v", p)
	}
	if p.Feature != "boundary/administrative" {
		t.Fatalf("feature = %q, want boundary/administrative", p.Feature)
	}
	if !p.Coordinates.Equal(newCoords(50.1106444, 8.6820917)) {
		t.Fatalf("coordinates = %v", p.Coordinates)
	}
}

func TestNominatimRetriesTransientErrors(t *testing.T) {
	calls := 0
	n := newTestNominatim(t, 2, func(q gominatim.SearchQuery) ([]gominatim.SearchResult, error) {
		calls++
		if calls < 3 {
			return nil, errors.New("unexpected end of JSON input")
		}
		return []gominatim.SearchResult{{DisplayName: "X", Lat: "1", Lon: "2"}}, nil
	})

	places, err := n.Geocode(context.Background(), "x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
	if len(places) != 1 {
		t.Fatalf("expected 1 place, got %d", len(places))
	}
}

func TestNominatimDoesNotRetryPermanentErrors(t *testing.T) {
	calls := 0
	n := newTestNominatim(t, 3, func(q gominatim.SearchQuery) ([]gominatim.SearchResult, error) {
		calls++
		return nil, errors.New("403 forbidden")
	})

	if _, err := n.Geocode(context.Background(), "x"); err == nil {
		t.Fatalf("expected error")
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestNominatimThrottleHonorsContext(t *testing.T) {
	n := newTestNominatim(t, 0, func(q gominatim.SearchQuery) ([]gominatim.SearchResult, error) {
		return nil, nil
	})
	n.minInterval = time.Hour

	if _, err := n.Geocode(context.Background(), "first"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := n.Geocode(ctx, "second")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("got err %v, want deadline exceeded", err)
	}
}

func TestNominatimRejectsEmptyQuery(t *testing.T) {
	n := newTestNominatim(t, 0, func(q gominatim.SearchQuery) ([]gominatim.SearchResult, error) {
		t.Fatalf("search must not be called")
		return nil, nil
	})
	if _, err := n.Geocode(context.Background(), "   "); err == nil {
		t.Fatalf("expected error")
	}
}
