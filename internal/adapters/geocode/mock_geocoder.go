package geocode

import (
	"context"
	"coordinates-service/internal/domain"
	"sync/atomic"
)

// MockGeocoder answers from a fixed map. Unknown queries return no places.
type MockGeocoder struct {
	m     map[string][]domain.Place
	err   error
	calls atomic.Int64
}

func NewMockGeocoder(places map[string][]domain.Place) *MockGeocoder {
	m := make(map[string][]domain.Place, len(places))
	for q, p := range places {
		m[normalize(q)] = p
	}
	return &MockGeocoder{m: m}
}

// FailWith makes every later Geocode call return err.
func (g *MockGeocoder) FailWith(err error) {
	g.err = err
}

func (g *MockGeocoder) Geocode(ctx context.Context, query string) ([]domain.Place, error) {
	g.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if g.err != nil {
		return nil, g.err
	}

	places := g.m[normalize(query)]
	out := make([]domain.Place, len(places))
	copy(out, places)
	return out, nil
}

// Calls reports how many times Geocode was invoked.
func (g *MockGeocoder) Calls() int {
	return int(g.calls.Load())
}
