package api

import (
	"context"
	"coordinates-service/internal/api/handlers"
	"coordinates-service/internal/domain"
	"coordinates-service/internal/ports"
	"net/http"
)

// Dependencies of the HTTP API. Geocoder and History may be nil: searches
// then only understand coordinates and nothing is recorded. Ping, when set,
// is checked by /health.
type Deps struct {
	Geodesic ports.Geodesic
	Geocoder ports.Geocoder
	History  ports.HistoryRepository
	Format   domain.Format
	Ping     func(ctx context.Context) error
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps Deps) http.Handler {
	mux := http.NewServeMux()

	healthHandler := &handlers.HealthHandler{Ping: deps.Ping}
	coordHandler := &handlers.CoordinatesHandler{DefaultFormat: deps.Format}
	geoHandler := &handlers.GeodesyHandler{Geodesic: deps.Geodesic, DefaultFormat: deps.Format}
	searchHandler := &handlers.SearchHandler{
		Geocoder:      deps.Geocoder,
		History:       deps.History,
		DefaultFormat: deps.Format,
	}

	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/coordinates/parse", coordHandler.Parse)
	mux.HandleFunc("/coordinates/sanitize", coordHandler.Sanitize)
	mux.HandleFunc("/coordinates/format", coordHandler.Format)
	mux.HandleFunc("/coordinates/wherigo", coordHandler.Wherigo)
	mux.HandleFunc("/geodesy/distance", geoHandler.Distance)
	mux.HandleFunc("/geodesy/project", geoHandler.Project)
	mux.HandleFunc("/geodesy/line", geoHandler.Line)
	mux.HandleFunc("/geodesy/circle", geoHandler.Circle)
	mux.HandleFunc("/search", searchHandler.Search)
	mux.HandleFunc("/search/batch", searchHandler.Batch)

	if deps.History != nil {
		historyHandler := &handlers.HistoryHandler{History: deps.History, DefaultFormat: deps.Format}
		mux.HandleFunc("/history", historyHandler.List)
	}

	// Request ID is outermost so the access log line carries it.
	return requestIDMiddleware(loggingMiddleware(mux))
}
