package handlers

import (
	"coordinates-service/internal/api/dto"
	"coordinates-service/internal/domain"
	"coordinates-service/internal/ports"
	"coordinates-service/internal/services"
	"math"
	"net/http"
)

// GeodesyHandler exposes distance, projection and path computations.
type GeodesyHandler struct {
	Geodesic      ports.Geodesic
	DefaultFormat domain.Format
}

func (h *GeodesyHandler) Distance(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.DistanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	from, ok := parsePoint(w, r, "from", req.From)
	if !ok {
		return
	}
	to, ok := parsePoint(w, r, "to", req.To)
	if !ok {
		return
	}

	unit := domain.ParseDistanceUnit(req.Unit, domain.UnitMeters)
	db := services.DistanceBearing(h.Geodesic, from, to)

	writeJSON(w, r, http.StatusOK, dto.DistanceResponse{
		From:           coordinatesResponse(from, h.DefaultFormat),
		To:             coordinatesResponse(to, h.DefaultFormat),
		DistanceMeters: db.Distance.Meters(),
		Distance:       db.Distance.Format(unit),
		Humanized:      db.Distance.Humanize(),
		Bearing:        db.Bearing,
	})
}

func (h *GeodesyHandler) Project(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.ProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	from, ok := parsePoint(w, r, "from", req.From)
	if !ok {
		return
	}
	if req.Bearing == nil || req.Distance == nil {
		writeError(w, r, http.StatusBadRequest, "bearing and distance are required")
		return
	}
	if !finite(*req.Bearing) || !finite(*req.Distance) {
		writeError(w, r, http.StatusBadRequest, "bearing and distance must be finite")
		return
	}

	d := domain.NewDistance(*req.Distance, domain.ParseDistanceUnit(req.Unit, domain.UnitMeters))
	to := services.Project(h.Geodesic, from, *req.Bearing, d)

	writeJSON(w, r, http.StatusOK, dto.ProjectResponse{
		From:        coordinatesResponse(from, h.DefaultFormat),
		Coordinates: coordinatesResponse(to, h.DefaultFormat),
	})
}

// Line returns the interpolated geodesic between two points and its midpoint.
func (h *GeodesyHandler) Line(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.LineRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	from, ok := parsePoint(w, r, "from", req.From)
	if !ok {
		return
	}
	to, ok := parsePoint(w, r, "to", req.To)
	if !ok {
		return
	}

	mid := coordinatesResponse(services.Midpoint(h.Geodesic, from, to), h.DefaultFormat)
	writeJSON(w, r, http.StatusOK, dto.PathResponse{
		Points:   pointsResponse(services.InterpolateGeodesicLine(h.Geodesic, from, to)),
		Midpoint: &mid,
	})
}

func (h *GeodesyHandler) Circle(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.CircleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	center, ok := parsePoint(w, r, "center", req.Center)
	if !ok {
		return
	}
	if req.Radius == nil || !finite(*req.Radius) || *req.Radius <= 0 {
		writeError(w, r, http.StatusBadRequest, "radius must be a positive number")
		return
	}

	radius := domain.NewDistance(*req.Radius, domain.ParseDistanceUnit(req.Unit, domain.UnitMeters))
	writeJSON(w, r, http.StatusOK, dto.PathResponse{
		Points: pointsResponse(services.GeodesicCircle(h.Geodesic, center, radius)),
	})
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
