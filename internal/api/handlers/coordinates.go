package handlers

import (
	"coordinates-service/internal/api/dto"
	"coordinates-service/internal/domain"
	"errors"
	"net/http"
	"strings"
)

// CoordinatesHandler exposes the parser and formatters.
type CoordinatesHandler struct {
	DefaultFormat domain.Format
}

func (h *CoordinatesHandler) format(value string) domain.Format {
	return domain.ParseFormat(value, domain.ParseFormat(string(h.DefaultFormat), domain.FormatDMM))
}

// Parse detects the notation of ?q= and returns the coordinates in every
// rendering.
func (h *CoordinatesHandler) Parse(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query().Get("q")
	if strings.TrimSpace(q) == "" {
		writeError(w, r, http.StatusBadRequest, "q is required")
		return
	}

	c, notation, err := domain.Detect(q)
	if err != nil {
		if errors.Is(err, domain.ErrUnparseable) {
			writeError(w, r, http.StatusUnprocessableEntity, "unparseable coordinates")
			return
		}
		writeInternal(w, r, "parse coordinates", err)
		return
	}

	res := dto.ParseResponse{
		Input:       q,
		Sanitized:   domain.Sanitize(q),
		Notation:    string(notation),
		Coordinates: coordinatesResponse(c, h.format(r.URL.Query().Get("format"))),
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *CoordinatesHandler) Sanitize(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query().Get("q")
	writeJSON(w, r, http.StatusOK, dto.SanitizeResponse{Input: q, Sanitized: domain.Sanitize(q)})
}

// Format renders signed decimal lat/lng.
func (h *CoordinatesHandler) Format(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.FormatRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Lat == nil || req.Lng == nil {
		writeError(w, r, http.StatusBadRequest, "lat and lng are required")
		return
	}
	if !finite(*req.Lat) || !finite(*req.Lng) {
		writeError(w, r, http.StatusBadRequest, "lat and lng must be finite")
		return
	}

	c := domain.NewCoordinates(*req.Lat, *req.Lng)
	writeJSON(w, r, http.StatusOK, coordinatesResponse(c, h.format(req.Format)))
}

// Wherigo decodes a Reverse Wherigo triplet.
func (h *CoordinatesHandler) Wherigo(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.WherigoRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.A == nil || req.B == nil || req.C == nil {
		writeError(w, r, http.StatusBadRequest, "a, b and c are required")
		return
	}
	if *req.A < 0 || *req.B < 0 || *req.C < 0 {
		writeError(w, r, http.StatusBadRequest, "a, b and c must be non-negative")
		return
	}

	c := domain.FromReverseWherigo(*req.A, *req.B, *req.C)
	writeJSON(w, r, http.StatusOK, coordinatesResponse(c, h.format("")))
}
