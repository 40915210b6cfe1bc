package handlers

import (
	"coordinates-service/internal/api/dto"
	"coordinates-service/internal/domain"
	"coordinates-service/internal/platform/logger"
	"coordinates-service/internal/platform/obs"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode failed: req_id=%s method=%s path=%s err=%v", obs.RequestID(r.Context()), r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeInternal logs the cause and hides it from the client.
func writeInternal(w http.ResponseWriter, r *http.Request, what string, err error) {
	logger.Error("%s failed: req_id=%s err=%v", what, obs.RequestID(r.Context()), err)
	writeError(w, r, http.StatusInternalServerError, "internal server error")
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.Header().Set("Allow", method)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}

// decodeJSON reads exactly one JSON object into v, writing a 400 response
// and returning false on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

// parsePoint parses free-text coordinates for the named field, writing a 400
// (missing) or 422 (unparseable) response on failure.
func parsePoint(w http.ResponseWriter, r *http.Request, field, text string) (domain.Coordinates, bool) {
	if strings.TrimSpace(text) == "" {
		writeError(w, r, http.StatusBadRequest, field+" is required")
		return domain.Coordinates{}, false
	}

	c, err := domain.FromString(text)
	if err != nil {
		if errors.Is(err, domain.ErrUnparseable) {
			writeError(w, r, http.StatusUnprocessableEntity, field+": unparseable coordinates")
			return domain.Coordinates{}, false
		}
		writeInternal(w, r, "parse "+field, err)
		return domain.Coordinates{}, false
	}
	return c, true
}

// queryInt reads an optional integer query parameter; absent means 0.
func queryInt(r *http.Request, key string) (int, error) {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}

func coordinatesResponse(c domain.Coordinates, f domain.Format) dto.CoordinatesResponse {
	return dto.CoordinatesResponse{
		Lat:       c.Lat(),
		Lng:       c.Lng(),
		DEC:       c.StringDEC(),
		DMM:       c.StringDMM(),
		DMS:       c.StringDMS(),
		Formatted: c.Format(f),
	}
}

func pointsResponse(points []domain.Coordinates) []dto.PointResponse {
	out := make([]dto.PointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, dto.PointResponse{Lat: p.RawLat(), Lng: p.RawLng()})
	}
	return out
}
