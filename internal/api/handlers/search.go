package handlers

import (
	"coordinates-service/internal/api/dto"
	"coordinates-service/internal/domain"
	"coordinates-service/internal/ports"
	"coordinates-service/internal/services"
	"errors"
	"net/http"
)

// SearchHandler resolves free text to places, either by parsing it as
// coordinates or through the geocoder.
type SearchHandler struct {
	Geocoder      ports.Geocoder
	History       ports.HistoryRepository
	DefaultFormat domain.Format
}

func (h *SearchHandler) format(value string) domain.Format {
	return domain.ParseFormat(value, domain.ParseFormat(string(h.DefaultFormat), domain.FormatDMM))
}

func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	limit, err := queryInt(r, "limit")
	if err != nil || limit < 0 || limit > services.MaxSearchLimit {
		writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 50")
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil || offset < 0 {
		writeError(w, r, http.StatusBadRequest, "offset must be non-negative")
		return
	}

	q := r.URL.Query()
	f := h.format(q.Get("format"))
	svcReq := services.SearchRequest{
		Query:  q.Get("q"),
		Name:   q.Get("name"),
		Format: f,
		Limit:  limit,
		Offset: offset,
	}

	res, err := services.Search(r.Context(), svcReq, h.Geocoder, h.History)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyQuery):
			writeError(w, r, http.StatusBadRequest, "q is required")
		case h.Geocoder == nil && errors.Is(err, domain.ErrUnparseable):
			writeError(w, r, http.StatusUnprocessableEntity, "unparseable coordinates and no geocoder configured")
		default:
			writeInternal(w, r, "search", err)
		}
		return
	}

	writeJSON(w, r, http.StatusOK, searchResponse(res, f))
}

// Batch resolves up to services.MaxBatchQueries queries in one request.
func (h *SearchHandler) Batch(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.BatchSearchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Queries) > services.MaxBatchQueries {
		writeError(w, r, http.StatusBadRequest, "too many queries")
		return
	}
	if req.Limit < 0 || req.Limit > services.MaxSearchLimit {
		writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 50")
		return
	}

	f := h.format(req.Format)
	items, err := services.SearchBatch(r.Context(), services.BatchSearchRequest{
		Queries: req.Queries,
		Name:    req.Name,
		Format:  f,
		Limit:   req.Limit,
	}, h.Geocoder, h.History)
	if err != nil {
		writeInternal(w, r, "search batch", err)
		return
	}

	res := dto.BatchSearchResponse{Results: make([]dto.BatchSearchItemResponse, 0, len(items))}
	for _, it := range items {
		if it.Err != nil {
			res.Results = append(res.Results, dto.BatchSearchItemResponse{Error: it.Err.Error()})
			continue
		}
		sr := searchResponse(it.Result, f)
		res.Results = append(res.Results, dto.BatchSearchItemResponse{Result: &sr})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func searchResponse(res domain.SearchResult, f domain.Format) dto.SearchResponse {
	out := dto.SearchResponse{
		Query:  res.Query,
		Source: string(res.Source),
		Offset: res.Offset,
		Total:  res.Total,
		More:   res.More(),
		Places: make([]dto.PlaceResponse, 0, len(res.Places)),
	}
	for _, p := range res.Places {
		out.Places = append(out.Places, dto.PlaceResponse{
			Name:        p.Name,
			CountryCode: p.CountryCode,
			CountryName: p.CountryName,
			Region:      p.Region,
			Feature:     p.Feature,
			Coordinates: coordinatesResponse(p.Coordinates, f),
		})
	}
	return out
}
