package handlers

import (
	"coordinates-service/internal/api/dto"
	"coordinates-service/internal/domain"
	"coordinates-service/internal/ports"
	"net/http"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 200
)

// HistoryHandler exposes read-only access to recorded searches.
type HistoryHandler struct {
	History       ports.HistoryRepository
	DefaultFormat domain.Format
}

func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	limit, err := queryInt(r, "limit")
	if err != nil || limit < 0 || limit > maxHistoryLimit {
		writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 200")
		return
	}
	if limit == 0 {
		limit = defaultHistoryLimit
	}

	entries, err := h.History.Recent(r.Context(), limit)
	if err != nil {
		writeInternal(w, r, "list history", err)
		return
	}

	res := dto.ListHistoryResponse{
		Entries: make([]dto.HistoryEntryResponse, 0, len(entries)),
	}
	for _, e := range entries {
		item := dto.HistoryEntryResponse{
			ID:        e.ID,
			Query:     e.Query,
			Source:    string(e.Source),
			CreatedAt: e.CreatedAt,
		}
		if e.Coordinates != nil {
			c := coordinatesResponse(*e.Coordinates, h.DefaultFormat)
			item.Coordinates = &c
		}
		res.Entries = append(res.Entries, item)
	}

	writeJSON(w, r, http.StatusOK, res)
}
