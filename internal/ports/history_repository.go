package ports

import (
	"context"
	"coordinates-service/internal/domain"
)

// Port: a boundary for recording and listing past searches.
type HistoryRepository interface {
	// Store a search and return its assigned ID.
	Record(ctx context.Context, entry domain.HistoryEntry) (int64, error)
	// Return up to limit entries, most recent first.
	Recent(ctx context.Context, limit int) ([]domain.HistoryEntry, error)
}
