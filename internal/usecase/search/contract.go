package search

import (
	"context"

	"github.com/conntour/spacesearch/internal/domain"
)

// CatalogReader provides the full embedded candidate pool for ranking.
type CatalogReader interface {
	GetAllWithEmbedding() []domain.EmbeddedSource
}

// Embedder vectorizes query text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// HistoryRecorder records a completed search for later reconstruction.
type HistoryRecorder interface {
	Add(query string, results []domain.SearchResult) domain.HistoryRecord
}
