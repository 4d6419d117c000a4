package search

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/conntour/spacesearch/internal/domain"
	"github.com/conntour/spacesearch/internal/domain/vector"
	"github.com/conntour/spacesearch/internal/metrics"
)

// Service performs semantic search over the catalog and records completed
// searches into history.
type Service struct {
	catalog CatalogReader
	embed   Embedder
	history HistoryRecorder
	logger  *zap.Logger
}

// New creates a search service.
func New(catalog CatalogReader, embed Embedder, history HistoryRecorder, logger *zap.Logger) *Service {
	return &Service{catalog: catalog, embed: embed, history: history, logger: logger}
}

// Search ranks every embedded catalog source against the query and returns
// at most limit results, most similar first. The full ranked list (not the
// truncated page) is recorded into history when saveToHistory is set, so
// past results stay fully reconstructable.
//
// An empty or whitespace-only query yields no results without touching the
// embedder or the catalog. A query embedding failure is logged and also
// yields no results; it never aborts the request.
func (s *Service) Search(ctx context.Context, query string, limit int, saveToHistory bool) []domain.SearchResult {
	query = strings.TrimSpace(query)
	if query == "" {
		metrics.SearchRequestsTotal.WithLabelValues("empty").Inc()
		return nil
	}

	embResult, err := s.embed.Embed(ctx, query)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("embed_error").Inc()
		s.logger.Error("Failed to embed query", zap.String("query", query), zap.Error(err))
		return nil
	}

	queryVec, ok := vector.Normalize(embResult.Embedding)
	if !ok {
		metrics.SearchRequestsTotal.WithLabelValues("embed_error").Inc()
		s.logger.Error("Query embedding has zero norm", zap.String("query", query))
		return nil
	}

	ranked := rank(queryVec, s.catalog.GetAllWithEmbedding())
	metrics.SearchCandidates.Observe(float64(len(ranked)))
	metrics.SearchRequestsTotal.WithLabelValues("ok").Inc()

	if saveToHistory && len(ranked) > 0 {
		rec := s.history.Add(query, ranked)
		s.logger.Debug("Recorded search into history",
			zap.String("history_id", rec.ID),
			zap.Int("entries", len(rec.Entries)),
		)
	}

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	s.logger.Info("Search completed",
		zap.String("query", query),
		zap.Int("results", len(ranked)),
	)
	return ranked
}
