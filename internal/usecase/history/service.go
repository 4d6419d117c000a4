// Package history reconstructs stored query records into full result sets.
package history

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/conntour/spacesearch/internal/domain"
)

// Service projects compact history records into responses by replaying
// their stored source ids through the catalog.
type Service struct {
	store   Store
	sources SourceResolver
	logger  *zap.Logger
}

// New creates a history service.
func New(store Store, sources SourceResolver, logger *zap.Logger) *Service {
	return &Service{store: store, sources: sources, logger: logger}
}

// List returns one pagination window of history summaries, most recent
// first, plus the total record count. Each summary resolves only the first
// domain.SummaryEntries entries; ids that no longer resolve are dropped, so
// a summary may carry fewer entries than were stored.
func (s *Service) List(startIndex, limit int) domain.HistoryPage {
	records, total := s.store.List(startIndex, limit)

	items := make([]domain.HistorySummary, 0, len(records))
	for _, rec := range records {
		entries := rec.Entries
		if len(entries) > domain.SummaryEntries {
			entries = entries[:domain.SummaryEntries]
		}
		items = append(items, domain.HistorySummary{
			ID:           rec.ID,
			Query:        rec.Query,
			TimeSearched: rec.TimeSearched,
			TopResults:   s.resolve(entries),
		})
	}

	s.logger.Debug("Listed history",
		zap.Int("start_index", startIndex),
		zap.Int("limit", limit),
		zap.Int("returned", len(items)),
		zap.Int("total", total),
	)
	return domain.HistoryPage{Items: items, Total: total}
}

// GetFullResults reconstructs every stored entry of the record, in stored
// order. Returns domain.ErrHistoryNotFound when no such record exists.
func (s *Service) GetFullResults(id string) ([]domain.SearchResult, error) {
	rec, err := s.store.Get(id)
	if err != nil {
		return nil, fmt.Errorf("get history record %s: %w", id, err)
	}
	return s.resolve(rec.Entries), nil
}

// Delete removes a record and reports whether one was removed.
func (s *Service) Delete(id string) bool {
	deleted := s.store.Delete(id)
	if deleted {
		s.logger.Info("Deleted history record", zap.String("history_id", id))
	} else {
		s.logger.Warn("History record not found for deletion", zap.String("history_id", id))
	}
	return deleted
}

// resolve turns stored entries into full results against the catalog,
// preserving entry order and skipping ids that no longer resolve.
func (s *Service) resolve(entries []domain.HistoryEntry) []domain.SearchResult {
	ids := make([]int, len(entries))
	for i, e := range entries {
		ids[i] = e.SourceID
	}
	found := s.sources.GetByIDs(ids)

	results := make([]domain.SearchResult, 0, len(entries))
	for _, e := range entries {
		src, ok := found[e.SourceID]
		if !ok {
			continue
		}
		results = append(results, domain.SearchResult{Source: src, Confidence: e.Confidence})
	}
	return results
}
