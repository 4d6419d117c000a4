package history

import "github.com/conntour/spacesearch/internal/domain"

// Store is the record storage contract.
type Store interface {
	List(startIndex, limit int) ([]domain.HistoryRecord, int)
	Get(id string) (domain.HistoryRecord, error)
	Delete(id string) bool
}

// SourceResolver resolves source ids against the catalog for reconstruction.
type SourceResolver interface {
	GetByIDs(ids []int) map[int]domain.Source
}
