// Package history stores compact records of past searches in memory.
// Records do not survive a process restart.
package history

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/conntour/spacesearch/internal/domain"
)

// record pairs a history record with its insertion sequence number.
// Timestamps have second resolution, so the sequence breaks ordering ties:
// of two records with equal TimeSearched, the later-inserted one sorts first.
type record struct {
	domain.HistoryRecord
	seq uint64
}

// Store is a mutex-guarded in-memory history collection. Add, List, Get and
// Delete are mutually exclusive; none of them blocks on I/O.
type Store struct {
	mu      sync.Mutex
	records []record
	seq     uint64

	now   func() time.Time
	gauge prometheus.Gauge
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the timestamp source (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithGauge tracks the record count in a Prometheus gauge, passed explicitly.
func WithGauge(g prometheus.Gauge) Option {
	return func(s *Store) { s.gauge = g }
}

// NewStore creates an empty history store.
func NewStore(opts ...Option) *Store {
	s := &Store{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add stores the (source id, confidence) pairs of every ranked result under
// a fresh record and returns it. The full list is kept, not just the top
// entries, so results stay reconstructable later.
func (s *Store) Add(query string, results []domain.SearchResult) domain.HistoryRecord {
	entries := make([]domain.HistoryEntry, len(results))
	for i, r := range results {
		entries[i] = domain.HistoryEntry{SourceID: r.ID, Confidence: r.Confidence}
	}

	rec := domain.HistoryRecord{
		ID:           uuid.NewString(),
		Query:        query,
		TimeSearched: s.now().UTC().Format(domain.HistoryTimeFormat),
		Entries:      entries,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.records = append(s.records, record{HistoryRecord: rec, seq: s.seq})
	s.setGauge(len(s.records))
	return rec
}

// List returns the [startIndex, startIndex+limit) window over all records
// sorted most recent first, plus the total record count irrespective of the
// window. A start index past the end yields an empty page.
func (s *Store) List(startIndex, limit int) ([]domain.HistoryRecord, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := len(s.records)

	sorted := make([]record, total)
	copy(sorted, s.records)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].TimeSearched != sorted[j].TimeSearched {
			return sorted[i].TimeSearched > sorted[j].TimeSearched
		}
		return sorted[i].seq > sorted[j].seq
	})

	if startIndex >= total {
		return nil, total
	}
	end := startIndex + limit
	if end > total {
		end = total
	}

	page := make([]domain.HistoryRecord, 0, end-startIndex)
	for _, rec := range sorted[startIndex:end] {
		page = append(page, rec.HistoryRecord)
	}
	return page, total
}

// Get returns the record with the given id, or domain.ErrHistoryNotFound.
func (s *Store) Get(id string) (domain.HistoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.records {
		if rec.ID == id {
			return rec.HistoryRecord, nil
		}
	}
	return domain.HistoryRecord{}, domain.ErrHistoryNotFound
}

// Delete removes the record with the given id and reports whether a removal
// occurred. Deleting an absent id is not an error.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, rec := range s.records {
		if rec.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			s.setGauge(len(s.records))
			return true
		}
	}
	return false
}

// Len returns the current record count.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func (s *Store) setGauge(n int) {
	if s.gauge != nil {
		s.gauge.Set(float64(n))
	}
}
