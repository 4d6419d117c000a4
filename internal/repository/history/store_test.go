package history

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/conntour/spacesearch/internal/domain"
)

func makeResults(ids ...int) []domain.SearchResult {
	results := make([]domain.SearchResult, len(ids))
	for i, id := range ids {
		results[i] = domain.SearchResult{
			Source:     domain.Source{ID: id},
			Confidence: 1.0 - float64(i)*0.1,
		}
	}
	return results
}

// tickingClock returns a clock advancing one second per call.
func tickingClock() func() time.Time {
	base := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	calls := 0
	return func() time.Time {
		t := base.Add(time.Duration(calls) * time.Second)
		calls++
		return t
	}
}

func TestAdd_StoresAllEntries(t *testing.T) {
	s := NewStore(WithClock(tickingClock()))

	rec := s.Add("mars rover", makeResults(4, 2, 9, 1, 7))
	if rec.ID == "" {
		t.Fatal("expected a generated record id")
	}
	if rec.Query != "mars rover" {
		t.Errorf("unexpected query %q", rec.Query)
	}
	if rec.TimeSearched != "2026-08-25T12:00:00Z" {
		t.Errorf("unexpected timestamp %q", rec.TimeSearched)
	}
	if len(rec.Entries) != 5 {
		t.Fatalf("expected all 5 entries stored, got %d", len(rec.Entries))
	}
	if rec.Entries[0].SourceID != 4 || rec.Entries[4].SourceID != 7 {
		t.Error("entries must preserve result order")
	}
}

func TestGet_RoundTrip(t *testing.T) {
	s := NewStore(WithClock(tickingClock()))
	results := makeResults(3, 1, 2)

	rec := s.Add("saturn", results)

	got, err := s.Get(rec.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Entries) != len(results) {
		t.Fatalf("expected %d entries, got %d", len(results), len(got.Entries))
	}
	for i, e := range got.Entries {
		if e.SourceID != results[i].ID || e.Confidence != results[i].Confidence {
			t.Errorf("entry %d: got (%d, %f), want (%d, %f)",
				i, e.SourceID, e.Confidence, results[i].ID, results[i].Confidence)
		}
	}
}

func TestGet_NotFound(t *testing.T) {
	s := NewStore()

	_, err := s.Get("no-such-id")
	if !errors.Is(err, domain.ErrHistoryNotFound) {
		t.Fatalf("expected ErrHistoryNotFound, got %v", err)
	}
}

func TestList_MostRecentFirst(t *testing.T) {
	s := NewStore(WithClock(tickingClock()))

	first := s.Add("q1", makeResults(1))
	second := s.Add("q2", makeResults(2))
	third := s.Add("q3", makeResults(3))

	page, total := s.List(0, 10)
	if total != 3 {
		t.Fatalf("expected total 3, got %d", total)
	}
	if len(page) != 3 {
		t.Fatalf("expected 3 records, got %d", len(page))
	}
	if page[0].ID != third.ID || page[1].ID != second.ID || page[2].ID != first.ID {
		t.Error("expected most recent record first")
	}
}

func TestList_SameTimestampTieBreak(t *testing.T) {
	// Frozen clock: every record shares one second-resolution timestamp.
	frozen := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	s := NewStore(WithClock(func() time.Time { return frozen }))

	older := s.Add("q1", makeResults(1))
	newer := s.Add("q2", makeResults(2))

	page, _ := s.List(0, 10)
	if page[0].ID != newer.ID || page[1].ID != older.ID {
		t.Error("expected later-inserted record first on timestamp tie")
	}
}

func TestList_Pagination(t *testing.T) {
	s := NewStore(WithClock(tickingClock()))
	for i := 0; i < 5; i++ {
		s.Add("q", makeResults(i+1))
	}

	page, total := s.List(4, 2)
	if total != 5 {
		t.Errorf("expected total 5 regardless of window, got %d", total)
	}
	if len(page) != 1 {
		t.Fatalf("expected exactly 1 record (the oldest), got %d", len(page))
	}
	if page[0].Entries[0].SourceID != 1 {
		t.Error("expected the oldest record on the last page")
	}
}

func TestList_StartBeyondEnd(t *testing.T) {
	s := NewStore()
	s.Add("q", makeResults(1))

	page, total := s.List(10, 5)
	if len(page) != 0 {
		t.Errorf("expected empty page, got %d records", len(page))
	}
	if total != 1 {
		t.Errorf("expected total 1, got %d", total)
	}
}

func TestList_NeverExceedsLimit(t *testing.T) {
	s := NewStore(WithClock(tickingClock()))
	for i := 0; i < 7; i++ {
		s.Add("q", makeResults(1))
	}

	page, _ := s.List(0, 3)
	if len(page) != 3 {
		t.Errorf("expected 3 records, got %d", len(page))
	}
}

func TestDelete_Idempotent(t *testing.T) {
	s := NewStore()
	rec := s.Add("q", makeResults(1))

	if !s.Delete(rec.ID) {
		t.Fatal("expected first delete to succeed")
	}
	if _, err := s.Get(rec.ID); !errors.Is(err, domain.ErrHistoryNotFound) {
		t.Error("expected record gone after delete")
	}
	if s.Delete(rec.ID) {
		t.Error("expected second delete to return false")
	}
	if s.Delete("never-existed") {
		t.Error("expected delete of unknown id to return false")
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				rec := s.Add("q", makeResults(1, 2, 3))
				s.List(0, 10)
				_, _ = s.Get(rec.ID)
				s.Delete(rec.ID)
			}
		}()
	}
	wg.Wait()

	if s.Len() != 0 {
		t.Errorf("expected empty store after paired add/delete, got %d", s.Len())
	}
}
