package embcache

import "github.com/prometheus/client_golang/prometheus"

// WorkingSet accumulates the vectors of one catalog build: cache hits are
// reused, misses are computed and collected for a single batched Save at
// the end of the build.
type WorkingSet struct {
	cached     map[int][]float32
	vectors    map[int][]float32
	misses     int
	cacheTotal *prometheus.CounterVec
}

// NewWorkingSet creates a working set over previously cached vectors
// (nil when the cache was invalid or unreadable).
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func NewWorkingSet(cached map[int][]float32, cacheTotal *prometheus.CounterVec) *WorkingSet {
	return &WorkingSet{
		cached:     cached,
		vectors:    make(map[int][]float32, len(cached)),
		cacheTotal: cacheTotal,
	}
}

// GetOrCompute returns the cached vector for id or invokes compute.
// A computed vector joins the working set; a compute failure leaves no
// entry, so the source simply stays unembedded.
func (w *WorkingSet) GetOrCompute(id int, compute func() ([]float32, error)) ([]float32, error) {
	if vec, ok := w.cached[id]; ok {
		w.incCache("hit")
		w.vectors[id] = vec
		return vec, nil
	}

	w.incCache("miss")
	w.misses++

	vec, err := compute()
	if err != nil {
		return nil, err
	}
	w.vectors[id] = vec
	return vec, nil
}

// Vectors returns every vector reused or computed during this build.
func (w *WorkingSet) Vectors() map[int][]float32 {
	return w.vectors
}

// Dirty reports whether the on-disk cache is stale: something was computed
// fresh, or there was no usable cache to begin with.
func (w *WorkingSet) Dirty() bool {
	return w.misses > 0 || len(w.cached) == 0
}

func (w *WorkingSet) incCache(result string) {
	if w.cacheTotal != nil {
		w.cacheTotal.WithLabelValues(result).Inc()
	}
}
