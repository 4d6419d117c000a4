package search

import (
	"sort"

	"github.com/conntour/spacesearch/internal/domain"
	"github.com/conntour/spacesearch/internal/domain/vector"
)

const (
	// confidenceMin and confidenceMax bound the rescaled confidence: the
	// worst candidate of a pool maps to confidenceMin, the best to
	// confidenceMax.
	confidenceMin = 0.2
	confidenceMax = 1.0

	// tieConfidence is assigned to every candidate when all similarities
	// are effectively equal (the midpoint of the confidence range).
	tieConfidence = (confidenceMin + confidenceMax) / 2

	// rangeEpsilon is the similarity spread below which candidates count
	// as tied.
	rangeEpsilon = 1e-4
)

// rank scores every embedded candidate against the unit-normalized query
// vector and returns the full pool as results sorted by confidence
// descending, source id ascending. Candidates without an embedding, or with
// a zero-norm one, are skipped. Confidence is the min-max rescale of cosine
// similarity over the whole pool, so it is relative to this query's
// candidates, not an absolute measure.
func rank(query []float32, pool []domain.EmbeddedSource) []domain.SearchResult {
	type scored struct {
		source domain.Source
		sim    float64
	}

	candidates := make([]scored, 0, len(pool))
	for _, item := range pool {
		if item.Vector == nil {
			continue
		}
		unit, ok := vector.Normalize(item.Vector)
		if !ok {
			continue
		}
		candidates = append(candidates, scored{
			source: item.Source,
			sim:    vector.Cosine(query, unit),
		})
	}
	if len(candidates) == 0 {
		return nil
	}

	minSim, maxSim := candidates[0].sim, candidates[0].sim
	for _, c := range candidates[1:] {
		if c.sim < minSim {
			minSim = c.sim
		}
		if c.sim > maxSim {
			maxSim = c.sim
		}
	}

	simRange := maxSim - minSim
	results := make([]domain.SearchResult, len(candidates))
	for i, c := range candidates {
		confidence := tieConfidence
		if simRange > rangeEpsilon {
			confidence = confidenceMin + (confidenceMax-confidenceMin)*(c.sim-minSim)/simRange
		}
		results[i] = domain.SearchResult{Source: c.source, Confidence: confidence}
	}

	// Deterministic order: confidence descending, source id ascending on ties.
	sort.Slice(results, func(i, j int) bool {
		if results[i].Confidence != results[j].Confidence {
			return results[i].Confidence > results[j].Confidence
		}
		return results[i].ID < results[j].ID
	})

	return results
}
