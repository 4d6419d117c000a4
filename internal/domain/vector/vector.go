// Package vector holds the similarity math shared by ranking and ingestion.
package vector

import "math"

// Norm returns the Euclidean norm of v.
func Norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

// Normalize returns a unit-length copy of v.
// ok is false for empty or zero-norm vectors, which carry no direction.
func Normalize(v []float32) ([]float32, bool) {
	n := Norm(v)
	if n == 0 {
		return nil, false
	}
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(float64(x) / n)
	}
	return out, true
}

// Cosine returns the cosine similarity of two unit-normalized vectors:
// their dot product, clamped to [-1, 1] to absorb floating-point drift.
// Vectors of unequal length are compared over the shorter prefix.
func Cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
	}
	return clamp(dot, -1, 1)
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
