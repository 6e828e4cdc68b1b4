package vector

import "github.com/viant/vec/search"

// Magnitude returns the L2 norm of v.
func Magnitude(v []float32) float32 {
	if len(v) == 0 {
		return 0
	}
	return search.Float32s(v).Magnitude()
}

// CosineDistance returns 1 - cosine similarity using precomputed magnitudes.
// A zero-magnitude operand yields the maximum distance of 1.
func CosineDistance(a, b []float32, ma, mb float32) float32 {
	if ma == 0 || mb == 0 {
		return 1
	}
	d := search.Float32s(a).CosineDistance(b)
	if d < 0 {
		return 0
	}
	return d
}

// EuclideanDistance returns the L2 distance between a and b, which must have
// the same length.
func EuclideanDistance(a, b []float32) float32 {
	return search.Float32s(a).EuclideanDistance(b)
}

// Normalize returns v scaled to unit length. A zero vector is returned as a
// zero copy.
func Normalize(v []float32) []float32 {
	out := make([]float32, len(v))
	m := Magnitude(v)
	if m == 0 {
		return out
	}
	for i := range v {
		out[i] = v[i] / m
	}
	return out
}
