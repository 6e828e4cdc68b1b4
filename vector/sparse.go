package vector

import (
	"math"
	"sort"
)

// Sparse is a vector stored as strictly increasing indices and their values.
type Sparse struct {
	Indices []uint32
	Values  []float32
}

// NewSparse builds a sparse vector from index counts.
func NewSparse(counts map[uint32]float32) Sparse {
	if len(counts) == 0 {
		return Sparse{}
	}
	indices := make([]uint32, 0, len(counts))
	for idx := range counts {
		indices = append(indices, idx)
	}
	sort.Slice(indices, func(a, b int) bool { return indices[a] < indices[b] })
	values := make([]float32, len(indices))
	for i, idx := range indices {
		values[i] = counts[idx]
	}
	return Sparse{Indices: indices, Values: values}
}

// IsZero reports whether the vector has no non-zero entries.
func (s Sparse) IsZero() bool {
	for _, v := range s.Values {
		if v != 0 {
			return false
		}
	}
	return true
}

// Norm returns the L2 norm of s.
func (s Sparse) Norm() float64 {
	var sum float64
	for _, v := range s.Values {
		sum += float64(v) * float64(v)
	}
	return math.Sqrt(sum)
}

// Dot returns the dot product of a and b by merging their sorted indices.
func Dot(a, b Sparse) float64 {
	var dot float64
	i, j := 0, 0
	for i < len(a.Indices) && j < len(b.Indices) {
		switch {
		case a.Indices[i] < b.Indices[j]:
			i++
		case a.Indices[i] > b.Indices[j]:
			j++
		default:
			dot += float64(a.Values[i]) * float64(b.Values[j])
			i++
			j++
		}
	}
	return dot
}

// CosineSimilarity returns the cosine similarity of a and b, 0 when either is
// a zero vector.
func CosineSimilarity(a, b Sparse) float64 {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	return Dot(a, b) / (na * nb)
}

// Space assigns dense coordinates to the sparse indices used by a group of
// vectors, so that vectors from different tables become comparable dense
// vectors of the same, small dimensionality.
type Space struct {
	dims map[uint32]int
}

// NewSpace builds a space over every index used by the given vectors.
// Coordinates follow ascending index order.
func NewSpace(groups ...[]Sparse) *Space {
	seen := make(map[uint32]struct{})
	for _, group := range groups {
		for _, v := range group {
			for _, idx := range v.Indices {
				seen[idx] = struct{}{}
			}
		}
	}
	indices := make([]uint32, 0, len(seen))
	for idx := range seen {
		indices = append(indices, idx)
	}
	sort.Slice(indices, func(a, b int) bool { return indices[a] < indices[b] })
	dims := make(map[uint32]int, len(indices))
	for i, idx := range indices {
		dims[idx] = i
	}
	return &Space{dims: dims}
}

// Dim returns the number of dense coordinates.
func (s *Space) Dim() int { return len(s.dims) }

// Project maps v onto the space plus one trailing coordinate holding the
// norm of the entries the space does not know. Dot products with vectors that live inside the space and
// magnitudes are preserved, so cosine and euclidean distances stay exact.
func (s *Space) Project(v Sparse) []float32 {
	out := make([]float32, len(s.dims)+1)
	var residual float64
	for i, idx := range v.Indices {
		if d, ok := s.dims[idx]; ok {
			out[d] = v.Values[i]
			continue
		}
		residual += float64(v.Values[i]) * float64(v.Values[i])
	}
	out[len(s.dims)] = float32(math.Sqrt(residual))
	return out
}
