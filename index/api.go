package index

import (
	"fmt"

	"github.com/viant/fuzzyjoin/vector"
)

// Index answers nearest-neighbour queries over row vectors addressed by
// their position. Rows built with a nil vector are never returned.
type Index interface {
	// Build loads the row vectors. Non-nil vectors must share one dimension.
	Build(vectors [][]float32) error

	// Query returns up to k rows ordered by increasing distance to query, ties
	// broken by lower row. k <= 0 returns every row.
	Query(query []float32, k int) (rows []int, distances []float32, err error)
}

// Metric names a distance function.
type Metric string

const (
	// Cosine is 1 - cosine similarity.
	Cosine Metric = "cosine"
	// Euclidean is the L2 distance.
	Euclidean Metric = "euclidean"
)

// Distance evaluates metric between a and b. ma and mb are the magnitudes of
// a and b and are only used by Cosine.
func Distance(metric Metric, a, b []float32, ma, mb float32) float32 {
	if metric == Euclidean {
		return vector.EuclideanDistance(a, b)
	}
	return vector.CosineDistance(a, b, ma, mb)
}

// Dim returns the common dimension of the non-nil vectors.
func Dim(vectors [][]float32) (int, error) {
	dim := -1
	for j, v := range vectors {
		if v == nil {
			continue
		}
		if dim < 0 {
			dim = len(v)
			continue
		}
		if len(v) != dim {
			return 0, fmt.Errorf("index: inconsistent vector dims at row %d: %d vs %d", j, len(v), dim)
		}
	}
	if dim < 0 {
		dim = 0
	}
	return dim, nil
}
