package bruteforce

import (
	"fmt"
	"sort"

	"github.com/viant/fuzzyjoin/index"
	"github.com/viant/fuzzyjoin/vector"
)

// Index is a brute-force vector index.
type Index struct {
	metric index.Metric
	vecs   [][]float32
	mags   []float32
	dim    int
}

// New returns an empty index using metric.
func New(metric index.Metric) *Index {
	return &Index{metric: metric}
}

// Build loads vectors and precomputes magnitudes.
func (i *Index) Build(vectors [][]float32) error {
	dim, err := index.Dim(vectors)
	if err != nil {
		return fmt.Errorf("bruteforce: %w", err)
	}
	mags := make([]float32, len(vectors))
	for j, v := range vectors {
		if v != nil {
			mags[j] = vector.Magnitude(v)
		}
	}
	i.vecs = append([][]float32(nil), vectors...)
	i.mags = mags
	i.dim = dim
	return nil
}

// Query scores every row against query.
func (i *Index) Query(query []float32, k int) ([]int, []float32, error) {
	if len(i.vecs) == 0 {
		return nil, nil, nil
	}
	if len(query) != i.dim {
		return nil, nil, fmt.Errorf("bruteforce: query dim %d != index dim %d", len(query), i.dim)
	}
	qm := vector.Magnitude(query)
	if k == 1 {
		best, bestDist := -1, float32(0)
		for j, v := range i.vecs {
			if v == nil {
				continue
			}
			d := index.Distance(i.metric, query, v, qm, i.mags[j])
			if best < 0 || d < bestDist {
				best, bestDist = j, d
			}
		}
		if best < 0 {
			return nil, nil, nil
		}
		return []int{best}, []float32{bestDist}, nil
	}
	type scored struct {
		row  int
		dist float32
	}
	scoreds := make([]scored, 0, len(i.vecs))
	for j, v := range i.vecs {
		if v == nil {
			continue
		}
		scoreds = append(scoreds, scored{row: j, dist: index.Distance(i.metric, query, v, qm, i.mags[j])})
	}
	// rows are appended in order, a stable sort keeps the lower row first on ties
	sort.SliceStable(scoreds, func(a, b int) bool { return scoreds[a].dist < scoreds[b].dist })
	if k <= 0 || k > len(scoreds) {
		k = len(scoreds)
	}
	rows := make([]int, k)
	dists := make([]float32, k)
	for n := 0; n < k; n++ {
		rows[n] = scoreds[n].row
		dists[n] = scoreds[n].dist
	}
	return rows, dists, nil
}

var _ index.Index = (*Index)(nil)
