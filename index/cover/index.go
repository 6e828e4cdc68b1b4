package cover

import (
	"fmt"
	"sort"

	"github.com/viant/fuzzyjoin/index"
	"github.com/viant/fuzzyjoin/internal/cover/tree"
	"github.com/viant/fuzzyjoin/vector"
)

// extraCandidates is how many tree neighbours beyond k are rescored with the
// exact metric before ranking.
const extraCandidates = 4

// Index is a cover-tree index.
type Index struct {
	metric index.Metric

	tree  *tree.Tree
	vecs  [][]float32
	mags  []float32
	zeros []int
	dim   int
	rows  int
}

// New returns an empty index using metric.
func New(metric index.Metric) *Index {
	return &Index{metric: metric}
}

// Build inserts every non-nil vector into a fresh tree.
func (i *Index) Build(vectors [][]float32) error {
	dim, err := index.Dim(vectors)
	if err != nil {
		return fmt.Errorf("cover: %w", err)
	}
	t := tree.NewTree(tree.DefaultBase)
	i.vecs = append([][]float32(nil), vectors...)
	i.mags = make([]float32, len(vectors))
	i.zeros = nil
	i.rows = 0
	for row, v := range vectors {
		if v == nil {
			continue
		}
		i.rows++
		i.mags[row] = vector.Magnitude(v)
		point := v
		if i.metric == index.Cosine {
			if i.mags[row] == 0 {
				i.zeros = append(i.zeros, row)
				continue
			}
			point = vector.Normalize(v)
		}
		t.Insert(tree.NewPoint(row, point...))
	}
	i.tree = t
	i.dim = dim
	return nil
}

// Query returns the k nearest rows. k <= 0 returns every row.
func (i *Index) Query(query []float32, k int) ([]int, []float32, error) {
	if i.rows == 0 {
		return nil, nil, nil
	}
	if len(query) != i.dim {
		return nil, nil, fmt.Errorf("cover: query dim %d != index dim %d", len(query), i.dim)
	}
	if k <= 0 || k > i.rows {
		k = i.rows
	}
	qm := vector.Magnitude(query)
	probe := query
	if i.metric == index.Cosine && qm > 0 {
		probe = vector.Normalize(query)
	}
	want := k + extraCandidates
	if want > i.tree.Len() {
		want = i.tree.Len()
	}
	neighbors := i.tree.KNearestNeighbors(tree.NewPoint(-1, probe...), want)

	type scored struct {
		row  int
		dist float32
	}
	scoreds := make([]scored, 0, len(neighbors)+len(i.zeros))
	for _, n := range neighbors {
		row := int(n.Point.Row)
		scoreds = append(scoreds, scored{row: row, dist: index.Distance(i.metric, query, i.vecs[row], qm, i.mags[row])})
	}
	for _, row := range i.zeros {
		scoreds = append(scoreds, scored{row: row, dist: index.Distance(i.metric, query, i.vecs[row], qm, 0)})
	}
	sort.Slice(scoreds, func(a, b int) bool {
		if scoreds[a].dist != scoreds[b].dist {
			return scoreds[a].dist < scoreds[b].dist
		}
		return scoreds[a].row < scoreds[b].row
	})
	if k > len(scoreds) {
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
