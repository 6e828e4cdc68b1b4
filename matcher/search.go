package matcher

import (
	"github.com/viant/fuzzyjoin/index"
	"github.com/viant/fuzzyjoin/index/bruteforce"
	"github.com/viant/fuzzyjoin/index/cover"
	"github.com/viant/fuzzyjoin/vector"
	"github.com/viant/fuzzyjoin/vectorizer"
)

// coverCandidates is how many cover-tree neighbours of a text row are
// rescored on the sparse vectors.
const coverCandidates = 4

// searcher finds the closest valid right row for a left row.
type searcher interface {
	validRight() int
	dim() int
	build(kind IndexKind) error
	// nearest returns -1 when the right side has no valid row.
	nearest(left int) (row int, distance float64, err error)
}

// denseSearcher matches numeric keys by euclidean distance.
type denseSearcher struct {
	left  [][]float32
	right [][]float32
	valid int
	arity int
	index index.Index
}

func matchDense(left, right *vectorizer.Set) *denseSearcher {
	s := &denseSearcher{
		left:  make([][]float32, left.Len()),
		right: make([][]float32, right.Len()),
		arity: right.Dim,
	}
	for i := range s.left {
		if left.Valid[i] {
			s.left[i] = left.Dense[i]
		}
	}
	for j := range s.right {
		if right.Valid[j] {
			s.right[j] = right.Dense[j]
			s.valid++
		}
	}
	return s
}

func (s *denseSearcher) validRight() int { return s.valid }

func (s *denseSearcher) dim() int { return s.arity }

func (s *denseSearcher) build(kind IndexKind) error {
	if kind == Cover {
		s.index = cover.New(index.Euclidean)
	} else {
		s.index = bruteforce.New(index.Euclidean)
	}
	return s.index.Build(s.right)
}

func (s *denseSearcher) nearest(left int) (int, float64, error) {
	rows, dists, err := s.index.Query(s.left[left], 1)
	if err != nil || len(rows) == 0 {
		return -1, 0, err
	}
	return rows[0], float64(dists[0]), nil
}

// textSearcher matches n-gram count vectors by cosine distance. The brute
// force path scores only the right rows sharing an n-gram slot with the left
// row; the cover path projects rows onto the right n-gram space and rescores
// the tree candidates on the sparse vectors.
type textSearcher struct {
	left  *vectorizer.Set
	right *vectorizer.Set
	valid int
	first int
	space *vector.Space

	inverted *invertedIndex
	cover    *cover.Index
}

func matchText(left, right *vectorizer.Set) *textSearcher {
	s := &textSearcher{left: left, right: right, first: -1}
	used := make([]vector.Sparse, 0, right.Len())
	for j, v := range right.Sparse {
		if !right.Valid[j] {
			continue
		}
		if s.first < 0 {
			s.first = j
		}
		used = append(used, v)
	}
	s.valid = len(used)
	s.space = vector.NewSpace(used)
	return s
}

func (s *textSearcher) validRight() int { return s.valid }

// dim counts the residual coordinate added by Space.Project.
func (s *textSearcher) dim() int { return s.space.Dim() + 1 }

func (s *textSearcher) build(kind IndexKind) error {
	if kind != Cover {
		s.inverted = newInvertedIndex(s.right)
		return nil
	}
	vecs := make([][]float32, s.right.Len())
	for j, v := range s.right.Sparse {
		if s.right.Valid[j] {
			vecs[j] = s.space.Project(v)
		}
	}
	s.cover = cover.New(index.Cosine)
	return s.cover.Build(vecs)
}

func (s *textSearcher) nearest(left int) (int, float64, error) {
	if s.first < 0 {
		return -1, 0, nil
	}
	q := s.left.Sparse[left]
	if s.inverted != nil {
		row, d := s.inverted.nearest(q, s.first)
		return row, d, nil
	}
	rows, _, err := s.cover.Query(s.space.Project(q), coverCandidates)
	if err != nil {
		return -1, 0, err
	}
	best, bestDist := s.first, 1.0
	for _, row := range rows {
		d := 1 - vector.CosineSimilarity(q, s.right.Sparse[row])
		if d < bestDist || (d == bestDist && row < best) {
			best, bestDist = row, d
		}
	}
	return best, bestDist, nil
}

type posting struct {
	row   int32
	value float32
}

// invertedIndex lists, per n-gram slot, the valid right rows using it.
type invertedIndex struct {
	postings map[uint32][]posting
	norms    []float64
	dots     []float64
	touched  []int32
}

func newInvertedIndex(right *vectorizer.Set) *invertedIndex {
	x := &invertedIndex{
		postings: make(map[uint32][]posting),
		norms:    make([]float64, right.Len()),
		dots:     make([]float64, right.Len()),
	}
	for j, v := range right.Sparse {
		if !right.Valid[j] {
			continue
		}
		x.norms[j] = v.Norm()
		for k, slot := range v.Indices {
			x.postings[slot] = append(x.postings[slot], posting{row: int32(j), value: v.Values[k]})
		}
	}
	return x
}

// nearest returns the row with the highest cosine similarity to q and its
// cosine distance, ties going to the lower row. When q shares no slot with
// any row, every row is at distance 1 and first wins.
func (x *invertedIndex) nearest(q vector.Sparse, first int) (int, float64) {
	for k, slot := range q.Indices {
		for _, p := range x.postings[slot] {
			if x.dots[p.row] == 0 {
				x.touched = append(x.touched, p.row)
			}
			x.dots[p.row] += float64(q.Values[k]) * float64(p.value)
		}
	}
	qn := q.Norm()
	best, bestSim := first, 0.0
	for _, row := range x.touched {
		sim := x.dots[row] / (qn * x.norms[row])
		if sim > bestSim || (sim == bestSim && int(row) < best) {
			best, bestSim = int(row), sim
		}
		x.dots[row] = 0
	}
	x.touched = x.touched[:0]
	return best, 1 - bestSim
}
