package tree

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomPoints(r *rand.Rand, n, dim int) []*Point {
	points := make([]*Point, n)
	for i := range points {
		v := make([]float32, dim)
		for d := range v {
			v[d] = r.Float32()*2 - 1
		}
		points[i] = NewPoint(i, v...)
	}
	return points
}

func exactKNN(points []*Point, q *Point, k int) []int32 {
	type pd struct {
		row  int32
		dist float32
	}
	all := make([]pd, len(points))
	for i, p := range points {
		all[i] = pd{row: p.Row, dist: EuclideanDistance(q, p)}
	}
	sort.Slice(all, func(a, b int) bool {
		if all[a].dist != all[b].dist {
			return all[a].dist < all[b].dist
		}
		return all[a].row < all[b].row
	})
	rows := make([]int32, k)
	for i := 0; i < k; i++ {
		rows[i] = all[i].row
	}
	return rows
}

func rowsOf(ns []*Neighbor) []int32 {
	rows := make([]int32, len(ns))
	for i, n := range ns {
		rows[i] = n.Point.Row
	}
	return rows
}

func TestTree_KNearestNeighbors(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	points := randomPoints(r, 300, 8)
	tr := NewTree(DefaultBase)
	for _, p := range points {
		tr.Insert(p)
	}
	require.Equal(t, len(points), tr.Len())

	for _, q := range randomPoints(r, 20, 8) {
		want := exactKNN(points, q, 5)
		assert.Equal(t, want, rowsOf(tr.KNearestNeighbors(q, 5)))
	}
}

func TestTree_TiesResolveToLowerRow(t *testing.T) {
	tr := NewTree(2)
	tr.Insert(NewPoint(0, 5, 5))
	tr.Insert(NewPoint(1, 1, 0))
	tr.Insert(NewPoint(2, -1, 0))
	tr.Insert(NewPoint(3, 1, 0))

	got := tr.KNearestNeighbors(NewPoint(-1, 0, 0), 1)
	require.Len(t, got, 1)
	assert.Equal(t, int32(1), got[0].Point.Row)

	got = tr.KNearestNeighbors(NewPoint(-1, 1, 0), 2)
	assert.Equal(t, []int32{1, 3}, rowsOf(got))
}

func TestTree_Empty(t *testing.T) {
	tr := NewTree(0)
	assert.Nil(t, tr.KNearestNeighbors(NewPoint(-1, 1), 3))
	tr.Insert(NewPoint(0, 1))
	assert.Nil(t, tr.KNearestNeighbors(NewPoint(-1, 1), 0))
	assert.Len(t, tr.KNearestNeighbors(NewPoint(-1, 1), 3), 1)
}
