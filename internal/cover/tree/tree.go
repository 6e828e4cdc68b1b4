package tree

import (
	"container/heap"
	"sort"
)

// DefaultBase is the expansion base used when NewTree gets a base <= 1.
const DefaultBase = float32(1.3)

// Tree is a cover tree over row vectors under the euclidean distance. It is
// built once and then queried; it is not safe for concurrent use.
type Tree struct {
	root    *Node
	base    float32
	version uint64
	size    int
}

// NewTree constructs an empty cover tree with the given expansion base.
func NewTree(base float32) *Tree {
	if base <= 1 {
		base = DefaultBase
	}
	return &Tree{base: base}
}

// Len returns the number of inserted points.
func (t *Tree) Len() int { return t.size }

// Insert adds a point to the tree.
func (t *Tree) Insert(point *Point) {
	t.size++
	t.version++
	if t.root == nil {
		node := newNode(point, 0)
		t.root = &node
		return
	}
	t.insert(t.root, point, 0)
}

func (t *Tree) insert(node *Node, point *Point, level int32) {
	for {
		scale := levelScale(t.base, level)
		if EuclideanDistance(point, node.point) < scale {
			var next *Node
			for i := range node.children {
				if EuclideanDistance(point, node.children[i].point) < scale {
					next = &node.children[i]
					break
				}
			}
			if next == nil {
				node.children = append(node.children, newNode(point, level-1))
				return
			}
			node = next
			level--
			continue
		}
		level++
		if level > node.level {
			root := newNode(point, level)
			root.children = append(root.children, *t.root)
			t.root = &root
			return
		}
	}
}

// KNearestNeighbors runs a depth-first kNN search. Results are ordered by
// distance, then row.
func (t *Tree) KNearestNeighbors(point *Point, k int) []*Neighbor {
	if t.root == nil || k <= 0 {
		return nil
	}
	h := &Neighbors{}
	heap.Init(h)
	t.search(t.root, point, k, h)
	return drain(h)
}

type candidate struct {
	node *Node
	dist float32
}

func (t *Tree) search(node *Node, point *Point, k int, h *Neighbors) {
	offer(h, k, Neighbor{Point: node.point, Distance: EuclideanDistance(point, node.point)})
	if node.isLeaf() {
		return
	}
	candidates := make([]candidate, len(node.children))
	for i := range node.children {
		child := &node.children[i]
		candidates[i] = candidate{node: child, dist: EuclideanDistance(point, child.point)}
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].dist < candidates[j].dist })
	for _, c := range candidates {
		// equal lower bounds are still visited so that ties resolve to the lower row
		if h.Len() == k && c.dist-t.radius(c.node) > (*h)[0].Distance {
			continue
		}
		t.search(c.node, point, k, h)
	}
}

func offer(h *Neighbors, k int, n Neighbor) {
	if h.Len() < k {
		heap.Push(h, n)
		return
	}
	if n.closer((*h)[0]) {
		heap.Pop(h)
		heap.Push(h, n)
	}
}

func drain(h *Neighbors) []*Neighbor {
	result := make([]*Neighbor, h.Len())
	for i := len(result) - 1; i >= 0; i-- {
		n := heap.Pop(h).(Neighbor)
		result[i] = &n
	}
	return result
}

// radius returns the exact covering radius of n, recomputing it after inserts.
func (t *Tree) radius(n *Node) float32 {
	if n.radiusAt == t.version {
		return n.radius
	}
	r := float32(0)
	for i := range n.children {
		child := &n.children[i]
		if d := EuclideanDistance(n.point, child.point) + t.radius(child); d > r {
			r = d
		}
	}
	n.radius = r
	n.radiusAt = t.version
	return r
}
