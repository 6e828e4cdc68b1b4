package tree

import "math"

// Node holds one point at a tree level together with the nodes it covers.
type Node struct {
	point    *Point
	level    int32
	children []Node

	// radius bounds the distance from point to any descendant; it is stale
	// once the tree version moves past radiusAt.
	radius   float32
	radiusAt uint64
}

func newNode(point *Point, level int32) Node {
	return Node{point: point, level: level}
}

func levelScale(base float32, level int32) float32 {
	return float32(math.Pow(float64(base), float64(level)))
}

func (n *Node) isLeaf() bool { return len(n.children) == 0 }
