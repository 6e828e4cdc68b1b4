package tree

// Neighbor describes a candidate returned by a kNN search.
type Neighbor struct {
	Point    *Point
	Distance float32
}

// closer orders neighbors by distance, then by row.
func (n Neighbor) closer(other Neighbor) bool {
	if n.Distance != other.Distance {
		return n.Distance < other.Distance
	}
	return n.Point.Row < other.Point.Row
}

// Neighbors implements heap.Interface with the farthest neighbor on top.
type Neighbors []Neighbor

func (h Neighbors) Len() int           { return len(h) }
func (h Neighbors) Less(i, j int) bool { return h[j].closer(h[i]) }
func (h Neighbors) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *Neighbors) Push(x interface{}) {
	*h = append(*h, x.(Neighbor))
}

func (h *Neighbors) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
