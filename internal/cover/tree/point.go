package tree

// Point is a row vector stored in the tree.
type Point struct {
	Row    int32
	Vector []float32
}

// NewPoint constructs a point for the given row and vector.
func NewPoint(row int, vector ...float32) *Point {
	return &Point{Row: int32(row), Vector: vector}
}
