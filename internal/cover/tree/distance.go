package tree

import "github.com/viant/fuzzyjoin/vector"

// EuclideanDistance is the L2 distance between two points. Cosine searches
// run on unit vectors, where it orders neighbours the same way.
func EuclideanDistance(p1, p2 *Point) float32 {
	return vector.EuclideanDistance(p1.Vector, p2.Vector)
}
