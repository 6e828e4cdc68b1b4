// Package vector holds the vector primitives shared by the matcher and the
// indexes:
//   - Sparse count vectors produced by text vectorization
//   - Space: projection of sparse vectors onto a compact dense space
//   - exact sparse dot products and cosine similarity
//   - cosine and euclidean distance functions backed by viant/vec
package vector
