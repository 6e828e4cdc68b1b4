// Package cover provides a cover-tree backed index. Cosine queries run as
// euclidean searches over normalized vectors and candidates are rescored
// with the exact metric, so results match the brute-force index.
package cover
