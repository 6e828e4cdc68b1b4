// Package index defines a minimal abstraction for nearest-neighbour indexes
// over row vectors, used to find the closest auxiliary row for each main row.
// Implementations in this module include an exact brute-force scan and a
// cover tree that returns the same answers.
package index
