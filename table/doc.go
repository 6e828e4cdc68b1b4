// Package table provides the minimal in-memory table used by the fuzzy join
// packages: ordered named columns, rows addressed by position, and a column
// append. Each table carries a unique identity that vector caches key on.
package table
