// Package engine opens SQLite databases through the modernc.org/sqlite driver
// and registers the n-gram similarity SQL functions, so that fuzzy key
// comparisons can also be run inside queries:
//
//	SELECT a.name, b.name FROM a JOIN b ON ngram_similarity(a.name, b.name) > 0.5
//
// match_score(a, b) returns the score a default text join reports for a pair.
package engine
