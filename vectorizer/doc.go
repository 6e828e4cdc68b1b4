// Package vectorizer turns the join key columns of a table into vectors that
// are comparable across tables. Text keys become hashed character or word
// n-gram count vectors; numeric keys are used as raw coordinates. Results are
// memoized per table identity and vectorization parameters in a bounded LRU
// cache.
package vectorizer
