// Package cache provides a fixed-capacity key/value store with
// least-recently-used eviction. It memoizes key vectors so that repeated
// joins over the same tables do not re-vectorize them, while bounding the
// memory held by one pipeline.
package cache
