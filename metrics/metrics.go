package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheLookupsTotal counts key vector cache lookups by result: hit or miss.
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fuzzyjoin_cache_lookups_total",
			Help: "Total number of key vector cache lookups",
		},
		[]string{"result"},
	)

	// RowsMatchedTotal counts left rows by status: matched or unmatched.
	RowsMatchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fuzzyjoin_rows_matched_total",
			Help: "Total number of left rows processed by the matcher",
		},
		[]string{"status"},
	)

	// JoinDuration observes the time of one auxiliary table join.
	JoinDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fuzzyjoin_join_duration_seconds",
			Help:    "Duration of a single fuzzy join step",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 14), // 1ms to ~8s
		},
	)

	// TransformsTotal counts joiner transforms by status: ok or error.
	TransformsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fuzzyjoin_transforms_total",
			Help: "Total number of joiner transforms",
		},
		[]string{"status"},
	)
)

// CacheObserver reports cache hits and misses to CacheLookupsTotal.
type CacheObserver struct{}

// Hit counts a cache hit.
func (CacheObserver) Hit() { CacheLookupsTotal.WithLabelValues("hit").Inc() }

// Miss counts a cache miss.
func (CacheObserver) Miss() { CacheLookupsTotal.WithLabelValues("miss").Inc() }

// ObserveMatches records matched and unmatched row counts.
func ObserveMatches(matched, unmatched int) {
	RowsMatchedTotal.WithLabelValues("matched").Add(float64(matched))
	RowsMatchedTotal.WithLabelValues("unmatched").Add(float64(unmatched))
}
