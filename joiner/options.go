package joiner

import (
	"log/slog"

	"github.com/viant/fuzzyjoin/join"
	"github.com/viant/fuzzyjoin/matcher"
	"github.com/viant/fuzzyjoin/vectorizer"
)

// DefaultCacheCapacity is the number of key vector sets a Fitted joiner keeps.
const DefaultCacheCapacity = 16

type options struct {
	matchScore    float64
	analyzer      vectorizer.Analyzer
	ngramRange    vectorizer.NgramRange
	cacheCapacity int
	scoreColumn   string
	index         matcher.IndexKind
	suffixes      join.Suffixes
	logger        *slog.Logger
}

func defaultOptions() options {
	params := vectorizer.DefaultParams()
	return options{
		analyzer:      params.Analyzer,
		ngramRange:    params.NgramRange,
		cacheCapacity: DefaultCacheCapacity,
		index:         matcher.Brute,
		suffixes:      join.DefaultSuffixes(),
		logger:        slog.New(slog.DiscardHandler),
	}
}

// Option configures a Joiner.
type Option func(o *options)

// WithMatchScore sets the minimum match score in [0, 1]. 0 accepts the
// nearest row, 1 only exact key matches.
func WithMatchScore(score float64) Option {
	return func(o *options) { o.matchScore = score }
}

// WithAnalyzer sets the n-gram analyzer: word, char or char_wb.
func WithAnalyzer(analyzer vectorizer.Analyzer) Option {
	return func(o *options) { o.analyzer = analyzer }
}

// WithNgramRange sets the inclusive n-gram length range.
func WithNgramRange(min, max int) Option {
	return func(o *options) { o.ngramRange = vectorizer.NgramRange{Min: min, Max: max} }
}

// WithCacheCapacity sets how many key vector sets are memoized.
func WithCacheCapacity(capacity int) Option {
	return func(o *options) { o.cacheCapacity = capacity }
}

// WithScoreColumn appends the match score of every step under name. Repeated
// steps suffix the name.
func WithScoreColumn(name string) Option {
	return func(o *options) { o.scoreColumn = name }
}

// WithIndex selects the nearest-neighbour index.
func WithIndex(kind matcher.IndexKind) Option {
	return func(o *options) { o.index = kind }
}

// WithSuffixes sets the collision suffixes.
func WithSuffixes(suffixes join.Suffixes) Option {
	return func(o *options) { o.suffixes = suffixes }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
