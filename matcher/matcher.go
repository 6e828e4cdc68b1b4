package matcher

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/viant/fuzzyjoin/index"
	"github.com/viant/fuzzyjoin/metrics"
	"github.com/viant/fuzzyjoin/vectorizer"
)

var (
	// ErrKindMismatch is returned when the two sets were vectorized differently.
	ErrKindMismatch = errors.New("matcher: vector kind mismatch")
	// ErrInvalidMatchScore is returned for a match score outside [0, 1].
	ErrInvalidMatchScore = errors.New("matcher: match score must be within [0, 1]")
	// ErrUnsupportedIndex is returned for an unknown index kind.
	ErrUnsupportedIndex = errors.New("matcher: unsupported index kind")
)

// zeroDistance is the cosine distance under which float32 rounding is
// treated as an exact match.
const zeroDistance = 1e-6

// IndexKind selects the nearest-neighbour index.
type IndexKind string

const (
	// Brute scans every right row.
	Brute IndexKind = "brute"
	// Cover uses a cover tree.
	Cover IndexKind = "cover"
	// Auto picks Cover for large, dense enough right sets and Brute otherwise.
	Auto IndexKind = "auto"
)

const (
	autoCoverMinRows            = 4000
	autoCoverMinDim             = 64
	autoCoverMinDensity float64 = 16
)

// ParseIndexKind parses brute, cover or auto. An empty string is Brute.
func ParseIndexKind(s string) (IndexKind, error) {
	switch kind := IndexKind(strings.ToLower(strings.TrimSpace(s))); kind {
	case "":
		return Brute, nil
	case Brute, Cover, Auto:
		return kind, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedIndex, s)
}

func resolveIndexKind(kind IndexKind, rows, dim int) IndexKind {
	switch kind {
	case Brute, Cover:
		return kind
	case Auto:
		if rows >= autoCoverMinRows && dim >= autoCoverMinDim && float64(rows)/float64(dim) >= autoCoverMinDensity {
			return Cover
		}
	}
	return Brute
}

// Options controls matching.
type Options struct {
	Index  IndexKind
	Logger *slog.Logger
}

// Pair is the outcome for one left row. Right is -1 and OK false when the
// row has no valid key or the right set has no valid row.
type Pair struct {
	Right    int
	OK       bool
	Distance float64
	Score    float64
}

// Result holds one Pair per left row, in left order.
type Result struct {
	Pairs []Pair
	Index IndexKind
}

// Matched returns the number of accepted pairs.
func (r Result) Matched() int {
	n := 0
	for _, p := range r.Pairs {
		if p.OK {
			n++
		}
	}
	return n
}

// Match pairs each valid left row with its nearest valid right row. Ties go to
// the lowest right row.
func Match(left, right *vectorizer.Set, matchScore float64, opts Options) (Result, error) {
	if math.IsNaN(matchScore) || matchScore < 0 || matchScore > 1 {
		return Result{}, fmt.Errorf("%w: got %v", ErrInvalidMatchScore, matchScore)
	}
	if left.Kind != right.Kind {
		return Result{}, fmt.Errorf("%w: left is %s, right is %s", ErrKindMismatch, left.Kind, right.Kind)
	}
	if left.Kind == vectorizer.Numeric && left.Dim != right.Dim {
		return Result{}, fmt.Errorf("%w: numeric key arity %d != %d", ErrKindMismatch, left.Dim, right.Dim)
	}
	if opts.Index == "" {
		opts.Index = Brute
	}
	if _, err := ParseIndexKind(string(opts.Index)); err != nil {
		return Result{}, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var (
		m      searcher
		metric index.Metric
	)
	if left.Kind == vectorizer.Numeric {
		m, metric = matchDense(left, right), index.Euclidean
	} else {
		m, metric = matchText(left, right), index.Cosine
	}
	kind := resolveIndexKind(opts.Index, m.validRight(), m.dim())
	if err := m.build(kind); err != nil {
		return Result{}, err
	}

	result := Result{Pairs: make([]Pair, left.Len()), Index: kind}
	for i := range result.Pairs {
		result.Pairs[i] = Pair{Right: -1}
		if !left.Valid[i] || m.validRight() == 0 {
			continue
		}
		row, d, err := m.nearest(i)
		if err != nil {
			return Result{}, fmt.Errorf("matcher: left row %d: %w", i, err)
		}
		if row < 0 {
			continue
		}
		if metric == index.Cosine && d < zeroDistance {
			d = 0
		}
		result.Pairs[i] = Pair{Right: row, Distance: d}
	}

	switch metric {
	case index.Cosine:
		limit := 1 - matchScore
		for i := range result.Pairs {
			p := &result.Pairs[i]
			if p.Right < 0 {
				continue
			}
			p.Score = 1 - p.Distance
			p.OK = p.Distance <= limit
		}
	default:
		dmax := 0.0
		for _, p := range result.Pairs {
			if p.Right >= 0 && p.Distance > dmax {
				dmax = p.Distance
			}
		}
		for i := range result.Pairs {
			p := &result.Pairs[i]
			if p.Right < 0 {
				continue
			}
			p.Score = 1
			if dmax > 0 {
				p.Score = 1 - p.Distance/dmax
			}
			p.OK = p.Score >= matchScore
		}
	}

	matched := result.Matched()
	metrics.ObserveMatches(matched, len(result.Pairs)-matched)
	logger.Debug("matcher: matched",
		"kind", left.Kind.String(),
		"index", string(kind),
		"left", len(result.Pairs),
		"right", m.validRight(),
		"dim", m.dim(),
		"matched", matched,
	)
	return result, nil
}
