package vectorizer

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/viant/fuzzyjoin/cache"
	"github.com/viant/fuzzyjoin/metrics"
	"github.com/viant/fuzzyjoin/table"
	"github.com/viant/fuzzyjoin/vector"
)

// DefaultFeatures is the size of the hashed n-gram space.
const DefaultFeatures = 1 << 20

var (
	// ErrEmptyKey is returned when a table has no rows or no usable key value.
	ErrEmptyKey = errors.New("vectorizer: empty key column")
	// ErrNotNumeric is returned when numeric vectorization meets a non-numeric value.
	ErrNotNumeric = errors.New("vectorizer: non-numeric key value")
)

// Kind is the vector space a key is encoded into.
type Kind int

const (
	// Auto resolves to Numeric when every key value is a number, Text otherwise.
	Auto Kind = iota
	// Text encodes keys as hashed n-gram counts compared by cosine distance.
	Text
	// Numeric uses key values as coordinates compared by euclidean distance.
	Numeric
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Numeric:
		return "numeric"
	}
	return "auto"
}

// Params controls vectorization.
type Params struct {
	Kind       Kind
	Analyzer   Analyzer
	NgramRange NgramRange
	Features   int
}

// DefaultParams returns char_wb n-grams of length 2 to 4.
func DefaultParams() Params {
	return Params{
		Kind:       Auto,
		Analyzer:   CharWB,
		NgramRange: NgramRange{Min: 2, Max: 4},
		Features:   DefaultFeatures,
	}
}

// Validate checks the analyzer, the n-gram range and the feature count.
func (p Params) Validate() error {
	if _, err := ParseAnalyzer(string(p.Analyzer)); err != nil {
		return err
	}
	if err := p.NgramRange.Validate(); err != nil {
		return err
	}
	if p.Features <= 0 {
		return fmt.Errorf("vectorizer: features must be positive, got %d", p.Features)
	}
	return nil
}

// Set holds one vector per table row. Text sets fill Sparse, numeric sets
// fill Dense. Rows with a missing key are marked invalid.
type Set struct {
	Kind   Kind
	Dim    int
	Sparse []vector.Sparse
	Dense  [][]float32
	Valid  []bool
}

// Len returns the number of rows.
func (s *Set) Len() int { return len(s.Valid) }

// Key identifies a cached Set.
type Key struct {
	TableID  string
	Columns  string
	Kind     Kind
	Analyzer Analyzer
	MinN     int
	MaxN     int
	Features int
}

// Vectorizer encodes key columns and memoizes the result.
type Vectorizer struct {
	cache  *cache.LRU[Key, *Set]
	logger *slog.Logger
}

// Option configures a Vectorizer.
type Option func(v *Vectorizer)

// WithLogger sets the logger used for cache diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Vectorizer) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// New creates a Vectorizer whose cache holds at most capacity sets.
func New(capacity int, opts ...Option) (*Vectorizer, error) {
	c, err := cache.New[Key, *Set](capacity, cache.WithObserver(metrics.CacheObserver{}))
	if err != nil {
		return nil, err
	}
	v := &Vectorizer{cache: c, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// Len returns the number of cached sets.
func (v *Vectorizer) Len() int { return v.cache.Len() }

// Cached reports whether the set for the given inputs is in the cache.
func (v *Vectorizer) Cached(t *table.Table, columns []string, params Params) bool {
	kind, err := resolveKind(t, columns, params.Kind)
	if err != nil {
		return false
	}
	return v.cache.Contains(cacheKey(t, columns, kind, params))
}

// Vectorize encodes the key columns of t. The returned Set is shared with the
// cache and must not be modified.
func (v *Vectorizer) Vectorize(t *table.Table, columns []string, params Params) (*Set, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: no key columns", ErrEmptyKey)
	}
	if err := t.Require(columns...); err != nil {
		return nil, err
	}
	kind, err := resolveKind(t, columns, params.Kind)
	if err != nil {
		return nil, err
	}
	key := cacheKey(t, columns, kind, params)
	if set, ok := v.cache.Get(key); ok {
		v.logger.Debug("vectorizer: cache hit", "table", t.ID(), "columns", key.Columns)
		return set, nil
	}
	var set *Set
	switch kind {
	case Numeric:
		set, err = numericSet(t, columns)
	default:
		set, err = textSet(t, columns, params)
	}
	if err != nil {
		return nil, err
	}
	v.cache.Set(key, set)
	v.logger.Debug("vectorizer: cache miss",
		"table", t.ID(),
		"columns", key.Columns,
		"kind", kind.String(),
		"rows", set.Len(),
		"cached", v.cache.Len(),
		"capacity", v.cache.Capacity(),
	)
	return set, nil
}

// DetectKind returns Numeric when every non-missing value of every key column
// is a number and at least one such value exists, Text otherwise.
func DetectKind(t *table.Table, columns []string) (Kind, error) {
	seen := false
	for _, name := range columns {
		col, err := t.Column(name)
		if err != nil {
			return Auto, err
		}
		for _, value := range col {
			if table.IsMissing(value) {
				continue
			}
			if !table.IsNumeric(value) {
				return Text, nil
			}
			seen = true
		}
	}
	if !seen {
		return Text, nil
	}
	return Numeric, nil
}

func resolveKind(t *table.Table, columns []string, kind Kind) (Kind, error) {
	if kind != Auto {
		return kind, nil
	}
	return DetectKind(t, columns)
}

func cacheKey(t *table.Table, columns []string, kind Kind, params Params) Key {
	key := Key{
		TableID: t.ID(),
		Columns: strings.Join(columns, "\x1f"),
		Kind:    kind,
	}
	if kind == Text {
		key.Analyzer = params.Analyzer
		key.MinN = params.NgramRange.Min
		key.MaxN = params.NgramRange.Max
		key.Features = params.Features
	}
	return key
}

// KeyText concatenates the key values of row i with single spaces. Missing
// values are skipped.
func KeyText(t *table.Table, columns []string, i int) (string, error) {
	parts := make([]string, 0, len(columns))
	for _, name := range columns {
		value, err := t.Value(i, name)
		if err != nil {
			return "", err
		}
		if s := table.String(value); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " "), nil
}

// Encode returns the hashed n-gram count vector of text.
func Encode(text string, params Params) (vector.Sparse, error) {
	grams, err := Analyze(text, params.Analyzer, params.NgramRange)
	if err != nil {
		return vector.Sparse{}, err
	}
	if len(grams) == 0 {
		return vector.Sparse{}, nil
	}
	features := uint64(params.Features)
	counts := make(map[uint32]float32, len(grams))
	for _, gram := range grams {
		counts[uint32(xxhash.Sum64String(gram)%features)]++
	}
	return vector.NewSparse(counts), nil
}

func textSet(t *table.Table, columns []string, params Params) (*Set, error) {
	n := t.Len()
	if n == 0 {
		return nil, fmt.Errorf("%w: table has no rows", ErrEmptyKey)
	}
	set := &Set{
		Kind:   Text,
		Dim:    params.Features,
		Sparse: make([]vector.Sparse, n),
		Valid:  make([]bool, n),
	}
	valid := 0
	for i := 0; i < n; i++ {
		text, err := KeyText(t, columns, i)
		if err != nil {
			return nil, err
		}
		vec, err := Encode(text, params)
		if err != nil {
			return nil, err
		}
		set.Sparse[i] = vec
		if !vec.IsZero() {
			set.Valid[i] = true
			valid++
		}
	}
	if valid == 0 {
		return nil, fmt.Errorf("%w: no n-grams in columns %v", ErrEmptyKey, columns)
	}
	return set, nil
}

func numericSet(t *table.Table, columns []string) (*Set, error) {
	n := t.Len()
	if n == 0 {
		return nil, fmt.Errorf("%w: table has no rows", ErrEmptyKey)
	}
	set := &Set{
		Kind:  Numeric,
		Dim:   len(columns),
		Dense: make([][]float32, n),
		Valid: make([]bool, n),
	}
	cols := make([][]any, len(columns))
	for c, name := range columns {
		col, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		cols[c] = col
	}
	valid := 0
	for i := 0; i < n; i++ {
		point := make([]float32, len(columns))
		ok := true
		for c := range cols {
			value := cols[c][i]
			if table.IsMissing(value) {
				ok = false
				continue
			}
			f, isNum := table.Float(value)
			if !isNum {
				return nil, fmt.Errorf("%w: column %q row %d: %v", ErrNotNumeric, columns[c], i, value)
			}
			point[c] = float32(f)
		}
		set.Dense[i] = point
		if ok {
			set.Valid[i] = true
			valid++
		}
	}
	if valid == 0 {
		return nil, fmt.Errorf("%w: no numeric values in columns %v", ErrEmptyKey, columns)
	}
	return set, nil
}
