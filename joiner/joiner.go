package joiner

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/viant/fuzzyjoin/cache"
	"github.com/viant/fuzzyjoin/join"
	"github.com/viant/fuzzyjoin/matcher"
	"github.com/viant/fuzzyjoin/metrics"
	"github.com/viant/fuzzyjoin/table"
	"github.com/viant/fuzzyjoin/vectorizer"
)

// ErrConfig is wrapped by every configuration error.
var ErrConfig = errors.New("joiner: invalid configuration")

// Aux is an auxiliary table and its key columns.
type Aux struct {
	Table *table.Table
	Key   []string
}

// Single wraps one auxiliary table into a list.
func Single(t *table.Table, key ...string) []Aux {
	return []Aux{{Table: t, Key: key}}
}

// Joiner is a configured, not yet validated join.
type Joiner struct {
	tables  []Aux
	mainKey []string
	opts    options
}

// New stores the configuration and checks the parameters that do not depend
// on any table content.
func New(tables []Aux, mainKey []string, opts ...Option) (*Joiner, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("%w: no auxiliary tables", ErrConfig)
	}
	if len(mainKey) == 0 {
		return nil, fmt.Errorf("%w: main key is empty", ErrConfig)
	}
	for i, aux := range tables {
		if aux.Table == nil {
			return nil, fmt.Errorf("%w: auxiliary table %d is nil", ErrConfig, i)
		}
		if len(aux.Key) == 0 {
			return nil, fmt.Errorf("%w: auxiliary table %d has an empty key", ErrConfig, i)
		}
	}
	if math.IsNaN(o.matchScore) || o.matchScore < 0 || o.matchScore > 1 {
		return nil, fmt.Errorf("%w: %w: got %v", ErrConfig, matcher.ErrInvalidMatchScore, o.matchScore)
	}
	if err := o.params().Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if o.cacheCapacity <= 0 {
		return nil, fmt.Errorf("%w: %w: %d", ErrConfig, cache.ErrInvalidCapacity, o.cacheCapacity)
	}
	if _, err := matcher.ParseIndexKind(string(o.index)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return &Joiner{
		tables:  append([]Aux(nil), tables...),
		mainKey: append([]string(nil), mainKey...),
		opts:    o,
	}, nil
}

func (o options) params() vectorizer.Params {
	params := vectorizer.DefaultParams()
	params.Analyzer = o.analyzer
	params.NgramRange = o.ngramRange
	return params
}

// Fit checks the main key against main and every auxiliary key against its
// table.
func (j *Joiner) Fit(main *table.Table) (*Fitted, error) {
	if err := checkMain(main, j.mainKey); err != nil {
		return nil, err
	}
	for i, aux := range j.tables {
		if err := join.CheckKeys(j.mainKey, aux.Key); err != nil {
			return nil, fmt.Errorf("%w: auxiliary table %d: %w", ErrConfig, i, err)
		}
		if err := aux.Table.Require(aux.Key...); err != nil {
			return nil, fmt.Errorf("%w: auxiliary table %d: %w", ErrConfig, i, err)
		}
	}
	v, err := vectorizer.New(j.opts.cacheCapacity, vectorizer.WithLogger(j.opts.logger))
	if err != nil {
		return nil, err
	}
	j.opts.logger.Debug("joiner: fitted", "tables", len(j.tables), "main_key", j.mainKey)
	return &Fitted{joiner: j, vectorizer: v}, nil
}

// FitTransform fits on main and transforms it.
func (j *Joiner) FitTransform(main *table.Table) (*table.Table, error) {
	f, err := j.Fit(main)
	if err != nil {
		return nil, err
	}
	return f.Transform(main)
}

func checkMain(main *table.Table, key []string) error {
	if main == nil {
		return fmt.Errorf("%w: main table is nil", ErrConfig)
	}
	if err := main.Require(key...); err != nil {
		return fmt.Errorf("%w: main table: %w", ErrConfig, err)
	}
	return nil
}

// Fitted is a validated joiner. Transform may be called repeatedly, also
// concurrently; calls are serialized because the vector cache mutates on
// every lookup.
type Fitted struct {
	joiner     *Joiner
	vectorizer *vectorizer.Vectorizer
	mux        sync.Mutex
}

// Transform joins every auxiliary table onto main, in order. Only the main
// key columns are checked again.
func (f *Fitted) Transform(main *table.Table) (*table.Table, error) {
	f.mux.Lock()
	defer f.mux.Unlock()
	out, err := f.transform(main)
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.TransformsTotal.WithLabelValues(status).Inc()
	return out, err
}

// transform matches every auxiliary key against the key of main itself:
// assembly keeps left rows and values in place, so the key columns of the
// intermediate result only differ from main by a possible left suffix. Only
// main and the auxiliary tables reach the vector cache.
func (f *Fitted) transform(main *table.Table) (*table.Table, error) {
	j := f.joiner
	if err := checkMain(main, j.mainKey); err != nil {
		return nil, err
	}
	options := join.Options{
		Suffixes:    j.opts.suffixes,
		ScoreColumn: j.opts.scoreColumn,
	}
	params := j.opts.params()
	result := main
	for i, aux := range j.tables {
		started := time.Now()
		left, right, err := join.Vectorize(f.vectorizer, main, aux.Table, j.mainKey, aux.Key, params)
		if err != nil {
			return nil, fmt.Errorf("joiner: auxiliary table %d: %w", i, err)
		}
		matched, err := matcher.Match(left, right, j.opts.matchScore, matcher.Options{Index: j.opts.index, Logger: j.opts.logger})
		if err != nil {
			return nil, fmt.Errorf("joiner: auxiliary table %d: %w", i, err)
		}
		next, err := join.Assemble(result, aux.Table, matched, options)
		if err != nil {
			return nil, fmt.Errorf("joiner: auxiliary table %d: %w", i, err)
		}
		elapsed := time.Since(started)
		metrics.JoinDuration.Observe(elapsed.Seconds())
		j.opts.logger.Debug("joiner: joined",
			"table", i,
			"rows", next.Len(),
			"matched", matched.Matched(),
			"index", string(matched.Index),
			"cached", f.vectorizer.Len(),
			"duration", elapsed,
		)
		result = next
	}
	return result, nil
}
