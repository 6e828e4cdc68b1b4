package join

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/viant/fuzzyjoin/matcher"
	"github.com/viant/fuzzyjoin/table"
	"github.com/viant/fuzzyjoin/vectorizer"
)

// DefaultScoreColumn is the score column added by FuzzyJoin with ReturnScore.
const DefaultScoreColumn = "matching_score"

// FuzzyOptions controls FuzzyJoin.
type FuzzyOptions struct {
	Options
	MatchScore float64
	Params     vectorizer.Params
	Index      matcher.IndexKind
	// ReturnScore adds the match score column, named ScoreColumn or
	// DefaultScoreColumn.
	ReturnScore bool
	Logger      *slog.Logger
}

// DefaultFuzzyOptions returns char_wb (2, 4) n-grams, match score 0 and the
// brute-force index.
func DefaultFuzzyOptions() FuzzyOptions {
	return FuzzyOptions{
		Options: Options{Suffixes: DefaultSuffixes()},
		Params:  vectorizer.DefaultParams(),
		Index:   matcher.Brute,
	}
}

// ErrKeyArity is returned when the left and right keys name a different
// number of columns.
var ErrKeyArity = errors.New("join: left and right keys differ in arity")

// FuzzyJoin joins right onto left by approximate key equality.
func FuzzyJoin(left, right *table.Table, leftOn, rightOn []string, opts FuzzyOptions) (*table.Table, error) {
	v, err := vectorizer.New(2, vectorizer.WithLogger(opts.Logger))
	if err != nil {
		return nil, err
	}
	if opts.ReturnScore && opts.ScoreColumn == "" {
		opts.ScoreColumn = DefaultScoreColumn
	}
	if !opts.ReturnScore {
		opts.ScoreColumn = ""
	}
	lv, rv, err := Vectorize(v, left, right, leftOn, rightOn, opts.Params)
	if err != nil {
		return nil, err
	}
	result, err := matcher.Match(lv, rv, opts.MatchScore, matcher.Options{Index: opts.Index, Logger: opts.Logger})
	if err != nil {
		return nil, err
	}
	return Assemble(left, right, result, opts.Options)
}

// CheckKeys verifies that both keys are non-empty and of equal arity.
func CheckKeys(leftOn, rightOn []string) error {
	if len(leftOn) == 0 || len(rightOn) == 0 {
		return fmt.Errorf("join: %w: key columns are required", vectorizer.ErrEmptyKey)
	}
	if len(leftOn) != len(rightOn) {
		return fmt.Errorf("%w: %v has %d columns, %v has %d", ErrKeyArity, leftOn, len(leftOn), rightOn, len(rightOn))
	}
	return nil
}

// Vectorize encodes the left and right keys with v in one shared vector
// kind: numeric only when both keys are numeric, text otherwise.
func Vectorize(v *vectorizer.Vectorizer, left, right *table.Table, leftOn, rightOn []string, params vectorizer.Params) (*vectorizer.Set, *vectorizer.Set, error) {
	if err := CheckKeys(leftOn, rightOn); err != nil {
		return nil, nil, err
	}
	if params.Kind == vectorizer.Auto {
		kind, err := sharedKind(left, right, leftOn, rightOn)
		if err != nil {
			return nil, nil, err
		}
		params.Kind = kind
	}
	lv, err := v.Vectorize(left, leftOn, params)
	if err != nil {
		return nil, nil, fmt.Errorf("join: left key %v: %w", leftOn, err)
	}
	rv, err := v.Vectorize(right, rightOn, params)
	if err != nil {
		return nil, nil, fmt.Errorf("join: right key %v: %w", rightOn, err)
	}
	return lv, rv, nil
}

func sharedKind(left, right *table.Table, leftOn, rightOn []string) (vectorizer.Kind, error) {
	lk, err := vectorizer.DetectKind(left, leftOn)
	if err != nil {
		return vectorizer.Auto, err
	}
	rk, err := vectorizer.DetectKind(right, rightOn)
	if err != nil {
		return vectorizer.Auto, err
	}
	if lk == vectorizer.Numeric && rk == vectorizer.Numeric {
		return vectorizer.Numeric, nil
	}
	return vectorizer.Text, nil
}
