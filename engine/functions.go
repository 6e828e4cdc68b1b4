package engine

import (
	"database/sql/driver"
	"fmt"
	"sync"

	sqlite "modernc.org/sqlite"

	"github.com/viant/fuzzyjoin/vectorizer"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterFunctions registers ngram_similarity, ngram_distance and
// match_score with the driver. Only connections opened after the first call
// see them; repeated calls are no-ops.
func RegisterFunctions() error {
	registerOnce.Do(func() {
		for name, fn := range map[string]func(*sqlite.FunctionContext, []driver.Value) (driver.Value, error){
			"ngram_similarity": ngramSimilarityImpl,
			"ngram_distance":   ngramDistanceImpl,
			"match_score":      matchScoreImpl,
		} {
			if registerErr = sqlite.RegisterDeterministicScalarFunction(name, 2, fn); registerErr != nil {
				return
			}
		}
	})
	return registerErr
}

// ngram_similarity(a, b) is the shared n-gram ratio of a and b over
// character 2 to 4-grams, NULL when either is NULL.
func ngramSimilarityImpl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	return score("ngram_similarity", args, ngramSimilarity)
}

func ngramDistanceImpl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	return score("ngram_distance", args, func(a, b string) (float64, error) {
		sim, err := ngramSimilarity(a, b)
		return 1 - sim, err
	})
}

// match_score(a, b) is the score a default text join gives the pair.
func matchScoreImpl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	return score("match_score", args, func(a, b string) (float64, error) {
		return vectorizer.Similarity(a, b, vectorizer.DefaultParams())
	})
}

func ngramSimilarity(a, b string) (float64, error) {
	return vectorizer.NgramSimilarity(a, b, vectorizer.DefaultParams().NgramRange)
}

func score(name string, args []driver.Value, fn func(a, b string) (float64, error)) (driver.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("%s: expected 2 arguments, got %d", name, len(args))
	}
	a, ok, err := asText(name, args[0])
	if err != nil || !ok {
		return nil, err
	}
	b, ok, err := asText(name, args[1])
	if err != nil || !ok {
		return nil, err
	}
	value, err := fn(a, b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return value, nil
}

func asText(name string, arg driver.Value) (string, bool, error) {
	switch v := arg.(type) {
	case nil:
		return "", false, nil
	case string:
		return v, true, nil
	case []byte:
		return string(v), true, nil
	case int64, float64:
		return fmt.Sprint(v), true, nil
	default:
		return "", false, fmt.Errorf("%s: unsupported argument type %T; want TEXT", name, arg)
	}
}
