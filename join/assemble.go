package join

import (
	"fmt"

	"github.com/viant/fuzzyjoin/matcher"
	"github.com/viant/fuzzyjoin/table"
)

// DefaultRightSuffix is appended to right column names that collide.
const DefaultRightSuffix = "_aux"

// Suffixes are appended to colliding column names. Left is applied to left
// columns that also exist on the right; Right is applied to right columns
// until their name is unique.
type Suffixes struct {
	Left  string
	Right string
}

// DefaultSuffixes keeps left names and suffixes right names with _aux.
func DefaultSuffixes() Suffixes {
	return Suffixes{Right: DefaultRightSuffix}
}

// Options controls assembly.
type Options struct {
	Suffixes Suffixes
	// ScoreColumn, when set, appends the match score of every matched row.
	ScoreColumn string
}

// Assemble returns a new table with one row per left row, in left order,
// followed by the right columns of the matched right row. Unmatched rows get
// nil right values.
func Assemble(left, right *table.Table, result matcher.Result, opts Options) (*table.Table, error) {
	if len(result.Pairs) != left.Len() {
		return nil, fmt.Errorf("join: match result has %d rows, left table has %d", len(result.Pairs), left.Len())
	}
	if opts.Suffixes.Right == "" {
		opts.Suffixes.Right = DefaultRightSuffix
	}
	leftNames := left.Columns()
	rightNames := right.Columns()
	rows := left.Len()

	names := make([]string, 0, len(leftNames)+len(rightNames)+1)
	cols := make([][]any, 0, cap(names))
	taken := make(map[string]bool, cap(names))
	for _, name := range rightNames {
		taken[name] = true
	}
	for _, name := range leftNames {
		taken[name] = true
	}
	for _, name := range leftNames {
		col, err := left.Column(name)
		if err != nil {
			return nil, err
		}
		out := name
		if opts.Suffixes.Left != "" && right.Has(name) {
			out = unique(name+opts.Suffixes.Left, opts.Suffixes.Left, taken)
			taken[out] = true
		}
		names = append(names, out)
		cols = append(cols, col)
	}

	final := make(map[string]bool, cap(names))
	for _, name := range names {
		final[name] = true
	}
	for _, name := range rightNames {
		src, err := right.Column(name)
		if err != nil {
			return nil, err
		}
		out := name
		if final[out] {
			out = unique(name+opts.Suffixes.Right, opts.Suffixes.Right, final)
		}
		final[out] = true
		col := make([]any, rows)
		for i, p := range result.Pairs {
			if p.OK {
				col[i] = src[p.Right]
			}
		}
		names = append(names, out)
		cols = append(cols, col)
	}

	if opts.ScoreColumn != "" {
		out := opts.ScoreColumn
		if final[out] {
			out = unique(out+opts.Suffixes.Right, opts.Suffixes.Right, final)
		}
		col := make([]any, rows)
		for i, p := range result.Pairs {
			if p.OK {
				col[i] = p.Score
			}
		}
		names = append(names, out)
		cols = append(cols, col)
	}
	return table.FromColumns(names, cols)
}

func unique(name, suffix string, taken map[string]bool) string {
	for taken[name] {
		name += suffix
	}
	return name
}
