package vectorizer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/fuzzyjoin/table"
)

func countries() *table.Table {
	return table.MustNew([]string{"Country", "Code"}, [][]any{
		{"France", "FR"},
		{"Germany", "DE"},
		{nil, "XX"},
	})
}

func TestVectorize_Text(t *testing.T) {
	v, err := New(4)
	require.NoError(t, err)
	set, err := v.Vectorize(countries(), []string{"Country"}, DefaultParams())
	require.NoError(t, err)

	assert.Equal(t, Text, set.Kind)
	assert.Equal(t, DefaultFeatures, set.Dim)
	assert.Equal(t, 3, set.Len())
	assert.Equal(t, []bool{true, true, false}, set.Valid)
	assert.True(t, set.Sparse[2].IsZero())
	for _, idx := range set.Sparse[0].Indices {
		assert.Less(t, idx, uint32(DefaultFeatures))
	}
}

func TestVectorize_Deterministic(t *testing.T) {
	tbl := countries()
	a, err := New(1)
	require.NoError(t, err)
	b, err := New(1)
	require.NoError(t, err)

	s1, err := a.Vectorize(tbl, []string{"Country"}, DefaultParams())
	require.NoError(t, err)
	s2, err := b.Vectorize(tbl, []string{"Country"}, DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, s1.Sparse, s2.Sparse)
}

func TestVectorize_Cache(t *testing.T) {
	tbl := countries()
	v, err := New(4)
	require.NoError(t, err)
	params := DefaultParams()

	assert.False(t, v.Cached(tbl, []string{"Country"}, params))
	s1, err := v.Vectorize(tbl, []string{"Country"}, params)
	require.NoError(t, err)
	assert.True(t, v.Cached(tbl, []string{"Country"}, params))

	s2, err := v.Vectorize(tbl, []string{"Country"}, params)
	require.NoError(t, err)
	assert.Same(t, s1, s2)

	changed := params
	changed.NgramRange = NgramRange{Min: 1, Max: 3}
	assert.False(t, v.Cached(tbl, []string{"Country"}, changed))
	s3, err := v.Vectorize(tbl, []string{"Country"}, changed)
	require.NoError(t, err)
	assert.NotSame(t, s1, s3)

	changed = params
	changed.Analyzer = Char
	assert.False(t, v.Cached(tbl, []string{"Country"}, changed))

	other := countries()
	assert.False(t, v.Cached(other, []string{"Country"}, params), "identity is per table instance")
}

func TestVectorize_CompositeKey(t *testing.T) {
	v, err := New(2)
	require.NoError(t, err)
	tbl := countries()

	set, err := v.Vectorize(tbl, []string{"Country", "Code"}, DefaultParams())
	require.NoError(t, err)
	want, err := Encode("France FR", DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, want, set.Sparse[0])
	assert.True(t, set.Valid[2], "one present component keeps the row")

	text, err := KeyText(tbl, []string{"Country", "Code"}, 2)
	require.NoError(t, err)
	assert.Equal(t, "XX", text)
}

func TestVectorize_Numeric(t *testing.T) {
	tbl := table.MustNew([]string{"lat", "lon"}, [][]any{
		{1.5, int64(2)},
		{nil, 3.0},
		{float32(-1), 4},
	})
	kind, err := DetectKind(tbl, []string{"lat", "lon"})
	require.NoError(t, err)
	assert.Equal(t, Numeric, kind)

	v, err := New(2)
	require.NoError(t, err)
	set, err := v.Vectorize(tbl, []string{"lat", "lon"}, DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, Numeric, set.Kind)
	assert.Equal(t, 2, set.Dim)
	assert.Equal(t, []float32{1.5, 2}, set.Dense[0])
	assert.Equal(t, []float32{-1, 4}, set.Dense[2])
	assert.Equal(t, []bool{true, false, true}, set.Valid)
}

func TestVectorize_ForcedNumericRejectsText(t *testing.T) {
	v, err := New(2)
	require.NoError(t, err)
	params := DefaultParams()
	params.Kind = Numeric
	_, err = v.Vectorize(countries(), []string{"Country"}, params)
	assert.True(t, errors.Is(err, ErrNotNumeric))
}

func TestVectorize_Errors(t *testing.T) {
	v, err := New(2)
	require.NoError(t, err)

	empty := table.MustNew([]string{"Country"}, nil)
	_, err = v.Vectorize(empty, []string{"Country"}, DefaultParams())
	assert.True(t, errors.Is(err, ErrEmptyKey))

	blank := table.MustNew([]string{"Country"}, [][]any{{nil}, {"   "}})
	_, err = v.Vectorize(blank, []string{"Country"}, DefaultParams())
	assert.True(t, errors.Is(err, ErrEmptyKey))

	_, err = v.Vectorize(countries(), []string{"Capital"}, DefaultParams())
	assert.True(t, errors.Is(err, table.ErrColumnNotFound))

	params := DefaultParams()
	params.Analyzer = "bogus"
	_, err = v.Vectorize(countries(), []string{"Country"}, params)
	assert.True(t, errors.Is(err, ErrUnsupportedAnalyzer))

	_, err = New(0)
	require.Error(t, err)
}

func TestDetectKind_Mixed(t *testing.T) {
	tbl := table.MustNew([]string{"k"}, [][]any{{1}, {"two"}})
	kind, err := DetectKind(tbl, []string{"k"})
	require.NoError(t, err)
	assert.Equal(t, Text, kind)

	allMissing := table.MustNew([]string{"k"}, [][]any{{nil}})
	kind, err = DetectKind(allMissing, []string{"k"})
	require.NoError(t, err)
	assert.Equal(t, Text, kind)
}
