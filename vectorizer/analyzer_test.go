package vectorizer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnalyzer(t *testing.T) {
	for _, name := range []string{"word", "char", "char_wb", " CHAR_WB "} {
		_, err := ParseAnalyzer(name)
		require.NoError(t, err, name)
	}
	_, err := ParseAnalyzer("chars")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedAnalyzer))
}

func TestAnalyze(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		analyzer Analyzer
		ngrams   NgramRange
		want     []string
	}{
		{
			name:     "char_wb pads words",
			text:     "ab",
			analyzer: CharWB,
			ngrams:   NgramRange{Min: 2, Max: 3},
			want:     []string{" a", "ab", "b ", " ab", "ab "},
		},
		{
			name:     "char_wb short word counted once",
			text:     "a",
			analyzer: CharWB,
			ngrams:   NgramRange{Min: 3, Max: 5},
			want:     []string{" a "},
		},
		{
			name:     "char_wb keeps words apart",
			text:     "A  b",
			analyzer: CharWB,
			ngrams:   NgramRange{Min: 2, Max: 2},
			want:     []string{" a", "a ", " b", "b "},
		},
		{
			name:     "char spans words",
			text:     "a b",
			analyzer: Char,
			ngrams:   NgramRange{Min: 2, Max: 2},
			want:     []string{"a ", " b"},
		},
		{
			name:     "char unigrams",
			text:     "Ab",
			analyzer: Char,
			ngrams:   NgramRange{Min: 1, Max: 2},
			want:     []string{"a", "b", "ab"},
		},
		{
			name:     "word ngrams",
			text:     "New York city",
			analyzer: Word,
			ngrams:   NgramRange{Min: 1, Max: 2},
			want:     []string{"new", "york", "city", "new york", "york city"},
		},
		{
			name:     "word drops single characters",
			text:     "a bc",
			analyzer: Word,
			ngrams:   NgramRange{Min: 1, Max: 1},
			want:     []string{"bc"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Analyze(tc.text, tc.analyzer, tc.ngrams)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAnalyze_Errors(t *testing.T) {
	_, err := Analyze("x", "bogus", NgramRange{Min: 1, Max: 1})
	assert.True(t, errors.Is(err, ErrUnsupportedAnalyzer))

	_, err = Analyze("x", Char, NgramRange{Min: 3, Max: 2})
	assert.True(t, errors.Is(err, ErrInvalidNgramRange))

	_, err = Analyze("x", Char, NgramRange{Min: 0, Max: 2})
	assert.True(t, errors.Is(err, ErrInvalidNgramRange))
}
