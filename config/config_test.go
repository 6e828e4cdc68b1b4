package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/fuzzyjoin/join"
	"github.com/viant/fuzzyjoin/joiner"
	"github.com/viant/fuzzyjoin/matcher"
	"github.com/viant/fuzzyjoin/table"
	"github.com/viant/fuzzyjoin/vectorizer"
)

const jobYAML = `
main: {source: csv, path: countries.csv, key: [Country]}
tables:
  - {source: sqlite, dsn: ref.db, query: "SELECT * FROM population", key: [Country]}
  - {source: parquet, path: gdp.parquet, key: ["Country name"]}
match_score: 0.3
index: auto
output: out.csv
`

func TestParse(t *testing.T) {
	job, err := Parse([]byte(jobYAML))
	require.NoError(t, err)

	assert.Equal(t, Source{Source: SourceCSV, Path: "countries.csv", Key: []string{"Country"}}, job.Main)
	require.Len(t, job.Tables, 2)
	assert.Equal(t, "SELECT * FROM population", job.Tables[0].Query)
	assert.Equal(t, []string{"Country name"}, job.Tables[1].Key)
	assert.Equal(t, 0.3, job.MatchScore)
	assert.Equal(t, "char_wb", job.Analyzer)
	assert.Equal(t, []int{2, 4}, job.NgramRange)
	assert.Equal(t, joiner.DefaultCacheCapacity, job.CacheCapacity)
	assert.Equal(t, "auto", job.Index)
	assert.Equal(t, "out.csv", job.Output)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.yaml")
	require.NoError(t, os.WriteFile(path, []byte(jobYAML), 0o644))
	job, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, job.Tables, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	_, err := Parse([]byte(`
main: {source: excel, path: x.xlsx, key: [a]}
tables:
  - {source: sqlite, dsn: ref.db, key: [b]}
  - {source: csv, key: []}
match_score: 2
analyzer: phonetic
ngram_range: [4, 2]
index: lsh
`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, matcher.ErrInvalidMatchScore))
	assert.True(t, errors.Is(err, vectorizer.ErrUnsupportedAnalyzer))
	assert.True(t, errors.Is(err, vectorizer.ErrInvalidNgramRange))
	assert.True(t, errors.Is(err, matcher.ErrUnsupportedIndex))
	for _, want := range []string{`main: unsupported source "excel"`, "tables[0]: dsn and query", "tables[1]: key is required"} {
		assert.Contains(t, err.Error(), want)
	}

	_, err = Parse([]byte(`
main: {source: csv, path: a.csv, key: [lat, lon]}
tables:
  - {source: csv, path: b.csv, key: [lat]}
`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, join.ErrKeyArity))
	assert.Contains(t, err.Error(), "tables[0]")

	_, err = Parse([]byte(`main: {source: csv, path: a.csv, key: [a]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one auxiliary table")

	_, err = Parse([]byte(`main: [`))
	require.Error(t, err)
}

func TestJoinerOptions(t *testing.T) {
	job, err := Parse([]byte(`
main: {source: csv, path: a.csv, key: [Country]}
tables:
  - {source: csv, path: b.csv, key: [Country]}
match_score: 1
score_column: score
ngram_range: [1, 3]
analyzer: char
`))
	require.NoError(t, err)

	main := table.MustNew([]string{"Country"}, [][]any{{"France"}, {"Germany"}})
	aux := table.MustNew([]string{"Country", "Pop"}, [][]any{{"France", 68}, {"Germani", 84}})
	j, err := joiner.New(joiner.Single(aux, "Country"), []string{"Country"}, job.JoinerOptions()...)
	require.NoError(t, err)
	out, err := j.FitTransform(main)
	require.NoError(t, err)
	assert.Equal(t, []string{"Country", "Country_aux", "Pop", "score"}, out.Columns())
	assert.Equal(t, []any{"France", "France", 68, 1.0}, out.Row(0))
	assert.Equal(t, []any{"Germany", nil, nil, nil}, out.Row(1))
}
