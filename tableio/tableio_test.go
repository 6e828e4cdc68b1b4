package tableio

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/fuzzyjoin/engine"
	"github.com/viant/fuzzyjoin/table"
)

func TestLoadCSV(t *testing.T) {
	data := "Country,Pop,Area\nFrance,68,551.5\nGermany,,357\n\"Italy, Republic\",59,x\n"
	tbl, err := LoadCSV(strings.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, []string{"Country", "Pop", "Area"}, tbl.Columns())
	assert.Equal(t, 3, tbl.Len())
	assert.Equal(t, []any{"France", int64(68), "551.5"}, tbl.Row(0))
	assert.Equal(t, []any{"Germany", nil, "357"}, tbl.Row(1))
	assert.Equal(t, []any{"Italy, Republic", int64(59), "x"}, tbl.Row(2))
}

func TestLoadCSV_Floats(t *testing.T) {
	tbl, err := LoadCSV(strings.NewReader("x\n1\n2.5\n"))
	require.NoError(t, err)
	col, err := tbl.Column("x")
	require.NoError(t, err)
	assert.Equal(t, []any{1.0, 2.5}, col)
}

func TestLoadCSV_Errors(t *testing.T) {
	_, err := LoadCSV(strings.NewReader(""))
	require.Error(t, err)
	_, err = LoadCSV(strings.NewReader("a,b\n1\n"))
	require.Error(t, err)
	_, err = LoadCSVFile(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	tbl := table.MustNew([]string{"Country", "Pop", "score"}, [][]any{
		{"France", int64(68), 0.75},
		{"Germany", nil, nil},
	})
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, tbl))
	assert.Equal(t, "Country,Pop,score\nFrance,68,0.75\nGermany,,\n", buf.String())

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteCSVFile(path, tbl))
	loaded, err := LoadCSVFile(path)
	require.NoError(t, err)
	assert.Equal(t, []any{"France", int64(68), 0.75}, loaded.Row(0))
	assert.Equal(t, []any{"Germany", nil, nil}, loaded.Row(1))
}

func TestLoadSQLite(t *testing.T) {
	db, err := engine.Open(":memory:")
	require.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`CREATE TABLE population(country TEXT, pop INTEGER, density REAL)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO population VALUES ('France', 68, 122.5), ('Germany', 84, NULL)`)
	require.NoError(t, err)

	tbl, err := LoadSQLite(context.Background(), db, `SELECT country, pop, density FROM population WHERE pop > ? ORDER BY country`, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"country", "pop", "density"}, tbl.Columns())
	assert.Equal(t, []any{"France", int64(68), 122.5}, tbl.Row(0))
	assert.Equal(t, []any{"Germany", int64(84), nil}, tbl.Row(1))

	_, err = LoadSQLite(context.Background(), db, `SELECT * FROM missing`)
	require.Error(t, err)
}

func TestLoadSQLiteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ref.db")
	db, err := engine.Open(path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE capitals(nation TEXT, capital TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO capitals VALUES ('France', 'Paris')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	tbl, err := LoadSQLiteFile(context.Background(), path, `SELECT * FROM capitals`)
	require.NoError(t, err)
	assert.Equal(t, []any{"France", "Paris"}, tbl.Row(0))
}

type gdpRecord struct {
	Country string  `parquet:"country"`
	Year    int32   `parquet:"year"`
	GDP     float64 `parquet:"gdp"`
}

func TestLoadParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gdp.parquet")
	file, err := os.Create(path)
	require.NoError(t, err)
	writer := parquet.NewGenericWriter[gdpRecord](file)
	_, err = writer.Write([]gdpRecord{
		{Country: "France", Year: 2023, GDP: 3.03},
		{Country: "Germany", Year: 2023, GDP: 4.46},
	})
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	require.NoError(t, file.Close())

	tbl, err := LoadParquet(path)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"country", "year", "gdp"}, tbl.Columns())
	assert.Equal(t, 2, tbl.Len())

	country, err := tbl.Column("country")
	require.NoError(t, err)
	assert.Equal(t, []any{"France", "Germany"}, country)
	year, err := tbl.Column("year")
	require.NoError(t, err)
	assert.Equal(t, []any{int64(2023), int64(2023)}, year)
	gdp, err := tbl.Column("gdp")
	require.NoError(t, err)
	assert.Equal(t, []any{3.03, 4.46}, gdp)

	_, err = LoadParquet(filepath.Join(t.TempDir(), "missing.parquet"))
	require.Error(t, err)
}
