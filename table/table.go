package table

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrColumnNotFound is wrapped by MissingColumnError.
var ErrColumnNotFound = errors.New("table: column not found")

// MissingColumnError reports a column lookup against a table that does not
// have it, together with the columns that are available.
type MissingColumnError struct {
	Column    string
	Available []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("table: column %q not found in columns: [%s]", e.Column, strings.Join(e.Available, ", "))
}

func (e *MissingColumnError) Unwrap() error { return ErrColumnNotFound }

// Table is an ordered set of named columns of equal length. Cells are nil
// (missing), string, bool, integers or floats.
type Table struct {
	id      string
	names   []string
	columns [][]any
	index   map[string]int
	rows    int
}

// New builds a table from row-major data. Every row must have one value per
// column.
func New(columns []string, rows [][]any) (*Table, error) {
	cols := make([][]any, len(columns))
	for c := range cols {
		cols[c] = make([]any, len(rows))
	}
	for r, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("table: row %d has %d values, want %d", r, len(row), len(columns))
		}
		for c, v := range row {
			cols[c][r] = v
		}
	}
	return FromColumns(columns, cols)
}

// FromColumns builds a table from column-major data. The column slices are
// copied.
func FromColumns(names []string, columns [][]any) (*Table, error) {
	if len(names) != len(columns) {
		return nil, fmt.Errorf("table: names and columns length mismatch: %d != %d", len(names), len(columns))
	}
	t := &Table{
		id:    uuid.NewString(),
		index: make(map[string]int, len(names)),
	}
	for i, name := range names {
		if err := t.AppendColumn(name, columns[i]); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// MustNew is New that panics on error. It is meant for tests and literals.
func MustNew(columns []string, rows [][]any) *Table {
	t, err := New(columns, rows)
	if err != nil {
		panic(err)
	}
	return t
}

// ID returns the identity assigned to the table at construction.
func (t *Table) ID() string { return t.id }

// Columns returns the column names in order.
func (t *Table) Columns() []string { return append([]string(nil), t.names...) }

// Len returns the number of rows.
func (t *Table) Len() int { return t.rows }

// Has reports whether the table has a column with the given name.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Require checks that every named column exists.
func (t *Table) Require(names ...string) error {
	for _, name := range names {
		if !t.Has(name) {
			return &MissingColumnError{Column: name, Available: t.Columns()}
		}
	}
	return nil
}

// Column returns the values of the named column. The returned slice must not
// be modified.
func (t *Table) Column(name string) ([]any, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, &MissingColumnError{Column: name, Available: t.Columns()}
	}
	return t.columns[i], nil
}

// Row returns a copy of the values at position i, in column order.
func (t *Table) Row(i int) []any {
	row := make([]any, len(t.columns))
	for c := range t.columns {
		row[c] = t.columns[c][i]
	}
	return row
}

// Value returns the cell at row i of the named column.
func (t *Table) Value(i int, name string) (any, error) {
	col, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= len(col) {
		return nil, fmt.Errorf("table: row %d out of range [0, %d)", i, len(col))
	}
	return col[i], nil
}

// AppendColumn adds a column at the end. The name must be new and the values
// must cover every row.
func (t *Table) AppendColumn(name string, values []any) error {
	if _, ok := t.index[name]; ok {
		return fmt.Errorf("table: duplicate column %q", name)
	}
	if len(t.names) > 0 && len(values) != t.rows {
		return fmt.Errorf("table: column %q has %d values, want %d", name, len(values), t.rows)
	}
	if len(t.names) == 0 {
		t.rows = len(values)
	}
	t.index[name] = len(t.names)
	t.names = append(t.names, name)
	t.columns = append(t.columns, append([]any(nil), values...))
	return nil
}
