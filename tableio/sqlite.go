package tableio

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/viant/fuzzyjoin/engine"
	"github.com/viant/fuzzyjoin/table"
)

// LoadSQLite runs query on db and returns its result set. BLOB values are
// returned as strings.
func LoadSQLite(ctx context.Context, db *sql.DB, query string, args ...any) (*table.Table, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("tableio: query: %w", err)
	}
	defer rows.Close()
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("tableio: columns: %w", err)
	}
	cols := make([][]any, len(columns))
	values := make([]any, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("tableio: scan: %w", err)
		}
		for c, v := range values {
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			cols[c] = append(cols[c], v)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("tableio: rows: %w", err)
	}
	return table.FromColumns(columns, cols)
}

// LoadSQLiteFile opens the SQLite database at dsn, runs query and closes it.
func LoadSQLiteFile(ctx context.Context, dsn, query string, args ...any) (*table.Table, error) {
	db, err := engine.Open(dsn)
	if err != nil {
		return nil, fmt.Errorf("tableio: open %s: %w", dsn, err)
	}
	defer db.Close()
	return LoadSQLite(ctx, db, query, args...)
}
