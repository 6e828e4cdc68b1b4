package tableio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/viant/fuzzyjoin/table"
)

// LoadCSVFile loads the CSV file at path.
func LoadCSVFile(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tableio: %w", err)
	}
	defer f.Close()
	t, err := LoadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	return t, nil
}

// LoadCSV reads a CSV stream whose first record is the header. Empty cells
// are missing. A column whose cells all parse as integers becomes int64, one
// whose cells all parse as numbers becomes float64; anything else stays text.
func LoadCSV(r io.Reader) (*table.Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("tableio: csv has no header")
	}
	if err != nil {
		return nil, fmt.Errorf("tableio: csv header: %w", err)
	}
	raw := make([][]string, len(header))
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("tableio: csv line %d: %w", line, err)
		}
		for c := range header {
			raw[c] = append(raw[c], record[c])
		}
	}
	cols := make([][]any, len(header))
	for c := range header {
		cols[c] = typed(raw[c])
	}
	return table.FromColumns(header, cols)
}

func typed(cells []string) []any {
	ints, floats := true, true
	for _, cell := range cells {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		if _, err := strconv.ParseInt(cell, 10, 64); err != nil {
			ints = false
		}
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			floats = false
			break
		}
	}
	out := make([]any, len(cells))
	for i, cell := range cells {
		trimmed := strings.TrimSpace(cell)
		switch {
		case trimmed == "":
			out[i] = nil
		case ints:
			out[i], _ = strconv.ParseInt(trimmed, 10, 64)
		case floats:
			out[i], _ = strconv.ParseFloat(trimmed, 64)
		default:
			out[i] = cell
		}
	}
	return out
}

// WriteCSV writes t with a header record. Missing values are written as
// empty cells.
func WriteCSV(w io.Writer, t *table.Table) error {
	writer := csv.NewWriter(w)
	columns := t.Columns()
	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("tableio: csv header: %w", err)
	}
	record := make([]string, len(columns))
	for i := 0; i < t.Len(); i++ {
		for c, value := range t.Row(i) {
			record[c] = table.String(value)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("tableio: csv row %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteCSVFile writes t to path, replacing any existing file.
func WriteCSVFile(path string, t *table.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("tableio: %w", err)
	}
	if err := WriteCSV(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
