// Package table holds the in-memory datasets written out as CSV.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

// Row is one record; "" is the only absent value.
type Row []string

// Table is a named dataset with a fixed column order.
type Table struct {
	Name    string
	Columns []string
	Rows    []Row
}

// New creates an empty table with the given header.
func New(name string, columns ...string) *Table {
	return &Table{Name: name, Columns: columns}
}

// Append adds rows, padding or truncating each one to the header width.
func (t *Table) Append(rows ...Row) {
	for _, row := range rows {
		fitted := make(Row, len(t.Columns))
		copy(fitted, row)
		t.Rows = append(t.Rows, fitted)
	}
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Index returns the position of column, or -1.
func (t *Table) Index(column string) int {
	return slices.Index(t.Columns, column)
}

// Value returns the cell of row under column, "" when the column is unknown.
func (t *Table) Value(row Row, column string) string {
	i := t.Index(column)
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// WriteCSV writes the header and every row.
func (t *Table) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(t.Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, row := range t.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// ErrNoHeader is returned by ReadCSV for an empty input.
var ErrNoHeader = errors.New("missing header row")

// ReadCSV loads a table written by WriteCSV or by any tool producing a
// header row. Short records are padded.
func ReadCSV(r io.Reader, name string) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%s: %w", name, ErrNoHeader)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s header: %w", name, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	t := New(name, header...)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		t.Append(record)
	}
	return t, nil
}
