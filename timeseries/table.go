package timeseries

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrColumnNotFound is returned when a named column is absent from a table.
	ErrColumnNotFound = errors.New("column not found")
	// ErrRaggedColumns is returned when table columns differ in length.
	ErrRaggedColumns = errors.New("columns must have the same length")
	// ErrNoData is returned by loaders when the source holds no rows.
	ErrNoData = errors.New("no data found")
)

// Column is a named raw column. Cells keep their source representation
// (strings from CSV and XLSX, arbitrary values from callers); nil marks a
// missing cell.
type Column struct {
	Name   string
	Values []any
}

// Table is an ordered collection of equally sized raw columns.
type Table struct {
	Columns []Column
}

// NewTable builds a table from a name->column map. Columns are ordered by
// name so that reports are reproducible.
func NewTable(columns map[string][]any) (*Table, error) {
	names := make([]string, 0, len(columns))
	for name := range columns {
		names = append(names, name)
	}
	sort.Strings(names)

	t := &Table{Columns: make([]Column, 0, len(names))}
	for _, name := range names {
		t.Columns = append(t.Columns, Column{Name: name, Values: columns[name]})
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks that all columns have the same number of rows.
func (t *Table) Validate() error {
	if len(t.Columns) == 0 {
		return nil
	}
	rows := len(t.Columns[0].Values)
	for _, c := range t.Columns[1:] {
		if len(c.Values) != rows {
			return fmt.Errorf("%w: %q has %d rows, %q has %d",
				ErrRaggedColumns, t.Columns[0].Name, rows, c.Name, len(c.Values))
		}
	}
	return nil
}

// Rows returns the number of rows in the table.
func (t *Table) Rows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Values)
}

// Names returns the column names in table order.
func (t *Table) Names() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Column returns the named column.
func (t *Table) Column(name string) (Column, error) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, nil
		}
	}
	return Column{}, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
}

// Series extracts the named column and cleans it into a numeric series.
func (t *Table) Series(name string) (*Series, error) {
	c, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	return Clean(c.Name, c.Values), nil
}

// Row returns the cells of row i in column order.
func (t *Table) Row(i int) []any {
	row := make([]any, len(t.Columns))
	for j, c := range t.Columns {
		row[j] = c.Values[i]
	}
	return row
}
