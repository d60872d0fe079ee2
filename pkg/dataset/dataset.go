// Package dataset provides a read-only, column-oriented table abstraction
// for data-quality checks. Tables are built once — from Go slices, CSV,
// Parquet, Arrow, or a SQL scan — and never mutated afterwards, so
// concurrent readers need no coordination.
package dataset

import (
	"fmt"
)

// Table is an ordered collection of named columns of equal length.
type Table struct {
	cols  []*Column
	index map[string]int
	rows  int
}

// New builds a table from the given columns. It fails when no columns are
// given, when two columns share a name, or when column lengths differ.
func New(cols ...*Column) (*Table, error) {
	if len(cols) == 0 {
		return nil, ErrNoColumns
	}
	t := &Table{
		cols:  cols,
		index: make(map[string]int, len(cols)),
		rows:  cols[0].Len(),
	}
	for i, col := range cols {
		if _, ok := t.index[col.Name()]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, col.Name())
		}
		t.index[col.Name()] = i
		if col.Len() != t.rows {
			return nil, fmt.Errorf("%w: column %q has %d rows, want %d",
				ErrRaggedColumns, col.Name(), col.Len(), t.rows)
		}
	}
	return t, nil
}

// NumRows returns the row count shared by every column.
func (t *Table) NumRows() int { return t.rows }

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int { return len(t.cols) }

// ColumnNames returns the column names in table order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.cols))
	for i, col := range t.cols {
		names[i] = col.Name()
	}
	return names
}

// HasColumn reports whether a column with the given name exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns the named column, or ErrColumnNotFound.
func (t *Table) Column(name string) (*Column, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	return t.cols[i], nil
}
