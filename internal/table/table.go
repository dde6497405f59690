// Package table implements the tabular value every backend returns: ordered,
// named columns holding one value per row.
package table

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Column is a named, ordered sequence of values.
type Column struct {
	Name   string
	Values []any
}

// Table is a set of equally long columns. Column order and row order are
// significant and preserved by every operation, including serialization.
type Table struct {
	columns []Column
	index   map[string]int
	rows    int
}

// New creates an empty table with the given columns.
func New(columns ...string) *Table {
	t := &Table{index: make(map[string]int, len(columns))}
	for _, name := range columns {
		// Duplicates collapse onto the first occurrence.
		if _, ok := t.index[name]; ok {
			continue
		}
		t.index[name] = len(t.columns)
		t.columns = append(t.columns, Column{Name: name})
	}
	return t
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	if t == nil {
		return 0
	}
	return t.rows
}

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int {
	if t == nil {
		return 0
	}
	return len(t.columns)
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	if t == nil {
		return nil
	}
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// Column returns the values of the named column.
func (t *Table) Column(name string) ([]any, bool) {
	if t == nil {
		return nil, false
	}
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.columns[i].Values, true
}

// Row returns the values of row i in column order.
func (t *Table) Row(i int) []any {
	if i < 0 || i >= t.NumRows() {
		return nil
	}
	row := make([]any, len(t.columns))
	for c, col := range t.columns {
		row[c] = col.Values[i]
	}
	return row
}

// Rows returns all rows in order.
func (t *Table) Rows() [][]any {
	rows := make([][]any, t.NumRows())
	for i := range rows {
		rows[i] = t.Row(i)
	}
	return rows
}

// Value returns the value at the given row and column.
func (t *Table) Value(row int, column string) (any, bool) {
	values, ok := t.Column(column)
	if !ok || row < 0 || row >= len(values) {
		return nil, false
	}
	return values[row], true
}

// AppendRow appends one row. It must carry exactly one value per column.
func (t *Table) AppendRow(values ...any) error {
	if len(t.columns) == 0 {
		return ErrNoColumns
	}
	if len(values) != len(t.columns) {
		return fmt.Errorf("%w: got %d values for %d columns", ErrRowWidth, len(values), len(t.columns))
	}
	for i, v := range values {
		t.columns[i].Values = append(t.columns[i].Values, v)
	}
	t.rows++
	return nil
}

// AddColumn appends a new column. On a table without columns it defines the
// row count; otherwise it must match it.
func (t *Table) AddColumn(name string, values []any) error {
	if _, ok := t.index[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
	}
	if len(t.columns) > 0 && len(values) != t.rows {
		return fmt.Errorf("%w: column %q has %d values, table has %d rows", ErrColumnLength, name, len(values), t.rows)
	}
	if t.index == nil {
		t.index = make(map[string]int)
	}
	t.index[name] = len(t.columns)
	t.columns = append(t.columns, Column{Name: name, Values: values})
	t.rows = len(values)
	return nil
}

// SetConstant sets every row of the named column to value, adding the column
// at the end if it does not exist yet.
func (t *Table) SetConstant(name string, value any) {
	values := make([]any, t.rows)
	for i := range values {
		values[i] = value
	}
	if i, ok := t.index[name]; ok {
		t.columns[i].Values = values
		return
	}
	if t.index == nil {
		t.index = make(map[string]int)
	}
	t.index[name] = len(t.columns)
	t.columns = append(t.columns, Column{Name: name, Values: values})
}

// MarshalJSON encodes the table as an array of row objects keyed by column
// name. Keys keep the column order. A nil table encodes as an empty array.
func (t *Table) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for r := 0; r < t.NumRows(); r++ {
		if r > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for c, col := range t.columns {
			if c > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(col.Name)
			if err != nil {
				return nil, err
			}
			value, err := json.Marshal(col.Values[r])
			if err != nil {
				return nil, fmt.Errorf("table: row %d column %q: %w", r, col.Name, err)
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(value)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}
