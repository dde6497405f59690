// Package static provides a backend that ignores its input and always returns
// the table written in its definition file.
package static

import (
	"context"
	"fmt"

	"github.com/ekisa-team/modelhandler/internal/backend"
	"github.com/ekisa-team/modelhandler/internal/mapsafe"
	"github.com/ekisa-team/modelhandler/internal/table"
)

// BackendName is the identifier the backend is registered under.
const BackendName = "static"

var (
	defaultColumns = []string{"col 1", "col 2"}
	defaultRows    = [][]any{{"a", "b"}, {"x", "v"}}
)

func init() {
	backend.Register(BackendName, New)
}

// Backend implements backend.Backend.
type Backend struct {
	columns []string
	rows    [][]any
}

// New creates the backend. Recognised params: columns (list of names) and
// rows (list of lists, one value per column).
func New(def backend.Definition) (backend.Backend, error) {
	columns := mapsafe.Get(def.Params, "columns", defaultColumns)
	rows := defaultRows

	if raw, ok := def.Params["rows"]; ok {
		list, ok := raw.([]any)
		if !ok {
			return nil, fmt.Errorf("static: rows must be a list, got %T", raw)
		}
		rows = make([][]any, 0, len(list))
		for i, item := range list {
			row, ok := item.([]any)
			if !ok {
				return nil, fmt.Errorf("static: row %d must be a list, got %T", i, item)
			}
			rows = append(rows, row)
		}
	}

	// Validate once so Run cannot fail.
	if _, err := build(columns, rows); err != nil {
		return nil, fmt.Errorf("static: %w", err)
	}

	return &Backend{columns: columns, rows: rows}, nil
}

// Run returns a fresh copy of the configured table.
func (b *Backend) Run(context.Context, backend.Request) (*table.Table, error) {
	return build(b.columns, b.rows)
}

func build(columns []string, rows [][]any) (*table.Table, error) {
	t := table.New(columns...)
	for _, row := range rows {
		if err := t.AppendRow(row...); err != nil {
			return nil, err
		}
	}
	return t, nil
}
