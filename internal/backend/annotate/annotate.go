// Package annotate provides a backend that echoes the submitted records back
// with an extra constant column identifying the model.
package annotate

import (
	"context"
	"fmt"

	"github.com/ekisa-team/modelhandler/internal/backend"
	"github.com/ekisa-team/modelhandler/internal/mapsafe"
	"github.com/ekisa-team/modelhandler/internal/table"
)

const (
	// BackendName is the identifier the backend is registered under.
	BackendName = "annotate"

	DefaultColumn = "Source"
	DefaultValue  = "From Model"
)

func init() {
	backend.Register(BackendName, New)
}

// Backend implements backend.Backend.
type Backend struct {
	column string
	value  string
}

// New creates the backend. Recognised params: column, value.
func New(def backend.Definition) (backend.Backend, error) {
	b := &Backend{
		column: mapsafe.Get(def.Params, "column", DefaultColumn),
		value:  mapsafe.Get(def.Params, "value", DefaultValue),
	}
	if b.column == "" {
		return nil, fmt.Errorf("annotate: column must not be empty")
	}
	return b, nil
}

// Run decodes the first entry as a record set and adds the constant column.
func (b *Backend) Run(_ context.Context, req backend.Request) (*table.Table, error) {
	t, err := backend.DecodeRecords(req)
	if err != nil {
		return nil, err
	}
	t.SetConstant(b.column, b.value)
	return t, nil
}
