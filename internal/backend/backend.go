package backend

import (
	"context"

	"github.com/ekisa-team/modelhandler/internal/table"
)

// Backend is the capability every model backend exposes. Implementations are
// free in what they compute but must be safe for concurrent calls to Run:
// once bound, a single instance serves every request.
type Backend interface {
	// Run executes the model on the request and returns its tabular result.
	Run(ctx context.Context, req Request) (*table.Table, error)
}

// Func adapts an ordinary function to the Backend interface.
type Func func(ctx context.Context, req Request) (*table.Table, error)

// Run calls f(ctx, req).
func (f Func) Run(ctx context.Context, req Request) (*table.Table, error) {
	return f(ctx, req)
}

// Definition is what a factory receives when its backend is bound.
type Definition struct {
	// Name is the backend identifier.
	Name string

	// Dir is the artifact directory the backend was resolved from.
	Dir string

	// Path is the backend definition file.
	Path string

	// Params holds the decoded content of the definition file, if any.
	Params map[string]any
}

// Factory constructs a Backend from its definition.
type Factory func(def Definition) (Backend, error)
