// Package command provides a backend that delegates to an external program:
// the first request body is written to its stdin and its stdout is decoded as
// a record set.
package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ekisa-team/modelhandler/internal/backend"
	"github.com/ekisa-team/modelhandler/internal/mapsafe"
	"github.com/ekisa-team/modelhandler/internal/table"
)

const (
	// BackendName is the identifier the backend is registered under.
	BackendName = "command"

	DefaultTimeout = time.Minute
)

// ErrNoCommand is returned when the definition does not name a program.
var ErrNoCommand = errors.New("command: no program configured")

func init() {
	backend.Register(BackendName, New)
}

// Backend implements backend.Backend.
type Backend struct {
	executor *backend.Executor
	args     []string
}

// New creates the backend. Recognised params: command, args, timeout.
// A relative command that exists inside the artifact directory is run from
// there; otherwise it is looked up in PATH.
func New(def backend.Definition) (backend.Backend, error) {
	name := mapsafe.Get(def.Params, "command", "")
	if name == "" {
		return nil, ErrNoCommand
	}

	if !filepath.IsAbs(name) && def.Dir != "" {
		local := filepath.Join(def.Dir, name)
		if info, err := os.Stat(local); err == nil && !info.IsDir() {
			name = local
		}
	}

	executor, err := backend.NewExecutor(name, def.Dir, mapsafe.Get(def.Params, "timeout", DefaultTimeout))
	if err != nil {
		return nil, fmt.Errorf("command: %w", err)
	}

	return NewWithExecutor(executor, mapsafe.Get(def.Params, "args", []string(nil))), nil
}

// NewWithExecutor creates the backend around an existing executor.
func NewWithExecutor(executor *backend.Executor, args []string) *Backend {
	return &Backend{executor: executor, args: args}
}

// Run pipes the first entry body through the program.
func (b *Backend) Run(ctx context.Context, req backend.Request) (*table.Table, error) {
	entry, err := req.First()
	if err != nil {
		return nil, err
	}

	stdout, err := b.executor.Execute(ctx, b.args, bytes.NewReader(entry.Body))
	if err != nil {
		return nil, err
	}

	t, err := table.FromJSON(bytes.TrimSpace(stdout))
	if err != nil {
		return nil, fmt.Errorf("command: decode output: %w", err)
	}
	return t, nil
}
