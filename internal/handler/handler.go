// Package handler binds the backend found in an artifact directory and
// dispatches inference requests to it.
package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.yaml.in/yaml/v3"

	"github.com/ekisa-team/modelhandler/internal/backend"
	"github.com/ekisa-team/modelhandler/internal/resolver"
)

// Context exposes the host properties needed to bind a backend.
type Context interface {
	// ModelDir is the artifact directory holding the backend definition.
	ModelDir() string
}

// Properties is a static Context.
type Properties struct {
	Dir string
}

// ModelDir returns the artifact directory.
func (p Properties) ModelDir() string {
	return p.Dir
}

// State is the lifecycle state of a Handler.
type State int

const (
	Uninitialized State = iota
	Ready
)

func (s State) String() string {
	if s == Ready {
		return "ready"
	}
	return "uninitialized"
}

type binding struct {
	name    string
	dir     string
	backend backend.Backend
}

// Handler owns the bound backend. Create one per process and share it across
// requests; it is safe for concurrent use.
type Handler struct {
	registry *backend.Registry
	logger   *slog.Logger
	suffix   string
	onReady  func(name string)

	mu      sync.Mutex
	current atomic.Pointer[binding]
}

// Option configures a Handler.
type Option func(*Handler)

// WithSuffix sets the backend definition file suffix.
func WithSuffix(suffix string) Option {
	return func(h *Handler) {
		h.suffix = suffix
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// WithReadyHook sets a function called once, with the backend identifier,
// when the handler becomes Ready.
func WithReadyHook(fn func(name string)) Option {
	return func(h *Handler) {
		h.onReady = fn
	}
}

// New creates an uninitialized handler that looks backends up in registry.
func New(registry *backend.Registry, opts ...Option) *Handler {
	h := &Handler{
		registry: registry,
		suffix:   resolver.DefaultSuffix,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// State returns the current lifecycle state.
func (h *Handler) State() State {
	if h.current.Load() != nil {
		return Ready
	}
	return Uninitialized
}

// Ready reports whether a backend is bound.
func (h *Handler) Ready() bool {
	return h.State() == Ready
}

// Backend returns the identifier of the bound backend, or "" if none.
func (h *Handler) Backend() string {
	if b := h.current.Load(); b != nil {
		return b.name
	}
	return ""
}

// Initialize resolves and binds the backend for hctx.ModelDir(). It binds at
// most once: later calls, concurrent or not, return nil without work. On
// failure the handler stays uninitialized and the next call tries again.
func (h *Handler) Initialize(ctx context.Context, hctx Context) error {
	if h.current.Load() != nil {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.current.Load() != nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if hctx == nil {
		return ErrNoContext
	}

	start := time.Now()
	dir := hctx.ModelDir()

	artifact, err := resolver.Find(dir, h.suffix)
	if err != nil {
		h.logger.Error("Failed to resolve backend", "model_dir", dir, "error", err)
		return err
	}
	h.logger.Info("Prefix for the model artifacts", "backend", artifact.Name, "path", artifact.Path)

	b, err := h.bind(artifact, dir)
	if err != nil {
		h.logger.Error("Failed to load backend", "backend", artifact.Name, "error", err)
		return err
	}

	h.current.Store(&binding{name: artifact.Name, dir: dir, backend: b})
	h.logger.Info("Backend loaded", "backend", artifact.Name, "model_dir", dir, "duration", time.Since(start))

	if h.onReady != nil {
		h.onReady(artifact.Name)
	}

	return nil
}

// bind reads the definition file and builds the backend from its factory.
func (h *Handler) bind(artifact *resolver.Artifact, dir string) (backend.Backend, error) {
	params, err := loadParams(artifact.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrBackendLoad, artifact.Name, err)
	}

	factory, ok := h.registry.Lookup(artifact.Name)
	if !ok {
		return nil, fmt.Errorf("%w: %s: %w", ErrBackendLoad, artifact.Name, backend.ErrBackendNotFound)
	}

	b, err := factory(backend.Definition{
		Name:   artifact.Name,
		Dir:    dir,
		Path:   artifact.Path,
		Params: params,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrBackendLoad, artifact.Name, err)
	}
	if b == nil {
		return nil, fmt.Errorf("%w: %s: factory returned no backend", ErrBackendLoad, artifact.Name)
	}

	return b, nil
}

// loadParams decodes the YAML mapping in a definition file. An empty file has
// no params.
func loadParams(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition: %w", err)
	}

	var params map[string]any
	if err := yaml.Unmarshal(data, &params); err != nil {
		return nil, fmt.Errorf("invalid definition: %w", err)
	}

	return params, nil
}

// Handle passes req unchanged to the bound backend and returns its result as
// JSON records. An empty request is a no-op returning nil. Errors from the
// backend are returned as is.
func (h *Handler) Handle(ctx context.Context, req backend.Request, hctx Context) ([]byte, error) {
	b := h.current.Load()
	if b == nil {
		return nil, ErrNotReady
	}

	if req.IsEmpty() {
		return nil, nil
	}

	log := h.logger.With("request_id", uuid.NewString(), "backend", b.name)
	if hctx != nil {
		log = log.With("model_dir", hctx.ModelDir())
	}

	start := time.Now()
	result, err := b.backend.Run(ctx, req)
	if err != nil {
		log.Debug("Backend run failed", "entries", len(req), "error", err)
		return nil, err
	}

	// Called directly so a nil table still encodes as an empty array.
	out, err := result.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerialize, err)
	}

	log.Debug("Request handled", "entries", len(req), "rows", result.NumRows(), "duration", time.Since(start))

	return out, nil
}

// Dispatch is the per-request entry point for hosts: it initializes the
// handler if needed, treats an empty request as a no-op, then calls Handle.
func (h *Handler) Dispatch(ctx context.Context, req backend.Request, hctx Context) ([]byte, error) {
	if !h.Ready() {
		if err := h.Initialize(ctx, hctx); err != nil {
			return nil, err
		}
	}

	if req.IsEmpty() {
		return nil, nil
	}

	return h.Handle(ctx, req, hctx)
}

// IsInitError reports whether err happened while binding the backend rather
// than while running it.
func IsInitError(err error) bool {
	return errors.Is(err, resolver.ErrResolution) ||
		errors.Is(err, ErrBackendLoad) ||
		errors.Is(err, ErrNoContext)
}
