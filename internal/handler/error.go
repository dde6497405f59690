package handler

import "errors"

// Error definitions for the handler package.
var (
	ErrBackendLoad = errors.New("backend could not be loaded")
	ErrNotReady    = errors.New("handler is not initialized")
	ErrNoContext   = errors.New("no host context supplied")
	ErrSerialize   = errors.New("backend result could not be serialized")
)
