package backend

import "errors"

// Error definitions for the backend package.
var (
	ErrBackendNotFound          = errors.New("backend not found in registry")
	ErrBackendAlreadyRegistered = errors.New("backend is already registered in the registry")
	ErrBackendInvalid           = errors.New("backend name and factory are required")

	ErrEmptyRequest      = errors.New("request has no entries")
	ErrMalformedPayload  = errors.New("malformed request payload")
	ErrUnexpectedPayload = errors.New("unexpected request payload")
)
