package resolver

import (
	"errors"
	"fmt"
	"strings"
)

// Error definitions for the resolver package.
var (
	// ErrResolution matches every failure to resolve a backend.
	ErrResolution = errors.New("backend resolution failed")

	ErrNoBackend     = errors.New("no backend definition found")
	ErrAmbiguous     = errors.New("more than one backend definition found")
	ErrInvalidSuffix = errors.New("invalid backend definition suffix")
)

// Error describes why an artifact directory could not be resolved.
type Error struct {
	Dir     string
	Suffix  string
	Matches []string
	Err     error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("resolver: %s (dir=%s, pattern=*%s)", e.Err, e.Dir, e.Suffix)
	if len(e.Matches) > 0 {
		msg += ": " + strings.Join(e.Matches, ", ")
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is makes every resolution failure match ErrResolution.
func (e *Error) Is(target error) bool {
	return target == ErrResolution
}
