// Package resolver locates the single backend definition inside an artifact
// directory and derives the backend identifier from its file name.
package resolver

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultSuffix is the file suffix that marks a backend definition.
const DefaultSuffix = ".backend"

// Artifact is the backend definition found in an artifact directory.
type Artifact struct {
	// Name is the backend identifier: the file name without the suffix.
	Name string

	// Path is the full path of the definition file.
	Path string
}

// Resolve returns the identifier of the backend defined in dir.
func Resolve(dir, suffix string) (string, error) {
	artifact, err := Find(dir, suffix)
	if err != nil {
		return "", err
	}
	return artifact.Name, nil
}

// Find scans dir (not recursively) for files ending in suffix. Exactly one
// match is required; auxiliary files are ignored.
func Find(dir, suffix string) (*Artifact, error) {
	if suffix == "" || !strings.HasPrefix(suffix, ".") || suffix == "." {
		return nil, &Error{Dir: dir, Suffix: suffix, Err: ErrInvalidSuffix}
	}

	// os.ReadDir sorts by file name, so the candidate list is deterministic.
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &Error{Dir: dir, Suffix: suffix, Err: err}
	}

	var matches []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, suffix) || len(name) == len(suffix) {
			continue
		}
		matches = append(matches, name)
	}
	sort.Strings(matches)

	switch len(matches) {
	case 0:
		return nil, &Error{Dir: dir, Suffix: suffix, Err: ErrNoBackend}
	case 1:
		return &Artifact{
			Name: strings.TrimSuffix(matches[0], suffix),
			Path: filepath.Join(dir, matches[0]),
		}, nil
	default:
		return nil, &Error{Dir: dir, Suffix: suffix, Matches: matches, Err: ErrAmbiguous}
	}
}
