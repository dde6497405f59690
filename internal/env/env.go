package env

import (
	"os"
	"strings"

	"github.com/ekisa-team/modelhandler/internal/envvar"
)

// Environment is the runtime environment the process is running in.
type Environment string

const (
	// Development enables human-readable, colored logs.
	Development Environment = "development"

	// Production enables structured JSON logs.
	Production Environment = "production"
)

// FromEnv reads the environment from MODELHANDLER_ENV.
// Anything other than "production" (or "prod") is treated as development.
func FromEnv() Environment {
	return Parse(os.Getenv(envvar.ModelHandlerEnv))
}

// Parse converts a raw value into an Environment.
func Parse(raw string) Environment {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return Production
	default:
		return Development
	}
}

// IsProduction reports whether e is the production environment.
func (e Environment) IsProduction() bool {
	return e == Production
}
