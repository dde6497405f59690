package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// DefaultHTTPPort is the port of the invocation API.
func DefaultHTTPPort() int {
	return 8080
}

// DefaultGRPCPort is the port of the gRPC health service.
func DefaultGRPCPort() int {
	return 9090
}

// DefaultConfigPath returns the default path for the modelhandler config directory.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "modelhandler", "config")
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", "modelhandler")
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "modelhandler")
	default: // Linux, BSD, etc.
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "modelhandler")
		}
		return filepath.Join(home, ".config", "modelhandler")
	}
}

// DefaultModelDir returns the default artifact directory.
func DefaultModelDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "modelhandler", "model")
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(home, "AppData", "Local", "modelhandler", "model")
	case "darwin":
		return filepath.Join(home, "Library", "Caches", "modelhandler", "model")
	default: // Linux, BSD, etc.
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, "modelhandler", "model")
		}
		return filepath.Join(home, ".local", "share", "modelhandler", "model")
	}
}
