package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/ekisa-team/modelhandler/internal/envvar"
	"github.com/ekisa-team/modelhandler/internal/resolver"
	"github.com/ekisa-team/modelhandler/internal/xfs"
)

// Config holds the main configuration for the application.
type Config struct {
	Version       string       `json:"version"                  yaml:"version"`
	ModelDir      string       `json:"model_dir,omitempty"      yaml:"model_dir,omitempty"`
	BackendSuffix string       `json:"backend_suffix,omitempty" yaml:"backend_suffix,omitempty"`
	Server        ServerConfig `json:"server,omitempty"         yaml:"server,omitempty"`
	Log           LogConfig    `json:"log,omitempty"            yaml:"log,omitempty"`
}

// ServerConfig holds the listen ports of the host servers.
type ServerConfig struct {
	HTTPPort int `json:"http_port,omitempty" yaml:"http_port,omitempty"`
	GRPCPort int `json:"grpc_port,omitempty" yaml:"grpc_port,omitempty"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `json:"level,omitempty" yaml:"level,omitempty"`
	File  string `json:"file,omitempty"  yaml:"file,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{Version: "1"}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills every unset field.
func (c *Config) applyDefaults() {
	if c.ModelDir == "" {
		c.ModelDir = DefaultModelDir()
	}
	if c.BackendSuffix == "" {
		c.BackendSuffix = resolver.DefaultSuffix
	}
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = DefaultHTTPPort()
	}
	if c.Server.GRPCPort == 0 {
		c.Server.GRPCPort = DefaultGRPCPort()
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	c.ModelDir = xfs.ExpandTilde(c.ModelDir)
	c.Log.File = xfs.ExpandTilde(c.Log.File)
}

// ApplyEnv overrides fields from MODELHANDLER_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(envvar.ModelHandlerModelDir); v != "" {
		c.ModelDir = xfs.ExpandTilde(v)
	}
	if v := os.Getenv(envvar.ModelHandlerLogLevel); v != "" {
		c.Log.Level = v
	}

	ports := []struct {
		name   string
		target *int
	}{
		{envvar.ModelHandlerServerHTTPPort, &c.Server.HTTPPort},
		{envvar.ModelHandlerServerGRPCPort, &c.Server.GRPCPort},
	}
	for _, p := range ports {
		v := os.Getenv(p.name)
		if v == "" {
			continue
		}
		port, err := strconv.Atoi(v)
		if err != nil || port < 0 || port > 65535 {
			return fmt.Errorf("invalid %s %q", p.name, v)
		}
		*p.target = port
	}

	return nil
}
