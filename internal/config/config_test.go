package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekisa-team/modelhandler/internal/envvar"
	"github.com/ekisa-team/modelhandler/internal/resolver"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAndValidate(t *testing.T) {
	path := writeConfig(t, `
version: "1"
model_dir: /opt/ml/model
backend_suffix: .py
server:
  http_port: 8085
log:
  level: debug
`)

	cfg, err := LoadAndValidate(path, "")
	require.NoError(t, err)
	assert.Equal(t, "/opt/ml/model", cfg.ModelDir)
	assert.Equal(t, ".py", cfg.BackendSuffix)
	assert.Equal(t, 8085, cfg.Server.HTTPPort)
	assert.Equal(t, DefaultGRPCPort(), cfg.Server.GRPCPort)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadAndValidate_Defaults(t *testing.T) {
	cfg, err := LoadAndValidate(writeConfig(t, `version: "1"`), "")
	require.NoError(t, err)
	assert.Equal(t, DefaultModelDir(), cfg.ModelDir)
	assert.Equal(t, resolver.DefaultSuffix, cfg.BackendSuffix)
	assert.Equal(t, DefaultHTTPPort(), cfg.Server.HTTPPort)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadAndValidate_Invalid(t *testing.T) {
	tests := map[string]string{
		"missing version":   `model_dir: /x`,
		"unknown key":       "version: \"1\"\nmodels: {}",
		"bad suffix":        "version: \"1\"\nbackend_suffix: backend",
		"port out of range": "version: \"1\"\nserver:\n  http_port: 70000",
		"bad level":         "version: \"1\"\nlog:\n  level: loud",
		"not yaml":          "version: [",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadAndValidate(writeConfig(t, content), "")
			assert.Error(t, err)
		})
	}
}

func TestLoadAndValidate_MissingFile(t *testing.T) {
	_, err := LoadAndValidate(filepath.Join(t.TempDir(), "nope.yaml"), "")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(envvar.ModelHandlerModelDir, "/srv/model")
	t.Setenv(envvar.ModelHandlerServerHTTPPort, "9000")
	t.Setenv(envvar.ModelHandlerLogLevel, "warn")

	cfg, err := LoadAndValidate(writeConfig(t, "version: \"1\"\nmodel_dir: /opt/ml/model"), "")
	require.NoError(t, err)
	assert.Equal(t, "/srv/model", cfg.ModelDir)
	assert.Equal(t, 9000, cfg.Server.HTTPPort)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestApplyEnv_InvalidPort(t *testing.T) {
	t.Setenv(envvar.ModelHandlerServerGRPCPort, "grpc")

	cfg := Default()
	assert.Error(t, cfg.ApplyEnv())
}

func TestWatcher_Reload(t *testing.T) {
	path := writeConfig(t, "version: \"1\"\nlog:\n  level: info\n")

	reloaded := make(chan *Config, 4)
	w, err := NewWatcher(path, "", func(cfg *Config, err error) {
		if err == nil {
			reloaded <- cfg
		}
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	assert.Equal(t, "info", w.Snapshot().Log.Level)

	require.NoError(t, os.WriteFile(path, []byte("version: \"1\"\nlog:\n  level: debug\n"), 0o644))

	select {
	case cfg := <-reloaded:
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, "debug", w.Snapshot().Log.Level)
		assert.GreaterOrEqual(t, w.ReloadCount(), uint32(1))
	case <-time.After(5 * time.Second):
		t.Fatal("config was not reloaded")
	}
}

func TestNewWatcher_InvalidInitialConfig(t *testing.T) {
	_, err := NewWatcher(writeConfig(t, "nope: true"), "", nil)
	assert.Error(t, err)
}
