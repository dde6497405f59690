package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ekisa-team/modelhandler/internal/env"
)

// Options configures the logger.
type Options struct {
	output    io.Writer
	level     slog.Leveler
	logFile   string
	logToFile bool
	maxSizeMB int
	maxAge    int
}

// Option is a functional option for New.
type Option func(*Options)

// WithLogToFile enables writing logs to a rotating file in addition to the output.
func WithLogToFile(enabled bool) Option {
	return func(o *Options) {
		o.logToFile = enabled
	}
}

// WithLogFile sets the path of the rotating log file.
func WithLogFile(path string) Option {
	return func(o *Options) {
		o.logFile = path
	}
}

// WithLevel sets the minimum level. Pass a *slog.LevelVar to change it at runtime.
func WithLevel(level slog.Leveler) Option {
	return func(o *Options) {
		o.level = level
	}
}

// WithOutput replaces the default output (stderr).
func WithOutput(w io.Writer) Option {
	return func(o *Options) {
		o.output = w
	}
}

// New creates a logger for the given environment.
// Development logs are colored text, production logs are JSON.
func New(environment env.Environment, opts ...Option) *slog.Logger {
	o := &Options{
		output:    os.Stderr,
		level:     slog.LevelInfo,
		logFile:   filepath.Join("logs", "modelhandler.log"),
		maxSizeMB: 50,
		maxAge:    14,
	}
	for _, opt := range opts {
		opt(o)
	}

	w := o.output
	if o.logToFile && o.logFile != "" {
		w = io.MultiWriter(w, &lumberjack.Logger{
			Filename:   o.logFile,
			MaxSize:    o.maxSizeMB,
			MaxAge:     o.maxAge,
			MaxBackups: 5,
			Compress:   true,
		})
	}

	if environment.IsProduction() {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: o.level}))
	}

	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      o.level,
		TimeFormat: time.TimeOnly,
		// Color codes would end up in the rotated file.
		NoColor: o.logToFile || w != os.Stderr,
	}))
}

// ParseLevel parses a textual level ("debug", "info", "warn", "error").
// Unknown values fall back to info.
func ParseLevel(raw string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return slog.LevelInfo
	}
	return level
}
