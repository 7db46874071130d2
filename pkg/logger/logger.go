// Package logger provides a slog-based logging setup shared by the
// engine's HTTP surface and its command-line entry point, with optional
// rotation via lumberjack.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

var global *slog.Logger

// Config controls the global logger's level, format and destination.
type Config struct {
	Level      string `mapstructure:"level" default:"info"`
	Format     string `mapstructure:"format" default:"json"`
	Output     string `mapstructure:"output" default:"stdout"`
	FilePath   string `mapstructure:"file_path" default:"logs/pricing.log"`
	MaxSize    int    `mapstructure:"max_size" default:"100"`
	MaxBackups int    `mapstructure:"max_backups" default:"10"`
	MaxAge     int    `mapstructure:"max_age" default:"30"`
	Compress   bool   `mapstructure:"compress" default:"true"`
	WithCaller bool   `mapstructure:"with_caller" default:"true"`
}

// Init builds the global logger from cfg and installs it as slog's default.
func Init(cfg Config) error {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var output io.Writer
	fileWriter := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}

	switch cfg.Output {
	case "file":
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
			return err
		}
		output = fileWriter
	case "both":
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
			return err
		}
		output = io.MultiWriter(os.Stdout, fileWriter)
	default:
		output = os.Stdout
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.WithCaller,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Value = slog.StringValue(a.Value.Time().Format(time.RFC3339))
			}
			return a
		},
	}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(output, opts)
	} else {
		handler = slog.NewJSONHandler(output, opts)
	}

	global = slog.New(handler)
	slog.SetDefault(global)
	return nil
}

// Get returns the global logger, falling back to slog.Default if Init
// was never called (useful in tests).
func Get() *slog.Logger {
	if global == nil {
		return slog.Default()
	}
	return global
}

type requestIDKey struct{}

// WithRequestID returns a context carrying id for later log correlation.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// FromContext returns a logger annotated with the request id stored in
// ctx, if any.
func FromContext(ctx context.Context) *slog.Logger {
	l := Get()
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return l.With(slog.String("request_id", id))
	}
	return l
}
