// Package logging provides types.Logger implementations: a console logger on
// log/slog (colored with tint in text mode), a Fluent Bit forwarder, and a
// fan-out that writes to several of them.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-monolith/mono/pkg/types"
	"github.com/lmittmann/tint"
)

// Format selects the console encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ConsoleOptions configures the console logger.
type ConsoleOptions struct {
	Writer    io.Writer
	Level     slog.Leveler
	Format    Format
	AddSource bool
	// NoColor disables tint coloring in text mode.
	NoColor bool
}

// SlogLogger implements types.Logger on log/slog.
type SlogLogger struct {
	logger *slog.Logger
}

var _ types.Logger = (*SlogLogger)(nil)

// NewConsole creates a console logger.
func NewConsole(opts ConsoleOptions) *SlogLogger {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	if opts.Level == nil {
		opts.Level = slog.LevelInfo
	}

	var handler slog.Handler
	switch {
	case opts.Format == FormatJSON:
		handler = slog.NewJSONHandler(opts.Writer, &slog.HandlerOptions{
			Level:     opts.Level,
			AddSource: opts.AddSource,
		})
	default:
		handler = tint.NewHandler(opts.Writer, &tint.Options{
			Level:      opts.Level,
			AddSource:  opts.AddSource,
			TimeFormat: time.Kitchen,
			NoColor:    opts.NoColor,
		})
	}
	return &SlogLogger{logger: slog.New(handler)}
}

func (l *SlogLogger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
func (l *SlogLogger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l *SlogLogger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l *SlogLogger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

func (l *SlogLogger) With(args ...any) types.Logger {
	return &SlogLogger{logger: l.logger.With(args...)}
}

func (l *SlogLogger) WithModule(module string) types.Logger {
	return l.With("module", module)
}

func (l *SlogLogger) WithError(err error) types.Logger {
	if err == nil {
		return l
	}
	return l.With("error", err.Error())
}

// ParseLevel maps debug/info/warn/error to a slog level. Unknown values
// report false and yield info.
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}
