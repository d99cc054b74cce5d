package logging

import (
	"io"
	"log/slog"

	"github.com/go-monolith/mono/pkg/types"
)

// Options configures the application logger.
type Options struct {
	Writer io.Writer
	Level  slog.Leveler
	Format Format
	// Fluent enables forwarding when Host is set.
	Fluent FluentOptions
}

// New builds the console logger and, when configured, a Fluent Bit forwarder
// behind it. The returned closer releases the forwarder.
func New(opts Options) (types.Logger, func() error, error) {
	console := NewConsole(ConsoleOptions{
		Writer: opts.Writer,
		Level:  opts.Level,
		Format: opts.Format,
	})
	if opts.Fluent.Host == "" {
		return console, func() error { return nil }, nil
	}

	if opts.Fluent.Level == nil {
		opts.Fluent.Level = opts.Level
	}
	fl, err := NewFluent(opts.Fluent, console)
	if err != nil {
		return nil, nil, err
	}
	return Multi{console, fl}, fl.Close, nil
}
