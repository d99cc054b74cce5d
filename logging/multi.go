package logging

import "github.com/go-monolith/mono/pkg/types"

// Multi writes every record to each logger in order.
type Multi []types.Logger

var _ types.Logger = Multi(nil)

func (m Multi) Debug(msg string, args ...any) {
	for _, l := range m {
		l.Debug(msg, args...)
	}
}

func (m Multi) Info(msg string, args ...any) {
	for _, l := range m {
		l.Info(msg, args...)
	}
}

func (m Multi) Warn(msg string, args ...any) {
	for _, l := range m {
		l.Warn(msg, args...)
	}
}

func (m Multi) Error(msg string, args ...any) {
	for _, l := range m {
		l.Error(msg, args...)
	}
}

func (m Multi) With(args ...any) types.Logger {
	out := make(Multi, len(m))
	for i, l := range m {
		out[i] = l.With(args...)
	}
	return out
}

func (m Multi) WithModule(module string) types.Logger {
	out := make(Multi, len(m))
	for i, l := range m {
		out[i] = l.WithModule(module)
	}
	return out
}

func (m Multi) WithError(err error) types.Logger {
	out := make(Multi, len(m))
	for i, l := range m {
		out[i] = l.WithError(err)
	}
	return out
}

type nop struct{}

func (nop) Debug(string, ...any)            {}
func (nop) Info(string, ...any)             {}
func (nop) Warn(string, ...any)             {}
func (nop) Error(string, ...any)            {}
func (n nop) With(...any) types.Logger      { return n }
func (n nop) WithModule(string) types.Logger { return n }
func (n nop) WithError(error) types.Logger  { return n }

// Nop returns a logger that discards everything.
func Nop() types.Logger {
	return nop{}
}
