package logging

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/go-monolith/mono/pkg/types"
)

// FluentOptions configures forwarding to Fluent Bit.
type FluentOptions struct {
	Host      string
	Port      int
	TagPrefix string
	Level     slog.Leveler
}

// poster is the part of *fluent.Fluent the forwarder uses.
type poster interface {
	Post(tag string, message interface{}) error
	Close() error
}

type fluentSink struct {
	client  poster
	onError func(error)
	once    sync.Once
}

// FluentLogger forwards records to Fluent Bit with tag "<prefix>.<level>".
// Delivery failures are reported once through the fallback and never reach
// the caller.
type FluentLogger struct {
	sink     *fluentSink
	fields   map[string]any
	minLevel slog.Level
}

var _ types.Logger = (*FluentLogger)(nil)

// NewFluent connects to Fluent Bit asynchronously. fallback receives the first
// delivery failure.
func NewFluent(opts FluentOptions, fallback types.Logger) (*FluentLogger, error) {
	if opts.Host == "" {
		return nil, fmt.Errorf("fluent host is required")
	}
	client, err := fluent.New(fluent.Config{
		FluentHost: opts.Host,
		FluentPort: opts.Port,
		TagPrefix:  opts.TagPrefix,
		Async:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create fluent client: %w", err)
	}
	return newFluentLogger(client, opts.Level, fallback), nil
}

func newFluentLogger(client poster, level slog.Leveler, fallback types.Logger) *FluentLogger {
	minLevel := slog.LevelInfo
	if level != nil {
		minLevel = level.Level()
	}
	sink := &fluentSink{client: client}
	if fallback != nil {
		sink.onError = func(err error) {
			fallback.Warn("Fluent forwarding failed, further failures are dropped", "error", err)
		}
	}
	return &FluentLogger{sink: sink, fields: map[string]any{}, minLevel: minLevel}
}

func (l *FluentLogger) Debug(msg string, args ...any) { l.post(slog.LevelDebug, msg, args) }
func (l *FluentLogger) Info(msg string, args ...any)  { l.post(slog.LevelInfo, msg, args) }
func (l *FluentLogger) Warn(msg string, args ...any)  { l.post(slog.LevelWarn, msg, args) }
func (l *FluentLogger) Error(msg string, args ...any) { l.post(slog.LevelError, msg, args) }

func (l *FluentLogger) With(args ...any) types.Logger {
	return &FluentLogger{sink: l.sink, fields: mergeFields(l.fields, args), minLevel: l.minLevel}
}

func (l *FluentLogger) WithModule(module string) types.Logger {
	return l.With("module", module)
}

func (l *FluentLogger) WithError(err error) types.Logger {
	if err == nil {
		return l
	}
	return l.With("error", err.Error())
}

// Close flushes and closes the client.
func (l *FluentLogger) Close() error {
	return l.sink.client.Close()
}

func (l *FluentLogger) post(level slog.Level, msg string, args []any) {
	if level < l.minLevel {
		return
	}
	data := mergeFields(l.fields, args)
	data["message"] = msg
	data["level"] = level.String()
	data["timestamp"] = time.Now().UTC().Format(time.RFC3339Nano)

	if err := l.sink.client.Post(tagFor(level), data); err != nil && l.sink.onError != nil {
		l.sink.once.Do(func() { l.sink.onError(err) })
	}
}

func tagFor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "error"
	case level >= slog.LevelWarn:
		return "warn"
	case level >= slog.LevelInfo:
		return "info"
	}
	return "debug"
}

// mergeFields copies base and adds key/value pairs from args. A trailing key
// without a value is stored under "!BADKEY", the way slog reports it.
func mergeFields(base map[string]any, args []any) map[string]any {
	out := make(map[string]any, len(base)+len(args)/2)
	for k, v := range base {
		out[k] = v
	}
	for i := 0; i < len(args); i++ {
		switch a := args[i].(type) {
		case slog.Attr:
			out[a.Key] = a.Value.Any()
		case string:
			if i+1 >= len(args) {
				out["!BADKEY"] = a
				continue
			}
			out[a] = fieldValue(args[i+1])
			i++
		default:
			out["!BADKEY"] = a
		}
	}
	return out
}

func fieldValue(v any) any {
	if err, ok := v.(error); ok {
		return err.Error()
	}
	return v
}
