// Package logging is the service's key/value logger on top of zap. Entries
// written with a context carry the trace and span ids of the active span.
package logging

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level = zapcore.Level

const (
	LevelDebug = zapcore.DebugLevel
	LevelInfo  = zapcore.InfoLevel
	LevelWarn  = zapcore.WarnLevel
	LevelError = zapcore.ErrorLevel
)

// callerSkip hides the Logger method and log helper from caller info.
const callerSkip = 2

// Logger wraps a zap core. Loggers derived through With and Named share the
// level of their root, so SetLevel on any of them applies to all.
// A nil *Logger writes through Default.
type Logger struct {
	z      *zap.Logger
	level  zap.AtomicLevel
	synced *atomic.Bool
}

var defaultLogger atomic.Pointer[Logger]

func init() {
	defaultLogger.Store(NewNop())
}

// ParseLevel reads a level name. An empty name means info.
func ParseLevel(v string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", v)
	}
}

// NewJSON writes one JSON object per entry to stdout.
func NewJSON(level Level) *Logger {
	atom := zap.NewAtomicLevelAt(level)
	encoder := zapcore.NewJSONEncoder(zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	})
	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), atom)

	return newLogger(zap.New(core,
		zap.AddCaller(),
		zap.AddCallerSkip(callerSkip),
		zap.AddStacktrace(zapcore.ErrorLevel),
	), atom)
}

// NewConsole is the colored, human readable variant used by local tooling.
func NewConsole(level Level) *Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	z, err := cfg.Build(zap.AddCallerSkip(callerSkip))
	if err != nil {
		return NewJSON(level)
	}
	return newLogger(z, cfg.Level)
}

func NewNop() *Logger {
	return newLogger(zap.NewNop(), zap.NewAtomicLevelAt(zapcore.InvalidLevel))
}

// FromZap adopts an existing zap logger, typically a zaptest observer in tests.
// The level of such a logger is owned by its core.
func FromZap(z *zap.Logger) *Logger {
	if z == nil {
		return NewNop()
	}
	return newLogger(z, zap.NewAtomicLevelAt(LevelDebug))
}

func newLogger(z *zap.Logger, level zap.AtomicLevel) *Logger {
	return &Logger{z: z, level: level, synced: new(atomic.Bool)}
}

func Default() *Logger {
	return defaultLogger.Load()
}

func SetDefault(logger *Logger) {
	if logger == nil {
		logger = NewNop()
	}
	defaultLogger.Store(logger)
}

func (l *Logger) orDefault() *Logger {
	if l == nil {
		return Default()
	}
	return l
}

func (l *Logger) Zap() *zap.Logger {
	return l.orDefault().z
}

func (l *Logger) SetLevel(level Level) {
	l.orDefault().level.SetLevel(level)
}

func (l *Logger) Enabled(level Level) bool {
	l = l.orDefault()
	return l.level.Enabled(level) && l.z.Core().Enabled(level)
}

// Sync flushes buffered entries once; later calls are no-ops.
func (l *Logger) Sync() error {
	l = l.orDefault()
	if !l.synced.CompareAndSwap(false, true) {
		return nil
	}
	if err := l.z.Sync(); err != nil && !isUnsyncableStdout(err) {
		return err
	}
	return nil
}

func (l *Logger) With(args ...any) *Logger {
	l = l.orDefault()
	return &Logger{z: l.z.With(fields(args)...), level: l.level, synced: l.synced}
}

// Named tags every entry with the component name.
func (l *Logger) Named(component string) *Logger {
	l = l.orDefault()
	return &Logger{z: l.z.Named(component), level: l.level, synced: l.synced}
}

func (l *Logger) Debug(msg string, args ...any) { l.write(nil, LevelDebug, msg, args) }
func (l *Logger) Info(msg string, args ...any)  { l.write(nil, LevelInfo, msg, args) }
func (l *Logger) Warn(msg string, args ...any)  { l.write(nil, LevelWarn, msg, args) }
func (l *Logger) Error(msg string, args ...any) { l.write(nil, LevelError, msg, args) }

func (l *Logger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.write(ctx, LevelDebug, msg, args)
}

func (l *Logger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.write(ctx, LevelInfo, msg, args)
}

func (l *Logger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.write(ctx, LevelWarn, msg, args)
}

func (l *Logger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.write(ctx, LevelError, msg, args)
}

func (l *Logger) write(ctx context.Context, level Level, msg string, args []any) {
	l = l.orDefault()
	if !l.level.Enabled(level) {
		return
	}
	ce := l.z.Check(level, msg)
	if ce == nil {
		return
	}

	fs := fields(args)
	if ctx != nil {
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			fs = append(fs,
				zap.String("trace_id", sc.TraceID().String()),
				zap.String("span_id", sc.SpanID().String()),
			)
		}
	}
	ce.Write(fs...)
}

// fields converts alternating key/value args. A non-string key becomes "arg"
// and a trailing key without a value is logged as null.
func fields(args []any) []zap.Field {
	if len(args) == 0 {
		return nil
	}

	out := make([]zap.Field, 0, len(args)/2+3)
	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok || key == "" {
			key = "arg"
		}
		if i+1 == len(args) {
			out = append(out, zap.Any(key, nil))
			break
		}
		out = append(out, field(key, args[i+1]))
	}
	return out
}

func field(key string, value any) zap.Field {
	switch v := value.(type) {
	case error:
		return zap.NamedError(key, v)
	case string:
		return zap.String(key, v)
	case int:
		return zap.Int(key, v)
	case int64:
		return zap.Int64(key, v)
	case bool:
		return zap.Bool(key, v)
	case time.Duration:
		return zap.Duration(key, v)
	case time.Time:
		return zap.Time(key, v)
	case fmt.Stringer:
		return zap.Stringer(key, v)
	default:
		return zap.Any(key, v)
	}
}

// Syncing a terminal or pipe stdout fails on some platforms; that is not a
// lost write.
func isUnsyncableStdout(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "invalid argument") || strings.Contains(msg, "inappropriate ioctl")
}
