// Package logging wraps zap with a key/value API shared by every layer of the
// panel. Context variants stamp the active trace and span ids on each entry.
package logging

import (
	"context"
	"os"
	"strings"
	"sync/atomic"

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

const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

type Logger struct {
	zap    *zap.Logger
	synced atomic.Bool
}

var fallback atomic.Pointer[Logger]

func init() {
	fallback.Store(NewNop())
}

// ParseLevel maps a level name to a zap level. Unknown names mean info.
func ParseLevel(name string) Level {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "warning" {
		return LevelWarn
	}
	level, err := zapcore.ParseLevel(name)
	if err != nil || level < LevelDebug || level > LevelError {
		return LevelInfo
	}
	return level
}

// New writes to stdout in the given format. Anything but console is JSON.
func New(level Level, format string) *Logger {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "time"
	cfg.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncodeDuration = zapcore.StringDurationEncoder

	encoder := zapcore.NewJSONEncoder(cfg)
	if format == FormatConsole {
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(cfg)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level)
	return FromZap(zap.New(core,
		zap.AddCaller(),
		zap.AddCallerSkip(2),
		zap.AddStacktrace(LevelError),
	))
}

func NewNop() *Logger {
	return FromZap(nil)
}

func FromZap(z *zap.Logger) *Logger {
	if z == nil {
		z = zap.NewNop()
	}
	return &Logger{zap: z}
}

// Default is the process-wide logger. It discards until SetDefault runs.
func Default() *Logger {
	return fallback.Load()
}

func SetDefault(logger *Logger) {
	if logger == nil {
		logger = NewNop()
	}
	fallback.Store(logger)
}

// Sync flushes buffered entries once; later calls are no-ops.
func (l *Logger) Sync() error {
	if l == nil || l.zap == nil || !l.synced.CompareAndSwap(false, true) {
		return nil
	}
	return l.zap.Sync()
}

func (l *Logger) With(kv ...any) *Logger {
	return &Logger{zap: l.core().With(fields(context.Background(), kv)...)}
}

func (l *Logger) Debug(msg string, kv ...any) { l.write(context.Background(), LevelDebug, msg, kv) }
func (l *Logger) Info(msg string, kv ...any)  { l.write(context.Background(), LevelInfo, msg, kv) }
func (l *Logger) Warn(msg string, kv ...any)  { l.write(context.Background(), LevelWarn, msg, kv) }
func (l *Logger) Error(msg string, kv ...any) { l.write(context.Background(), LevelError, msg, kv) }

func (l *Logger) InfoContext(ctx context.Context, msg string, kv ...any) {
	l.write(ctx, LevelInfo, msg, kv)
}

func (l *Logger) WarnContext(ctx context.Context, msg string, kv ...any) {
	l.write(ctx, LevelWarn, msg, kv)
}

func (l *Logger) ErrorContext(ctx context.Context, msg string, kv ...any) {
	l.write(ctx, LevelError, msg, kv)
}

func (l *Logger) core() *zap.Logger {
	if l == nil || l.zap == nil {
		return Default().zap
	}
	return l.zap
}

func (l *Logger) write(ctx context.Context, level Level, msg string, kv []any) {
	entry := l.core().Check(level, msg)
	if entry == nil {
		return
	}
	entry.Write(fields(ctx, kv)...)
}

// fields turns alternating key/value pairs into zap fields. A key without a
// value is logged as null; a non-string key becomes "arg".
func fields(ctx context.Context, kv []any) []zap.Field {
	out := make([]zap.Field, 0, len(kv)/2+3)
	for i := 0; i < len(kv); i += 2 {
		key, _ := kv[i].(string)
		if key == "" {
			key = "arg"
		}
		var value any
		if i+1 < len(kv) {
			value = kv[i+1]
		}
		if err, ok := value.(error); ok {
			out = append(out, zap.NamedError(key, err))
			continue
		}
		out = append(out, zap.Any(key, value))
	}

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		out = append(out,
			zap.String("trace_id", sc.TraceID().String()),
			zap.String("span_id", sc.SpanID().String()),
		)
	}
	return out
}
