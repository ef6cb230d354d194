package logger

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey struct{}

// Logger is the zap-backed facade every package logs through.
type Logger struct {
	zap *zap.Logger
	// pkg skips one more frame for the package-level Debug/Info/Warn/Error.
	pkg *zap.Logger
}

var (
	mu     sync.RWMutex
	global = newDefault()
	level  = zap.NewAtomicLevelAt(LevelInfo)
	out    *os.File
)

type options struct {
	output string
}

type Option func(*options)

// WithOutput sends log entries to the given file instead of stderr.
func WithOutput(path string) Option {
	return func(o *options) { o.output = path }
}

// Init replaces the global logger. It is safe to call more than once; a log
// file opened by an earlier call is closed.
func Init(levelStr string, asJSON bool, opts ...Option) error {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(levelStr)))
	if err != nil {
		return fmt.Errorf("logger.Init: parse level %q: %w", levelStr, err)
	}
	level.SetLevel(lvl)

	var (
		sink = zapcore.Lock(os.Stderr)
		f    *os.File
	)
	if o.output != "" {
		f, err = os.OpenFile(o.output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("logger.Init: open %s: %w", o.output, err)
		}
		sink = zapcore.AddSync(f)
	}

	core := zapcore.NewCore(newEncoder(asJSON), sink, level)
	return replace(zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)), f)
}

// SetNopLogger silences logging, mostly for tests.
func SetNopLogger() {
	_ = replace(zap.NewNop(), nil)
}

// Close flushes the logger and closes the log file, if any. Logging falls
// back to a no-op logger afterwards when a file was closed.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	_ = global.zap.Sync()
	if out == nil {
		return nil
	}

	err := out.Close()
	out = nil
	global = newLogger(zap.NewNop())
	if err != nil {
		return fmt.Errorf("logger.Close: %w", err)
	}
	return nil
}

func L() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

func Sync() error { return L().zap.Sync() }

func With(fields ...Field) *Logger { return L().With(fields...) }

// WithContext returns ctx carrying fields that are appended to every entry logged with it.
func WithContext(ctx context.Context, fields ...Field) context.Context {
	prev, _ := ctx.Value(ctxKey{}).([]Field)
	merged := make([]Field, 0, len(prev)+len(fields))
	merged = append(merged, prev...)
	merged = append(merged, fields...)
	return context.WithValue(ctx, ctxKey{}, merged)
}

func Debug(ctx context.Context, msg string, fields ...Field) { L().pkg.Debug(msg, withCtx(ctx, fields)...) }
func Info(ctx context.Context, msg string, fields ...Field)  { L().pkg.Info(msg, withCtx(ctx, fields)...) }
func Warn(ctx context.Context, msg string, fields ...Field)  { L().pkg.Warn(msg, withCtx(ctx, fields)...) }
func Error(ctx context.Context, msg string, fields ...Field) { L().pkg.Error(msg, withCtx(ctx, fields)...) }

func (l *Logger) With(fields ...Field) *Logger {
	return newLogger(l.zap.With(fields...))
}

func (l *Logger) Debug(ctx context.Context, msg string, fields ...Field) {
	l.zap.Debug(msg, withCtx(ctx, fields)...)
}

func (l *Logger) Info(ctx context.Context, msg string, fields ...Field) {
	l.zap.Info(msg, withCtx(ctx, fields)...)
}

func (l *Logger) Warn(ctx context.Context, msg string, fields ...Field) {
	l.zap.Warn(msg, withCtx(ctx, fields)...)
}

func (l *Logger) Error(ctx context.Context, msg string, fields ...Field) {
	l.zap.Error(msg, withCtx(ctx, fields)...)
}

func withCtx(ctx context.Context, fields []Field) []Field {
	if ctx == nil {
		return fields
	}
	extra, ok := ctx.Value(ctxKey{}).([]Field)
	if !ok || len(extra) == 0 {
		return fields
	}
	return append(extra[:len(extra):len(extra)], fields...)
}

// replace swaps the global logger and its log file under the lock.
func replace(z *zap.Logger, f *os.File) error {
	mu.Lock()
	defer mu.Unlock()

	prev := out
	global = newLogger(z)
	out = f

	if prev != nil && prev != f {
		if err := prev.Close(); err != nil {
			return fmt.Errorf("logger: close previous output: %w", err)
		}
	}
	return nil
}

func newLogger(z *zap.Logger) *Logger {
	return &Logger{zap: z, pkg: z.WithOptions(zap.AddCallerSkip(1))}
}

func newEncoder(asJSON bool) zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder

	if asJSON {
		return zapcore.NewJSONEncoder(cfg)
	}
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(cfg)
}

func newDefault() *Logger {
	core := zapcore.NewCore(newEncoder(false), zapcore.Lock(os.Stderr), zap.NewAtomicLevelAt(LevelInfo))
	return newLogger(zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)))
}
