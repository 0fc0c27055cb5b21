package logger

import (
	"context"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"
	"sync"
)

// LogLevel represents the logging level
type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
)

type runIDKey struct{}

// Logger wraps slog.Logger for structured logging
type Logger struct {
	*slog.Logger
}

var (
	mu           sync.Mutex
	globalLogger *Logger
)

// Init initializes the global logger writing to stderr.
func Init(level LogLevel, format string) *Logger {
	return InitWriter(os.Stderr, level, format)
}

// InitWriter initializes the global logger writing to w.
func InitWriter(w io.Writer, level LogLevel, format string) *Logger {
	l := New(w, level, format)

	mu.Lock()
	globalLogger = l
	mu.Unlock()
	slog.SetDefault(l.Logger)
	return l
}

// New builds a logger without touching the global one.
func New(w io.Writer, level LogLevel, format string) *Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(level),
	}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	return &Logger{Logger: slog.New(handler)}
}

// Discard returns a logger that drops every record.
func Discard() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))}
}

// ParseLevel maps a level name to its slog level, defaulting to info.
func ParseLevel(level LogLevel) slog.Level {
	switch strings.ToLower(string(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Get returns the global logger instance
func Get() *Logger {
	mu.Lock()
	defer mu.Unlock()
	if globalLogger == nil {
		// Fallback to default text handler if not initialized
		globalLogger = New(os.Stderr, InfoLevel, "text")
	}
	return globalLogger
}

// With returns a new logger with additional attributes
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		Logger: l.Logger.With(args...),
	}
}

// ContextWithRunID tags ctx with a run id picked up by WithContext.
func ContextWithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

// WithContext returns a new logger with context attributes
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if id, ok := ctx.Value(runIDKey{}).(string); ok {
		return l.With("run_id", id)
	}
	return l
}

// DebugWith logs a debug message with attributes
func (l *Logger) DebugWith(msg string, args ...any) {
	l.Logger.Debug(msg, args...)
}

// InfoWith logs an info message with attributes
func (l *Logger) InfoWith(msg string, args ...any) {
	l.Logger.Info(msg, args...)
}

// ErrorWithErr logs an error message with an error object
func (l *Logger) ErrorWithErr(msg string, err error, args ...any) {
	args = append(args, slog.Any("error", err))
	l.Logger.Error(msg, args...)
}
