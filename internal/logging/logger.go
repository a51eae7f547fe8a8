package logging

import (
	"context"
	"log"
	"strings"
	"sync/atomic"
)

type requestIDKey struct{}

const (
	levelDebug int32 = iota
	levelInfo
	levelWarn
	levelError
)

var minLevel atomic.Int32

func init() {
	minLevel.Store(levelInfo)
}

// SetLevel sets the minimum level that is written. Unknown names mean info.
func SetLevel(name string) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		minLevel.Store(levelDebug)
	case "warn", "warning":
		minLevel.Store(levelWarn)
	case "error":
		minLevel.Store(levelError)
	default:
		minLevel.Store(levelInfo)
	}
}

// WithRequestID returns a copy of ctx carrying the request id.
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, rid)
}

// RequestID extracts the request id from ctx, or "" if none was set.
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if rid, ok := ctx.Value(requestIDKey{}).(string); ok {
		return rid
	}
	return ""
}

// Logger writes key=value lines tagged with the request id of a context.
type Logger struct {
	requestID string
}

// New creates a logger bound to the request id stored in ctx.
func New(ctx context.Context) *Logger {
	requestID := RequestID(ctx)
	if requestID == "" {
		requestID = "unknown"
	}
	return &Logger{requestID: requestID}
}

func (l *Logger) Error(operation string, err error) {
	l.write(levelError, "error", operation, "error=%v", err)
}

func (l *Logger) Errorf(operation string, format string, args ...interface{}) {
	l.write(levelError, "error", operation, format, args...)
}

func (l *Logger) Info(operation string, message string) {
	l.write(levelInfo, "info", operation, "message=%s", message)
}

func (l *Logger) Infof(operation string, format string, args ...interface{}) {
	l.write(levelInfo, "info", operation, format, args...)
}

func (l *Logger) Warn(operation string, message string) {
	l.write(levelWarn, "warn", operation, "message=%s", message)
}

func (l *Logger) Warnf(operation string, format string, args ...interface{}) {
	l.write(levelWarn, "warn", operation, format, args...)
}

func (l *Logger) Debugf(operation string, format string, args ...interface{}) {
	l.write(levelDebug, "debug", operation, format, args...)
}

func (l *Logger) write(level int32, tag, operation, format string, args ...interface{}) {
	if level < minLevel.Load() {
		return
	}
	log.Printf("[%s] request_id=%s operation=%s "+format, append([]interface{}{tag, l.requestID, operation}, args...)...)
}
