// Package logger provides structured logging for the triage simulator.
// Every admission, dispatch and reassignment should be traceable through this.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger provides structured logging with context.
type Logger struct {
	sugar *zap.SugaredLogger
}

// NewLogger creates a console logger at info level.
func NewLogger() *Logger {
	l, err := New("info")
	if err != nil {
		// "info" always parses; fall back to a silent logger rather than panic.
		return NewNop()
	}
	return l
}

// New creates a console logger at the given level (debug, info, warn, error).
func New(level string) (*Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.DisableStacktrace = true

	z, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return &Logger{sugar: z.Sugar().Named("triage")}, nil
}

// NewNop returns a logger that discards everything. Used by tests.
func NewNop() *Logger {
	return &Logger{sugar: zap.NewNop().Sugar()}
}

// Info logs informational messages with optional key/value pairs.
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Infow(msg, keysAndValues...)
}

// Warn logs warning messages.
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.sugar.Warnw(msg, keysAndValues...)
}

// Error logs error messages.
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, keysAndValues...)
}

// Debug logs per-tick noise that is hidden at info level.
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, keysAndValues...)
}

// Event logs a specific triage event for the audit trail.
func (l *Logger) Event(eventType string, actorID string, details string) {
	l.sugar.Infow(details, "event", eventType, "actor", actorID)
}

// Sync flushes buffered entries. Call before exit.
func (l *Logger) Sync() {
	_ = l.sugar.Sync()
}
