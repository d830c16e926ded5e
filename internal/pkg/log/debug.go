package log

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// DebugLogger collects log messages in memory, used in tests.
type DebugLogger struct {
	*zap.SugaredLogger
	recorded *observer.ObservedLogs
}

func NewDebugLogger() *DebugLogger {
	core, recorded := observer.New(zapcore.DebugLevel)
	return &DebugLogger{
		SugaredLogger: zap.New(core).Sugar(),
		recorded:      recorded,
	}
}

// AllMessages returns all logged messages, one per line.
func (l *DebugLogger) AllMessages() string {
	var out strings.Builder
	for _, entry := range l.recorded.All() {
		out.WriteString(entry.Message)
		out.WriteString("\n")
	}
	return out.String()
}

// WarnMessages returns messages logged at the warn level or above.
func (l *DebugLogger) WarnMessages() string {
	var out strings.Builder
	for _, entry := range l.recorded.All() {
		if entry.Level >= zapcore.WarnLevel {
			out.WriteString(entry.Message)
			out.WriteString("\n")
		}
	}
	return out.String()
}

func (l *DebugLogger) Truncate() {
	l.recorded.TakeAll()
}
