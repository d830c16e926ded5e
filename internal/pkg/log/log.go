// Package log provides the project loggers.
// The CLI logger writes plain messages to the console, the debug logger
// collects messages in memory for assertions in tests.
package log

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewCliLogger creates a console logger.
// Debug level messages are written only in the verbose mode.
func NewCliLogger(stdout io.Writer, verbose bool) *zap.SugaredLogger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = ""
	encoderConfig.LevelKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(writerOrDiscard(stdout)),
		level,
	)
	return zap.New(core).Sugar()
}

// NewNopLogger discards all messages.
func NewNopLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func writerOrDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}
