// Package logging builds the zap logger shared by all components.
package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a console logger writing to stderr and to every extra
// writer. verbose lowers the level from info to debug.
func New(verbose bool, extra ...io.Writer) *zap.Logger {
	return newLogger(os.Stderr, verbose, extra...)
}

func newLogger(stderr io.Writer, verbose bool, extra ...io.Writer) *zap.Logger {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if verbose {
		level.SetLevel(zapcore.DebugLevel)
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(stderr), level),
	}

	// Extra sinks get a compact encoder without timestamps or callers
	plain := encoderConfig
	plain.TimeKey = ""
	plain.CallerKey = ""
	for _, w := range extra {
		if w == nil {
			continue
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(plain), zapcore.AddSync(w), level))
	}

	return zap.New(zapcore.NewTee(cores...))
}

// OrNop returns logger, or a no-op logger when it is nil
func OrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
