// Package logger provides the structured logger shared by the binaries.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap with the small surface the binaries need.
type Logger struct {
	*zap.Logger
}

// New builds a logger at the given level with the given encoding ("json" or
// "console"). When output paths are given they replace stderr, which lets the
// interactive client log to a file without corrupting its own screen.
func New(level, encoding string, outputs ...string) (*Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = encoding
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if len(outputs) > 0 {
		cfg.OutputPaths = outputs
		cfg.ErrorOutputPaths = outputs
	}

	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return &Logger{l}, nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{zap.NewNop()}
}

// StringField creates a string field for structured logging.
func StringField(key, value string) zap.Field {
	return zap.String(key, value)
}

// IntField creates an int field for structured logging.
func IntField(key string, value int) zap.Field {
	return zap.Int(key, value)
}

// ErrorField creates an error field for structured logging.
func ErrorField(err error) zap.Field {
	return zap.Error(err)
}
