// Package logging builds the zap logger the client uses everywhere.
// Console format by default — this is a terminal tool — with JSON
// available for anyone piping logs somewhere structured.
package logging

import (
	"errors"
	"fmt"
	"os"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a logger writing to stderr so log lines never interleave
// with TUI frames or exported output on stdout.
func New(level, format string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	switch format {
	case "console":
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	case "json":
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	default:
		return nil, fmt.Errorf("log format must be 'json' or 'console', got %q", format)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(os.Stderr)), lvl)
	return zap.New(core), nil
}

// Sync flushes buffered entries, swallowing the harmless EINVAL/ENOTTY
// that syncing a terminal returns on Linux.
func Sync(l *zap.Logger) error {
	err := l.Sync()
	if err != nil && isTerminalSyncError(err) {
		return nil
	}
	return err
}

func isTerminalSyncError(err error) bool {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno == syscall.EINVAL || errno == syscall.ENOTTY
	}
	return false
}
