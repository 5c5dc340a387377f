// Package log wraps a JSON zap logger shared by adapters, jobs and the composition root.
package log

import (
	"errors"
	"fmt"
	"os"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Zap struct {
	logger *zap.Logger
}

// NewZap builds a logger writing JSON to stdout at the given level ("debug", "info", ...).
// An unknown level falls back to info.
func NewZap(level string) *Zap {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	encoderCfg := zapcore.EncoderConfig{
		MessageKey:    "_m",
		NameKey:       "logger",
		LevelKey:      "_l",
		EncodeLevel:   zapcore.LowercaseLevelEncoder,
		TimeKey:       "_t",
		EncodeTime:    zapcore.ISO8601TimeEncoder,
		StacktraceKey: "_s",
	}

	return &Zap{
		logger: zap.New(zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), os.Stdout, lvl)),
	}
}

// NewNop returns a logger that discards everything. Used by tests.
func NewNop() *Zap {
	return &Zap{logger: zap.NewNop()}
}

// Wrap adapts an existing zap logger.
func Wrap(logger *zap.Logger) *Zap {
	return &Zap{logger: logger}
}

func (z *Zap) Debug(msg string, fields ...zap.Field) {
	z.logger.Debug(msg, fields...)
}

func (z *Zap) Info(msg string, fields ...zap.Field) {
	z.logger.Info(msg, fields...)
}

func (z *Zap) Warn(msg string, fields ...zap.Field) {
	z.logger.Warn(msg, fields...)
}

func (z *Zap) Error(msg string, fields ...zap.Field) {
	z.logger.Error(msg, fields...)
}

// Named returns a child logger tagged with the component name.
func (z *Zap) Named(component string) *Zap {
	return &Zap{logger: z.logger.Named(component)}
}

func (z *Zap) With(fields ...zap.Field) *Zap {
	return &Zap{logger: z.logger.With(fields...)}
}

func (z *Zap) Close() error {
	if err := z.logger.Sync(); err != nil && !isSyncInvalidError(err) {
		return fmt.Errorf("failed sync logger | %w", err)
	}

	return nil
}

// stdout may be a terminal or a pipe, neither of which supports fsync.
func isSyncInvalidError(err error) bool {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) && (errors.Is(pathErr.Err, syscall.ENOTTY) || errors.Is(pathErr.Err, syscall.EINVAL)) {
		return true
	}

	return false
}
