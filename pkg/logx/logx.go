// Package logx is a small leveled logging facade backed by zap.
package logx

import (
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level int8

const (
	LevelDebug Level = iota - 1
	LevelInfo
	LevelWarn
	LevelError
)

var (
	atom   = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	global atomic.Pointer[zap.Logger]
)

func init() {
	global.Store(newLogger())
}

func newLogger() *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = atom
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// SetLevel changes the minimum level for every logger handed out by this package
func SetLevel(l Level) {
	atom.SetLevel(zapcore.Level(l))
}

// ParseLevel maps "debug", "info", "warn" and "error" to a Level
func ParseLevel(s string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, true
	case "info", "":
		return LevelInfo, true
	case "warn", "warning":
		return LevelWarn, true
	case "error":
		return LevelError, true
	}
	return LevelInfo, false
}

// SetLogger replaces the backing zap logger, mostly for tests
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	global.Store(l.WithOptions(zap.AddCallerSkip(1)))
}

// L returns the backing zap logger
func L() *zap.Logger {
	return global.Load().WithOptions(zap.AddCallerSkip(-1))
}

// With returns a zap logger carrying the given fields
func With(fields ...zap.Field) *zap.Logger {
	return L().With(fields...)
}

// Sync flushes buffered entries
func Sync() {
	_ = global.Load().Sync()
}

func sugar() *zap.SugaredLogger { return global.Load().Sugar() }

func Debug(msg string, fields ...zap.Field) { global.Load().Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { global.Load().Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { global.Load().Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { global.Load().Error(msg, fields...) }
func Fatal(msg string, fields ...zap.Field) { global.Load().Fatal(msg, fields...) }

func Debugf(format string, args ...any) { sugar().Debugf(format, args...) }
func Infof(format string, args ...any)  { sugar().Infof(format, args...) }
func Warnf(format string, args ...any)  { sugar().Warnf(format, args...) }
func Errorf(format string, args ...any) { sugar().Errorf(format, args...) }
func Fatalf(format string, args ...any) { sugar().Fatalf(format, args...) }
