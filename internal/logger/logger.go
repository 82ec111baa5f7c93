// Package logger builds the structured logger used by bmdir.
//
// The terminal belongs to the picker while it runs, so log entries go to a
// file as JSON. Without a file path every entry is discarded.
package logger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Define an unexported custom type for the context key to prevent collisions.
type loggerContextKey struct{}

const (
	SessionKey   = "session"
	VersionKey   = "version"
	GoVersionKey = "go_version"
	TimeStampKey = "timestamp"
	MessageKey   = "message"
)

// Options configures New.
type Options struct {
	// Path is the log file. Empty disables logging.
	Path string
	// Debug lowers the minimum level so V(1) entries are written.
	Debug bool
	// Version is attached to every entry.
	Version string
}

// Logger is a logr.Logger backed by zap writing to a file.
type Logger struct {
	logr.Logger

	// Session identifies one run of the program in a shared log file.
	Session string

	zap  *zap.Logger
	file *os.File
}

// New opens the log file and builds the logger.
func New(opts Options) (*Logger, error) {
	session := uuid.NewString()
	if opts.Path == "" {
		return &Logger{Logger: logr.Discard(), Session: session}, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	// Encoder Configuration: How log entries are formatted (JSON in this case)
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.TimeKey = TimeStampKey
	encoderCfg.MessageKey = MessageKey

	level := zapcore.InfoLevel
	if opts.Debug {
		level = zapcore.DebugLevel
	}

	goVersion := ""
	if info, ok := debug.ReadBuildInfo(); ok {
		goVersion = info.GoVersion
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(f),
		zap.NewAtomicLevelAt(level),
	).With([]zapcore.Field{
		zap.String(SessionKey, session),
		zap.String(VersionKey, opts.Version),
		zap.String(GoVersionKey, goVersion),
	})

	zl := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))

	return &Logger{
		Logger:  zapr.NewLogger(zl),
		Session: session,
		zap:     zl,
		file:    f,
	}, nil
}

// Close flushes buffered entries and closes the log file.
func (l *Logger) Close() error {
	if l.zap == nil {
		return nil
	}
	if err := l.zap.Sync(); err != nil && !isIgnorableSyncError(err) {
		l.file.Close()
		return err
	}
	return l.file.Close()
}

// isIgnorableSyncError returns true for common Sync errors on pipes/TTYs.
func isIgnorableSyncError(err error) bool {
	return errors.Is(err, syscall.ENOTTY) || errors.Is(err, syscall.EINVAL)
}

// DefaultPath returns the debug log location: ~/.config/bmdir/debug.log
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "bmdir", "debug.log"), nil
}

// WithLogger returns a new context with the provided logr.Logger attached.
func WithLogger(ctx context.Context, log logr.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey{}, log)
}

// FromContext retrieves the logr.Logger from the context.
// Returns a no-op logger if none was attached.
func FromContext(ctx context.Context) logr.Logger {
	if ctx == nil {
		return logr.Discard()
	}
	if log, ok := ctx.Value(loggerContextKey{}).(logr.Logger); ok {
		return log
	}
	return logr.Discard()
}
