package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

var (
	mu           sync.RWMutex
	globalLogger *slog.Logger
	zapLogger    *zap.Logger
)

// ParseLevel maps a level name to a zap level. Unknown names yield InfoLevel and false.
func ParseLevel(levelStr string) (zapcore.Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(levelStr)) {
	case "DEBUG":
		return zapcore.DebugLevel, true
	case "INFO", "":
		return zapcore.InfoLevel, true
	case "WARN", "WARNING":
		return zapcore.WarnLevel, true
	case "ERROR":
		return zapcore.ErrorLevel, true
	default:
		return zapcore.InfoLevel, false
	}
}

// InitSlog initializes the global slog logger on top of a JSON zap core writing to stderr.
// Stdout is left to command output.
func InitSlog(levelStr string) {
	level, known := ParseLevel(levelStr)

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.Sampling = nil

	zl, err := cfg.Build()
	if err != nil {
		// zap could not open its sinks; keep going with a plain JSON handler
		fallback := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.Level(level * 4)}))
		setGlobal(fallback, zap.NewNop())
		fallback.Error("Failed to build zap logger, using slog JSON handler", "error", err)
		return
	}

	setGlobal(slog.New(zapslog.NewHandler(zl.Core())), zl)
	if !known {
		Warn("Invalid log level string, defaulting to INFO", "input", levelStr)
	}
}

func setGlobal(l *slog.Logger, zl *zap.Logger) {
	mu.Lock()
	globalLogger = l
	zapLogger = zl
	mu.Unlock()
	slog.SetDefault(l)
}

func current() *slog.Logger {
	mu.RLock()
	l := globalLogger
	mu.RUnlock()
	if l != nil {
		return l
	}
	InitSlog("INFO")
	mu.RLock()
	defer mu.RUnlock()
	return globalLogger
}

// Zap returns the zap logger behind the global slog logger.
func Zap() *zap.Logger {
	current()
	mu.RLock()
	defer mu.RUnlock()
	return zapLogger
}

// Sync flushes buffered log entries.
func Sync() {
	mu.RLock()
	zl := zapLogger
	mu.RUnlock()
	if zl != nil {
		_ = zl.Sync()
	}
}

// Debug logs a message at DebugLevel.
func Debug(msg string, args ...any) {
	l := current()
	if l.Enabled(context.Background(), slog.LevelDebug) {
		l.Debug(msg, args...)
	}
}

// Info logs a message at InfoLevel.
func Info(msg string, args ...any) {
	current().Info(msg, args...)
}

// Warn logs a message at WarnLevel.
func Warn(msg string, args ...any) {
	current().Warn(msg, args...)
}

// Error logs a message at ErrorLevel.
func Error(msg string, args ...any) {
	current().Error(msg, args...)
}

// Fatal logs a message at ErrorLevel then exits.
func Fatal(msg string, args ...any) {
	current().Error(msg, args...)
	Sync()
	os.Exit(1)
}
