package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a production JSON logger at level and installs it as zap.L().
// The returned func flushes buffered entries.
func NewLogger(level string) (*zap.Logger, func(), error) {
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return nil, nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		return nil, nil, err
	}
	zap.ReplaceGlobals(logger)

	cleanup := func() {
		if err := logger.Sync(); err != nil && !isIgnorableSyncError(err) {
			fmt.Printf("failed to sync logger: %v\n", err)
		}
	}
	return logger, cleanup, nil
}

func isIgnorableSyncError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "sync /dev/stderr: inappropriate ioctl for device") ||
		strings.Contains(msg, "sync /dev/stdout: inappropriate ioctl for device") ||
		strings.Contains(msg, "sync /dev/stderr: invalid argument")
}
