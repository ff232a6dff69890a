// Package logger builds the zap loggers used by the CLI.
package logger

import (
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// New returns a logger writing to w at levelStr ("debug", "info", "warn",
// "error"; anything else means info). Format "json" emits one JSON object per
// line; any other value emits human-readable console lines.
func New(levelStr, format string, w io.Writer) *zap.Logger {
	level := zapcore.InfoLevel
	switch strings.ToLower(levelStr) {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	}

	var enc zapcore.Encoder
	if strings.EqualFold(format, FormatJSON) {
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(cfg)
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(cfg)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(w), zap.NewAtomicLevelAt(level))
	return zap.New(core)
}
