// Package logger builds the zap loggers used by the CLI, server and pipeline.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a logger writing to stderr so stdout stays free for JSON output.
// json selects the JSON encoder over the console one; debug lowers the level.
func New(json bool, debug bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	encoding := "console"

	if json {
		encoding = "json"
	}

	if debug {
		level = zapcore.DebugLevel
	}

	cfg := zap.Config{
		Encoding:         encoding,
		Level:            zap.NewAtomicLevelAt(level),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey: "msg",

			LevelKey:    "level",
			EncodeLevel: zapcore.LowercaseLevelEncoder,

			TimeKey:    "time",
			EncodeTime: zapcore.RFC3339TimeEncoder,

			CallerKey:    "caller",
			EncodeCaller: zapcore.ShortCallerEncoder,

			EncodeDuration: zapcore.StringDurationEncoder,
		},
	}
	return cfg.Build()
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger {
	return zap.NewNop()
}

// WithFields attaches fields to base, falling back to a no-op logger when base is nil.
func WithFields(base *zap.Logger, fields ...zap.Field) *zap.Logger {
	if base == nil {
		base = zap.NewNop()
	}
	if len(fields) == 0 {
		return base
	}
	return base.With(fields...)
}

// RankingFields are the fields identifying one ranking run in logs.
func RankingFields(requisitionID string, sortKey string, candidates int) []zap.Field {
	fields := make([]zap.Field, 0, 3)
	if requisitionID != "" {
		fields = append(fields, zap.String("requisition_id", requisitionID))
	}
	if sortKey != "" {
		fields = append(fields, zap.String("sort_key", sortKey))
	}
	return append(fields, zap.Int("candidates", candidates))
}
