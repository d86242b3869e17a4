// Package logging builds the zap loggers used by the str8 command.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pavanmanishd/str8"
)

// New creates a logger at level ("debug", "info", ...) in the given
// format ("json" or "console").
func New(level, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var cfg zap.Config
	switch format {
	case "json":
		cfg = zap.NewProductionConfig()
	case "console", "":
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// StringField logs a String's size accounting without its content.
func StringField(key string, s *str8.String) zap.Field {
	return zap.Object(key, stringStats{s.Stats()})
}

type stringStats struct {
	st str8.Stats
}

func (s stringStats) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt("len", s.st.Len)
	enc.AddInt("cap", s.st.Cap)
	enc.AddInt("grows", s.st.Grows)
	enc.AddFloat64("utilization", s.st.Utilization)
	return nil
}

// ArenaField logs an arena snapshot.
func ArenaField(key string, m str8.ArenaMetrics) zap.Field {
	return zap.Object(key, arenaMetrics(m))
}

type arenaMetrics str8.ArenaMetrics

func (m arenaMetrics) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt("in_use", m.SizeInUse)
	enc.AddInt("capacity", m.Capacity)
	enc.AddInt("chunks", m.NumChunks)
	enc.AddInt("limit", m.Limit)
	enc.AddFloat64("utilization", m.Utilization)
	return nil
}
