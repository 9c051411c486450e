package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Common structured log field keys to keep logs searchable/consistent.
const (
	FieldService    = "service"
	FieldVersion    = "version"
	FieldRequestID  = "request_id"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldRoute      = "route"
	FieldStatusCode = "status_code"
	FieldDurationMS = "duration_ms"
	FieldTeamID     = "team_id"
	FieldAttempt    = "attempt"
	FieldSort       = "sort"
	FieldSource     = "source"
	FieldFile       = "file"
)

type Config struct {
	Level   string
	Format  string
	Service string
	Version string
}

// New builds a zap logger. Format "console" gives the human readable
// development encoder, anything else JSON.
func New(cfg Config) (*zap.Logger, error) {
	var zcfg zap.Config
	if strings.EqualFold(cfg.Format, "console") {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
		zcfg.EncoderConfig.TimeKey = "time"
		zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	zcfg.Level = zap.NewAtomicLevelAt(ParseLevel(cfg.Level))

	logger, err := zcfg.Build()
	if err != nil {
		return nil, err
	}

	var fields []zap.Field
	if cfg.Service != "" {
		fields = append(fields, zap.String(FieldService, cfg.Service))
	}
	if cfg.Version != "" {
		fields = append(fields, zap.String(FieldVersion, cfg.Version))
	}

	return logger.With(fields...), nil
}

// ParseLevel falls back to info for empty or unknown levels.
func ParseLevel(level string) zapcore.Level {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(level)))); err != nil || level == "" {
		return zapcore.InfoLevel
	}
	return l
}

// OrNop returns a no-op logger when logger is nil.
func OrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
