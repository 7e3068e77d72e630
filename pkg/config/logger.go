package config

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger contains node logger configuration.
type Logger struct {
	LogEncoding  string `yaml:"LogEncoding"`
	LogLevel     string `yaml:"LogLevel"`
	LogPath      string `yaml:"LogPath"`
	LogTimestamp *bool  `yaml:"LogTimestamp,omitempty"`
}

// Validate returns an error if Logger configuration is not valid.
func (l Logger) Validate() error {
	if len(l.LogEncoding) > 0 && l.LogEncoding != "console" && l.LogEncoding != "json" {
		return fmt.Errorf("invalid LogEncoding: %s", l.LogEncoding)
	}
	if len(l.LogLevel) > 0 {
		if _, err := zapcore.ParseLevel(l.LogLevel); err != nil {
			return fmt.Errorf("invalid LogLevel: %w", err)
		}
	}
	return nil
}

// Build constructs a *zap.Logger (and its atomic level, so it can be
// adjusted at runtime) from l, defaulting to info-level console
// logging to stderr.
func (l Logger) Build() (*zap.Logger, *zap.AtomicLevel, error) {
	level := zapcore.InfoLevel
	if len(l.LogLevel) > 0 {
		var err error
		level, err = zapcore.ParseLevel(l.LogLevel)
		if err != nil {
			return nil, nil, fmt.Errorf("log setting: %w", err)
		}
	}
	encoding := "console"
	if len(l.LogEncoding) > 0 {
		encoding = l.LogEncoding
	}

	cc := zap.NewProductionConfig()
	cc.DisableCaller = true
	cc.DisableStacktrace = true
	cc.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	cc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	if l.LogTimestamp != nil && *l.LogTimestamp {
		cc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cc.EncoderConfig.EncodeTime = func(_ time.Time, _ zapcore.PrimitiveArrayEncoder) {}
	}
	cc.Encoding = encoding
	cc.Level = zap.NewAtomicLevelAt(level)
	cc.Sampling = nil

	if l.LogPath != "" {
		cc.OutputPaths = []string{l.LogPath}
	}

	log, err := cc.Build()
	if err != nil {
		return nil, nil, err
	}
	return log, &cc.Level, nil
}
