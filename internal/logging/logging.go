// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the zap loggers used by the CLI.
package logging

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/officemd/pkg/types"
)

// New builds a logger writing to stderr at cfg.Level with cfg.Format
// ("console" or "json") encoding.
func New(cfg types.LogConfig) (*zap.Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	encoding, err := parseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Encoding = encoding
	zc.EncoderConfig = encoderConfig(encoding)
	zc.DisableStacktrace = true
	zc.Sampling = nil

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}

// NewWriter builds a logger like New that writes to w.
func NewWriter(w io.Writer, cfg types.LogConfig) (*zap.Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	encoding, err := parseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}

	var enc zapcore.Encoder
	if encoding == "json" {
		enc = zapcore.NewJSONEncoder(encoderConfig(encoding))
	} else {
		enc = zapcore.NewConsoleEncoder(encoderConfig(encoding))
	}
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), level)), nil
}

func encoderConfig(encoding string) zapcore.EncoderConfig {
	ec := zap.NewProductionEncoderConfig()
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	ec.EncodeDuration = zapcore.StringDurationEncoder
	if encoding == "console" {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return ec
}

func parseLevel(s string) (zapcore.Level, error) {
	if s == "" {
		return zapcore.InfoLevel, nil
	}
	level, err := zapcore.ParseLevel(strings.ToLower(s))
	if err != nil {
		return level, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

func parseFormat(s string) (string, error) {
	switch f := strings.ToLower(s); f {
	case "", "console":
		return "console", nil
	case "json":
		return "json", nil
	default:
		return "", fmt.Errorf("invalid log format %q (want console or json)", s)
	}
}
