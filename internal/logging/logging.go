// SPDX-License-Identifier: EPL-2.0

// Package logging builds the zap logger used by the commands.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation defaults for the log file, in megabytes, files and days.
const (
	DefaultMaxSize    = 10
	DefaultMaxBackups = 3
	DefaultMaxAge     = 28
)

// Config selects level, encoding and optional file output.
type Config struct {
	Level  string // debug, info, warn or error
	Format string // console or json
	File   string // rotated log file, empty for none

	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

// ParseLevel converts a level name to a zap level. Unknown names give info.
func ParseLevel(level string) zapcore.Level {
	l, err := zapcore.ParseLevel(level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return l
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.RFC3339TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

func newEncoder(format string) zapcore.Encoder {
	if strings.EqualFold(format, "json") {
		return zapcore.NewJSONEncoder(encoderConfig())
	}
	return zapcore.NewConsoleEncoder(encoderConfig())
}

// New returns a logger writing to console and, when cfg.File is set, to a
// rotated JSON file as well. A nil console discards console output; the
// terminal UI uses that so log lines do not corrupt the screen.
func New(cfg Config, console io.Writer) (*zap.Logger, error) {
	level := ParseLevel(cfg.Level)

	var cores []zapcore.Core
	if console != nil {
		cores = append(cores, zapcore.NewCore(newEncoder(cfg.Format), zapcore.AddSync(console), level))
	}

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}

		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    orDefault(cfg.MaxSize, DefaultMaxSize),
			MaxBackups: orDefault(cfg.MaxBackups, DefaultMaxBackups),
			MaxAge:     orDefault(cfg.MaxAge, DefaultMaxAge),
			Compress:   cfg.Compress,
		})
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig()), fileWriter, level))
	}

	if len(cores) == 0 {
		return zap.NewNop(), nil
	}

	return zap.New(zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	), nil
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
