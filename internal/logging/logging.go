// Package logging builds the zap logger used by the server.
//
// Console output always goes to stderr because stdout carries the MCP
// protocol. When a log file is configured, entries are also written there as
// JSON through a lumberjack rotating writer.
package logging

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger construction.
type Options struct {
	// Level is one of debug, info, warn or error. Unknown values mean info.
	Level string

	// File, when set, enables a rotating JSON log file at this path.
	File string

	// MaxSizeMB is the size at which the log file rotates. Zero means 50.
	MaxSizeMB int

	// MaxBackups is the number of rotated files kept. Zero means 3.
	MaxBackups int
}

// ParseLevel maps a level name to a zapcore.Level, case-insensitively.
// Empty or unknown names return def.
func ParseLevel(s string, def zapcore.Level) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return def
	}
}

// New returns a logger writing to stderr and, optionally, a rotating file.
func New(opts Options) *zap.Logger {
	return NewWithWriter(opts, zapcore.Lock(os.Stderr))
}

// NewWithWriter is New with the console destination supplied by the caller.
func NewWithWriter(opts Options, console zapcore.WriteSyncer) *zap.Logger {
	level := ParseLevel(opts.Level, zapcore.InfoLevel)

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), console, level),
	}
	if opts.File != "" {
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), fileWriter(opts), level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller())
}

func fileWriter(opts Options) zapcore.WriteSyncer {
	maxSize := opts.MaxSizeMB
	if maxSize == 0 {
		maxSize = 50
	}
	backups := opts.MaxBackups
	if backups == 0 {
		backups = 3
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    maxSize,
		MaxBackups: backups,
		Compress:   true,
	})
}
