// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the charmbracelet logger shared by all subcommands.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// DefaultTimeFormat is the timestamp layout of log lines.
const DefaultTimeFormat = "15:04:05"

// Config holds logger settings.
type Config struct {
	// Level is debug, info, warn or error. Empty means info.
	Level string
	// Output receives log lines. Nil means stderr.
	Output io.Writer
	// TimeFormat overrides DefaultTimeFormat.
	TimeFormat string
	// NoTimestamp drops timestamps, which keeps test output stable.
	NoTimestamp bool
}

// ParseLevel maps a level name to a log.Level. Matching ignores case and
// surrounding space; an empty name is info.
func ParseLevel(name string) (log.Level, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "":
		return log.InfoLevel, nil
	case "debug":
		return log.DebugLevel, nil
	case "info":
		return log.InfoLevel, nil
	case "warn", "warning":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	default:
		return log.InfoLevel, fmt.Errorf("unknown log level %q (want debug, info, warn or error)", name)
	}
}

// New returns a text logger configured from cfg.
func New(cfg Config) (*log.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	timeFormat := cfg.TimeFormat
	if timeFormat == "" {
		timeFormat = DefaultTimeFormat
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: !cfg.NoTimestamp,
		TimeFormat:      timeFormat,
	})
	logger.SetFormatter(log.TextFormatter)
	return logger, nil
}
