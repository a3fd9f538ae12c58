// Package log configures slog for plaidsheets with two extra levels: trace
// for raw requests and responses from external APIs, and fatal for errors
// that should print and exit non-zero.
package log

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

const (
	LevelTrace = slog.Level(-8)
	LevelFatal = slog.Level(16)
)

// ParseLevel parses s into a level, accepting the custom trace and fatal
// levels on top of slog's built-in ones.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "trace":
		return LevelTrace, nil
	case "fatal":
		return LevelFatal, nil
	}
	var level slog.Level
	err := level.UnmarshalText([]byte(s))
	return level, err
}

// New returns a logger writing to stderr in the given format, text or json,
// at minLevel and above. Source locations are added when addSource is set.
func New(minLevel slog.Level, addSource bool, format string) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{
		Level:     minLevel,
		AddSource: addSource,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Name the custom levels instead of printing DEBUG-4 etc.
			if a.Key == slog.LevelKey {
				switch a.Value.Any().(slog.Level) {
				case LevelTrace:
					a.Value = slog.StringValue("TRACE")
				case LevelFatal:
					a.Value = slog.StringValue("FATAL")
				}
			}
			return a
		},
	}

	switch strings.ToLower(format) {
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	case "text":
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

// Trace logs a message at trace level using the provided logger.
func Trace(logger *slog.Logger, msg string, args ...any) {
	logger.Log(context.Background(), LevelTrace, msg, args...)
}

// Fatal logs a message at fatal level and exits
func Fatal(logger *slog.Logger, msg string, args ...any) {
	logger.Log(context.Background(), LevelFatal, msg, args...)
	os.Exit(1)
}
