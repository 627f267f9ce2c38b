// Package config implements layered configuration
// (defaults, global/repo TOML files, environment variables, CLI flags) and
// the ambient logging setup every other package draws its logger from.
package config

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
)

// SetupLogging configures the global slog default logger. All log output
// goes to os.Stderr, keeping stdout reserved for engine output. Safe to
// call more than once.
func SetupLogging(level slog.Level, format string) {
	SetupLoggingWithWriter(level, format, os.Stderr)
}

// SetupLoggingWithWriter is SetupLogging with an explicit writer, for tests.
func SetupLoggingWithWriter(level slog.Level, format string, w io.Writer) {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	slog.SetDefault(slog.New(handler))
}

// ResolveLogLevel determines the slog.Level from CLI flags and environment,
// highest priority first: SJQ_DEBUG=1, then --verbose, then --quiet,
// default info.
func ResolveLogLevel(verbose, quiet bool) slog.Level {
	if os.Getenv("SJQ_DEBUG") == "1" {
		return slog.LevelDebug
	}
	if verbose {
		return slog.LevelDebug
	}
	if quiet {
		return slog.LevelError
	}
	return slog.LevelInfo
}

// ResolveLogFormat reads SJQ_LOG_FORMAT; anything but "json"
// (case-insensitive) yields text.
func ResolveLogFormat() string {
	if strings.EqualFold(os.Getenv("SJQ_LOG_FORMAT"), "json") {
		return "json"
	}
	return "text"
}

// NewLogger returns a logger scoped to component, derived from the current
// global default.
func NewLogger(component string) *slog.Logger {
	return slog.Default().With("component", component)
}

// NewRunID mints a correlation ID attached to a CLI invocation's or MCP
// tool call's root logger, so concurrent runs can be told apart in shared
// log output.
func NewRunID() string {
	return uuid.NewString()
}
