// Package logging configures the zerolog logger used across the client.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogLevel represents the logging level.
type LogLevel string

const (
	// LevelTrace logs everything, including per-page pagination detail.
	LevelTrace LogLevel = "trace"

	// LevelDebug logs debug messages and above.
	LevelDebug LogLevel = "debug"

	// LevelInfo logs info messages and above.
	LevelInfo LogLevel = "info"

	// LevelWarn logs warning messages and above.
	LevelWarn LogLevel = "warn"

	// LevelError logs error messages only.
	LevelError LogLevel = "error"

	// LevelDisabled silences the client entirely.
	LevelDisabled LogLevel = "disabled"
)

// Config holds logger configuration.
type Config struct {
	// Level is the minimum log level to output.
	Level LogLevel

	// Pretty enables human-readable console output (default: false for JSON).
	Pretty bool

	// Output is the writer to output logs to (default: os.Stderr).
	Output io.Writer
}

// DefaultConfig returns a default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Pretty: false,
		Output: os.Stderr,
	}
}

// Setup configures the global zerolog logger. Loggers created by the client
// packages derive from it, so call Setup before client.New.
func Setup(cfg Config) zerolog.Logger {
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	logger := zerolog.New(out).With().Timestamp().Logger()
	log.Logger = logger

	return logger
}

// parseLevel converts LogLevel to zerolog.Level.
func parseLevel(level LogLevel) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(string(level))) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off", "none":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// NewLogger creates a new logger with the given component name, e.g.
// "twitter-client".
func NewLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// Log Level Guidelines:
//
// Debug: Detailed information for debugging
//   - Request flow (endpoint, method, signing mode)
//   - Pagination progress per page
//   - Rate limit header updates (window not exhausted)
//
// Info: Normal operation events
//   - Pagination runs completed (ids, pages, stop reason)
//   - Access token obtained
//
// Warn: Warning conditions that don't prevent operation
//   - API errors (non-accepted status)
//   - Rate limit window exhausted
//   - Unparseable created_at strings
//   - Rate limit headers that could not be recorded
//
// Error: Error conditions requiring attention
//   - Transport failures (connection, timeout, TLS, malformed URL)
//   - Invalid arguments rejected before a request
//
// Context Fields:
//   - component: Logger component (twitter-client, ratelimit-tracker)
//   - endpoint: API resource, e.g. /friends/ids
//   - status: HTTP status code
//   - code: Twitter application error code
//   - listing: Paginated listing name, e.g. followers/ids
//   - cursor: Pagination cursor
//   - resource: Rate limit resource
//   - remaining: Requests remaining in the rate limit window
