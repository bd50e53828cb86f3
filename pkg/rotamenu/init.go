// Package rotamenu is a menu engine for small monochrome displays driven by a
// single rotary encoder with a push button, as found on 3D printer and CNC
// controller front panels.
//
// A menu is a list of pages. Each page is a linked list of items (text,
// buttons, numeric fields, file browsers and images) allocated from fixed
// pools, so building and discarding pages never grows memory. Turning the
// encoder moves focus between items, pressing selects; selecting produces a
// command string that is routed to another page or handed to the host.
package rotamenu

import (
	"log/slog"
	"os"

	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/constants"
	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/internal"
)

// Options configures logging for the engine.
type Options struct {
	LogPath  string // Full path for a log file, in addition to stderr
	LogLevel string // Application log level: "debug", "info", "warn" or "error"
}

// Init sets up logging. Call it before building any menu. With
// ROTAMENU_LOG_LEVEL=debug or ENVIRONMENT=DEV the engine's own logger
// reports every dispatched command and page change.
func Init(options Options) {
	if options.LogPath != "" {
		internal.SetLogPath(options.LogPath)
	}

	level := options.LogLevel
	if v := os.Getenv(constants.LogLevelEnvVar); v != "" {
		level = v
	}
	if level != "" {
		internal.SetRawLogLevel(level)
	}

	if constants.IsDevMode() || internal.ParseLevel(level) == slog.LevelDebug {
		internal.SetInternalLogLevel(slog.LevelDebug)
	}
}

// Close flushes and closes the log file, if any.
func Close() {
	internal.CloseLogger()
}

// SetLogPath sets the full path for the log file, including filename.
// Creates all necessary parent directories.
// Call before Init() to take effect during initialization.
func SetLogPath(path string) {
	internal.SetLogPath(path)
}

// GetLogger returns the application logger for structured logging.
func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

// SetLogLevel sets the minimum log level for the application logger.
func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

// SetRawLogLevel parses and sets the log level from a string (e.g., "debug", "info", "error").
func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}
