package ui

import (
	"io"

	"github.com/pterm/pterm"
)

// NewLogger builds the structured logger for the given level ("debug", "info",
// "warn", "error") and format ("text" or "json").
func NewLogger(w io.Writer, level, format string) *pterm.Logger {
	logger := pterm.DefaultLogger.
		WithWriter(w).
		WithLevel(logLevel(level)).
		WithTime(true)

	if format == "json" {
		return logger.WithFormatter(pterm.LogFormatterJSON)
	}
	return logger.WithFormatter(pterm.LogFormatterColorful)
}

func logLevel(level string) pterm.LogLevel {
	switch level {
	case "debug":
		return pterm.LogLevelDebug
	case "warn":
		return pterm.LogLevelWarn
	case "error":
		return pterm.LogLevelError
	default:
		return pterm.LogLevelInfo
	}
}
