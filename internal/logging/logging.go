// Package logging configures the logrus logger shared by the binaries.
package logging

import (
	"io"

	log "github.com/sirupsen/logrus"
)

// Configure applies level and format ("text" or "json") to logger.
// An unknown level falls back to info.
func Configure(logger *log.Logger, level, format string, out io.Writer) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	logger.SetLevel(lvl)

	if format == "json" {
		logger.SetFormatter(&log.JSONFormatter{})
	} else {
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	if out != nil {
		logger.SetOutput(out)
	}

	if err != nil {
		logger.WithField("level", level).Warn("unknown log level, using info")
	}
}

// Discard returns a logger that writes nothing (for testing).
func Discard() *log.Logger {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return logger
}
