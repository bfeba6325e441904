// Package logger configures the shared logrus instance used across the
// server. Components obtain named child entries via WithName.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var defaultLogger *logrus.Logger

func init() {
	defaultLogger = logrus.New()

	// The MCP stdio transport owns stdout; everything we log goes to stderr.
	defaultLogger.SetOutput(os.Stderr)
	defaultLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		if os.Getenv("GO_ENV") == "test" {
			level = "silent"
		} else {
			level = "info"
		}
	}
	if err := ConfigureFromString(level); err != nil {
		defaultLogger.SetLevel(logrus.InfoLevel)
	}
}

// GetLogger returns the shared logger instance.
func GetLogger() *logrus.Logger {
	return defaultLogger
}

// WithName creates a child logger carrying a component name field.
func WithName(name string) *logrus.Entry {
	return defaultLogger.WithField("name", name)
}

// SetLevel sets the logging level.
func SetLevel(level logrus.Level) {
	defaultLogger.SetLevel(level)
}

// ConfigureFromString applies a log level from configuration. The value
// "silent" discards all output entirely.
func ConfigureFromString(levelStr string) error {
	if levelStr == "silent" {
		defaultLogger.SetOutput(io.Discard)
		return nil
	}
	level, err := logrus.ParseLevel(strings.ToLower(levelStr))
	if err != nil {
		return err
	}
	defaultLogger.SetLevel(level)
	return nil
}
