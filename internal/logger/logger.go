// Package logger builds the zerolog loggers used across procreate.
package logger

import (
	"os"

	"github.com/rs/zerolog"
)

const DefaultLogLevel = "info"

// New creates a new logger instance
func New(opts ...Option) *zerolog.Logger {
	// Default config
	config := &Config{
		output:       os.Stderr,
		level:        zerolog.InfoLevel,
		excludeParts: []string{zerolog.TimestampFieldName},
		isDev:        true,
	}

	for _, opt := range opts {
		opt.apply(config)
	}

	logger := zerolog.New(config.output).
		Level(config.level).
		With().
		Logger()

	// Pretty logging for terminals
	if config.isDev {
		logger = logger.Output(zerolog.ConsoleWriter{
			Out:          config.output,
			NoColor:      config.noColor,
			PartsExclude: config.excludeParts,
		})
	}

	return &logger
}

// NewConsoleLogger returns the logger of the CLI: human-readable output on
// stderr, debug level when verbose.
func NewConsoleLogger(verbose bool) *zerolog.Logger {
	level := DefaultLogLevel
	if verbose {
		level = "debug"
	}
	return New(
		WithLevel(level),
		WithOutput(os.Stderr),
		WithConsoleWriter(true),
	)
}
