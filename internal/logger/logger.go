// Package logger provides structured diagnostics using zerolog.
//
// Diagnostics go to stderr so they never mix with command output or the
// interactive menu on stdout. The rejected-line error log is a separate,
// plain-text file handled by the eventlog package.
package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var globalLogger zerolog.Logger

// Config selects level, encoding and destination.
type Config struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	Output string `mapstructure:"output" yaml:"output"`
}

func init() {
	globalLogger = zerolog.New(os.Stderr).Level(zerolog.WarnLevel).With().Timestamp().Logger()
	zerolog.TimeFieldFormat = time.RFC3339
}

// Init replaces the global logger.
func Init(config Config) error {
	var output io.Writer = os.Stderr
	if config.Output == "stdout" {
		output = os.Stdout
	}

	return InitWriter(config, output)
}

// InitWriter is Init with an explicit destination.
func InitWriter(config Config, output io.Writer) error {
	level := zerolog.WarnLevel
	if config.Level != "" {
		var err error
		level, err = zerolog.ParseLevel(config.Level)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", config.Level, err)
		}
	}

	switch config.Format {
	case "", "text":
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: time.TimeOnly, NoColor: true}
	case "json":
	default:
		return fmt.Errorf("invalid log format %q: use text or json", config.Format)
	}

	globalLogger = zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()

	log.Logger = globalLogger

	return nil
}

// GetLogger returns the global logger.
func GetLogger() zerolog.Logger {
	return globalLogger
}

// WithComponent returns a child logger tagged with the component name.
func WithComponent(component string) zerolog.Logger {
	return globalLogger.With().Str("component", component).Logger()
}
