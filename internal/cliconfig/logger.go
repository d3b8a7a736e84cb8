package cliconfig

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger builds the CLI's zerolog logger from config.
func Logger(cfg Config) zerolog.Logger {
	var out zerolog.Logger
	if cfg.Pretty {
		w := zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}
		out = zerolog.New(w)
	} else {
		out = zerolog.New(os.Stderr)
	}
	return out.Level(ParseLevel(cfg.LogLevel)).With().Timestamp().Logger()
}

// ParseLevel maps a config log level to zerolog, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
