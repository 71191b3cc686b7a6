package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// setupLogger creates a logger with the specified configuration. The
// returned function closes the log file, if one was opened.
//
// When console is false and no log file is given, logs are discarded; the
// TUI owns the terminal.
func setupLogger(logFile, logLevel string, console bool) (zerolog.Logger, func()) {
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil || logLevel == "" {
		level = zerolog.InfoLevel
	}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		} else {
			logger := zerolog.New(f).Level(level).With().Timestamp().Logger()
			return logger, func() { _ = f.Close() }
		}
	}

	if !console {
		return zerolog.Nop(), func() {}
	}

	var output io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	logger := zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()

	return logger, func() {}
}

// resolveLevel picks the flag, then the config value, then the command
// default.
func resolveLevel(flag, configured, fallback string) string {
	switch {
	case flag != "":
		return flag
	case configured != "":
		return configured
	default:
		return fallback
	}
}
