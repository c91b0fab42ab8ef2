package logging

import (
	"io"
	"os"

	"TickerScope/internal/config"

	"github.com/phuslu/log"
)

// Setup configures the global logger from cfg. Output goes to stderr so
// command output on stdout stays clean.
func Setup(cfg config.LoggingConfig) {
	log.DefaultLogger = New(cfg, os.Stderr)
}

// New builds a logger writing to w.
func New(cfg config.LoggingConfig, w io.Writer) log.Logger {
	logger := log.Logger{
		Level:      log.ParseLevel(cfg.Level),
		TimeFormat: "15:04:05",
	}
	switch cfg.Format {
	case "json":
		logger.TimeFormat = ""
		logger.Writer = &log.IOWriter{Writer: w}
	default:
		logger.Writer = &log.ConsoleWriter{
			Writer:         w,
			ColorOutput:    false,
			EndWithMessage: true,
		}
	}
	return logger
}
