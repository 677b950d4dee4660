// Package logger configures the global zerolog logger from command line options.
package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is a go-flags option group.
type Logger struct {
	Level  string `long:"log-level"  env:"ROADTRACE_LOG_LEVEL"  description:"Log level" choice:"trace" choice:"debug" choice:"info" choice:"warn" choice:"error" default:"info"`
	Format string `long:"log-format" env:"ROADTRACE_LOG_FORMAT" description:"Log output format" choice:"console" choice:"json" default:"console"`
	File   string `long:"log-file"   env:"ROADTRACE_LOG_FILE"   description:"Write logs to this file instead of stderr"`
}

// Setup installs the global logger. The returned closer releases the log
// file, if any.
func (l *Logger) Setup() (io.Closer, error) {
	level, err := zerolog.ParseLevel(l.Level)
	if err != nil || l.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	var out io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}
	if l.File != "" {
		f, err := os.OpenFile(l.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		out, closer = f, f
	}
	log.Logger = zerolog.New(l.writer(out)).With().Timestamp().Logger()
	return closer, nil
}

func (l *Logger) writer(out io.Writer) io.Writer {
	if l.Format == "json" {
		return out
	}
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.TimeOnly,
		NoColor:    out != io.Writer(os.Stderr),
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
