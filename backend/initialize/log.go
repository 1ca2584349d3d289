package initialize

import (
	"io"
	"os"
	"time"

	"wine-cellar/backend/config"

	"github.com/rs/zerolog"
)

// NewLogger builds the process logger: a console writer for humans or JSON
// lines for collectors.
func NewLogger(cfg config.Log, out io.Writer) zerolog.Logger {
	if out == nil {
		out = os.Stdout
	}
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
