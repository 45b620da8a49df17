// Package logging builds the zerolog logger handed to the commands.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds a console logger on w tagged with app. An unknown level falls
// back to info.
func New(w io.Writer, app, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	output := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: w != os.Stderr}
	return zerolog.New(output).Level(lvl).With().Timestamp().Str("app", app).Logger()
}
