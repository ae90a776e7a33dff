package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

type Logger = zerolog.Logger

// New returns a human readable logger writing to w at the given level.
func New(w io.Writer, level string, color bool) (Logger, error) {
	zerologLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}
	out := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    !color,
		TimeFormat: time.DateTime,
	}
	return zerolog.New(out).
		Level(zerologLevel).
		With().
		Timestamp().
		Logger(), nil
}

func Nop() Logger {
	return zerolog.Nop()
}
