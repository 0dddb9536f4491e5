package cli

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// newLogger builds the stderr logger. Warnings are always shown; --verbose
// lowers the level to debug; an explicit level wins over both.
func newLogger(w io.Writer, level string, verbose bool) (zerolog.Logger, error) {
	lvl := zerolog.WarnLevel
	if verbose {
		lvl = zerolog.DebugLevel
	}
	if level != "" {
		parsed, err := zerolog.ParseLevel(level)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
		}
		lvl = parsed
	}

	out := zerolog.ConsoleWriter{
		Out:          w,
		NoColor:      true,
		PartsExclude: []string{zerolog.TimestampFieldName},
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}
