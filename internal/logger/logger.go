// Package logger wires zerolog for the whole process. Packages derive
// component-scoped children from the root logger returned by Setup, e.g.
// log.With().Str("component", "scoring_service").Logger().
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// serviceName tags every line so aggregated logs from several services
// stay attributable.
const serviceName = "prepdesk-backend"

// Setup builds the root logger and sets the global level. format selects
// between machine-readable JSON (the default) and a human console writer
// ("pretty"). An unknown level falls back to info instead of failing
// startup.
func Setup(level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	var out io.Writer = os.Stdout
	if format == "pretty" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).With().
		Timestamp().
		Str("service", serviceName).
		Logger()
}
