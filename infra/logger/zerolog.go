package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	corelogger "github.com/openlot/parkd/core/logger"
)

// zerologAdapter maps the core logging contract onto a zerolog.Logger.
type zerologAdapter struct {
	z zerolog.Logger
}

// NewZerologLogger builds a logger tagged with the service and component
// names. APP_ENV=dev selects a human-readable console writer; any other
// value emits JSON for log shippers. PARKD_LOG_LEVEL overrides the default
// info level.
func NewZerologLogger(component string) corelogger.Logger {
	base := zerolog.New(os.Stdout)
	if strings.EqualFold(os.Getenv("APP_ENV"), "dev") {
		base = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}
	z := base.Level(levelFromEnv()).With().
		Timestamp().
		Str("service", "parkd").
		Str("component", component).
		Logger()
	return &zerologAdapter{z: z}
}

func levelFromEnv() zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(os.Getenv("PARKD_LOG_LEVEL")))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

func (l *zerologAdapter) Debugf(format string, args ...any) {
	l.z.Debug().Msgf(format, args...)
}

func (l *zerologAdapter) Debugw(msg string, fields map[string]any) {
	l.z.Debug().Fields(fields).Msg(msg)
}

func (l *zerologAdapter) Infof(format string, args ...any) {
	l.z.Info().Msgf(format, args...)
}

func (l *zerologAdapter) Warnf(format string, args ...any) {
	l.z.Warn().Msgf(format, args...)
}

func (l *zerologAdapter) Errorf(format string, args ...any) {
	l.z.Error().Msgf(format, args...)
}
