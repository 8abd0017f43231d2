package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

var log zerolog.Logger

// Init configures the global logger. Console output is used when LOG_PRETTY
// is set, JSON otherwise.
func Init() {
	zerolog.TimeFieldFormat = time.RFC3339

	level := zerolog.InfoLevel
	if lvl, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil && lvl != zerolog.NoLevel {
		level = lvl
	}

	if os.Getenv("LOG_PRETTY") != "" {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}).Level(level).With().Timestamp().Logger()
		return
	}
	log = zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
}

// Info logs a message with optional alternating key/value fields.
func Info(msg string, kv ...interface{}) {
	withFields(log.Info(), kv).Msg(msg)
}

func Infof(format string, v ...interface{}) {
	log.Info().Msgf(format, v...)
}

func Error(msg string, kv ...interface{}) {
	withFields(log.Error(), kv).Msg(msg)
}

func Errorf(format string, v ...interface{}) {
	log.Error().Msgf(format, v...)
}

func Debug(msg string, kv ...interface{}) {
	withFields(log.Debug(), kv).Msg(msg)
}

func Debugf(format string, v ...interface{}) {
	log.Debug().Msgf(format, v...)
}

func Warn(msg string, kv ...interface{}) {
	withFields(log.Warn(), kv).Msg(msg)
}

func Fatal(msg string) {
	log.Fatal().Msg(msg)
}

func Fatalf(format string, v ...interface{}) {
	log.Fatal().Msgf(format, v...)
}

func withFields(e *zerolog.Event, kv []interface{}) *zerolog.Event {
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		e = e.Interface(key, kv[i+1])
	}
	return e
}
