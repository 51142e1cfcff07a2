package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"mwdl/internal/domain"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger interface {
	Log() *zerolog.Event
	Fatal() *zerolog.Event
	Err(err error) *zerolog.Event
	Error() *zerolog.Event
	Warn() *zerolog.Event
	Info() *zerolog.Event
	Debug() *zerolog.Event
	Trace() *zerolog.Event
	With() zerolog.Context
	SetLogLevel(level string)
}

type DefaultLogger struct {
	log     zerolog.Logger
	level   zerolog.Level
	writers []io.Writer
}

func New(cfg *domain.Config) Logger {
	l := &DefaultLogger{
		writers: make([]io.Writer, 0),
		level:   zerolog.DebugLevel,
	}

	if cfg.LogPath != "" {
		l.writers = append(l.writers, &lumberjack.Logger{
			Filename:   cfg.LogPath,
			MaxSize:    cfg.LogMaxSize,
			MaxBackups: cfg.LogMaxBackups,
		})
	} else {
		l.writers = append(l.writers, zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}

	l.SetLogLevel(cfg.LogLevel)
	l.log = zerolog.New(io.MultiWriter(l.writers...)).With().Stack().Logger()

	return l
}

func (l *DefaultLogger) SetLogLevel(level string) {
	switch strings.ToLower(level) {
	case "trace":
		l.level = zerolog.TraceLevel
	case "debug":
		l.level = zerolog.DebugLevel
	case "info":
		l.level = zerolog.InfoLevel
	case "warn":
		l.level = zerolog.WarnLevel
	case "error":
		l.level = zerolog.ErrorLevel
	default:
		l.level = zerolog.DebugLevel
	}

	zerolog.SetGlobalLevel(l.level)
}

func (l *DefaultLogger) Log() *zerolog.Event {
	return l.log.Log().Timestamp()
}

func (l *DefaultLogger) Fatal() *zerolog.Event {
	return l.log.Fatal().Timestamp()
}

func (l *DefaultLogger) Err(err error) *zerolog.Event {
	return l.log.Err(err).Timestamp()
}

func (l *DefaultLogger) Error() *zerolog.Event {
	return l.log.Error().Stack().Timestamp()
}

func (l *DefaultLogger) Warn() *zerolog.Event {
	return l.log.Warn().Timestamp()
}

func (l *DefaultLogger) Info() *zerolog.Event {
	return l.log.Info().Timestamp()
}

func (l *DefaultLogger) Debug() *zerolog.Event {
	return l.log.Debug().Timestamp()
}

func (l *DefaultLogger) Trace() *zerolog.Event {
	return l.log.Trace().Timestamp()
}

func (l *DefaultLogger) With() zerolog.Context {
	return l.log.With().Timestamp()
}
