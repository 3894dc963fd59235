package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
	slogzerolog "github.com/samber/slog-zerolog/v2"
)

// Logger is the logging interface used across the application.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	WithComponent(name string) Logger
}

type Opts struct {
	Env       string
	SentryUrl string
}

type Impl struct {
	slog *slog.Logger
}

var _ Logger = (*Impl)(nil)

func New(opts Opts) *Impl {
	level := zerolog.InfoLevel
	if opts.Env == "development" {
		level = zerolog.DebugLevel
	}

	zl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Logger()
	if opts.Env != "development" {
		zl = zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	}

	handlers := []slog.Handler{
		slogzerolog.Option{Level: slog.LevelDebug, Logger: &zl}.NewZerologHandler(),
	}

	if opts.SentryUrl != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         opts.SentryUrl,
			Environment: opts.Env,
		}); err != nil {
			zl.Warn().Err(err).Msg("Failed to initialize sentry, continuing without it")
		} else {
			handlers = append(handlers, slogsentry.Option{Level: slog.LevelError}.NewSentryHandler())
		}
	}

	return &Impl{slog: slog.New(slogmulti.Fanout(handlers...))}
}

// NewNop returns a logger that discards everything, for tests.
func NewNop() *Impl {
	return &Impl{slog: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func (l *Impl) Debug(msg string, args ...any) { l.slog.Debug(msg, args...) }
func (l *Impl) Info(msg string, args ...any)  { l.slog.Info(msg, args...) }
func (l *Impl) Warn(msg string, args ...any)  { l.slog.Warn(msg, args...) }
func (l *Impl) Error(msg string, args ...any) { l.slog.Error(msg, args...) }

func (l *Impl) WithComponent(name string) Logger {
	return &Impl{slog: l.slog.With("component", name)}
}

// Printf adapts the logger to fx's printer interface.
func (l *Impl) Printf(format string, args ...any) {
	l.slog.Debug(fmt.Sprintf(format, args...))
}
