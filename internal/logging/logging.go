// Package logging builds the JSON line loggers shared by the server, the
// request log middleware and the conversion service.
package logging

import (
	"io"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// New returns a JSON logger that writes one object per line to w and stamps
// every entry with a "ts" field rendered in loc.
func New(w io.Writer, loc *time.Location) log.Logger {
	if loc == nil {
		loc = time.UTC
	}
	logger := log.NewJSONLogger(log.NewSyncWriter(w))
	return log.With(logger, "ts", log.TimestampFormat(func() time.Time {
		return time.Now().In(loc)
	}, time.RFC3339Nano))
}

// WithLevel filters logger by the named minimum level ("debug", "info",
// "warn", "error"). Unknown names fall back to info.
func WithLevel(logger log.Logger, name string) log.Logger {
	return level.NewFilter(logger, level.Allow(level.ParseDefault(name, level.InfoValue())))
}

// Component tags every entry of logger with the owning component.
func Component(logger log.Logger, name string) log.Logger {
	return log.With(logger, "component", name)
}
