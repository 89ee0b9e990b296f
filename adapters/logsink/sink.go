// Package logsink provides a config sink that only logs what would be written.
package logsink

import (
	"context"
	"time"

	"traefikkv/domain"
	"traefikkv/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Sink implements interfaces.ConfigSink by logging every entry at info level.
type Sink struct {
	logger log.Logger
}

func NewSink(logger log.Logger) *Sink {
	logger = service.NilPanic(logger, "adapters.logsink.sink.go: logger is required")
	return &Sink{
		logger: log.WithPrefix(logger, "component", "LogSink"),
	}
}

// WriteEntries never fails.
func (s *Sink) WriteEntries(_ context.Context, entries []domain.ConfigEntry, ttl time.Duration) error {
	for _, e := range entries {
		level.Info(s.logger).Log("msg", "Entry", "key", e.Key, "value", e.Value, "ttl", ttl)
	}
	return nil
}

func (s *Sink) Ping(context.Context) error {
	return nil
}
