package myredis

import (
	"context"
	"fmt"
	"time"

	"traefikkv/domain"
	"traefikkv/service"

	"github.com/go-redis/redis/v8"
)

// Sink implements interfaces.ConfigSink on Redis. Keys are stored as "<rootKey>/<entry key>",
// the layout Traefik's Redis provider reads.
type Sink struct {
	client  redis.UniversalClient
	rootKey string
}

// NewSink creates a Redis sink. Panics on nil client or empty rootKey.
func NewSink(client redis.UniversalClient, rootKey string) *Sink {
	return &Sink{
		client:  service.NilPanic(client, "adapters.myredis.sink.go: redis client is required"),
		rootKey: service.StrPanic(rootKey, "adapters.myredis.sink.go: root key is required"),
	}
}

// WriteEntries sends one SET with expiry per entry, all in a single pipeline.
// The TTL is truncated to whole seconds, with a minimum of one second.
func (s *Sink) WriteEntries(ctx context.Context, entries []domain.ConfigEntry, ttl time.Duration) error {
	expiration := ttl.Truncate(time.Second)
	if expiration < time.Second {
		expiration = time.Second
	}

	_, err := s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, e := range entries {
			pipe.Set(ctx, s.generateKey(e.Key), e.Value, expiration)
		}
		return nil
	})
	if err != nil {
		return service.NewTransportError("Redis write entries error", fmt.Errorf("can't write %d entries to redis, err: %w", len(entries), err))
	}

	return nil
}

// Ping checks that Redis answers.
func (s *Sink) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return service.NewTransportError("Redis ping error", err)
	}
	return nil
}

func (s *Sink) generateKey(key string) string {
	return s.rootKey + "/" + key
}
