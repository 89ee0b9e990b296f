package interfaces

import (
	"context"
	"time"

	"traefikkv/domain"
)

// ConfigSink is the key/value store the proxy reads its dynamic configuration from.
//
//go:generate moq -stub -out mock/config_sink.go -pkg mock . ConfigSink
type ConfigSink interface {
	// WriteEntries sets every entry with the given TTL, overwriting existing values.
	// Returns:
	// 1) nil on success;
	// 2) transport_error when the store cannot be reached or rejects a write.
	WriteEntries(ctx context.Context, entries []domain.ConfigEntry, ttl time.Duration) error

	// Ping checks that the store is reachable.
	// Returns transport_error on failure.
	Ping(ctx context.Context) error
}
