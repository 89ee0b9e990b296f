package myredis

import (
	"context"
	"testing"
	"time"

	"traefikkv/domain"
	"traefikkv/service"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRedisURL = "redis://localhost:6379"
const testRootKey = "traefikkv-test"

// setupTestRedis connects to a local Redis and skips the test when none is running.
func setupTestRedis(t *testing.T) (redis.UniversalClient, func()) {
	t.Helper()
	client, err := NewRedisUniversalClient(testRedisURL, func(o *redis.Options) {
		o.DialTimeout = 500 * time.Millisecond
		o.MaxRetries = -1
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("redis is not available at %s: %v", testRedisURL, err)
	}

	flush := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		keys, _ := client.Keys(ctx, testRootKey+"/*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
	}
	flush()

	cleanup := func() {
		flush()
		client.Close()
	}
	return client, cleanup
}

func TestNewSink_Panics(t *testing.T) {
	client, err := NewRedisUniversalClient(testRedisURL)
	require.NoError(t, err)
	defer client.Close()

	t.Run("client_nil", func(t *testing.T) {
		assert.PanicsWithValue(t, "adapters.myredis.sink.go: redis client is required", func() {
			NewSink(nil, DefaultRootKey)
		})
	})
	t.Run("root_key_empty", func(t *testing.T) {
		assert.PanicsWithValue(t, "adapters.myredis.sink.go: root key is required", func() {
			NewSink(client, "")
		})
	})
}

func TestSink_GenerateKey(t *testing.T) {
	client, err := NewRedisUniversalClient(testRedisURL)
	require.NoError(t, err)
	defer client.Close()

	sink := NewSink(client, DefaultRootKey)
	assert.Equal(t, "traefik/http/routers/web/service", sink.generateKey("http/routers/web/service"))
}

func TestSink_WriteEntries(t *testing.T) {
	ctx := context.Background()
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	sink := NewSink(client, testRootKey)
	entries := []domain.ConfigEntry{
		{Key: "http/routers/web/rule", Value: "Host(`web.local`)"},
		{Key: "http/services/web/loadBalancer/servers/0/url", Value: "http://10.0.0.5:8080"},
		{Key: "http/routers/web/service", Value: "web"},
	}

	t.Run("success", func(t *testing.T) {
		err := sink.WriteEntries(ctx, entries, 60*time.Second)
		require.NoError(t, err)

		for _, e := range entries {
			got, err := client.Get(ctx, testRootKey+"/"+e.Key).Result()
			require.NoError(t, err)
			assert.Equal(t, e.Value, got)

			ttl, err := client.TTL(ctx, testRootKey+"/"+e.Key).Result()
			require.NoError(t, err)
			assert.Greater(t, ttl, 55*time.Second)
			assert.LessOrEqual(t, ttl, 60*time.Second)
		}
	})

	t.Run("last writer wins for duplicate keys", func(t *testing.T) {
		err := sink.WriteEntries(ctx, []domain.ConfigEntry{
			{Key: "http/routers/api/service", Value: "legacy"},
			{Key: "http/routers/api/service", Value: "api"},
		}, 30*time.Second)
		require.NoError(t, err)

		got, err := client.Get(ctx, testRootKey+"/http/routers/api/service").Result()
		require.NoError(t, err)
		assert.Equal(t, "api", got)
	})

	t.Run("sub second ttl is raised to one second", func(t *testing.T) {
		err := sink.WriteEntries(ctx, []domain.ConfigEntry{{Key: "http/routers/tmp/service", Value: "tmp"}}, 200*time.Millisecond)
		require.NoError(t, err)

		ttl, err := client.TTL(ctx, testRootKey+"/http/routers/tmp/service").Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
		assert.LessOrEqual(t, ttl, time.Second)
	})

	t.Run("when Redis write fails returns transport_error", func(t *testing.T) {
		closedClient, err := NewRedisUniversalClient(testRedisURL)
		require.NoError(t, err)
		closedClient.Close()
		closedSink := NewSink(closedClient, testRootKey)

		err = closedSink.WriteEntries(ctx, entries, 60*time.Second)
		require.Error(t, err)
		assert.True(t, service.IsTransportError(err))
	})
}

func TestSink_Ping(t *testing.T) {
	ctx := context.Background()
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	require.NoError(t, NewSink(client, testRootKey).Ping(ctx))

	closedClient, err := NewRedisUniversalClient(testRedisURL)
	require.NoError(t, err)
	closedClient.Close()
	err = NewSink(closedClient, testRootKey).Ping(ctx)
	require.Error(t, err)
	assert.True(t, service.IsTransportError(err))
}
