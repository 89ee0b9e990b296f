package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"traefikkv/domain"
	"traefikkv/interfaces/mock"

	"github.com/go-kit/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTTL = 60 * time.Second

func newTestRefresher(source *mock.ContainerSourceMock, sink *mock.ConfigSinkMock, interval time.Duration) (*Refresher, *Metrics) {
	metrics := NewMetrics(prometheus.NewRegistry())
	tr := NewTransformer(networkScoped, domain.DefaultLabelScheme())
	return NewRefresher(source, sink, tr, metrics, testTTL, interval, log.NewNopLogger()), metrics
}

func TestNewRefresher_Panics(t *testing.T) {
	source := &mock.ContainerSourceMock{}
	sink := &mock.ConfigSinkMock{}
	tr := NewTransformer(networkScoped, domain.DefaultLabelScheme())
	metrics := NewMetrics(prometheus.NewRegistry())
	logger := log.NewNopLogger()

	t.Run("source_nil", func(t *testing.T) {
		assert.PanicsWithValue(t, "service.refresher.go: source is required", func() {
			NewRefresher(nil, sink, tr, metrics, testTTL, time.Second, logger)
		})
	})
	t.Run("sink_nil", func(t *testing.T) {
		assert.PanicsWithValue(t, "service.refresher.go: sink is required", func() {
			NewRefresher(source, nil, tr, metrics, testTTL, time.Second, logger)
		})
	})
	t.Run("transformer_nil", func(t *testing.T) {
		assert.PanicsWithValue(t, "service.refresher.go: transformer is required", func() {
			NewRefresher(source, sink, nil, metrics, testTTL, time.Second, logger)
		})
	})
	t.Run("logger_nil", func(t *testing.T) {
		assert.PanicsWithValue(t, "service.refresher.go: logger is required", func() {
			NewRefresher(source, sink, tr, metrics, testTTL, time.Second, nil)
		})
	})
	t.Run("interval_not_shorter_than_ttl", func(t *testing.T) {
		assert.PanicsWithValue(t, "service.refresher.go: interval must be positive and shorter than ttl", func() {
			NewRefresher(source, sink, tr, metrics, testTTL, testTTL, logger)
		})
	})
}

func TestRefresher_RunCycle(t *testing.T) {
	ctx := context.Background()
	web := webContainer(map[string]string{
		"traefik.http.routers.web.rule":                      "Host(`web.local`)",
		"traefik.http.services.web.loadbalancer.server.port": "8080",
	})
	broken := webContainer(map[string]string{
		"traefik.http.services.web.loadbalancer.server.port": "8080",
		"com.docker.compose.container-number":                "-1",
	})
	broken.Name = "app-web-2"

	t.Run("writes_entries_with_ttl", func(t *testing.T) {
		source := &mock.ContainerSourceMock{
			ListContainersFunc: func(ctx context.Context) ([]domain.ContainerRecord, error) {
				return []domain.ContainerRecord{web}, nil
			},
		}
		sink := &mock.ConfigSinkMock{}
		r, metrics := newTestRefresher(source, sink, time.Second)

		batch, err := r.RunCycle(ctx)
		require.NoError(t, err)
		require.Len(t, batch.Configs, 1)

		calls := sink.WriteEntriesCalls()
		require.Len(t, calls, 1)
		assert.Equal(t, testTTL, calls[0].TTL)
		assert.Equal(t, []domain.ConfigEntry{
			{Key: "http/routers/web/rule", Value: "Host(`web.local`)"},
			{Key: "http/services/web/loadBalancer/servers/0/url", Value: "http://10.0.0.5:8080"},
			{Key: "http/routers/web/service", Value: "web"},
		}, calls[0].Entries)
		_, hasDeadline := calls[0].Ctx.Deadline()
		assert.True(t, hasDeadline)

		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.cycles.WithLabelValues(cycleResultOK)))
		assert.Equal(t, 3.0, testutil.ToFloat64(metrics.entriesWritten))
		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.eligibleContainers))
	})

	t.Run("skips_malformed_container_and_writes_others", func(t *testing.T) {
		source := &mock.ContainerSourceMock{
			ListContainersFunc: func(ctx context.Context) ([]domain.ContainerRecord, error) {
				return []domain.ContainerRecord{broken, web}, nil
			},
		}
		sink := &mock.ConfigSinkMock{}
		r, metrics := newTestRefresher(source, sink, time.Second)

		batch, err := r.RunCycle(ctx)
		require.NoError(t, err)
		require.Len(t, batch.Skipped, 1)
		assert.Equal(t, "app-web-2", batch.Skipped[0].ContainerName)

		calls := sink.WriteEntriesCalls()
		require.Len(t, calls, 1)
		assert.Len(t, calls[0].Entries, 3)
		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.containersSkipped.WithLabelValues(ErrMalformedLabel)))
	})

	t.Run("nothing_to_write_skips_sink", func(t *testing.T) {
		source := &mock.ContainerSourceMock{
			ListContainersFunc: func(ctx context.Context) ([]domain.ContainerRecord, error) {
				return []domain.ContainerRecord{}, nil
			},
		}
		sink := &mock.ConfigSinkMock{}
		r, metrics := newTestRefresher(source, sink, time.Second)

		_, err := r.RunCycle(ctx)
		require.NoError(t, err)
		assert.Empty(t, sink.WriteEntriesCalls())
		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.cycles.WithLabelValues(cycleResultOK)))
	})

	t.Run("source_error_aborts_cycle", func(t *testing.T) {
		source := &mock.ContainerSourceMock{
			ListContainersFunc: func(ctx context.Context) ([]domain.ContainerRecord, error) {
				return nil, NewTransportError("docker list containers failed", errors.New("connection refused"))
			},
		}
		sink := &mock.ConfigSinkMock{}
		r, metrics := newTestRefresher(source, sink, time.Second)

		batch, err := r.RunCycle(ctx)
		require.Error(t, err)
		assert.True(t, IsTransportError(err))
		assert.Empty(t, batch.Configs)
		assert.Empty(t, sink.WriteEntriesCalls())
		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.cycles.WithLabelValues(cycleResultSourceError)))
	})

	t.Run("sink_error_aborts_cycle", func(t *testing.T) {
		source := &mock.ContainerSourceMock{
			ListContainersFunc: func(ctx context.Context) ([]domain.ContainerRecord, error) {
				return []domain.ContainerRecord{web}, nil
			},
		}
		sink := &mock.ConfigSinkMock{
			WriteEntriesFunc: func(ctx context.Context, entries []domain.ConfigEntry, ttl time.Duration) error {
				return NewTransportError("redis pipeline failed", errors.New("i/o timeout"))
			},
		}
		r, metrics := newTestRefresher(source, sink, time.Second)

		_, err := r.RunCycle(ctx)
		require.Error(t, err)
		assert.True(t, IsTransportError(err))
		assert.Contains(t, err.Error(), "failed to write 3 entries")
		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.cycles.WithLabelValues(cycleResultSinkError)))
		assert.Equal(t, 0.0, testutil.ToFloat64(metrics.entriesWritten))
	})
}

func TestRefresher_Run(t *testing.T) {
	web := webContainer(map[string]string{
		"traefik.http.services.web.loadbalancer.server.port": "8080",
	})

	t.Run("keeps_refreshing_after_failures_until_cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var listed atomic.Int32
		source := &mock.ContainerSourceMock{
			ListContainersFunc: func(ctx context.Context) ([]domain.ContainerRecord, error) {
				n := listed.Add(1)
				if n == 1 {
					return nil, NewTransportError("docker list containers failed", errors.New("EOF"))
				}
				if n == 3 {
					cancel()
				}
				return []domain.ContainerRecord{web}, nil
			},
		}
		sink := &mock.ConfigSinkMock{}
		r, metrics := newTestRefresher(source, sink, 5*time.Millisecond)

		err := r.Run(ctx)
		require.ErrorIs(t, err, context.Canceled)
		assert.GreaterOrEqual(t, listed.Load(), int32(3))
		assert.GreaterOrEqual(t, len(sink.WriteEntriesCalls()), 2)
		for _, call := range sink.WriteEntriesCalls() {
			assert.Equal(t, testTTL, call.TTL)
		}
		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.cycles.WithLabelValues(cycleResultSourceError)))
	})

	t.Run("already_cancelled_runs_one_cycle", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		source := &mock.ContainerSourceMock{
			ListContainersFunc: func(ctx context.Context) ([]domain.ContainerRecord, error) {
				return nil, ctx.Err()
			},
		}
		r, _ := newTestRefresher(source, &mock.ConfigSinkMock{}, 30*time.Second)

		err := r.Run(ctx)
		require.ErrorIs(t, err, context.Canceled)
		assert.Len(t, source.ListContainersCalls(), 1)
	})
}
