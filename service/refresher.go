package service

import (
	"context"
	"fmt"
	"time"

	"traefikkv/domain"
	"traefikkv/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Refresher periodically lists containers, transforms them and writes the entries to the sink.
// Every cycle re-derives and re-writes the full entry set; expiry in the sink removes what is
// no longer produced.
type Refresher struct {
	source      interfaces.ContainerSource
	sink        interfaces.ConfigSink
	transformer *Transformer
	metrics     *Metrics
	ttl         time.Duration
	interval    time.Duration
	logger      log.Logger
}

// NewRefresher creates a Refresher writing entries with ttl every interval.
// Panics on nil dependencies or when interval is not shorter than ttl, since entries would
// expire between writes.
func NewRefresher(
	source interfaces.ContainerSource,
	sink interfaces.ConfigSink,
	transformer *Transformer,
	metrics *Metrics,
	ttl time.Duration,
	interval time.Duration,
	logger log.Logger,
) *Refresher {
	if interval <= 0 || interval >= ttl {
		panic("service.refresher.go: interval must be positive and shorter than ttl")
	}
	logger = NilPanic(logger, "service.refresher.go: logger is required")
	return &Refresher{
		source:      NilPanic(source, "service.refresher.go: source is required"),
		sink:        NilPanic(sink, "service.refresher.go: sink is required"),
		transformer: NilPanic(transformer, "service.refresher.go: transformer is required"),
		metrics:     NilPanic(metrics, "service.refresher.go: metrics are required"),
		ttl:         ttl,
		interval:    interval,
		logger:      log.WithPrefix(logger, "component", "Refresher"),
	}
}

// Run performs a cycle immediately and then one per interval until ctx is done.
// Failed cycles are logged and retried on the next tick. Returns ctx.Err().
func (r *Refresher) Run(ctx context.Context) error {
	level.Info(r.logger).Log("msg", "Starting refresh loop", "interval", r.interval, "ttl", r.ttl)

	r.refresh(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			level.Info(r.logger).Log("msg", "Refresh loop stopped")
			return ctx.Err()
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

func (r *Refresher) refresh(ctx context.Context) {
	if _, err := r.RunCycle(ctx); err != nil {
		level.Warn(r.logger).Log("msg", "Refresh cycle failed, retrying on next tick", "err", err)
	}
}

// RunCycle performs one cycle: list, transform, write. The I/O of a cycle is bounded by the
// refresh interval.
//
// Returns:
// 1) (batch, nil) when the entries were written; skipped containers are in batch.Skipped;
// 2) (empty batch, transport_error) when listing containers or writing entries failed.
func (r *Refresher) RunCycle(ctx context.Context) (domain.Batch, error) {
	ctx, cancel := context.WithTimeout(ctx, r.interval)
	defer cancel()

	containers, err := r.source.ListContainers(ctx)
	if err != nil {
		r.metrics.cycleFailed(cycleResultSourceError)
		return domain.Batch{}, fmt.Errorf("refresh cycle failed to list containers, err: %w", err)
	}

	batch := r.transformer.FlattenAll(containers)
	for _, skipped := range batch.Skipped {
		r.metrics.containerSkipped(ToMyErrorCode(skipped.Err))
		level.Warn(r.logger).Log(
			"msg", "Skipping container",
			"container_id", skipped.ContainerID,
			"container", skipped.ContainerName,
			"err", skipped.Err,
		)
	}

	entries := batch.Entries()
	if len(entries) > 0 {
		if err := r.sink.WriteEntries(ctx, entries, r.ttl); err != nil {
			r.metrics.cycleFailed(cycleResultSinkError)
			return domain.Batch{}, fmt.Errorf("refresh cycle failed to write %d entries, err: %w", len(entries), err)
		}
	}
	r.metrics.cycleSucceeded(len(batch.Configs), len(entries))

	level.Debug(r.logger).Log(
		"msg", "Refresh cycle completed",
		"containers", len(containers),
		"configured", len(batch.Configs),
		"skipped", len(batch.Skipped),
		"entries", len(entries),
	)
	return batch, nil
}
