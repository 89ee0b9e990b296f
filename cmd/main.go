package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"traefikkv/adapters/docker"
	"traefikkv/adapters/logsink"
	"traefikkv/adapters/myredis"
	"traefikkv/handlers"
	"traefikkv/interfaces"
	"traefikkv/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/pflag"
)

const startupTimeout = 5 * time.Second

func main() {
	os.Exit(run(os.Args[1:]))
}

// run wires and runs the service, returning the process exit code.
// Deferred cleanups run before main exits.
func run(args []string) int {
	flags := pflag.NewFlagSet("traefikkv", pflag.ContinueOnError)
	once := flags.Bool("once", false, "run a single refresh cycle and exit")
	dryRun := flags.Bool("dry-run", false, "log entries instead of writing them to Redis")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	// Initialize logger
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.WithPrefix(logger, "ts", log.DefaultTimestampUTC)
	logger = log.WithPrefix(logger, "caller", log.DefaultCaller)

	level.Info(logger).Log("msg", "Starting traefikkv service")

	// Load configuration
	config, err := LoadConfig(*dryRun)
	if err != nil {
		level.Error(logger).Log("msg", "Failed to load configuration", "err", err)
		return 1
	}
	logger = level.NewFilter(logger, config.LogLevel)
	level.Info(logger).Log(
		"msg", "Configuration loaded",
		"docker_network", config.Addressing.Network,
		"host_ip", config.Addressing.HostIP,
		"redis_root_key", config.Redis.RootKey,
		"ttl", config.TTL,
		"interval", config.Interval,
		"service_port_http", config.HTTPPort,
		"once", *once,
		"dry_run", *dryRun,
	)

	var source interfaces.ContainerSource
	{
		cli, err := docker.NewClient()
		if err != nil {
			level.Error(logger).Log("msg", "Failed to create Docker client", "err", err)
			return 1
		}
		defer cli.Close()

		source = docker.NewSource(cli)
		ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
		defer cancel()
		if err := source.Ping(ctx); err != nil {
			level.Error(logger).Log("msg", "Failed to connect to Docker", "err", err)
			return 1
		}
		level.Info(logger).Log("msg", "Connected to Docker")
	}

	var sink interfaces.ConfigSink
	if *dryRun {
		sink = logsink.NewSink(logger)
	} else {
		redisClient, err := myredis.NewRedisUniversalClient(config.Redis.URL)
		if err != nil {
			level.Error(logger).Log("msg", "Failed to create Redis client", "err", err)
			return 1
		}
		defer redisClient.Close()

		sink = myredis.NewSink(redisClient, config.Redis.RootKey)
		ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
		defer cancel()
		if err := sink.Ping(ctx); err != nil {
			level.Error(logger).Log("msg", "Failed to connect to Redis", "err", err)
			return 1
		}
		level.Info(logger).Log("msg", "Connected to Redis")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := service.NewMetrics(registry)
	transformer := service.NewTransformer(config.Addressing, config.Labels)
	refresher := service.NewRefresher(source, sink, transformer, metrics, config.TTL, config.Interval, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *once {
		batch, err := refresher.RunCycle(ctx)
		if err != nil {
			level.Error(logger).Log("msg", "Refresh cycle failed", "err", err)
			return 1
		}
		level.Info(logger).Log(
			"msg", "Refresh cycle completed",
			"configured", len(batch.Configs),
			"skipped", len(batch.Skipped),
			"entries", len(batch.Entries()),
		)
		return 0
	}

	// Create HTTP server (Echo)
	var e *echo.Echo
	if config.HTTPPort > 0 {
		e = echo.New()
		e.HideBanner = true
		e.HidePort = true
		service.RegisterErrorHandler(e, logger)
		handlers.RegisterHandlers(e, handlers.NewHTTPServer(source, sink, transformer, logger), registry)

		go func() {
			addr := fmt.Sprintf(":%d", config.HTTPPort)
			level.Info(logger).Log("msg", "Starting HTTP server", "addr", addr)
			if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
				level.Error(logger).Log("msg", "HTTP server error", "err", err)
			}
		}()
	}

	// Blocks until SIGINT/SIGTERM
	_ = refresher.Run(ctx)
	level.Info(logger).Log("msg", "Shutting down...")

	if e != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			level.Error(logger).Log("msg", "Error during server shutdown", "err", err)
		}
	}

	level.Info(logger).Log("msg", "Service stopped")
	return 0
}
