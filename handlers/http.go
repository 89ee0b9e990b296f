// Package handlers contains http handlers for traefikkv.
package handlers

import (
	"fmt"
	"net/http"

	"traefikkv/interfaces"
	"traefikkv/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

// HTTPServer implements ServerInterface.
type HTTPServer struct {
	source      interfaces.ContainerSource
	sink        interfaces.ConfigSink
	transformer *service.Transformer
	logger      log.Logger
}

// NewHTTPServer creates a new HTTPServer.
func NewHTTPServer(
	source interfaces.ContainerSource,
	sink interfaces.ConfigSink,
	transformer *service.Transformer,
	logger log.Logger,
) *HTTPServer {
	logger = service.NilPanic(logger, "handlers.http.go: logger is required")
	return &HTTPServer{
		source:      service.NilPanic(source, "handlers.http.go: source is required"),
		sink:        service.NilPanic(sink, "handlers.http.go: sink is required"),
		transformer: service.NilPanic(transformer, "handlers.http.go: transformer is required"),
		logger:      log.WithPrefix(logger, "component", "HTTPServer"),
	}
}

// GetHealth (GET /v1/health) pings the container runtime and the config store.
// Returns 200 when both answer, 502 otherwise.
func (h *HTTPServer) GetHealth(ectx echo.Context) error {
	ctx := ectx.Request().Context()
	if err := h.source.Ping(ctx); err != nil {
		return fmt.Errorf("getHealth failed to ping container source, err: %w", err)
	}
	if err := h.sink.Ping(ctx); err != nil {
		return fmt.Errorf("getHealth failed to ping config sink, err: %w", err)
	}

	return ectx.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// GetEntries (GET /v1/entries) transforms the running containers without writing anything.
// Returns 200 with per-container entries and skipped containers, 502 when the runtime fails.
func (h *HTTPServer) GetEntries(ectx echo.Context) error {
	ctx := ectx.Request().Context()
	containers, err := h.source.ListContainers(ctx)
	if err != nil {
		return fmt.Errorf("getEntries failed to list containers, err: %w", err)
	}

	batch := h.transformer.FlattenAll(containers)
	level.Debug(h.logger).Log(
		"msg", "Entries preview",
		"containers", len(containers),
		"configured", len(batch.Configs),
		"skipped", len(batch.Skipped),
	)

	return ectx.JSON(http.StatusOK, toEntriesResponse(batch))
}
