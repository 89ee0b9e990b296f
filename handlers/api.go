package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ServerInterface is the status API of the service.
type ServerInterface interface {
	// GetHealth (GET /v1/health)
	GetHealth(ctx echo.Context) error
	// GetEntries (GET /v1/entries)
	GetEntries(ctx echo.Context) error
}

// RegisterHandlers adds the status API routes and GET /metrics serving gatherer.
func RegisterHandlers(e *echo.Echo, si ServerInterface, gatherer prometheus.Gatherer) {
	e.GET("/v1/health", si.GetHealth)
	e.GET("/v1/entries", si.GetEntries)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}

// HealthResponse defines model for HealthResponse.
type HealthResponse struct {
	Status string `json:"status"`
}

// Entry defines model for Entry.
type Entry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ContainerEntries defines model for ContainerEntries.
type ContainerEntries struct {
	ContainerId   string  `json:"container_id"`
	ContainerName string  `json:"container_name"`
	Entries       []Entry `json:"entries"`
}

// SkippedContainer defines model for SkippedContainer.
type SkippedContainer struct {
	ContainerId   string `json:"container_id"`
	ContainerName string `json:"container_name"`
	Code          string `json:"code"`
	Reason        string `json:"reason"`
}

// EntriesResponse defines model for EntriesResponse.
type EntriesResponse struct {
	Containers []ContainerEntries `json:"containers"`
	Skipped    []SkippedContainer `json:"skipped"`
}
