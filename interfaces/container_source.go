package interfaces

import (
	"context"

	"traefikkv/domain"
)

// ContainerSource lists the running containers of the host.
//
//go:generate moq -stub -out mock/container_source.go -pkg mock . ContainerSource
type ContainerSource interface {
	// ListContainers returns every running container with its labels and network addresses.
	// No filtering is applied.
	// Returns:
	// 1) (containers, nil) on success, possibly empty;
	// 2) (nil, transport_error) when the runtime cannot be reached or answers unexpectedly.
	ListContainers(ctx context.Context) ([]domain.ContainerRecord, error)

	// Ping checks that the runtime is reachable.
	// Returns transport_error on failure.
	Ping(ctx context.Context) error
}
