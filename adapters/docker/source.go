package docker

import (
	"context"
	"fmt"
	"strings"

	"traefikkv/domain"
	"traefikkv/service"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
)

// apiClient is the part of the Docker SDK client the source uses.
type apiClient interface {
	ContainerList(ctx context.Context, options container.ListOptions) ([]types.Container, error)
	Ping(ctx context.Context) (types.Ping, error)
}

// Source implements interfaces.ContainerSource on top of the Docker Engine API.
type Source struct {
	cli apiClient
}

// NewClient creates a Docker client configured from DOCKER_HOST, DOCKER_API_VERSION and friends,
// negotiating the API version with the daemon.
func NewClient() (*client.Client, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to create docker client: %w", err)
	}
	return cli, nil
}

// NewSource creates a container source. Panics on nil client.
func NewSource(cli apiClient) *Source {
	return &Source{cli: service.NilPanic(cli, "adapters.docker.source.go: docker client is required")}
}

// ListContainers returns all running containers with their labels and per-network addresses.
func (s *Source) ListContainers(ctx context.Context) ([]domain.ContainerRecord, error) {
	containers, err := s.cli.ContainerList(ctx, container.ListOptions{})
	if err != nil {
		return nil, service.NewTransportError("docker list containers failed", err)
	}

	records := make([]domain.ContainerRecord, 0, len(containers))
	for _, c := range containers {
		records = append(records, toContainerRecord(c))
	}
	return records, nil
}

// Ping checks that the Docker daemon answers.
func (s *Source) Ping(ctx context.Context) error {
	if _, err := s.cli.Ping(ctx); err != nil {
		return service.NewTransportError("docker ping failed", err)
	}
	return nil
}

func toContainerRecord(c types.Container) domain.ContainerRecord {
	name := ""
	if len(c.Names) > 0 {
		name = strings.TrimPrefix(c.Names[0], "/")
	}

	labels := make(map[string]string, len(c.Labels))
	for k, v := range c.Labels {
		labels[k] = v
	}

	networks := make(map[string]domain.Network)
	if c.NetworkSettings != nil {
		for netName, settings := range c.NetworkSettings.Networks {
			if settings == nil {
				// attached, address unknown
				networks[netName] = domain.Network{}
				continue
			}
			networks[netName] = domain.Network{IPAddress: settings.IPAddress}
		}
	}

	return domain.ContainerRecord{
		ID:       c.ID,
		Name:     name,
		Labels:   labels,
		Networks: networks,
	}
}
