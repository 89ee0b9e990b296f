package domain

import (
	"errors"

	"github.com/hashicorp/go-multierror"
)

// Default label names read from containers.
const (
	DefaultProviderPrefix  = "traefik"
	DefaultEnableLabel     = "traefik.enable"
	DefaultEnableValue     = "true"
	DefaultServiceLabel    = "com.docker.compose.service"
	DefaultContainerNumber = "com.docker.compose.container-number"
)

// ErrNoAddressingMode means neither a docker network nor a host IP was configured.
var ErrNoAddressingMode = errors.New("either a docker network or a host IP must be configured")

// Network holds the per-network attributes of a container.
type Network struct {
	IPAddress string
}

// ContainerRecord is one running container as reported by the runtime.
// Rebuilt on every refresh cycle.
type ContainerRecord struct {
	ID       string
	Name     string
	Labels   map[string]string // raw label name -> value
	Networks map[string]Network
}

// EligibilityContext selects how containers are addressed.
// A non-empty Network scopes containers to that network and uses their address in it;
// otherwise every container is reached through HostIP.
type EligibilityContext struct {
	Network string
	HostIP  string
}

// HostAddressing reports whether the host fallback address is used instead of per-network addresses.
func (c EligibilityContext) HostAddressing() bool {
	return c.Network == ""
}

// Validate returns ErrNoAddressingMode when no addressing mode is configured.
func (c EligibilityContext) Validate() error {
	if c.Network == "" && c.HostIP == "" {
		return ErrNoAddressingMode
	}
	return nil
}

// LabelScheme names the labels the transformation reads.
type LabelScheme struct {
	ProviderPrefix  string // e.g. "traefik"; HTTP labels start with "<prefix>.http."
	EnableLabel     string
	EnableValue     string
	ServiceLabel    string
	ContainerNumber string
}

// DefaultLabelScheme returns Traefik and docker compose label names.
func DefaultLabelScheme() LabelScheme {
	return LabelScheme{
		ProviderPrefix:  DefaultProviderPrefix,
		EnableLabel:     DefaultEnableLabel,
		EnableValue:     DefaultEnableValue,
		ServiceLabel:    DefaultServiceLabel,
		ContainerNumber: DefaultContainerNumber,
	}
}

// ConfigEntry is one flattened key/value pair, key segments separated by "/".
type ConfigEntry struct {
	Key   string
	Value string
}

// ContainerConfig is the flattened output of one eligible container.
type ContainerConfig struct {
	ContainerID   string
	ContainerName string
	Entries       []ConfigEntry
}

// SkippedContainer is an eligible container whose labels could not be turned into entries.
type SkippedContainer struct {
	ContainerID   string
	ContainerName string
	Err           error
}

// Batch is the result of transforming all containers of one cycle.
type Batch struct {
	Configs []ContainerConfig
	Skipped []SkippedContainer
}

// Entries returns all entries in container order.
func (b Batch) Entries() []ConfigEntry {
	n := 0
	for _, c := range b.Configs {
		n += len(c.Entries)
	}
	out := make([]ConfigEntry, 0, n)
	for _, c := range b.Configs {
		out = append(out, c.Entries...)
	}
	return out
}

// Err aggregates the reasons of skipped containers, nil when none were skipped.
func (b Batch) Err() error {
	var result *multierror.Error
	for _, s := range b.Skipped {
		result = multierror.Append(result, s.Err)
	}
	return result.ErrorOrNil()
}
