package service

import (
	"fmt"

	"traefikkv/domain"
)

// Key paths of the proxy's dynamic configuration schema, relative to the provider root.
const (
	pathSeparator  = "/"
	httpSegment    = "http"
	servicesPrefix = "http/services/"
	routersPrefix  = "http/routers/"
	// rawPortSuffix is the declared port consumed by server URL synthesis. It is not a schema key
	// and is never forwarded.
	rawPortSuffix = "/loadbalancer/server/port"
)

// Transformer turns container labels into flattened proxy configuration entries.
// It is pure: no I/O and no state is kept between calls, so one Transformer may be shared.
type Transformer struct {
	addressing domain.EligibilityContext
	labels     domain.LabelScheme
	// httpLabelPrefix is "<provider>.http.", rootLen the length of "<provider>.".
	httpLabelPrefix string
	rootLen         int
}

// NewTransformer creates a Transformer for the given addressing mode and label names.
// Panics when no addressing mode is configured or a label name is empty.
func NewTransformer(addressing domain.EligibilityContext, labels domain.LabelScheme) *Transformer {
	if err := addressing.Validate(); err != nil {
		panic("service.transformer.go: " + err.Error())
	}
	provider := StrPanic(labels.ProviderPrefix, "service.transformer.go: provider prefix is required")
	StrPanic(labels.EnableLabel, "service.transformer.go: enable label is required")
	StrPanic(labels.EnableValue, "service.transformer.go: enable value is required")
	StrPanic(labels.ServiceLabel, "service.transformer.go: service label is required")
	StrPanic(labels.ContainerNumber, "service.transformer.go: container number label is required")

	return &Transformer{
		addressing:      addressing,
		labels:          labels,
		httpLabelPrefix: provider + "." + httpSegment + ".",
		rootLen:         len(provider) + 1,
	}
}

// containerRef names a container in errors and logs.
func containerRef(c domain.ContainerRecord) string {
	if c.Name != "" {
		return c.Name
	}
	if len(c.ID) > 12 {
		return c.ID[:12]
	}
	return c.ID
}

func labelError(c domain.ContainerRecord, err error) error {
	return fmt.Errorf("container %s: %w", containerRef(c), err)
}
