package service

import (
	"strings"

	"traefikkv/domain"
)

// IsEligible reports whether the container takes part in proxy configuration:
// it is attached to the configured network (not checked in host addressing mode),
// carries the compose service label, and has the enable label set to the enable value.
func (t *Transformer) IsEligible(c domain.ContainerRecord) bool {
	if !t.addressing.HostAddressing() {
		if _, ok := c.Networks[t.addressing.Network]; !ok {
			return false
		}
	}

	if _, ok := c.Labels[t.labels.ServiceLabel]; !ok {
		return false
	}

	enabled, ok := c.Labels[t.labels.EnableLabel]
	return ok && strings.EqualFold(strings.TrimSpace(enabled), t.labels.EnableValue)
}
