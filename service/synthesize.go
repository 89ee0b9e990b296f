package service

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"traefikkv/domain"
)

// Synthesize derives the entries a container does not declare itself. For every logical
// service S named by an "http/services/S/..." key it emits:
//   - "http/services/S/loadBalancer/servers/<N-1>/url" = "http://<address>:<port>" when
//     "http/services/S/loadbalancer/server/port" is declared, N being the compose container number;
//   - "http/routers/S/service" = S.
//
// Returns malformed_label when a service name is empty or the port or container number do not
// parse, internal_consistency when the container has no address in the configured network.
func (t *Transformer) Synthesize(c domain.ContainerRecord, reshaped []domain.ConfigEntry) ([]domain.ConfigEntry, error) {
	names, err := serviceNames(reshaped)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, nil
	}

	address, err := t.address(c)
	if err != nil {
		return nil, err
	}

	synthesized := make([]domain.ConfigEntry, 0, 2*len(names))
	for _, name := range names {
		if port, ok := lookup(reshaped, servicesPrefix+name+rawPortSuffix); ok {
			entry, err := t.serverURL(c, name, address, port)
			if err != nil {
				return nil, err
			}
			synthesized = append(synthesized, entry)
		}

		synthesized = append(synthesized, domain.ConfigEntry{
			Key:   routersPrefix + name + "/service",
			Value: name,
		})
	}
	return synthesized, nil
}

// serviceNames returns the distinct service names in order of first appearance.
func serviceNames(entries []domain.ConfigEntry) ([]string, error) {
	var names []string
	seen := make(map[string]struct{})
	for _, e := range entries {
		rest, ok := strings.CutPrefix(e.Key, servicesPrefix)
		if !ok {
			continue
		}
		name, _, _ := strings.Cut(rest, pathSeparator)
		if name == "" {
			return nil, NewMalformedLabelError(fmt.Sprintf("key %q has no service name", e.Key), nil)
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names, nil
}

func lookup(entries []domain.ConfigEntry, key string) (string, bool) {
	for _, e := range entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

// address resolves where the proxy reaches the container.
func (t *Transformer) address(c domain.ContainerRecord) (string, error) {
	if t.addressing.HostAddressing() {
		return t.addressing.HostIP, nil
	}

	network, ok := c.Networks[t.addressing.Network]
	if !ok || network.IPAddress == "" {
		return "", NewInternalConsistencyError(fmt.Sprintf("no IP address in network %q", t.addressing.Network), nil)
	}
	return network.IPAddress, nil
}

func (t *Transformer) serverURL(c domain.ContainerRecord, service, address, port string) (domain.ConfigEntry, error) {
	p, err := strconv.Atoi(port)
	if err != nil || p < 1 || p > 65535 {
		return domain.ConfigEntry{}, NewMalformedLabelError(fmt.Sprintf("service %s: port %q is not a valid port", service, port), err)
	}

	index, err := t.serverIndex(c)
	if err != nil {
		return domain.ConfigEntry{}, err
	}

	return domain.ConfigEntry{
		Key:   fmt.Sprintf("%s%s/loadBalancer/servers/%d/url", servicesPrefix, service, index),
		Value: "http://" + net.JoinHostPort(address, strconv.Itoa(p)),
	}, nil
}

// serverIndex maps container number N (1-based, assigned by compose) to server index N-1.
func (t *Transformer) serverIndex(c domain.ContainerRecord) (int, error) {
	raw, ok := c.Labels[t.labels.ContainerNumber]
	if !ok {
		return 0, NewMalformedLabelError(fmt.Sprintf("label %s is missing", t.labels.ContainerNumber), nil)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, NewMalformedLabelError(fmt.Sprintf("label %s=%q is not a number", t.labels.ContainerNumber, raw), err)
	}
	if n < 1 {
		return 0, NewMalformedLabelError(fmt.Sprintf("label %s=%q must be positive", t.labels.ContainerNumber, raw), nil)
	}
	return n - 1, nil
}
