package service

import (
	"slices"
	"strings"

	"traefikkv/domain"
)

// Reshape keeps the "<provider>.http." labels and rewrites their names into key paths:
// the provider root is dropped and "." becomes "/", so "traefik.http.routers.api.rule"
// turns into "http/routers/api/rule". Values are unchanged.
//
// Labels come from an unordered map; entries are ordered by raw label name.
func (t *Transformer) Reshape(c domain.ContainerRecord) []domain.ConfigEntry {
	names := make([]string, 0, len(c.Labels))
	for name := range c.Labels {
		if strings.HasPrefix(name, t.httpLabelPrefix) {
			names = append(names, name)
		}
	}
	slices.Sort(names)

	entries := make([]domain.ConfigEntry, 0, len(names))
	for _, name := range names {
		entries = append(entries, domain.ConfigEntry{
			Key:   strings.ReplaceAll(name[t.rootLen:], ".", pathSeparator),
			Value: c.Labels[name],
		})
	}
	return entries
}
