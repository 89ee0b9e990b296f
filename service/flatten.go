package service

import (
	"strings"

	"traefikkv/domain"
)

// Flatten returns the configuration entries of one container: reshaped labels followed by
// synthesized entries, with raw load balancer ports removed. Order is stable and entries with
// the same key are kept; the last one wins in the store.
//
// Returns (nil, nil) for an ineligible container.
func (t *Transformer) Flatten(c domain.ContainerRecord) ([]domain.ConfigEntry, error) {
	if !t.IsEligible(c) {
		return nil, nil
	}
	return t.flatten(c)
}

// FlattenAll flattens every eligible container. A container that fails is recorded in
// Batch.Skipped and the others are still processed.
func (t *Transformer) FlattenAll(containers []domain.ContainerRecord) domain.Batch {
	var batch domain.Batch
	for _, c := range containers {
		if !t.IsEligible(c) {
			continue
		}

		entries, err := t.flatten(c)
		if err != nil {
			batch.Skipped = append(batch.Skipped, domain.SkippedContainer{
				ContainerID:   c.ID,
				ContainerName: c.Name,
				Err:           err,
			})
			continue
		}

		batch.Configs = append(batch.Configs, domain.ContainerConfig{
			ContainerID:   c.ID,
			ContainerName: c.Name,
			Entries:       entries,
		})
	}
	return batch
}

func (t *Transformer) flatten(c domain.ContainerRecord) ([]domain.ConfigEntry, error) {
	reshaped := t.Reshape(c)
	synthesized, err := t.Synthesize(c, reshaped)
	if err != nil {
		return nil, labelError(c, err)
	}

	entries := make([]domain.ConfigEntry, 0, len(reshaped)+len(synthesized))
	entries = appendForwarded(entries, reshaped)
	entries = appendForwarded(entries, synthesized)
	return entries, nil
}

func appendForwarded(dst, src []domain.ConfigEntry) []domain.ConfigEntry {
	for _, e := range src {
		if strings.HasSuffix(e.Key, rawPortSuffix) {
			continue
		}
		dst = append(dst, e)
	}
	return dst
}
