package handlers

import (
	"traefikkv/domain"
	"traefikkv/service"
)

// toEntriesResponse converts a transformation batch to API response.
func toEntriesResponse(batch domain.Batch) EntriesResponse {
	containers := make([]ContainerEntries, 0, len(batch.Configs))
	for _, c := range batch.Configs {
		entries := make([]Entry, 0, len(c.Entries))
		for _, e := range c.Entries {
			entries = append(entries, Entry{Key: e.Key, Value: e.Value})
		}
		containers = append(containers, ContainerEntries{
			ContainerId:   c.ContainerID,
			ContainerName: c.ContainerName,
			Entries:       entries,
		})
	}

	skipped := make([]SkippedContainer, 0, len(batch.Skipped))
	for _, s := range batch.Skipped {
		skipped = append(skipped, toSkippedContainer(s))
	}
	return EntriesResponse{Containers: containers, Skipped: skipped}
}

func toSkippedContainer(s domain.SkippedContainer) SkippedContainer {
	out := SkippedContainer{
		ContainerId:   s.ContainerID,
		ContainerName: s.ContainerName,
		Code:          service.ErrInternalServerError,
	}
	if s.Err == nil {
		return out
	}
	out.Reason = s.Err.Error()
	if myErr := service.ToMyError(s.Err); myErr != nil {
		out.Code = myErr.Code
		out.Reason = myErr.Message
	}
	return out
}
