package model

import (
	"github.com/argus-sec/argus-portal/internal/domain"
)

type ActivityEntry struct {
	Id        uint64 `json:"id"`
	Timestamp string `json:"timestamp"`

	ContextUser string `json:"contextUser"`
	Action      string `json:"action"`
	EntityType  string `json:"entityType"`
	EntityId    string `json:"entityId"`
	Description string `json:"description"`
}

// NewActivityEntry creates a REST API ActivityEntry from a domain ActivityEntry.
func NewActivityEntry(src domain.ActivityEntry) ActivityEntry {
	return ActivityEntry{
		Id:          src.UniqueId,
		Timestamp:   src.CreatedAt.Format("2006-01-02 15:04:05"),
		ContextUser: src.ContextUser,
		Action:      string(src.Action),
		EntityType:  src.EntityType,
		EntityId:    src.EntityId,
		Description: src.Description,
	}
}

// NewActivityEntries creates a slice of REST API ActivityEntry from a slice of
// domain ActivityEntry.
func NewActivityEntries(src []domain.ActivityEntry) []ActivityEntry {
	dst := make([]ActivityEntry, 0, len(src))
	for _, entry := range src {
		dst = append(dst, NewActivityEntry(entry))
	}
	return dst
}
