package activity

import (
	"context"

	"github.com/argus-sec/argus-portal/internal/domain"
)

type DatabaseRepo interface {
	// SaveActivityEntry appends a new entry to the activity log.
	SaveActivityEntry(ctx context.Context, entry *domain.ActivityEntry) error
}

type EventBus interface {
	// Publish sends a message to the message bus.
	Publish(topic string, args ...any)
	// Subscribe subscribes to a topic
	Subscribe(topic string, fn interface{}) error
}
