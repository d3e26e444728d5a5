package alerts

import (
	"context"

	"github.com/argus-sec/argus-portal/internal/domain"
)

type DatabaseRepo interface {
	// GetAllActivityEntries returns the newest activity entries. A limit of 0
	// returns all entries.
	GetAllActivityEntries(ctx context.Context, limit int) ([]domain.ActivityEntry, error)
}

type EventBus interface {
	// Publish sends a message to the message bus.
	Publish(topic string, args ...any)
	// Subscribe subscribes to a topic
	Subscribe(topic string, fn interface{}) error
}

type MetricsUpdater interface {
	// UpdateAlertMetrics sets the number of alerts currently derived from the
	// activity feed.
	UpdateAlertMetrics(derived int)
}
