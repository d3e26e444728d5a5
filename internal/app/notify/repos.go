package notify

import (
	"context"

	"github.com/argus-sec/argus-portal/internal/domain"
)

type UserDatabaseRepo interface {
	// GetAdminUsers returns all users with the admin role.
	GetAdminUsers(ctx context.Context) ([]domain.User, error)
}

type Mailer interface {
	// Send sends a mail with the given subject and body to the given recipients.
	Send(ctx context.Context, subject, body string, to []string, options *domain.MailOptions) error
}

type EventBus interface {
	// Publish sends a message to the message bus.
	Publish(topic string, args ...any)
	// Subscribe subscribes to a topic
	Subscribe(topic string, fn interface{}) error
}
