package audits

import (
	"context"

	"github.com/argus-sec/argus-portal/internal/domain"
)

type DatabaseRepo interface {
	// GetAudit returns the audit with the given id, including its assets and
	// user records. If no audit is found, domain.ErrNotFound is returned.
	GetAudit(ctx context.Context, id domain.AuditIdentifier) (*domain.Audit, error)
	// GetAllAudits returns all audits, newest scheduled date first.
	GetAllAudits(ctx context.Context) ([]domain.Audit, error)
	// SaveAudit creates or updates an audit within a transaction. A zero id
	// creates a new record. A non-nil Assets slice on the updated record
	// replaces the asset associations, a nil slice leaves them untouched.
	SaveAudit(
		ctx context.Context,
		id domain.AuditIdentifier,
		updateFunc func(a *domain.Audit) (*domain.Audit, error),
	) (*domain.Audit, error)
	// DeleteAudit removes the audit and its asset associations.
	DeleteAudit(ctx context.Context, id domain.AuditIdentifier) error
}

type EventBus interface {
	// Publish sends a message to the message bus.
	Publish(topic string, args ...any)
	// Subscribe subscribes to a topic
	Subscribe(topic string, fn interface{}) error
}
