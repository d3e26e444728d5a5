package reports

import (
	"context"
	"io"

	"github.com/argus-sec/argus-portal/internal/domain"
)

type DatabaseRepo interface {
	// GetReport returns the report with the given id or domain.ErrNotFound.
	GetReport(ctx context.Context, id domain.ReportIdentifier) (*domain.Report, error)
	// GetAllReports returns all reports, newest first.
	GetAllReports(ctx context.Context) ([]domain.Report, error)
	// SaveReport creates or updates a report within a transaction. A zero id
	// creates a new record.
	SaveReport(
		ctx context.Context,
		id domain.ReportIdentifier,
		updateFunc func(r *domain.Report) (*domain.Report, error),
	) (*domain.Report, error)
	// DeleteReport removes the report row.
	DeleteReport(ctx context.Context, id domain.ReportIdentifier) error

	// CountAuditsByStatus returns the number of audits per lifecycle status.
	CountAuditsByStatus(ctx context.Context) (map[domain.AuditStatus]int, error)
	// CountOpenVulnerabilitiesBySeverity returns the number of open and
	// in-progress vulnerabilities per severity.
	CountOpenVulnerabilitiesBySeverity(ctx context.Context) (map[domain.VulnerabilitySeverity]int, error)
	// CountVulnerabilitiesByStatus returns the number of vulnerabilities per status.
	CountVulnerabilitiesByStatus(ctx context.Context) (map[domain.VulnerabilityStatus]int, error)
	// CountActiveAssets returns the number of assets with the active status.
	CountActiveAssets(ctx context.Context) (int, error)
}

// FileStore persists the rendered report documents. May be nil-checked by the
// manager, report metadata works without a configured store.
type FileStore interface {
	Put(ctx context.Context, path string, contents io.Reader) (int64, error)
	Get(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
}

type EventBus interface {
	// Publish sends a message to the message bus.
	Publish(topic string, args ...any)
	// Subscribe subscribes to a topic
	Subscribe(topic string, fn interface{}) error
}
