package assets

import (
	"context"

	"github.com/argus-sec/argus-portal/internal/domain"
)

type DatabaseRepo interface {
	// GetAsset returns the asset with the given id. If no asset is found,
	// domain.ErrNotFound is returned.
	GetAsset(ctx context.Context, id domain.AssetIdentifier) (*domain.Asset, error)
	// GetAllAssets returns all assets ordered by name.
	GetAllAssets(ctx context.Context) ([]domain.Asset, error)
	// GetActiveAssets returns all assets with status active.
	GetActiveAssets(ctx context.Context) ([]domain.Asset, error)
	// SaveAsset creates or updates an asset within a transaction. A zero id
	// creates a new record.
	SaveAsset(
		ctx context.Context,
		id domain.AssetIdentifier,
		updateFunc func(a *domain.Asset) (*domain.Asset, error),
	) error
	// GetVulnerability returns the vulnerability with the given id. If no
	// vulnerability is found, domain.ErrNotFound is returned.
	GetVulnerability(ctx context.Context, id domain.VulnerabilityIdentifier) (*domain.Vulnerability, error)
	// GetAllVulnerabilities returns all vulnerabilities, newest discovery first.
	GetAllVulnerabilities(ctx context.Context) ([]domain.Vulnerability, error)
}

type EventBus interface {
	// Publish sends a message to the message bus.
	Publish(topic string, args ...any)
	// Subscribe subscribes to a topic
	Subscribe(topic string, fn interface{}) error
}

// MetricsUpdater recomputes the exported Prometheus gauges from the database.
type MetricsUpdater interface {
	UpdateAuditMetrics(ctx context.Context)
	UpdateVulnerabilityMetrics(ctx context.Context)
	UpdateReportMetrics(ctx context.Context)
	UpdateAssetMetrics(ctx context.Context)
	// UpdateAssetStatus sets the per-asset reachability gauge.
	UpdateAssetStatus(asset *domain.Asset)
}
