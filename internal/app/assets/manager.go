package assets

import (
	"context"
	"fmt"

	"github.com/argus-sec/argus-portal/internal/config"
	"github.com/argus-sec/argus-portal/internal/domain"
)

// Manager provides read access to the asset inventory and the tracked
// vulnerabilities. Both catalogs are maintained by external processes, the
// portal never creates or deletes records in them.
type Manager struct {
	cfg *config.Config
	bus EventBus

	db DatabaseRepo
}

func NewAssetManager(cfg *config.Config, bus EventBus, db DatabaseRepo) (*Manager, error) {
	m := &Manager{
		cfg: cfg,
		bus: bus,
		db:  db,
	}

	return m, nil
}

// GetAllAssets returns all inventoried assets ordered by name.
func (m Manager) GetAllAssets(ctx context.Context) ([]domain.Asset, error) {
	assets, err := m.db.GetAllAssets(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to load assets: %w", err)
	}

	return assets, nil
}

// GetAsset returns the asset with the given id.
func (m Manager) GetAsset(ctx context.Context, id domain.AssetIdentifier) (*domain.Asset, error) {
	asset, err := m.db.GetAsset(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("unable to load asset %s: %w", id, err)
	}

	return asset, nil
}

// GetAllVulnerabilities returns all tracked vulnerabilities, newest discovery
// first.
func (m Manager) GetAllVulnerabilities(ctx context.Context) ([]domain.Vulnerability, error) {
	vulns, err := m.db.GetAllVulnerabilities(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to load vulnerabilities: %w", err)
	}

	return vulns, nil
}

// GetVulnerability returns the vulnerability with the given id.
func (m Manager) GetVulnerability(ctx context.Context, id domain.VulnerabilityIdentifier) (
	*domain.Vulnerability,
	error,
) {
	vuln, err := m.db.GetVulnerability(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("unable to load vulnerability %s: %w", id, err)
	}

	return vuln, nil
}
