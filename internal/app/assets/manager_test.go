package assets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/argus-sec/argus-portal/internal/app"
	"github.com/argus-sec/argus-portal/internal/config"
	"github.com/argus-sec/argus-portal/internal/domain"
)

type mockBus struct {
	subscriptions map[string]interface{}
	published     map[string]int
}

func newMockBus() *mockBus {
	return &mockBus{
		subscriptions: make(map[string]interface{}),
		published:     make(map[string]int),
	}
}

func (m *mockBus) Publish(topic string, args ...any) {
	m.published[topic]++
}

func (m *mockBus) Subscribe(topic string, fn interface{}) error {
	m.subscriptions[topic] = fn
	return nil
}

type mockAssetDB struct {
	assets map[domain.AssetIdentifier]*domain.Asset
	vulns  map[domain.VulnerabilityIdentifier]*domain.Vulnerability
}

func newMockAssetDB() *mockAssetDB {
	return &mockAssetDB{
		assets: make(map[domain.AssetIdentifier]*domain.Asset),
		vulns:  make(map[domain.VulnerabilityIdentifier]*domain.Vulnerability),
	}
}

func (m *mockAssetDB) GetAsset(_ context.Context, id domain.AssetIdentifier) (*domain.Asset, error) {
	asset, ok := m.assets[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *asset
	return &copied, nil
}

func (m *mockAssetDB) GetAllAssets(_ context.Context) ([]domain.Asset, error) {
	all := make([]domain.Asset, 0, len(m.assets))
	for _, asset := range m.assets {
		all = append(all, *asset)
	}
	return all, nil
}

func (m *mockAssetDB) GetActiveAssets(_ context.Context) ([]domain.Asset, error) {
	var active []domain.Asset
	for _, asset := range m.assets {
		if asset.IsActive() {
			active = append(active, *asset)
		}
	}
	return active, nil
}

func (m *mockAssetDB) SaveAsset(
	_ context.Context,
	id domain.AssetIdentifier,
	updateFunc func(a *domain.Asset) (*domain.Asset, error),
) error {
	existing, ok := m.assets[id]
	if !ok {
		return domain.ErrNotFound
	}
	copied := *existing
	updated, err := updateFunc(&copied)
	if err != nil {
		return err
	}
	m.assets[id] = updated
	return nil
}

func (m *mockAssetDB) GetVulnerability(_ context.Context, id domain.VulnerabilityIdentifier) (
	*domain.Vulnerability,
	error,
) {
	vuln, ok := m.vulns[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *vuln
	return &copied, nil
}

func (m *mockAssetDB) GetAllVulnerabilities(_ context.Context) ([]domain.Vulnerability, error) {
	all := make([]domain.Vulnerability, 0, len(m.vulns))
	for _, vuln := range m.vulns {
		all = append(all, *vuln)
	}
	return all, nil
}

type mockMetrics struct {
	auditUpdates  int
	vulnUpdates   int
	reportUpdates int
	assetUpdates  int

	statusAssets []domain.Asset
}

func (m *mockMetrics) UpdateAuditMetrics(_ context.Context) {
	m.auditUpdates++
}

func (m *mockMetrics) UpdateVulnerabilityMetrics(_ context.Context) {
	m.vulnUpdates++
}

func (m *mockMetrics) UpdateReportMetrics(_ context.Context) {
	m.reportUpdates++
}

func (m *mockMetrics) UpdateAssetMetrics(_ context.Context) {
	m.assetUpdates++
}

func (m *mockMetrics) UpdateAssetStatus(asset *domain.Asset) {
	m.statusAssets = append(m.statusAssets, *asset)
}

func TestManager_GetAllAssets(t *testing.T) {
	db := newMockAssetDB()
	db.assets[1] = &domain.Asset{Id: 1, Name: "db-server", Status: domain.AssetStatusActive}
	db.assets[2] = &domain.Asset{Id: 2, Name: "legacy-box", Status: domain.AssetStatusRetired}

	m, err := NewAssetManager(&config.Config{}, newMockBus(), db)
	require.NoError(t, err)

	assets, err := m.GetAllAssets(context.Background())
	require.NoError(t, err)
	assert.Len(t, assets, 2)
}

func TestManager_GetAsset_missing(t *testing.T) {
	m, err := NewAssetManager(&config.Config{}, newMockBus(), newMockAssetDB())
	require.NoError(t, err)

	_, err = m.GetAsset(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestManager_GetAllVulnerabilities(t *testing.T) {
	db := newMockAssetDB()
	db.vulns[1] = &domain.Vulnerability{Id: 1, Title: "Outdated TLS", Severity: domain.VulnerabilitySeverityHigh}

	m, err := NewAssetManager(&config.Config{}, newMockBus(), db)
	require.NoError(t, err)

	vulns, err := m.GetAllVulnerabilities(context.Background())
	require.NoError(t, err)
	require.Len(t, vulns, 1)
	assert.Equal(t, "Outdated TLS", vulns[0].Title)
}

func TestStatisticsCollector_subscribesToMetricsChanges(t *testing.T) {
	bus := newMockBus()
	metrics := &mockMetrics{}

	_, err := NewStatisticsCollector(&config.Config{}, bus, newMockAssetDB(), metrics)
	require.NoError(t, err)

	handler, ok := bus.subscriptions[app.TopicMetricsChanged]
	require.True(t, ok)

	handler.(func())()
	handler.(func())()

	assert.Equal(t, 2, metrics.auditUpdates)
	assert.Equal(t, 2, metrics.vulnUpdates)
	assert.Equal(t, 2, metrics.reportUpdates)
	assert.Equal(t, 2, metrics.assetUpdates)
}

func TestStatisticsCollector_withoutMetricsServer(t *testing.T) {
	bus := newMockBus()

	_, err := NewStatisticsCollector(&config.Config{}, bus, newMockAssetDB(), nil)
	require.NoError(t, err)

	assert.Empty(t, bus.subscriptions)
}

func TestStatisticsCollector_updateAssetLiveness(t *testing.T) {
	db := newMockAssetDB()
	db.assets[1] = &domain.Asset{Id: 1, Name: "db-server", Address: "10.0.0.5", Status: domain.AssetStatusActive}
	metrics := &mockMetrics{}
	bus := newMockBus()

	c, err := NewStatisticsCollector(&config.Config{}, bus, db, metrics)
	require.NoError(t, err)

	c.updateAssetLiveness(context.Background(), *db.assets[1], true)

	updated := db.assets[1]
	assert.True(t, updated.Reachable)
	require.NotNil(t, updated.LastSeen)
	firstSeen := *updated.LastSeen

	require.Len(t, metrics.statusAssets, 1)
	assert.True(t, metrics.statusAssets[0].Reachable)
	assert.Equal(t, 1, bus.published[app.TopicMetricsChanged])

	c.updateAssetLiveness(context.Background(), *db.assets[1], false)

	updated = db.assets[1]
	assert.False(t, updated.Reachable)
	require.NotNil(t, updated.LastSeen) // previous sighting survives
	assert.Equal(t, firstSeen, *updated.LastSeen)
	assert.Equal(t, 2, bus.published[app.TopicMetricsChanged])

	// unchanged reachability does not trigger a gauge recompute
	c.updateAssetLiveness(context.Background(), *db.assets[1], false)
	assert.Equal(t, 2, bus.published[app.TopicMetricsChanged])
}

func TestStatisticsCollector_reachabilityShortcuts(t *testing.T) {
	cfg := &config.Config{}
	cfg.Statistics.UsePingChecks = true

	c, err := NewStatisticsCollector(cfg, newMockBus(), newMockAssetDB(), nil)
	require.NoError(t, err)

	// no address to check
	assert.False(t, c.isAssetReachable(context.Background(), domain.Asset{}))

	cfg.Statistics.UsePingChecks = false
	assert.False(t, c.isAssetReachable(context.Background(), domain.Asset{Address: "10.0.0.5"}))
}
