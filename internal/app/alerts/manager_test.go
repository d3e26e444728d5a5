package alerts

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/argus-sec/argus-portal/internal/app"
	"github.com/argus-sec/argus-portal/internal/config"
	"github.com/argus-sec/argus-portal/internal/domain"
)

type mockBus struct {
	subscriptions map[string]interface{}
	published     map[string][]any
}

func newMockBus() *mockBus {
	return &mockBus{
		subscriptions: make(map[string]interface{}),
		published:     make(map[string][]any),
	}
}

func (m *mockBus) Publish(topic string, args ...any) {
	m.published[topic] = append(m.published[topic], args...)
}

func (m *mockBus) Subscribe(topic string, fn interface{}) error {
	m.subscriptions[topic] = fn
	return nil
}

type mockActivityDB struct {
	entries   []domain.ActivityEntry
	lastLimit int
}

func (m *mockActivityDB) GetAllActivityEntries(_ context.Context, limit int) ([]domain.ActivityEntry, error) {
	m.lastLimit = limit
	if limit > 0 && len(m.entries) > limit {
		return m.entries[:limit], nil
	}
	return m.entries, nil
}

type mockMetrics struct {
	derived int
}

func (m *mockMetrics) UpdateAlertMetrics(derived int) {
	m.derived = derived
}

func feedEntry(uid uint64, action domain.ActivityAction, description string) domain.ActivityEntry {
	return domain.ActivityEntry{
		UniqueId:    uid,
		CreatedAt:   time.Now().Add(-time.Duration(uid) * time.Minute),
		Action:      action,
		EntityType:  domain.ActivityEntityAudit,
		EntityId:    "1",
		Description: description,
	}
}

func testManager(t *testing.T, demoAlerts bool, entries ...domain.ActivityEntry) (*Manager, *mockActivityDB, *mockBus) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Alerts.IncludeDemoAlerts = demoAlerts

	db := &mockActivityDB{entries: entries}
	bus := newMockBus()

	m, err := NewAlertManager(cfg, bus, db, nil)
	require.NoError(t, err)

	return m, db, bus
}

func TestGetAll_derivation(t *testing.T) {
	m, db, _ := testManager(t, false,
		feedEntry(10, domain.ActivityActionCreate, "Created new vulnerability: Critical RCE in nginx"),
		feedEntry(9, domain.ActivityActionCreate, "Created new vulnerability: weak TLS cipher on mail gateway"),
		feedEntry(8, domain.ActivityActionUpdate, "Updated audit: critical systems review"),
		feedEntry(7, domain.ActivityActionCreate, "Created new audit: Quarterly review"),
		feedEntry(6, domain.ActivityActionCreate, "Created new asset: CRITICAL database server"),
	)

	alerts, err := m.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 3)

	assert.Equal(t, 50, db.lastLimit) // default feed window

	assert.Equal(t, "activity-10", alerts[0].Id)
	assert.Equal(t, domain.AlertSeverityCritical, alerts[0].Severity)
	assert.Equal(t, "Critical Security Event", alerts[0].Title)

	assert.Equal(t, "activity-9", alerts[1].Id)
	assert.Equal(t, domain.AlertSeverityWarning, alerts[1].Severity)

	// keyword match ignores case
	assert.Equal(t, "activity-6", alerts[2].Id)
	assert.Equal(t, domain.AlertSeverityCritical, alerts[2].Severity)
}

func TestGetAll_boundsDerivedAlerts(t *testing.T) {
	var entries []domain.ActivityEntry
	for i := 20; i > 10; i-- {
		entries = append(entries,
			feedEntry(uint64(i), domain.ActivityActionCreate, fmt.Sprintf("Created new vulnerability: issue %d", i)))
	}

	m, _, _ := testManager(t, false, entries...)

	alerts, err := m.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, alerts, 5)
	assert.Equal(t, "activity-20", alerts[0].Id)
}

func TestGetAll_demoAlerts(t *testing.T) {
	m, _, _ := testManager(t, true)

	alerts, err := m.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 3)

	assert.Equal(t, "demo-1", alerts[0].Id)
	assert.Equal(t, domain.AlertSeverityCritical, alerts[0].Severity)
	assert.Equal(t, "demo-3", alerts[2].Id)
}

func TestGetAll_totalCap(t *testing.T) {
	var entries []domain.ActivityEntry
	for i := 20; i > 10; i-- {
		entries = append(entries,
			feedEntry(uint64(i), domain.ActivityActionCreate, fmt.Sprintf("Created new vulnerability: issue %d", i)))
	}

	m, _, _ := testManager(t, true, entries...)

	alerts, err := m.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 6)

	// five derived entries, then the first demo seed
	assert.Equal(t, "activity-20", alerts[0].Id)
	assert.Equal(t, "demo-1", alerts[5].Id)
}

func TestGetAll_customFeedLimit(t *testing.T) {
	cfg := &config.Config{}
	cfg.Alerts.ActivityFeedLimit = 10

	db := &mockActivityDB{}
	m, err := NewAlertManager(cfg, newMockBus(), db, nil)
	require.NoError(t, err)

	_, err = m.GetAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, db.lastLimit)
}

func TestGetAll_updatesDerivedGauge(t *testing.T) {
	cfg := &config.Config{}
	cfg.Alerts.IncludeDemoAlerts = true

	db := &mockActivityDB{entries: []domain.ActivityEntry{
		feedEntry(3, domain.ActivityActionCreate, "Created new vulnerability: something"),
	}}
	metrics := &mockMetrics{derived: -1}

	m, err := NewAlertManager(cfg, newMockBus(), db, metrics)
	require.NoError(t, err)

	alerts, err := m.GetAll(context.Background())
	require.NoError(t, err)

	// the gauge only counts derived alerts, the demo seed is excluded
	require.Len(t, alerts, 4)
	assert.Equal(t, 1, metrics.derived)
}

func TestGetById(t *testing.T) {
	m, _, _ := testManager(t, true,
		feedEntry(4, domain.ActivityActionCreate, "Created new vulnerability: something"),
	)

	alert, err := m.GetById(context.Background(), "activity-4")
	require.NoError(t, err)
	assert.Equal(t, domain.AlertSeverityWarning, alert.Severity)

	alert, err = m.GetById(context.Background(), "demo-2")
	require.NoError(t, err)
	assert.Equal(t, domain.AlertSeverityWarning, alert.Severity)

	_, err = m.GetById(context.Background(), "activity-999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApplySessionState(t *testing.T) {
	alerts := []domain.SecurityAlert{
		{Id: "activity-1"},
		{Id: "activity-2"},
		{Id: "demo-1"},
	}

	overlaid := ApplySessionState(alerts,
		map[string]bool{"activity-1": true},
		map[string]bool{"demo-1": true})

	require.Len(t, overlaid, 2)
	assert.True(t, overlaid[0].Resolved)
	assert.Equal(t, "activity-2", overlaid[1].Id)
	assert.False(t, overlaid[1].Resolved)
}

func TestCriticalActivityRaisesAlert(t *testing.T) {
	_, _, bus := testManager(t, false)

	handler, ok := bus.subscriptions[app.TopicActivityLogged]
	require.True(t, ok)
	handle := handler.(func(entry domain.ActivityEntry))

	handle(feedEntry(1, domain.ActivityActionCreate, "Created new vulnerability: critical auth bypass"))
	require.Len(t, bus.published[app.TopicAlertRaised], 1)

	raised := bus.published[app.TopicAlertRaised][0].(domain.SecurityAlert)
	assert.Equal(t, domain.AlertSeverityCritical, raised.Severity)
	assert.Equal(t, "activity-1", raised.Id)

	// non-critical alerts stay on the dashboard only
	handle(feedEntry(2, domain.ActivityActionCreate, "Created new vulnerability: weak cipher"))
	assert.Len(t, bus.published[app.TopicAlertRaised], 1)

	handle(feedEntry(3, domain.ActivityActionUpdate, "Updated audit: critical systems"))
	assert.Len(t, bus.published[app.TopicAlertRaised], 1)
}
