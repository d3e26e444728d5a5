package audits

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/argus-sec/argus-portal/internal/app"
	"github.com/argus-sec/argus-portal/internal/config"
	"github.com/argus-sec/argus-portal/internal/domain"
)

type mockBus struct {
	published map[string][]any
}

func newMockBus() *mockBus {
	return &mockBus{published: make(map[string][]any)}
}

func (m *mockBus) Publish(topic string, args ...any) {
	if len(args) == 0 {
		m.published[topic] = append(m.published[topic], nil)
		return
	}
	m.published[topic] = append(m.published[topic], args...)
}

func (m *mockBus) Subscribe(topic string, fn interface{}) error {
	return nil
}

type mockAuditDB struct {
	audits map[domain.AuditIdentifier]*domain.Audit
	nextId domain.AuditIdentifier
}

func newMockAuditDB() *mockAuditDB {
	return &mockAuditDB{audits: make(map[domain.AuditIdentifier]*domain.Audit)}
}

func (m *mockAuditDB) GetAudit(_ context.Context, id domain.AuditIdentifier) (*domain.Audit, error) {
	audit, ok := m.audits[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *audit
	return &copied, nil
}

func (m *mockAuditDB) GetAllAudits(_ context.Context) ([]domain.Audit, error) {
	all := make([]domain.Audit, 0, len(m.audits))
	for _, audit := range m.audits {
		all = append(all, *audit)
	}
	return all, nil
}

func (m *mockAuditDB) SaveAudit(
	_ context.Context,
	id domain.AuditIdentifier,
	updateFunc func(a *domain.Audit) (*domain.Audit, error),
) (*domain.Audit, error) {
	var audit *domain.Audit
	var prevAssets []domain.Asset
	if id == 0 {
		audit = &domain.Audit{Status: domain.AuditStatusScheduled}
	} else {
		existing, ok := m.audits[id]
		if !ok {
			return nil, domain.ErrNotFound
		}
		copied := *existing
		prevAssets = existing.Assets
		audit = &copied
	}

	audit, err := updateFunc(audit)
	if err != nil {
		return nil, err
	}

	if audit.Id == 0 {
		m.nextId++
		audit.Id = m.nextId
	}
	if audit.Assets == nil {
		audit.Assets = prevAssets
	}
	m.audits[audit.Id] = audit

	copied := *audit
	return &copied, nil
}

func (m *mockAuditDB) DeleteAudit(_ context.Context, id domain.AuditIdentifier) error {
	delete(m.audits, id)
	return nil
}

func testManager(t *testing.T) (*Manager, *mockAuditDB, *mockBus) {
	t.Helper()
	db := newMockAuditDB()
	bus := newMockBus()
	m, err := NewAuditManager(&config.Config{}, bus, db)
	require.NoError(t, err)
	return m, db, bus
}

func validAudit() *domain.Audit {
	return &domain.Audit{
		Title:         "Q1 Pentest",
		Type:          "external",
		Scope:         domain.StringList{"web", "api"},
		AuditorId:     1,
		AuditeeId:     2,
		ScheduledDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Frequency:     "quarterly",
	}
}

func TestCreateAudit(t *testing.T) {
	m, _, bus := testManager(t)

	created, err := m.CreateAudit(context.Background(), validAudit(), []domain.AssetIdentifier{10, 11})
	require.NoError(t, err)

	assert.NotZero(t, created.Id)
	assert.Equal(t, domain.AuditStatusScheduled, created.Status)
	assert.Equal(t, domain.StringList{"web", "api"}, created.Scope)
	assert.Equal(t, []domain.AssetIdentifier{10, 11}, created.AssetIds())

	assert.Len(t, bus.published[app.TopicAuditCreated], 1)
	assert.Len(t, bus.published[app.TopicMetricsChanged], 1)
}

func TestCreateAudit_missingFields(t *testing.T) {
	m, _, _ := testManager(t)

	tests := []struct {
		field  string
		mutate func(a *domain.Audit)
	}{
		{"title", func(a *domain.Audit) { a.Title = "" }},
		{"type", func(a *domain.Audit) { a.Type = "" }},
		{"scope", func(a *domain.Audit) { a.Scope = nil }},
		{"auditorId", func(a *domain.Audit) { a.AuditorId = 0 }},
		{"auditeeId", func(a *domain.Audit) { a.AuditeeId = 0 }},
		{"scheduledDate", func(a *domain.Audit) { a.ScheduledDate = time.Time{} }},
		{"frequency", func(a *domain.Audit) { a.Frequency = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			audit := validAudit()
			tt.mutate(audit)

			_, err := m.CreateAudit(context.Background(), audit, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidData)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestUpdateAudit(t *testing.T) {
	m, _, bus := testManager(t)

	created, err := m.CreateAudit(context.Background(), validAudit(), []domain.AssetIdentifier{10})
	require.NoError(t, err)

	newTitle := "Q1 Pentest (extended)"
	updated, err := m.UpdateAudit(context.Background(), created.Id, &domain.AuditPatch{Title: &newTitle})
	require.NoError(t, err)

	assert.Equal(t, newTitle, updated.Title)
	assert.Equal(t, "external", updated.Type) // untouched fields stay
	assert.Equal(t, []domain.AssetIdentifier{10}, updated.AssetIds())

	assert.Len(t, bus.published[app.TopicAuditUpdated], 1)
}

func TestUpdateAudit_replacesAssets(t *testing.T) {
	m, _, _ := testManager(t)

	created, err := m.CreateAudit(context.Background(), validAudit(), []domain.AssetIdentifier{10, 11})
	require.NoError(t, err)

	newAssets := []domain.AssetIdentifier{12}
	updated, err := m.UpdateAudit(context.Background(), created.Id, &domain.AuditPatch{AssetIds: &newAssets})
	require.NoError(t, err)

	assert.Equal(t, []domain.AssetIdentifier{12}, updated.AssetIds())
}

func TestUpdateAudit_missing(t *testing.T) {
	m, _, _ := testManager(t)

	title := "nope"
	_, err := m.UpdateAudit(context.Background(), 999, &domain.AuditPatch{Title: &title})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateAudit_emptyPatch(t *testing.T) {
	m, _, bus := testManager(t)

	created, err := m.CreateAudit(context.Background(), validAudit(), nil)
	require.NoError(t, err)

	updated, err := m.UpdateAudit(context.Background(), created.Id, &domain.AuditPatch{})
	require.NoError(t, err)

	assert.Equal(t, created.Title, updated.Title)
	assert.Empty(t, bus.published[app.TopicAuditUpdated]) // nothing changed, nothing published
}

func TestStartAudit(t *testing.T) {
	m, _, bus := testManager(t)

	created, err := m.CreateAudit(context.Background(), validAudit(), nil)
	require.NoError(t, err)

	started, err := m.StartAudit(context.Background(), created.Id)
	require.NoError(t, err)

	assert.Equal(t, domain.AuditStatusInProgress, started.Status)
	assert.Len(t, bus.published[app.TopicAuditStarted], 1)
	assert.Len(t, bus.published[app.TopicMetricsChanged], 2) // create and start both shift the status totals
}

func TestStartAudit_wrongState(t *testing.T) {
	m, _, _ := testManager(t)

	created, err := m.CreateAudit(context.Background(), validAudit(), nil)
	require.NoError(t, err)

	_, err = m.StartAudit(context.Background(), created.Id)
	require.NoError(t, err)

	_, err = m.StartAudit(context.Background(), created.Id)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestStartAudit_missing(t *testing.T) {
	m, _, _ := testManager(t)

	_, err := m.StartAudit(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompleteAudit(t *testing.T) {
	m, _, bus := testManager(t)

	created, err := m.CreateAudit(context.Background(), validAudit(), nil)
	require.NoError(t, err)

	_, err = m.CompleteAudit(context.Background(), created.Id)
	assert.ErrorIs(t, err, domain.ErrInvalidState) // cannot complete a scheduled audit

	_, err = m.StartAudit(context.Background(), created.Id)
	require.NoError(t, err)

	completed, err := m.CompleteAudit(context.Background(), created.Id)
	require.NoError(t, err)

	assert.Equal(t, domain.AuditStatusCompleted, completed.Status)
	require.NotNil(t, completed.CompletedDate)
	assert.WithinDuration(t, time.Now(), *completed.CompletedDate, time.Minute)
	assert.Len(t, bus.published[app.TopicAuditCompleted], 1)
}

func TestDeleteAudit(t *testing.T) {
	m, db, bus := testManager(t)

	created, err := m.CreateAudit(context.Background(), validAudit(), nil)
	require.NoError(t, err)

	require.NoError(t, m.DeleteAudit(context.Background(), created.Id))

	_, ok := db.audits[created.Id]
	assert.False(t, ok)
	assert.Len(t, bus.published[app.TopicAuditDeleted], 1)

	err = m.DeleteAudit(context.Background(), created.Id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
