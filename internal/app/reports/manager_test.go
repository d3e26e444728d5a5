package reports

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

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

type mockStore struct {
	files  map[string][]byte
	putErr error
}

func newMockStore() *mockStore {
	return &mockStore{files: make(map[string][]byte)}
}

func (s *mockStore) Put(_ context.Context, path string, contents io.Reader) (int64, error) {
	if s.putErr != nil {
		return 0, s.putErr
	}
	data, err := io.ReadAll(contents)
	if err != nil {
		return 0, err
	}
	s.files[path] = data
	return int64(len(data)), nil
}

func (s *mockStore) Get(_ context.Context, path string) (io.ReadCloser, error) {
	data, ok := s.files[path]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *mockStore) Delete(_ context.Context, path string) error {
	delete(s.files, path)
	return nil
}

type mockReportDB struct {
	reports map[domain.ReportIdentifier]*domain.Report
	nextId  domain.ReportIdentifier

	auditCounts  map[domain.AuditStatus]int
	openBySev    map[domain.VulnerabilitySeverity]int
	vulnByStatus map[domain.VulnerabilityStatus]int
	activeAssets int
}

func newMockReportDB() *mockReportDB {
	return &mockReportDB{
		reports:      make(map[domain.ReportIdentifier]*domain.Report),
		auditCounts:  make(map[domain.AuditStatus]int),
		openBySev:    make(map[domain.VulnerabilitySeverity]int),
		vulnByStatus: make(map[domain.VulnerabilityStatus]int),
	}
}

func (m *mockReportDB) GetReport(_ context.Context, id domain.ReportIdentifier) (*domain.Report, error) {
	report, ok := m.reports[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *report
	return &copied, nil
}

func (m *mockReportDB) GetAllReports(_ context.Context) ([]domain.Report, error) {
	all := make([]domain.Report, 0, len(m.reports))
	for _, report := range m.reports {
		all = append(all, *report)
	}
	return all, nil
}

func (m *mockReportDB) SaveReport(
	_ context.Context,
	id domain.ReportIdentifier,
	updateFunc func(r *domain.Report) (*domain.Report, error),
) (*domain.Report, error) {
	var report *domain.Report
	if id == 0 {
		report = &domain.Report{Status: domain.ReportStatusDraft, Format: "pdf"}
	} else {
		existing, ok := m.reports[id]
		if !ok {
			return nil, domain.ErrNotFound
		}
		copied := *existing
		report = &copied
	}

	report, err := updateFunc(report)
	if err != nil {
		return nil, err
	}

	if report.Id == 0 {
		m.nextId++
		report.Id = m.nextId
	}
	m.reports[report.Id] = report

	copied := *report
	return &copied, nil
}

func (m *mockReportDB) DeleteReport(_ context.Context, id domain.ReportIdentifier) error {
	delete(m.reports, id)
	return nil
}

func (m *mockReportDB) CountAuditsByStatus(_ context.Context) (map[domain.AuditStatus]int, error) {
	return m.auditCounts, nil
}

func (m *mockReportDB) CountOpenVulnerabilitiesBySeverity(_ context.Context) (
	map[domain.VulnerabilitySeverity]int,
	error,
) {
	return m.openBySev, nil
}

func (m *mockReportDB) CountVulnerabilitiesByStatus(_ context.Context) (map[domain.VulnerabilityStatus]int, error) {
	return m.vulnByStatus, nil
}

func (m *mockReportDB) CountActiveAssets(_ context.Context) (int, error) {
	return m.activeAssets, nil
}

func testManager(t *testing.T) (*Manager, *mockReportDB, *mockStore, *mockBus) {
	t.Helper()
	db := newMockReportDB()
	store := newMockStore()
	bus := newMockBus()
	m, err := NewReportManager(&config.Config{}, bus, db, store)
	require.NoError(t, err)
	return m, db, store, bus
}

func TestCreateReport(t *testing.T) {
	m, _, _, bus := testManager(t)

	created, err := m.CreateReport(context.Background(), &domain.Report{
		Title:       "Manual upload",
		Type:        domain.ReportTypeAuditSummary,
		GeneratedBy: "admin",
	})
	require.NoError(t, err)

	assert.NotZero(t, created.Id)
	assert.Equal(t, domain.ReportStatusDraft, created.Status)
	assert.Equal(t, "pdf", created.Format)
	assert.False(t, created.GeneratedDate.IsZero())

	assert.Len(t, bus.published[app.TopicReportCreated], 1)
}

func TestCreateReport_missingFields(t *testing.T) {
	m, _, _, _ := testManager(t)

	_, err := m.CreateReport(context.Background(), &domain.Report{})
	require.ErrorIs(t, err, domain.ErrInvalidData)
	assert.Contains(t, err.Error(), "title")

	_, err = m.CreateReport(context.Background(), &domain.Report{Title: "x"})
	require.ErrorIs(t, err, domain.ErrInvalidData)
	assert.Contains(t, err.Error(), "type")

	_, err = m.CreateReport(context.Background(), &domain.Report{Title: "x", Type: "y"})
	require.ErrorIs(t, err, domain.ErrInvalidData)
	assert.Contains(t, err.Error(), "generatedBy")
}

func TestGenerateReport_missingType(t *testing.T) {
	m, _, _, _ := testManager(t)

	_, err := m.GenerateReport(context.Background(), "", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidData)
}

func TestGenerateReport_auditSummary(t *testing.T) {
	m, db, store, bus := testManager(t)
	db.auditCounts = map[domain.AuditStatus]int{
		domain.AuditStatusScheduled:  2,
		domain.AuditStatusInProgress: 1,
		domain.AuditStatusCompleted:  3,
	}

	report, err := m.GenerateReport(context.Background(), domain.ReportTypeAuditSummary, nil)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(report.Title, "Audit Summary - "))
	assert.Equal(t, domain.ReportStatusFinal, report.Status)
	assert.Equal(t, "pdf", report.Format)
	assert.True(t, strings.HasPrefix(report.FilePath, "audit_summary_"))
	assert.True(t, strings.HasSuffix(report.FilePath, ".pdf"))
	assert.JSONEq(t, `{"totalAudits":6,"completedAudits":3,"inProgressAudits":1}`, string(report.Data))

	// the stored document size is the persisted file size
	stored, ok := store.files[report.FilePath]
	require.True(t, ok)
	assert.Equal(t, int64(len(stored)), report.FileSize)

	assert.Len(t, bus.published[app.TopicReportGenerated], 1)
	assert.Len(t, bus.published[app.TopicMetricsChanged], 1)
}

func TestGenerateReport_vulnerabilityReport(t *testing.T) {
	m, db, _, _ := testManager(t)
	db.openBySev = map[domain.VulnerabilitySeverity]int{
		domain.VulnerabilitySeverityCritical: 2,
		domain.VulnerabilitySeverityHigh:     1,
	}

	report, err := m.GenerateReport(context.Background(), domain.ReportTypeVulnerability, nil)
	require.NoError(t, err)

	assert.JSONEq(t, `{"critical":2,"high":1,"medium":0,"low":0,"total":3}`, string(report.Data))
}

func TestGenerateReport_complianceScore(t *testing.T) {
	m, db, _, _ := testManager(t)
	db.vulnByStatus = map[domain.VulnerabilityStatus]int{
		domain.VulnerabilityStatusOpen:     1,
		domain.VulnerabilityStatusResolved: 3,
	}

	report, err := m.GenerateReport(context.Background(), domain.ReportTypeCompliance, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"total":4,"resolved":3,"score":75}`, string(report.Data))
}

func TestGenerateReport_complianceScoreNoVulnerabilities(t *testing.T) {
	m, _, _, _ := testManager(t)

	report, err := m.GenerateReport(context.Background(), domain.ReportTypeCompliance, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"total":0,"resolved":0,"score":100}`, string(report.Data))
}

func TestGenerateReport_executiveSummary(t *testing.T) {
	m, db, _, _ := testManager(t)
	db.activeAssets = 5
	db.auditCounts = map[domain.AuditStatus]int{
		domain.AuditStatusScheduled:  1,
		domain.AuditStatusInProgress: 2,
		domain.AuditStatusCompleted:  9,
	}
	db.openBySev = map[domain.VulnerabilitySeverity]int{
		domain.VulnerabilitySeverityCritical: 1,
		domain.VulnerabilitySeverityLow:      2,
	}

	report, err := m.GenerateReport(context.Background(), domain.ReportTypeExecutiveSummary, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"activeAssets":5,"activeAudits":3,"openVulnerabilities":3,"criticalOpen":1}`,
		string(report.Data))
}

func TestGenerateReport_unknownType(t *testing.T) {
	m, _, _, _ := testManager(t)

	report, err := m.GenerateReport(context.Background(), "weekly_newsletter", nil)
	require.NoError(t, err)

	assert.JSONEq(t, `{}`, string(report.Data))
	assert.Equal(t, domain.ReportStatusFinal, report.Status)
}

func TestGenerateReport_withoutStore(t *testing.T) {
	db := newMockReportDB()
	bus := newMockBus()
	m, err := NewReportManager(&config.Config{}, bus, db, nil)
	require.NoError(t, err)

	report, err := m.GenerateReport(context.Background(), domain.ReportTypeAuditSummary, nil)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, report.FileSize, int64(100_000)) // synthesized placeholder size
}

func TestDownloadReport(t *testing.T) {
	m, _, _, _ := testManager(t)

	generated, err := m.GenerateReport(context.Background(), domain.ReportTypeAuditSummary, nil)
	require.NoError(t, err)

	report, reader, err := m.DownloadReport(context.Background(), generated.Id)
	require.NoError(t, err)
	require.NotNil(t, reader)
	defer reader.Close()

	assert.Equal(t, generated.Id, report.Id)

	contents, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, report.FileSize, int64(len(contents)))
}

func TestDownloadReport_missingDocument(t *testing.T) {
	m, _, store, _ := testManager(t)

	generated, err := m.GenerateReport(context.Background(), domain.ReportTypeAuditSummary, nil)
	require.NoError(t, err)

	delete(store.files, generated.FilePath)

	report, reader, err := m.DownloadReport(context.Background(), generated.Id)
	require.NoError(t, err)
	assert.NotNil(t, report)
	assert.Nil(t, reader)
}

func TestDownloadReport_missing(t *testing.T) {
	m, _, _, _ := testManager(t)

	_, _, err := m.DownloadReport(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteReport(t *testing.T) {
	m, db, store, bus := testManager(t)

	generated, err := m.GenerateReport(context.Background(), domain.ReportTypeAuditSummary, nil)
	require.NoError(t, err)

	require.NoError(t, m.DeleteReport(context.Background(), generated.Id))

	_, ok := db.reports[generated.Id]
	assert.False(t, ok)
	_, ok = store.files[generated.FilePath]
	assert.False(t, ok)

	assert.Len(t, bus.published[app.TopicReportDeleted], 1)

	err = m.DeleteReport(context.Background(), generated.Id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
