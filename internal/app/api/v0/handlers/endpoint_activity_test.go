package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-pkgz/routegroup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/argus-sec/argus-portal/internal/app/api/v0/model"
	"github.com/argus-sec/argus-portal/internal/domain"
)

type mockActivityService struct {
	entries []domain.ActivityEntry
	err     error

	lastLimit      int
	lastEntityType string
	forEntityUsed  bool
}

func (m *mockActivityService) GetAll(_ context.Context, limit int) ([]domain.ActivityEntry, error) {
	m.lastLimit = limit
	return m.entries, m.err
}

func (m *mockActivityService) GetForEntity(
	_ context.Context,
	entityType string,
	limit int,
) ([]domain.ActivityEntry, error) {
	m.forEntityUsed = true
	m.lastEntityType = entityType
	m.lastLimit = limit
	return m.entries, m.err
}

func activityTestRouter(svc ActivityService) *routegroup.Bundle {
	router := routegroup.New(http.NewServeMux())
	NewActivityEndpoint(svc).RegisterRoutes(router)
	return router
}

func TestActivityEndpoint_handleAllGet(t *testing.T) {
	svc := &mockActivityService{entries: []domain.ActivityEntry{
		{
			UniqueId:    3,
			CreatedAt:   time.Date(2024, 9, 1, 12, 30, 0, 0, time.UTC),
			ContextUser: "admin",
			Action:      domain.ActivityActionCreate,
			EntityType:  domain.ActivityEntityAudit,
			EntityId:    "1",
			Description: "Created audit: Q3 Web Audit",
		},
	}}
	router := activityTestRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/activity/all", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 50, svc.lastLimit)
	assert.False(t, svc.forEntityUsed)

	var entries []model.ActivityEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, uint64(3), entries[0].Id)
	assert.Equal(t, "2024-09-01 12:30:00", entries[0].Timestamp)
	assert.Equal(t, "create", entries[0].Action)
}

func TestActivityEndpoint_handleAllGet_queryParameters(t *testing.T) {
	svc := &mockActivityService{}
	router := activityTestRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/activity/all?limit=10&entityType=audit", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, svc.forEntityUsed)
	assert.Equal(t, "audit", svc.lastEntityType)
	assert.Equal(t, 10, svc.lastLimit)
}

func TestActivityEndpoint_handleAllGet_malformedLimit(t *testing.T) {
	svc := &mockActivityService{}
	router := activityTestRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/activity/all?limit=banana", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 50, svc.lastLimit)
}
