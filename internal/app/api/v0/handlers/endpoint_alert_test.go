package handlers

import (
	"context"
	"encoding/json"
	"fmt"
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

// fakeSession replaces the scs backed wrapper with a plain in-memory value.
type fakeSession struct {
	data SessionData
}

func (s *fakeSession) SetData(_ context.Context, val SessionData) {
	s.data = val
}

func (s *fakeSession) GetData(_ context.Context) SessionData {
	return s.data
}

type mockAlertService struct {
	alerts []domain.SecurityAlert
	err    error
}

func (m *mockAlertService) GetAll(_ context.Context) ([]domain.SecurityAlert, error) {
	return m.alerts, m.err
}

func (m *mockAlertService) GetById(_ context.Context, id string) (*domain.SecurityAlert, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, alert := range m.alerts {
		if alert.Id == id {
			found := alert
			return &found, nil
		}
	}
	return nil, fmt.Errorf("alert %s: %w", id, domain.ErrNotFound)
}

func alertTestRouter(svc AlertService, session Session) *routegroup.Bundle {
	router := routegroup.New(http.NewServeMux())
	NewAlertEndpoint(svc, session).RegisterRoutes(router)
	return router
}

func sampleAlerts() []domain.SecurityAlert {
	return []domain.SecurityAlert{
		{
			Id:        "alert-1",
			Severity:  domain.AlertSeverityCritical,
			Title:     "Critical vulnerability reported",
			Timestamp: time.Date(2024, 9, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			Id:        "alert-2",
			Severity:  domain.AlertSeverityWarning,
			Title:     "New vulnerability reported",
			Timestamp: time.Date(2024, 9, 1, 9, 0, 0, 0, time.UTC),
		},
	}
}

func TestAlertEndpoint_handleAllGet(t *testing.T) {
	session := &fakeSession{}
	router := alertTestRouter(&mockAlertService{alerts: sampleAlerts()}, session)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/alert/all", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var alerts []model.SecurityAlert
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &alerts))
	require.Len(t, alerts, 2)
	assert.Equal(t, "alert-1", alerts[0].Id)
	assert.False(t, alerts[0].Resolved)
}

func TestAlertEndpoint_resolveFlow(t *testing.T) {
	session := &fakeSession{}
	router := alertTestRouter(&mockAlertService{alerts: sampleAlerts()}, session)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/alert/alert-1/resolve", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var alert model.SecurityAlert
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &alert))
	assert.True(t, alert.Resolved)
	assert.True(t, session.data.ResolvedAlerts["alert-1"])

	// the follow-up read keeps the alert, flagged as resolved
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/alert/all", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var alerts []model.SecurityAlert
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &alerts))
	require.Len(t, alerts, 2)
	assert.True(t, alerts[0].Resolved)
	assert.False(t, alerts[1].Resolved)
}

func TestAlertEndpoint_dismissFlow(t *testing.T) {
	session := &fakeSession{}
	router := alertTestRouter(&mockAlertService{alerts: sampleAlerts()}, session)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/alert/alert-2/dismiss", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var alert model.SecurityAlert
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &alert))
	assert.True(t, alert.Dismissed)
	assert.True(t, session.data.DismissedAlerts["alert-2"])

	// dismissed alerts disappear from the list
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/alert/all", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var alerts []model.SecurityAlert
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &alerts))
	require.Len(t, alerts, 1)
	assert.Equal(t, "alert-1", alerts[0].Id)
}

func TestAlertEndpoint_resolveUnknownAlert(t *testing.T) {
	session := &fakeSession{}
	router := alertTestRouter(&mockAlertService{alerts: sampleAlerts()}, session)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/alert/nope/resolve", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, session.data.ResolvedAlerts)
}
