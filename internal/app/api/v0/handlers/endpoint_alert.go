package handlers

import (
	"context"
	"net/http"

	"github.com/go-pkgz/routegroup"

	"github.com/argus-sec/argus-portal/internal/app/alerts"
	"github.com/argus-sec/argus-portal/internal/app/api/core/request"
	"github.com/argus-sec/argus-portal/internal/app/api/core/respond"
	"github.com/argus-sec/argus-portal/internal/app/api/v0/model"
	"github.com/argus-sec/argus-portal/internal/domain"
)

type AlertService interface {
	// GetAll derives the current alert list from the activity feed.
	GetAll(ctx context.Context) ([]domain.SecurityAlert, error)
	// GetById returns a single alert from the currently derived list.
	GetById(ctx context.Context, id string) (*domain.SecurityAlert, error)
}

type AlertEndpoint struct {
	alertService AlertService
	session      Session
}

func NewAlertEndpoint(alertService AlertService, session Session) AlertEndpoint {
	return AlertEndpoint{
		alertService: alertService,
		session:      session,
	}
}

func (e AlertEndpoint) GetName() string {
	return "AlertEndpoint"
}

func (e AlertEndpoint) RegisterRoutes(g *routegroup.Bundle) {
	apiGroup := g.Mount("/alert")

	apiGroup.HandleFunc("GET /all", e.handleAllGet())
	apiGroup.HandleFunc("POST /{id}/resolve", e.handleResolvePost())
	apiGroup.HandleFunc("POST /{id}/dismiss", e.handleDismissPost())
}

// handleAllGet returns a gorm Handler function.
//
// @ID alert_handleAllGet
// @Tags Alert
// @Summary Get all current security alerts, with the session markers applied.
// @Produce json
// @Success 200 {object} []model.SecurityAlert
// @Failure 500 {object} model.Error
// @Router /alert/all [get]
func (e AlertEndpoint) handleAllGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		alertList, err := e.alertService.GetAll(r.Context())
		if err != nil {
			code, errModel := ParseServiceError(err)
			respond.JSON(w, code, errModel)
			return
		}

		sessionData := e.session.GetData(r.Context())
		alertList = alerts.ApplySessionState(alertList, sessionData.ResolvedAlerts, sessionData.DismissedAlerts)

		respond.JSON(w, http.StatusOK, model.NewSecurityAlerts(alertList))
	}
}

// handleResolvePost returns a gorm Handler function.
//
// @ID alert_handleResolvePost
// @Tags Alert
// @Summary Mark an alert as resolved for the current session.
// @Produce json
// @Param id path string true "The alert identifier"
// @Success 200 {object} model.SecurityAlert
// @Failure 400 {object} model.Error
// @Failure 404 {object} model.Error
// @Failure 500 {object} model.Error
// @Router /alert/{id}/resolve [post]
func (e AlertEndpoint) handleResolvePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		alertId := request.Path(r, "id")
		if alertId == "" {
			respond.JSON(w, http.StatusBadRequest,
				model.Error{Code: http.StatusBadRequest, Message: "missing id parameter"})
			return
		}

		alert, err := e.alertService.GetById(r.Context(), alertId)
		if err != nil {
			code, errModel := ParseServiceError(err)
			respond.JSON(w, code, errModel)
			return
		}

		sessionData := e.session.GetData(r.Context())
		if sessionData.ResolvedAlerts == nil {
			sessionData.ResolvedAlerts = make(map[string]bool)
		}
		sessionData.ResolvedAlerts[alert.Id] = true
		e.session.SetData(r.Context(), sessionData)

		alert.Resolved = true
		respond.JSON(w, http.StatusOK, model.NewSecurityAlert(alert))
	}
}

// handleDismissPost returns a gorm Handler function.
//
// @ID alert_handleDismissPost
// @Tags Alert
// @Summary Hide an alert for the current session.
// @Produce json
// @Param id path string true "The alert identifier"
// @Success 200 {object} model.SecurityAlert
// @Failure 400 {object} model.Error
// @Failure 404 {object} model.Error
// @Failure 500 {object} model.Error
// @Router /alert/{id}/dismiss [post]
func (e AlertEndpoint) handleDismissPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		alertId := request.Path(r, "id")
		if alertId == "" {
			respond.JSON(w, http.StatusBadRequest,
				model.Error{Code: http.StatusBadRequest, Message: "missing id parameter"})
			return
		}

		alert, err := e.alertService.GetById(r.Context(), alertId)
		if err != nil {
			code, errModel := ParseServiceError(err)
			respond.JSON(w, code, errModel)
			return
		}

		sessionData := e.session.GetData(r.Context())
		if sessionData.DismissedAlerts == nil {
			sessionData.DismissedAlerts = make(map[string]bool)
		}
		sessionData.DismissedAlerts[alert.Id] = true
		e.session.SetData(r.Context(), sessionData)

		alert.Dismissed = true
		respond.JSON(w, http.StatusOK, model.NewSecurityAlert(alert))
	}
}
