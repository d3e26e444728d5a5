package handlers

import (
	"context"
	"net/http"

	"github.com/go-pkgz/routegroup"

	"github.com/argus-sec/argus-portal/internal/app/api/core/request"
	"github.com/argus-sec/argus-portal/internal/app/api/core/respond"
	"github.com/argus-sec/argus-portal/internal/app/api/v0/model"
	"github.com/argus-sec/argus-portal/internal/domain"
)

type AuditService interface {
	// GetAllAudits returns all audits with their asset associations.
	GetAllAudits(ctx context.Context) ([]domain.Audit, error)
	// GetAudit returns a single audit by its identifier.
	GetAudit(ctx context.Context, id domain.AuditIdentifier) (*domain.Audit, error)
	// CreateAudit creates a new audit in the scheduled state.
	CreateAudit(ctx context.Context, audit *domain.Audit, assetIds []domain.AssetIdentifier) (*domain.Audit, error)
	// UpdateAudit applies a partial update to the audit.
	UpdateAudit(ctx context.Context, id domain.AuditIdentifier, patch *domain.AuditPatch) (*domain.Audit, error)
	// DeleteAudit removes the audit and its asset associations.
	DeleteAudit(ctx context.Context, id domain.AuditIdentifier) error
	// StartAudit transitions the audit to the in_progress state.
	StartAudit(ctx context.Context, id domain.AuditIdentifier) (*domain.Audit, error)
	// CompleteAudit transitions the audit to the completed state.
	CompleteAudit(ctx context.Context, id domain.AuditIdentifier) (*domain.Audit, error)
}

type AuditEndpoint struct {
	auditService AuditService
	validator    Validator
}

func NewAuditEndpoint(auditService AuditService, validator Validator) AuditEndpoint {
	return AuditEndpoint{
		auditService: auditService,
		validator:    validator,
	}
}

func (e AuditEndpoint) GetName() string {
	return "AuditEndpoint"
}

func (e AuditEndpoint) RegisterRoutes(g *routegroup.Bundle) {
	apiGroup := g.Mount("/audit")

	apiGroup.HandleFunc("GET /all", e.handleAllGet())
	apiGroup.HandleFunc("GET /{id}", e.handleSingleGet())
	apiGroup.HandleFunc("POST /new", e.handleCreatePost())
	apiGroup.HandleFunc("PUT /{id}", e.handleUpdatePut())
	apiGroup.HandleFunc("DELETE /{id}", e.handleDelete())
	apiGroup.HandleFunc("POST /{id}/start", e.handleStartPost())
	apiGroup.HandleFunc("POST /{id}/complete", e.handleCompletePost())
}

// handleAllGet returns a gorm Handler function.
//
// @ID audit_handleAllGet
// @Tags Audit
// @Summary Get all audits.
// @Produce json
// @Success 200 {object} []model.Audit
// @Failure 500 {object} model.Error
// @Router /audit/all [get]
func (e AuditEndpoint) handleAllGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		audits, err := e.auditService.GetAllAudits(r.Context())
		if err != nil {
			code, errModel := ParseServiceError(err)
			respond.JSON(w, code, errModel)
			return
		}

		respond.JSON(w, http.StatusOK, model.NewAudits(audits))
	}
}

// handleSingleGet returns a gorm Handler function.
//
// @ID audit_handleSingleGet
// @Tags Audit
// @Summary Get a single audit.
// @Produce json
// @Param id path string true "The audit identifier"
// @Success 200 {object} model.Audit
// @Failure 400 {object} model.Error
// @Failure 404 {object} model.Error
// @Failure 500 {object} model.Error
// @Router /audit/{id} [get]
func (e AuditEndpoint) handleSingleGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auditId, err := request.PathUint(r, "id")
		if err != nil {
			respond.JSON(w, http.StatusBadRequest,
				model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}

		audit, err := e.auditService.GetAudit(r.Context(), domain.AuditIdentifier(auditId))
		if err != nil {
			code, errModel := ParseServiceError(err)
			respond.JSON(w, code, errModel)
			return
		}

		respond.JSON(w, http.StatusOK, model.NewAudit(audit))
	}
}

// handleCreatePost returns a gorm Handler function.
//
// @ID audit_handleCreatePost
// @Tags Audit
// @Summary Create a new audit. The audit always starts out as scheduled.
// @Produce json
// @Param request body model.Audit true "The audit data"
// @Success 201 {object} model.Audit
// @Failure 400 {object} model.Error
// @Failure 500 {object} model.Error
// @Router /audit/new [post]
func (e AuditEndpoint) handleCreatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var a model.Audit
		if err := request.BodyJson(r, &a); err != nil {
			respond.JSON(w, http.StatusBadRequest,
				model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}
		if err := e.validator.Struct(a); err != nil {
			respond.JSON(w, http.StatusBadRequest,
				model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}

		newAudit, err := e.auditService.CreateAudit(r.Context(), model.NewDomainAudit(&a),
			model.NewDomainAuditAssetIds(&a))
		if err != nil {
			code, errModel := ParseServiceError(err)
			respond.JSON(w, code, errModel)
			return
		}

		respond.JSON(w, http.StatusCreated, model.NewAudit(newAudit))
	}
}

// handleUpdatePut returns a gorm Handler function.
//
// @ID audit_handleUpdatePut
// @Tags Audit
// @Summary Update an audit. Absent fields keep their current value.
// @Produce json
// @Param id path string true "The audit identifier"
// @Param request body model.AuditUpdate true "The changed audit fields"
// @Success 200 {object} model.Audit
// @Failure 400 {object} model.Error
// @Failure 404 {object} model.Error
// @Failure 500 {object} model.Error
// @Router /audit/{id} [put]
func (e AuditEndpoint) handleUpdatePut() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auditId, err := request.PathUint(r, "id")
		if err != nil {
			respond.JSON(w, http.StatusBadRequest,
				model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}

		var u model.AuditUpdate
		if err := request.BodyJson(r, &u); err != nil {
			respond.JSON(w, http.StatusBadRequest,
				model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}
		if err := e.validator.Struct(u); err != nil {
			respond.JSON(w, http.StatusBadRequest,
				model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}

		updatedAudit, err := e.auditService.UpdateAudit(r.Context(), domain.AuditIdentifier(auditId),
			model.NewDomainAuditPatch(&u))
		if err != nil {
			code, errModel := ParseServiceError(err)
			respond.JSON(w, code, errModel)
			return
		}

		respond.JSON(w, http.StatusOK, model.NewAudit(updatedAudit))
	}
}

// handleDelete returns a gorm Handler function.
//
// @ID audit_handleDelete
// @Tags Audit
// @Summary Delete the audit record.
// @Produce json
// @Param id path string true "The audit identifier"
// @Success 200 "No Error"
// @Failure 400 {object} model.Error
// @Failure 404 {object} model.Error
// @Failure 500 {object} model.Error
// @Router /audit/{id} [delete]
func (e AuditEndpoint) handleDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auditId, err := request.PathUint(r, "id")
		if err != nil {
			respond.JSON(w, http.StatusBadRequest,
				model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}

		if err := e.auditService.DeleteAudit(r.Context(), domain.AuditIdentifier(auditId)); err != nil {
			code, errModel := ParseServiceError(err)
			respond.JSON(w, code, errModel)
			return
		}

		respond.Status(w, http.StatusOK)
	}
}

// handleStartPost returns a gorm Handler function.
//
// @ID audit_handleStartPost
// @Tags Audit
// @Summary Start a scheduled audit.
// @Produce json
// @Param id path string true "The audit identifier"
// @Success 200 {object} model.Audit
// @Failure 400 {object} model.Error
// @Failure 404 {object} model.Error
// @Failure 500 {object} model.Error
// @Router /audit/{id}/start [post]
func (e AuditEndpoint) handleStartPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auditId, err := request.PathUint(r, "id")
		if err != nil {
			respond.JSON(w, http.StatusBadRequest,
				model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}

		startedAudit, err := e.auditService.StartAudit(r.Context(), domain.AuditIdentifier(auditId))
		if err != nil {
			code, errModel := ParseServiceError(err)
			respond.JSON(w, code, errModel)
			return
		}

		respond.JSON(w, http.StatusOK, model.NewAudit(startedAudit))
	}
}

// handleCompletePost returns a gorm Handler function.
//
// @ID audit_handleCompletePost
// @Tags Audit
// @Summary Complete a running audit.
// @Produce json
// @Param id path string true "The audit identifier"
// @Success 200 {object} model.Audit
// @Failure 400 {object} model.Error
// @Failure 404 {object} model.Error
// @Failure 500 {object} model.Error
// @Router /audit/{id}/complete [post]
func (e AuditEndpoint) handleCompletePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auditId, err := request.PathUint(r, "id")
		if err != nil {
			respond.JSON(w, http.StatusBadRequest,
				model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}

		completedAudit, err := e.auditService.CompleteAudit(r.Context(), domain.AuditIdentifier(auditId))
		if err != nil {
			code, errModel := ParseServiceError(err)
			respond.JSON(w, code, errModel)
			return
		}

		respond.JSON(w, http.StatusOK, model.NewAudit(completedAudit))
	}
}
