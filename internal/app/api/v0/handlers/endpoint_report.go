package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/go-pkgz/routegroup"

	"github.com/argus-sec/argus-portal/internal"
	"github.com/argus-sec/argus-portal/internal/app/api/core/request"
	"github.com/argus-sec/argus-portal/internal/app/api/core/respond"
	"github.com/argus-sec/argus-portal/internal/app/api/v0/model"
	"github.com/argus-sec/argus-portal/internal/domain"
)

type ReportService interface {
	// GetAllReports returns all reports, newest first.
	GetAllReports(ctx context.Context) ([]domain.Report, error)
	// GetReport returns a single report by its identifier.
	GetReport(ctx context.Context, id domain.ReportIdentifier) (*domain.Report, error)
	// CreateReport registers a report record without generating a document.
	CreateReport(ctx context.Context, report *domain.Report) (*domain.Report, error)
	// GenerateReport aggregates the current data into a new report document.
	GenerateReport(ctx context.Context, reportType domain.ReportType, auditId *domain.AuditIdentifier) (
		*domain.Report, error)
	// DownloadReport returns the report and a reader for the stored document.
	// The reader is nil if no document exists for the report.
	DownloadReport(ctx context.Context, id domain.ReportIdentifier) (*domain.Report, io.ReadCloser, error)
	// DeleteReport removes the report record and its stored document.
	DeleteReport(ctx context.Context, id domain.ReportIdentifier) error
}

type ReportEndpoint struct {
	reportService ReportService
	validator     Validator
}

func NewReportEndpoint(reportService ReportService, validator Validator) ReportEndpoint {
	return ReportEndpoint{
		reportService: reportService,
		validator:     validator,
	}
}

func (e ReportEndpoint) GetName() string {
	return "ReportEndpoint"
}

func (e ReportEndpoint) RegisterRoutes(g *routegroup.Bundle) {
	apiGroup := g.Mount("/report")

	apiGroup.HandleFunc("GET /all", e.handleAllGet())
	apiGroup.HandleFunc("GET /{id}", e.handleSingleGet())
	apiGroup.HandleFunc("POST /new", e.handleCreatePost())
	apiGroup.HandleFunc("POST /generate", e.handleGeneratePost())
	apiGroup.HandleFunc("GET /download/{id}", e.handleDownloadGet())
	apiGroup.HandleFunc("DELETE /{id}", e.handleDelete())
}

// handleAllGet returns a gorm Handler function.
//
// @ID report_handleAllGet
// @Tags Report
// @Summary Get all report records.
// @Produce json
// @Success 200 {object} []model.Report
// @Failure 500 {object} model.Error
// @Router /report/all [get]
func (e ReportEndpoint) handleAllGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reports, err := e.reportService.GetAllReports(r.Context())
		if err != nil {
			code, errModel := ParseServiceError(err)
			respond.JSON(w, code, errModel)
			return
		}

		respond.JSON(w, http.StatusOK, model.NewReports(reports))
	}
}

// handleSingleGet returns a gorm Handler function.
//
// @ID report_handleSingleGet
// @Tags Report
// @Summary Get a single report record.
// @Produce json
// @Param id path string true "The report identifier"
// @Success 200 {object} model.Report
// @Failure 400 {object} model.Error
// @Failure 404 {object} model.Error
// @Failure 500 {object} model.Error
// @Router /report/{id} [get]
func (e ReportEndpoint) handleSingleGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reportId, err := request.PathUint(r, "id")
		if err != nil {
			respond.JSON(w, http.StatusBadRequest,
				model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}

		report, err := e.reportService.GetReport(r.Context(), domain.ReportIdentifier(reportId))
		if err != nil {
			code, errModel := ParseServiceError(err)
			respond.JSON(w, code, errModel)
			return
		}

		respond.JSON(w, http.StatusOK, model.NewReport(report))
	}
}

// handleCreatePost returns a gorm Handler function.
//
// @ID report_handleCreatePost
// @Tags Report
// @Summary Register a report record without generating a document.
// @Produce json
// @Param request body model.Report true "The report data"
// @Success 201 {object} model.Report
// @Failure 400 {object} model.Error
// @Failure 500 {object} model.Error
// @Router /report/new [post]
func (e ReportEndpoint) handleCreatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rep model.Report
		if err := request.BodyJson(r, &rep); err != nil {
			respond.JSON(w, http.StatusBadRequest,
				model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}
		if err := e.validator.Struct(rep); err != nil {
			respond.JSON(w, http.StatusBadRequest,
				model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}

		domainReport := model.NewDomainReport(&rep)
		if domainReport.GeneratedBy == "" {
			domainReport.GeneratedBy = domain.GetUserInfo(r.Context()).UserId()
		}

		newReport, err := e.reportService.CreateReport(r.Context(), domainReport)
		if err != nil {
			code, errModel := ParseServiceError(err)
			respond.JSON(w, code, errModel)
			return
		}

		respond.JSON(w, http.StatusCreated, model.NewReport(newReport))
	}
}

// handleGeneratePost returns a gorm Handler function.
//
// @ID report_handleGeneratePost
// @Tags Report
// @Summary Generate a new report document of the given type.
// @Produce json
// @Param request body model.ReportGenerationRequest true "The generation request"
// @Success 201 {object} model.Report
// @Failure 400 {object} model.Error
// @Failure 500 {object} model.Error
// @Router /report/generate [post]
func (e ReportEndpoint) handleGeneratePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req model.ReportGenerationRequest
		if err := request.BodyJson(r, &req); err != nil {
			respond.JSON(w, http.StatusBadRequest,
				model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}
		if err := e.validator.Struct(req); err != nil {
			respond.JSON(w, http.StatusBadRequest,
				model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}

		var auditId *domain.AuditIdentifier
		if req.AuditId != nil {
			id := domain.AuditIdentifier(*req.AuditId)
			auditId = &id
		}

		generatedReport, err := e.reportService.GenerateReport(r.Context(), domain.ReportType(req.Type), auditId)
		if err != nil {
			code, errModel := ParseServiceError(err)
			respond.JSON(w, code, errModel)
			return
		}

		respond.JSON(w, http.StatusCreated, model.NewReport(generatedReport))
	}
}

// handleDownloadGet returns a gorm Handler function.
//
// @ID report_handleDownloadGet
// @Tags Report
// @Summary Download the rendered report document.
// @Produce application/pdf
// @Param id path string true "The report identifier"
// @Success 200 {file} binary "The report document"
// @Failure 400 {object} model.Error
// @Failure 404 {object} model.Error
// @Failure 500 {object} model.Error
// @Router /report/download/{id} [get]
func (e ReportEndpoint) handleDownloadGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reportId, err := request.PathUint(r, "id")
		if err != nil {
			respond.JSON(w, http.StatusBadRequest,
				model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}

		report, document, err := e.reportService.DownloadReport(r.Context(), domain.ReportIdentifier(reportId))
		if err != nil {
			code, errModel := ParseServiceError(err)
			respond.JSON(w, code, errModel)
			return
		}
		if document == nil {
			respond.JSON(w, http.StatusNotFound,
				model.Error{Code: http.StatusNotFound, Message: "report document not found"})
			return
		}
		defer internal.LogClose(document)

		respond.AttachmentReader(w, http.StatusOK, report.FilePath, "application/pdf", int(report.FileSize), document)
	}
}

// handleDelete returns a gorm Handler function.
//
// @ID report_handleDelete
// @Tags Report
// @Summary Delete the report record together with its stored document.
// @Produce json
// @Param id path string true "The report identifier"
// @Success 200 "No Error"
// @Failure 400 {object} model.Error
// @Failure 404 {object} model.Error
// @Failure 500 {object} model.Error
// @Router /report/{id} [delete]
func (e ReportEndpoint) handleDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reportId, err := request.PathUint(r, "id")
		if err != nil {
			respond.JSON(w, http.StatusBadRequest,
				model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}

		if err := e.reportService.DeleteReport(r.Context(), domain.ReportIdentifier(reportId)); err != nil {
			code, errModel := ParseServiceError(err)
			respond.JSON(w, code, errModel)
			return
		}

		respond.Status(w, http.StatusOK)
	}
}
