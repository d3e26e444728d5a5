package model

import (
	"encoding/json"
	"time"

	"github.com/argus-sec/argus-portal/internal/domain"
)

// Report is the wire representation of a report record. The data field holds
// the aggregated payload of generated reports, its shape depends on the type.
type Report struct {
	Id            uint            `json:"id"`
	Title         string          `json:"title" validate:"required"`
	Type          string          `json:"type" validate:"required"`
	AuditId       *uint           `json:"auditId"`
	GeneratedBy   string          `json:"generatedBy"`
	Status        string          `json:"status"`
	FilePath      string          `json:"filePath"`
	FileSize      int64           `json:"fileSize"`
	Format        string          `json:"format"`
	GeneratedDate time.Time       `json:"generatedDate"`
	Data          json.RawMessage `json:"data,omitempty"`
}

// ReportGenerationRequest is the payload of the generate endpoint.
type ReportGenerationRequest struct {
	Type    string `json:"type" validate:"required"`
	AuditId *uint  `json:"auditId"`
}

// NewReport creates a REST API Report from a domain Report.
func NewReport(src *domain.Report) *Report {
	var auditId *uint
	if src.AuditId != nil {
		id := uint(*src.AuditId)
		auditId = &id
	}

	return &Report{
		Id:            uint(src.Id),
		Title:         src.Title,
		Type:          string(src.Type),
		AuditId:       auditId,
		GeneratedBy:   src.GeneratedBy,
		Status:        string(src.Status),
		FilePath:      src.FilePath,
		FileSize:      src.FileSize,
		Format:        src.Format,
		GeneratedDate: src.GeneratedDate,
		Data:          src.Data,
	}
}

// NewReports creates a slice of REST API Reports from a slice of domain Reports.
func NewReports(src []domain.Report) []Report {
	dst := make([]Report, 0, len(src))
	for i := range src {
		dst = append(dst, *NewReport(&src[i]))
	}
	return dst
}

// NewDomainReport creates a domain Report from the creation payload.
// Generation specific fields like the file path are ignored, those are only
// set by the report generator.
func NewDomainReport(src *Report) *domain.Report {
	var auditId *domain.AuditIdentifier
	if src.AuditId != nil {
		id := domain.AuditIdentifier(*src.AuditId)
		auditId = &id
	}

	return &domain.Report{
		Title:       src.Title,
		Type:        domain.ReportType(src.Type),
		AuditId:     auditId,
		GeneratedBy: src.GeneratedBy,
		Status:      domain.ReportStatus(src.Status),
		Format:      src.Format,
	}
}
