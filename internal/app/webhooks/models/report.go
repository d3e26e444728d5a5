package models

import (
	"encoding/json"
	"time"

	"github.com/argus-sec/argus-portal/internal/domain"
)

// Report represents a report model for webhooks. For details about the fields, see the domain.Report struct.
type Report struct {
	CreatedBy string    `json:"CreatedBy"`
	UpdatedBy string    `json:"UpdatedBy"`
	CreatedAt time.Time `json:"CreatedAt"`
	UpdatedAt time.Time `json:"UpdatedAt"`

	Id            uint            `json:"Id"`
	Title         string          `json:"Title"`
	Type          string          `json:"Type"`
	AuditId       *uint           `json:"AuditId,omitempty"`
	GeneratedBy   string          `json:"GeneratedBy"`
	Status        string          `json:"Status"`
	Format        string          `json:"Format"`
	FileSize      int64           `json:"FileSize"`
	GeneratedDate time.Time       `json:"GeneratedDate"`
	Data          json.RawMessage `json:"Data,omitempty"`
}

// NewReport creates a new Report model from a domain.Report
func NewReport(src domain.Report) Report {
	var auditId *uint
	if src.AuditId != nil {
		id := uint(*src.AuditId)
		auditId = &id
	}

	return Report{
		CreatedBy:     src.CreatedBy,
		UpdatedBy:     src.UpdatedBy,
		CreatedAt:     src.CreatedAt,
		UpdatedAt:     src.UpdatedAt,
		Id:            uint(src.Id),
		Title:         src.Title,
		Type:          string(src.Type),
		AuditId:       auditId,
		GeneratedBy:   src.GeneratedBy,
		Status:        string(src.Status),
		Format:        src.Format,
		FileSize:      src.FileSize,
		GeneratedDate: src.GeneratedDate,
		Data:          src.Data,
	}
}
