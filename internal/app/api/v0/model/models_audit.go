package model

import (
	"time"

	"github.com/argus-sec/argus-portal/internal/domain"
)

// Audit is the wire representation of an assessment engagement. It is used
// for responses and as creation payload; updates use AuditUpdate instead.
type Audit struct {
	Id            uint       `json:"id"`
	Title         string     `json:"title" validate:"required"`
	Type          string     `json:"type" validate:"required"`
	Scope         []string   `json:"scope"`
	AuditorId     uint       `json:"auditorId" validate:"required"`
	AuditeeId     uint       `json:"auditeeId"`
	Status        string     `json:"status"`
	ScheduledDate time.Time  `json:"scheduledDate"`
	CompletedDate *time.Time `json:"completedDate"`
	Frequency     string     `json:"frequency"`
	Documents     []string   `json:"documents"`
	AssetIds      []uint     `json:"assetIds"`

	Auditor *User `json:"auditor,omitempty"`
	Auditee *User `json:"auditee,omitempty"`
}

// AuditUpdate is the payload of a partial audit update. Absent fields are
// left untouched; the status never changes through an update, only through
// the start and complete transitions.
type AuditUpdate struct {
	Title         *string    `json:"title"`
	Type          *string    `json:"type"`
	Scope         *[]string  `json:"scope"`
	AuditorId     *uint      `json:"auditorId"`
	AuditeeId     *uint      `json:"auditeeId"`
	ScheduledDate *time.Time `json:"scheduledDate"`
	Frequency     *string    `json:"frequency"`
	Documents     *[]string  `json:"documents"`
	AssetIds      *[]uint    `json:"assetIds"`
}

// NewAudit creates a REST API Audit from a domain Audit.
func NewAudit(src *domain.Audit) *Audit {
	assetIds := make([]uint, 0, len(src.Assets))
	for _, id := range src.AssetIds() {
		assetIds = append(assetIds, uint(id))
	}

	return &Audit{
		Id:            uint(src.Id),
		Title:         src.Title,
		Type:          src.Type,
		Scope:         []string(src.Scope),
		AuditorId:     uint(src.AuditorId),
		AuditeeId:     uint(src.AuditeeId),
		Status:        string(src.Status),
		ScheduledDate: src.ScheduledDate,
		CompletedDate: src.CompletedDate,
		Frequency:     src.Frequency,
		Documents:     []string(src.Documents),
		AssetIds:      assetIds,
		Auditor:       NewUser(src.Auditor),
		Auditee:       NewUser(src.Auditee),
	}
}

// NewAudits creates a slice of REST API Audits from a slice of domain Audits.
func NewAudits(src []domain.Audit) []Audit {
	dst := make([]Audit, 0, len(src))
	for i := range src {
		dst = append(dst, *NewAudit(&src[i]))
	}
	return dst
}

// NewDomainAudit creates a domain Audit from the creation payload. Lifecycle
// fields like the status are ignored, the service decides those.
func NewDomainAudit(src *Audit) *domain.Audit {
	return &domain.Audit{
		Title:         src.Title,
		Type:          src.Type,
		Scope:         domain.StringList(src.Scope),
		AuditorId:     domain.UserIdentifier(src.AuditorId),
		AuditeeId:     domain.UserIdentifier(src.AuditeeId),
		ScheduledDate: src.ScheduledDate,
		Frequency:     src.Frequency,
		Documents:     domain.StringList(src.Documents),
	}
}

// NewDomainAuditAssetIds converts the asset references of the creation
// payload into domain identifiers.
func NewDomainAuditAssetIds(src *Audit) []domain.AssetIdentifier {
	ids := make([]domain.AssetIdentifier, 0, len(src.AssetIds))
	for _, id := range src.AssetIds {
		ids = append(ids, domain.AssetIdentifier(id))
	}
	return ids
}

// NewDomainAuditPatch creates a domain AuditPatch from the update payload.
func NewDomainAuditPatch(src *AuditUpdate) *domain.AuditPatch {
	patch := &domain.AuditPatch{
		Title:         src.Title,
		Type:          src.Type,
		ScheduledDate: src.ScheduledDate,
		Frequency:     src.Frequency,
	}

	if src.Scope != nil {
		scope := domain.StringList(*src.Scope)
		patch.Scope = &scope
	}
	if src.AuditorId != nil {
		id := domain.UserIdentifier(*src.AuditorId)
		patch.AuditorId = &id
	}
	if src.AuditeeId != nil {
		id := domain.UserIdentifier(*src.AuditeeId)
		patch.AuditeeId = &id
	}
	if src.Documents != nil {
		documents := domain.StringList(*src.Documents)
		patch.Documents = &documents
	}
	if src.AssetIds != nil {
		ids := make([]domain.AssetIdentifier, 0, len(*src.AssetIds))
		for _, id := range *src.AssetIds {
			ids = append(ids, domain.AssetIdentifier(id))
		}
		patch.AssetIds = &ids
	}

	return patch
}
