package models

import (
	"time"

	"github.com/argus-sec/argus-portal/internal"
	"github.com/argus-sec/argus-portal/internal/domain"
)

// Audit represents an audit model for webhooks. For details about the fields, see the domain.Audit struct.
type Audit struct {
	CreatedBy string    `json:"CreatedBy"`
	UpdatedBy string    `json:"UpdatedBy"`
	CreatedAt time.Time `json:"CreatedAt"`
	UpdatedAt time.Time `json:"UpdatedAt"`

	Id            uint       `json:"Id"`
	Title         string     `json:"Title"`
	Type          string     `json:"Type"`
	Scope         []string   `json:"Scope"`
	AuditorId     uint       `json:"AuditorId"`
	AuditeeId     uint       `json:"AuditeeId"`
	Status        string     `json:"Status"`
	ScheduledDate time.Time  `json:"ScheduledDate"`
	CompletedDate *time.Time `json:"CompletedDate,omitempty"`
	Frequency     string     `json:"Frequency,omitempty"`

	AssetIds []uint `json:"AssetIds"`
}

// NewAudit creates a new Audit model from a domain.Audit
func NewAudit(src domain.Audit) Audit {
	assetIds := internal.Map(src.Assets, func(asset domain.Asset) uint {
		return uint(asset.Id)
	})

	return Audit{
		CreatedBy:     src.CreatedBy,
		UpdatedBy:     src.UpdatedBy,
		CreatedAt:     src.CreatedAt,
		UpdatedAt:     src.UpdatedAt,
		Id:            uint(src.Id),
		Title:         src.Title,
		Type:          src.Type,
		Scope:         src.Scope,
		AuditorId:     uint(src.AuditorId),
		AuditeeId:     uint(src.AuditeeId),
		Status:        string(src.Status),
		ScheduledDate: src.ScheduledDate,
		CompletedDate: src.CompletedDate,
		Frequency:     src.Frequency,
		AssetIds:      assetIds,
	}
}
