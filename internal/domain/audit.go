package domain

import (
	"strconv"
	"time"
)

type AuditIdentifier uint

func (i AuditIdentifier) String() string {
	return strconv.FormatUint(uint64(i), 10)
}

type AuditStatus string

const (
	AuditStatusScheduled  AuditStatus = "scheduled"
	AuditStatusInProgress AuditStatus = "in_progress"
	AuditStatusCompleted  AuditStatus = "completed"
)

// Audit is a scheduled or running assessment engagement against a set of
// assets. The status follows a one-way lifecycle:
// scheduled -> in_progress -> completed.
type Audit struct {
	BaseModel

	Id            AuditIdentifier `gorm:"primaryKey;autoIncrement:true;column:id"`
	Title         string          `gorm:"column:title"`
	Type          string          `gorm:"column:type"`
	Scope         StringList      `gorm:"column:scope"`
	AuditorId     UserIdentifier  `gorm:"column:auditor_id;index:idx_audit_auditor"`
	AuditeeId     UserIdentifier  `gorm:"column:auditee_id;index:idx_audit_auditee"`
	Status        AuditStatus     `gorm:"column:status;index:idx_audit_status"`
	ScheduledDate time.Time       `gorm:"column:scheduled_date"`
	CompletedDate *time.Time      `gorm:"column:completed_date"` // non-nil exactly while status is completed
	Frequency     string          `gorm:"column:frequency"`
	Documents     StringList      `gorm:"column:documents"`

	Auditor *User `gorm:"foreignKey:AuditorId;references:Id"`
	Auditee *User `gorm:"foreignKey:AuditeeId;references:Id"`

	Assets []Asset `gorm:"many2many:audit_assets;"`
}

// CanStart reports whether the audit may transition to the in_progress status.
func (a *Audit) CanStart() bool {
	return a.Status == AuditStatusScheduled
}

// CanComplete reports whether the audit may transition to the completed status.
func (a *Audit) CanComplete() bool {
	return a.Status == AuditStatusInProgress
}

func (a *Audit) IsCompleted() bool {
	return a.Status == AuditStatusCompleted
}

// AssetIds returns the identifiers of all associated assets.
func (a *Audit) AssetIds() []AssetIdentifier {
	ids := make([]AssetIdentifier, 0, len(a.Assets))
	for _, asset := range a.Assets {
		ids = append(ids, asset.Id)
	}
	return ids
}

// AuditPatch enumerates the fields of an audit that can be changed through a
// partial update. Nil fields are left untouched. The status is excluded on
// purpose, it only changes through the lifecycle transitions.
type AuditPatch struct {
	Title         *string
	Type          *string
	Scope         *StringList
	AuditorId     *UserIdentifier
	AuditeeId     *UserIdentifier
	ScheduledDate *time.Time
	Frequency     *string
	Documents     *StringList
	AssetIds      *[]AssetIdentifier
}

// Empty reports whether the patch contains no changes at all.
func (p *AuditPatch) Empty() bool {
	return p.Title == nil && p.Type == nil && p.Scope == nil &&
		p.AuditorId == nil && p.AuditeeId == nil && p.ScheduledDate == nil &&
		p.Frequency == nil && p.Documents == nil && p.AssetIds == nil
}

// Apply copies all non-nil patch fields onto the audit. Asset associations
// are not touched here, they are replaced by the persistence layer.
func (p *AuditPatch) Apply(a *Audit) {
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Type != nil {
		a.Type = *p.Type
	}
	if p.Scope != nil {
		a.Scope = *p.Scope
	}
	if p.AuditorId != nil {
		a.AuditorId = *p.AuditorId
	}
	if p.AuditeeId != nil {
		a.AuditeeId = *p.AuditeeId
	}
	if p.ScheduledDate != nil {
		a.ScheduledDate = *p.ScheduledDate
	}
	if p.Frequency != nil {
		a.Frequency = *p.Frequency
	}
	if p.Documents != nil {
		a.Documents = *p.Documents
	}
}
