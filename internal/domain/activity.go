package domain

import "time"

type ActivityAction string

const (
	ActivityActionCreate   ActivityAction = "create"
	ActivityActionUpdate   ActivityAction = "update"
	ActivityActionDelete   ActivityAction = "delete"
	ActivityActionStart    ActivityAction = "start"
	ActivityActionComplete ActivityAction = "complete"
	ActivityActionGenerate ActivityAction = "generate"
)

const (
	ActivityEntityAudit  = "audit"
	ActivityEntityReport = "report"
)

// ActivityEntry is a single append-only audit-trail record. Entries are
// written once and never updated or deleted.
type ActivityEntry struct {
	UniqueId  uint64    `gorm:"primaryKey;autoIncrement:true;column:id"`
	CreatedAt time.Time `gorm:"column:created_at;index:idx_act_created"`

	ContextUser string `gorm:"column:context_user"` // empty if no user was attached to the request context

	Action     ActivityAction `gorm:"column:action;index:idx_act_action"`
	EntityType string         `gorm:"column:entity_type;index:idx_act_entity"`
	EntityId   string         `gorm:"column:entity_id"`

	Description string `gorm:"column:description"`
}
