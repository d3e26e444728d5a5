package domain

import "time"

type AlertSeverity string

const (
	AlertSeverityCritical AlertSeverity = "critical"
	AlertSeverityWarning  AlertSeverity = "warning"
	AlertSeverityInfo     AlertSeverity = "info"
)

// SecurityAlert is a derived dashboard item, computed from recent activity
// entries on every read. Alerts are never persisted; the resolved and
// dismissed flags only live in the session of the viewing client.
type SecurityAlert struct {
	Id          string
	Severity    AlertSeverity
	Title       string
	Description string
	Timestamp   time.Time
	Resolved    bool
	Dismissed   bool
}
