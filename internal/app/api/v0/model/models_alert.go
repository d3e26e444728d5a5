package model

import (
	"time"

	"github.com/argus-sec/argus-portal/internal/domain"
)

// SecurityAlert is the wire representation of a derived alert. Alerts are
// never persisted, the resolved and dismissed flags reflect the state of the
// requesting session.
type SecurityAlert struct {
	Id          string    `json:"id"`
	Severity    string    `json:"severity"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	Resolved    bool      `json:"resolved"`
	Dismissed   bool      `json:"dismissed"`
}

// NewSecurityAlert creates a REST API SecurityAlert from a domain SecurityAlert.
func NewSecurityAlert(src *domain.SecurityAlert) *SecurityAlert {
	return &SecurityAlert{
		Id:          src.Id,
		Severity:    string(src.Severity),
		Title:       src.Title,
		Description: src.Description,
		Timestamp:   src.Timestamp,
		Resolved:    src.Resolved,
		Dismissed:   src.Dismissed,
	}
}

// NewSecurityAlerts creates a slice of REST API SecurityAlerts from a slice
// of domain SecurityAlerts.
func NewSecurityAlerts(src []domain.SecurityAlert) []SecurityAlert {
	dst := make([]SecurityAlert, 0, len(src))
	for i := range src {
		dst = append(dst, *NewSecurityAlert(&src[i]))
	}
	return dst
}
