package domain

import (
	"strconv"
	"time"
)

type VulnerabilityIdentifier uint

func (i VulnerabilityIdentifier) String() string {
	return strconv.FormatUint(uint64(i), 10)
}

type VulnerabilitySeverity string

const (
	VulnerabilitySeverityCritical VulnerabilitySeverity = "critical"
	VulnerabilitySeverityHigh     VulnerabilitySeverity = "high"
	VulnerabilitySeverityMedium   VulnerabilitySeverity = "medium"
	VulnerabilitySeverityLow      VulnerabilitySeverity = "low"
)

type VulnerabilityStatus string

const (
	VulnerabilityStatusOpen       VulnerabilityStatus = "open"
	VulnerabilityStatusInProgress VulnerabilityStatus = "in_progress"
	VulnerabilityStatusResolved   VulnerabilityStatus = "resolved"
	VulnerabilityStatusAccepted   VulnerabilityStatus = "accepted"
)

// Vulnerability is a tracked security weakness. The records are fed by an
// external scanner or ticketing process; the portal reads them for report
// aggregation and the dashboard.
type Vulnerability struct {
	BaseModel

	Id             VulnerabilityIdentifier `gorm:"primaryKey;autoIncrement:true;column:id"`
	Title          string                  `gorm:"column:title"`
	Severity       VulnerabilitySeverity   `gorm:"column:severity;index:idx_vuln_severity"`
	Status         VulnerabilityStatus     `gorm:"column:status;index:idx_vuln_status"`
	AssetId        *AssetIdentifier        `gorm:"column:asset_id;index:idx_vuln_asset"`
	DiscoveredDate time.Time               `gorm:"column:discovered_date"`
	ResolvedDate   *time.Time              `gorm:"column:resolved_date"`
}

// IsOpen reports whether the vulnerability still needs work, meaning it is
// neither resolved nor accepted.
func (v *Vulnerability) IsOpen() bool {
	return v.Status == VulnerabilityStatusOpen || v.Status == VulnerabilityStatusInProgress
}
