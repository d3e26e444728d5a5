package domain

import (
	"encoding/json"
	"strconv"
	"time"
)

type ReportIdentifier uint

func (i ReportIdentifier) String() string {
	return strconv.FormatUint(uint64(i), 10)
}

type ReportType string

const (
	ReportTypeAuditSummary     ReportType = "audit_summary"
	ReportTypeVulnerability    ReportType = "vulnerability_report"
	ReportTypeCompliance       ReportType = "compliance_report"
	ReportTypeExecutiveSummary ReportType = "executive_summary"
)

// ReportTypeLabel returns the human readable title prefix for a report type.
// Unknown types map to a generic label.
func ReportTypeLabel(t ReportType) string {
	switch t {
	case ReportTypeAuditSummary:
		return "Audit Summary"
	case ReportTypeVulnerability:
		return "Vulnerability Report"
	case ReportTypeCompliance:
		return "Compliance Report"
	case ReportTypeExecutiveSummary:
		return "Executive Summary"
	default:
		return "Report"
	}
}

type ReportStatus string

const (
	ReportStatusDraft ReportStatus = "draft"
	ReportStatusFinal ReportStatus = "final"
)

// Report is a generated or manually registered document over the audit and
// vulnerability data. Generated reports are immutable, the only allowed
// operation afterwards is deletion.
type Report struct {
	BaseModel

	Id            ReportIdentifier `gorm:"primaryKey;autoIncrement:true;column:id"`
	Title         string           `gorm:"column:title"`
	Type          ReportType       `gorm:"column:type;index:idx_report_type"`
	AuditId       *AuditIdentifier `gorm:"column:audit_id;index:idx_report_audit"`
	GeneratedBy   string           `gorm:"column:generated_by"`
	Status        ReportStatus     `gorm:"column:status"`
	FilePath      string           `gorm:"column:file_path"`
	FileSize      int64            `gorm:"column:file_size"`
	Format        string           `gorm:"column:format"`
	GeneratedDate time.Time        `gorm:"column:generated_date"`

	// Data holds the aggregated payload of a generated report as JSON. The
	// shape depends on the report type, see the *Data structs below.
	Data json.RawMessage `gorm:"column:data"`
}

// AuditSummaryData is the payload of an audit_summary report.
type AuditSummaryData struct {
	TotalAudits      int `json:"totalAudits"`
	CompletedAudits  int `json:"completedAudits"`
	InProgressAudits int `json:"inProgressAudits"`
}

// VulnerabilityReportData is the payload of a vulnerability_report report.
// It counts open and in-progress vulnerabilities per severity.
type VulnerabilityReportData struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
	Total    int `json:"total"`
}

// ComplianceReportData is the payload of a compliance_report report. The
// score is the rounded percentage of resolved vulnerabilities; with no
// tracked vulnerabilities at all the score is 100.
type ComplianceReportData struct {
	Total    int `json:"total"`
	Resolved int `json:"resolved"`
	Score    int `json:"score"`
}

// ExecutiveSummaryData is the payload of an executive_summary report.
type ExecutiveSummaryData struct {
	ActiveAssets        int `json:"activeAssets"`
	ActiveAudits        int `json:"activeAudits"`
	OpenVulnerabilities int `json:"openVulnerabilities"`
	CriticalOpen        int `json:"criticalOpen"`
}
