package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/argus-sec/argus-portal/internal/domain"
)

// importFromLegacyStore reads the JSON datastore file of the legacy dashboard
// (db.json) and writes its collections into the relational database. Record
// identifiers are preserved so that cross references stay intact.
func importFromLegacyStore(db *gorm.DB, source string) error {
	if _, err := os.Stat(source); os.IsNotExist(err) {
		return fmt.Errorf("invalid source datastore: %w", err)
	}

	raw, err := os.ReadFile(source)
	if err != nil {
		return fmt.Errorf("failed to read source datastore: %w", err)
	}

	var store legacyStore
	if err := json.Unmarshal(raw, &store); err != nil {
		return fmt.Errorf("unable to parse legacy datastore: %w", err)
	}

	if store.Empty() {
		return errors.New("no known collections found, not a legacy dashboard datastore")
	}

	slog.Info("found valid legacy datastore",
		"users", len(store.Users),
		"assets", len(store.Assets),
		"vulnerabilities", len(store.Vulnerabilities),
		"audits", len(store.Audits),
		"reports", len(store.Reports),
		"activity", len(store.ActivityLog))

	if err := importLegacyUsers(db, store.Users); err != nil {
		return fmt.Errorf("user import failed: %w", err)
	}

	if err := importLegacyAssets(db, store.Assets); err != nil {
		return fmt.Errorf("asset import failed: %w", err)
	}

	if err := importLegacyVulnerabilities(db, store.Vulnerabilities); err != nil {
		return fmt.Errorf("vulnerability import failed: %w", err)
	}

	if err := importLegacyAudits(db, store.Audits); err != nil {
		return fmt.Errorf("audit import failed: %w", err)
	}

	if err := importLegacyReports(db, store.Reports); err != nil {
		return fmt.Errorf("report import failed: %w", err)
	}

	if err := importLegacyActivityLog(db, store.ActivityLog); err != nil {
		return fmt.Errorf("activity log import failed: %w", err)
	}

	slog.Info("imported legacy datastore, please restart the portal", "source", source)

	return nil
}

type legacyStore struct {
	Users           []legacyUser          `json:"users"`
	Assets          []legacyAsset         `json:"assets"`
	Vulnerabilities []legacyVulnerability `json:"vulnerabilities"`
	Audits          []legacyAudit         `json:"audits"`
	Reports         []legacyReport        `json:"reports"`
	ActivityLog     []legacyActivityEntry `json:"activityLog"`
}

func (s *legacyStore) Empty() bool {
	return len(s.Users) == 0 && len(s.Assets) == 0 && len(s.Vulnerabilities) == 0 &&
		len(s.Audits) == 0 && len(s.Reports) == 0 && len(s.ActivityLog) == 0
}

type legacyUser struct {
	Id        uint   `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

type legacyAsset struct {
	Id          uint   `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Address     string `json:"ipAddress"`
	Criticality string `json:"criticality"`
	Status      string `json:"status"`
}

type legacyVulnerability struct {
	Id             uint    `json:"id"`
	Title          string  `json:"title"`
	Severity       string  `json:"severity"`
	Status         string  `json:"status"`
	AssetId        *uint   `json:"assetId"`
	DiscoveredDate string  `json:"discoveredDate"`
	ResolvedDate   *string `json:"resolvedDate"`
}

type legacyAudit struct {
	Id            uint     `json:"id"`
	Title         string   `json:"title"`
	Type          string   `json:"type"`
	Scope         []string `json:"scope"`
	AuditorId     uint     `json:"auditorId"`
	AuditeeId     uint     `json:"auditeeId"`
	Status        string   `json:"status"`
	ScheduledDate string   `json:"scheduledDate"`
	CompletedDate *string  `json:"completedDate"`
	Frequency     string   `json:"frequency"`
	Documents     []string `json:"documents"`
	AssetIds      []uint   `json:"assetIds"`
}

type legacyReport struct {
	Id            uint   `json:"id"`
	Title         string `json:"title"`
	Type          string `json:"type"`
	AuditId       *uint  `json:"auditId"`
	GeneratedBy   string `json:"generatedBy"`
	Status        string `json:"status"`
	FilePath      string `json:"filePath"`
	FileSize      int64  `json:"fileSize"`
	Format        string `json:"format"`
	GeneratedDate string `json:"generatedDate"`
}

type legacyActivityEntry struct {
	Id          uint64 `json:"id"`
	Timestamp   string `json:"timestamp"`
	User        string `json:"user"`
	Action      string `json:"action"`
	EntityType  string `json:"entityType"`
	EntityId    string `json:"entityId"`
	Description string `json:"description"`
}

// parseLegacyDate accepts the two timestamp formats found in legacy
// datastores, plain dates and full RFC 3339 timestamps.
func parseLegacyDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}

	return time.Parse("2006-01-02", value)
}

func parseOptionalLegacyDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}

	t, err := parseLegacyDate(*value)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func importerBaseModel() domain.BaseModel {
	now := time.Now()
	return domain.BaseModel{
		CreatedBy: "importer",
		UpdatedBy: "importer",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func importLegacyUsers(db *gorm.DB, oldUsers []legacyUser) error {
	for _, oldUser := range oldUsers {
		newUser := domain.User{
			BaseModel: importerBaseModel(),
			Id:        domain.UserIdentifier(oldUser.Id),
			Username:  oldUser.Username,
			Firstname: oldUser.FirstName,
			Lastname:  oldUser.LastName,
			Email:     oldUser.Email,
			Role:      domain.UserRole(oldUser.Role),
		}

		if err := db.Save(&newUser).Error; err != nil {
			return fmt.Errorf("failed to import user %s: %w", oldUser.Username, err)
		}

		slog.Debug("user imported", "username", newUser.Username)
	}

	return nil
}

func importLegacyAssets(db *gorm.DB, oldAssets []legacyAsset) error {
	for _, oldAsset := range oldAssets {
		newAsset := domain.Asset{
			BaseModel:   importerBaseModel(),
			Id:          domain.AssetIdentifier(oldAsset.Id),
			Name:        oldAsset.Name,
			Type:        oldAsset.Type,
			Address:     oldAsset.Address,
			Criticality: oldAsset.Criticality,
			Status:      domain.AssetStatus(oldAsset.Status),
		}

		if err := db.Save(&newAsset).Error; err != nil {
			return fmt.Errorf("failed to import asset %s: %w", oldAsset.Name, err)
		}

		slog.Debug("asset imported", "name", newAsset.Name)
	}

	return nil
}

func importLegacyVulnerabilities(db *gorm.DB, oldVulns []legacyVulnerability) error {
	for _, oldVuln := range oldVulns {
		discovered, err := parseLegacyDate(oldVuln.DiscoveredDate)
		if err != nil {
			return fmt.Errorf("failed to parse discovery date of vulnerability %d: %w", oldVuln.Id, err)
		}
		resolved, err := parseOptionalLegacyDate(oldVuln.ResolvedDate)
		if err != nil {
			return fmt.Errorf("failed to parse resolve date of vulnerability %d: %w", oldVuln.Id, err)
		}

		var assetId *domain.AssetIdentifier
		if oldVuln.AssetId != nil {
			id := domain.AssetIdentifier(*oldVuln.AssetId)
			assetId = &id
		}

		newVuln := domain.Vulnerability{
			BaseModel:      importerBaseModel(),
			Id:             domain.VulnerabilityIdentifier(oldVuln.Id),
			Title:          oldVuln.Title,
			Severity:       domain.VulnerabilitySeverity(oldVuln.Severity),
			Status:         domain.VulnerabilityStatus(oldVuln.Status),
			AssetId:        assetId,
			DiscoveredDate: discovered,
			ResolvedDate:   resolved,
		}

		if err := db.Save(&newVuln).Error; err != nil {
			return fmt.Errorf("failed to import vulnerability %d: %w", oldVuln.Id, err)
		}

		slog.Debug("vulnerability imported", "id", newVuln.Id, "title", newVuln.Title)
	}

	return nil
}

func importLegacyAudits(db *gorm.DB, oldAudits []legacyAudit) error {
	for _, oldAudit := range oldAudits {
		scheduled, err := parseLegacyDate(oldAudit.ScheduledDate)
		if err != nil {
			return fmt.Errorf("failed to parse schedule date of audit %d: %w", oldAudit.Id, err)
		}
		completed, err := parseOptionalLegacyDate(oldAudit.CompletedDate)
		if err != nil {
			return fmt.Errorf("failed to parse completion date of audit %d: %w", oldAudit.Id, err)
		}

		newAudit := domain.Audit{
			BaseModel:     importerBaseModel(),
			Id:            domain.AuditIdentifier(oldAudit.Id),
			Title:         oldAudit.Title,
			Type:          oldAudit.Type,
			Scope:         domain.StringList(oldAudit.Scope),
			AuditorId:     domain.UserIdentifier(oldAudit.AuditorId),
			AuditeeId:     domain.UserIdentifier(oldAudit.AuditeeId),
			Status:        domain.AuditStatus(oldAudit.Status),
			ScheduledDate: scheduled,
			CompletedDate: completed,
			Frequency:     oldAudit.Frequency,
			Documents:     domain.StringList(oldAudit.Documents),
		}

		// associated records are written separately below
		if err := db.Omit(clause.Associations).Save(&newAudit).Error; err != nil {
			return fmt.Errorf("failed to import audit %s: %w", oldAudit.Title, err)
		}

		var assets []domain.Asset
		for _, assetId := range oldAudit.AssetIds {
			var asset domain.Asset
			err := db.First(&asset, assetId).Error
			if err != nil && errors.Is(err, gorm.ErrRecordNotFound) {
				slog.Warn("skipping unknown asset reference of imported audit",
					"audit", oldAudit.Id, "asset", assetId)
				continue
			}
			if err != nil {
				return fmt.Errorf("failed to resolve asset %d for audit %d: %w", assetId, oldAudit.Id, err)
			}
			assets = append(assets, asset)
		}

		if len(assets) > 0 {
			if err := db.Model(&newAudit).Association("Assets").Replace(&assets); err != nil {
				return fmt.Errorf("failed to link assets of audit %d: %w", oldAudit.Id, err)
			}
		}

		slog.Debug("audit imported", "id", newAudit.Id, "title", newAudit.Title)
	}

	return nil
}

func importLegacyReports(db *gorm.DB, oldReports []legacyReport) error {
	for _, oldReport := range oldReports {
		generated, err := parseLegacyDate(oldReport.GeneratedDate)
		if err != nil {
			return fmt.Errorf("failed to parse generation date of report %d: %w", oldReport.Id, err)
		}

		var auditId *domain.AuditIdentifier
		if oldReport.AuditId != nil {
			id := domain.AuditIdentifier(*oldReport.AuditId)
			auditId = &id
		}

		newReport := domain.Report{
			BaseModel:     importerBaseModel(),
			Id:            domain.ReportIdentifier(oldReport.Id),
			Title:         oldReport.Title,
			Type:          domain.ReportType(oldReport.Type),
			AuditId:       auditId,
			GeneratedBy:   oldReport.GeneratedBy,
			Status:        domain.ReportStatus(oldReport.Status),
			FilePath:      oldReport.FilePath,
			FileSize:      oldReport.FileSize,
			Format:        oldReport.Format,
			GeneratedDate: generated,
		}

		if err := db.Save(&newReport).Error; err != nil {
			return fmt.Errorf("failed to import report %s: %w", oldReport.Title, err)
		}

		slog.Debug("report imported", "id", newReport.Id, "title", newReport.Title)
	}

	return nil
}

func importLegacyActivityLog(db *gorm.DB, oldEntries []legacyActivityEntry) error {
	for _, oldEntry := range oldEntries {
		createdAt, err := parseLegacyDate(oldEntry.Timestamp)
		if err != nil {
			return fmt.Errorf("failed to parse timestamp of activity entry %d: %w", oldEntry.Id, err)
		}

		newEntry := domain.ActivityEntry{
			UniqueId:    oldEntry.Id,
			CreatedAt:   createdAt,
			ContextUser: oldEntry.User,
			Action:      domain.ActivityAction(oldEntry.Action),
			EntityType:  oldEntry.EntityType,
			EntityId:    oldEntry.EntityId,
			Description: oldEntry.Description,
		}

		if err := db.Save(&newEntry).Error; err != nil {
			return fmt.Errorf("failed to import activity entry %d: %w", oldEntry.Id, err)
		}

		slog.Debug("activity entry imported", "id", newEntry.UniqueId)
	}

	return nil
}
