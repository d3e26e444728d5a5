package adapters

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/utils"

	"github.com/argus-sec/argus-portal/internal/config"
	"github.com/argus-sec/argus-portal/internal/domain"
)

// SchemaVersion describes the current database schema version. It must be incremented if a manual migration is needed.
var SchemaVersion uint64 = 1

// SysStat stores the current database schema version and the timestamp when it was applied.
type SysStat struct {
	MigratedAt    time.Time `gorm:"column:migrated_at"`
	SchemaVersion uint64    `gorm:"primaryKey,column:schema_version"`
}

// GormLogger is a custom logger for Gorm, making it use slog
type GormLogger struct {
	SlowThreshold           time.Duration
	SourceField             string
	IgnoreErrRecordNotFound bool
	Debug                   bool
	Silent                  bool

	prefix string
}

func NewLogger(slowThreshold time.Duration, debug bool) *GormLogger {
	return &GormLogger{
		SlowThreshold:           slowThreshold,
		Debug:                   debug,
		IgnoreErrRecordNotFound: true,
		Silent:                  false,
		SourceField:             "src",
		prefix:                  "GORM-SQL: ",
	}
}

func (l *GormLogger) LogMode(level logger.LogLevel) logger.Interface {
	if level == logger.Silent {
		l.Silent = true
	} else {
		l.Silent = false
	}
	return l
}

func (l *GormLogger) Info(ctx context.Context, s string, args ...any) {
	if l.Silent {
		return
	}
	slog.InfoContext(ctx, l.prefix+s, args...)
}

func (l *GormLogger) Warn(ctx context.Context, s string, args ...any) {
	if l.Silent {
		return
	}
	slog.WarnContext(ctx, l.prefix+s, args...)
}

func (l *GormLogger) Error(ctx context.Context, s string, args ...any) {
	if l.Silent {
		return
	}
	slog.ErrorContext(ctx, l.prefix+s, args...)
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	attrs := []any{
		"rows", rows,
		"duration", elapsed,
	}

	if l.SourceField != "" {
		attrs = append(attrs, l.SourceField, utils.FileWithLineNum())
	}

	if err != nil && !(errors.Is(err, gorm.ErrRecordNotFound) && l.IgnoreErrRecordNotFound) {
		attrs = append(attrs, "error", err)
		slog.ErrorContext(ctx, l.prefix+sql, attrs...)
		return
	}

	if l.SlowThreshold != 0 && elapsed > l.SlowThreshold {
		slog.WarnContext(ctx, l.prefix+sql, attrs...)
		return
	}

	if l.Debug {
		slog.DebugContext(ctx, l.prefix+sql, attrs...)
	}
}

// NewDatabase creates a new database connection and returns a Gorm database instance.
func NewDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var gormDb *gorm.DB
	var err error

	switch cfg.Type {
	case config.DatabaseMySQL:
		gormDb, err = gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
			Logger: NewLogger(cfg.SlowQueryThreshold, cfg.Debug),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w", err)
		}

		sqlDB, _ := gormDb.DB()
		sqlDB.SetConnMaxLifetime(time.Minute * 5)
		sqlDB.SetMaxIdleConns(2)
		sqlDB.SetMaxOpenConns(10)
		err = sqlDB.Ping() // This DOES open a connection if necessary. This makes sure the database is accessible
		if err != nil {
			return nil, fmt.Errorf("failed to ping MySQL database: %w", err)
		}
	case config.DatabaseMsSQL:
		gormDb, err = gorm.Open(sqlserver.Open(cfg.DSN), &gorm.Config{
			Logger: NewLogger(cfg.SlowQueryThreshold, cfg.Debug),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlserver database: %w", err)
		}
	case config.DatabasePostgres:
		gormDb, err = gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
			Logger: NewLogger(cfg.SlowQueryThreshold, cfg.Debug),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open Postgres database: %w", err)
		}
	case config.DatabaseSQLite:
		if _, err = os.Stat(filepath.Dir(cfg.DSN)); os.IsNotExist(err) {
			if err = os.MkdirAll(filepath.Dir(cfg.DSN), 0700); err != nil {
				return nil, fmt.Errorf("failed to create database base directory: %w", err)
			}
		}
		gormDb, err = gorm.Open(sqlite.Open(cfg.DSN), &gorm.Config{
			Logger:                                   NewLogger(cfg.SlowQueryThreshold, cfg.Debug),
			DisableForeignKeyConstraintWhenMigrating: true,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		sqlDB, _ := gormDb.DB()
		sqlDB.SetMaxOpenConns(1)
	}

	return gormDb, nil
}

// SqlRepo is a SQL database repository implementation.
// Currently, it supports MySQL, SQLite, Microsoft SQL and Postgresql database systems.
type SqlRepo struct {
	db *gorm.DB
}

// NewSqlRepository creates a new SqlRepo instance.
func NewSqlRepository(db *gorm.DB) (*SqlRepo, error) {
	repo := &SqlRepo{
		db: db,
	}

	if err := repo.migrate(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return repo, nil
}

func (r *SqlRepo) migrate() error {
	slog.Debug("running migration: sys-stat", "result", r.db.AutoMigrate(&SysStat{}))
	slog.Debug("running migration: user", "result", r.db.AutoMigrate(&domain.User{}))
	slog.Debug("running migration: asset", "result", r.db.AutoMigrate(&domain.Asset{}))
	slog.Debug("running migration: vulnerability", "result", r.db.AutoMigrate(&domain.Vulnerability{}))
	slog.Debug("running migration: audit", "result", r.db.AutoMigrate(&domain.Audit{}))
	slog.Debug("running migration: report", "result", r.db.AutoMigrate(&domain.Report{}))
	slog.Debug("running migration: activity entry", "result", r.db.AutoMigrate(&domain.ActivityEntry{}))

	existingSysStat := SysStat{}
	r.db.Where("schema_version = ?", SchemaVersion).First(&existingSysStat)
	if existingSysStat.SchemaVersion == 0 {
		sysStat := SysStat{
			MigratedAt:    time.Now(),
			SchemaVersion: SchemaVersion,
		}
		if err := r.db.Create(&sysStat).Error; err != nil {
			return fmt.Errorf("failed to write sysstat entry for schema version %d: %w", SchemaVersion, err)
		}
		slog.Debug("sys-stat entry written", "schema_version", SchemaVersion)
	}

	return nil
}

// region users

// GetUser returns the user with the given id.
// If no user is found, an error domain.ErrNotFound is returned.
func (r *SqlRepo) GetUser(ctx context.Context, id domain.UserIdentifier) (*domain.User, error) {
	var user domain.User

	err := r.db.WithContext(ctx).First(&user, id).Error

	if err != nil && errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetAllUsers returns all users, ordered by username.
func (r *SqlRepo) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User

	err := r.db.WithContext(ctx).Order("username").Find(&users).Error
	if err != nil {
		return nil, err
	}

	return users, nil
}

// GetAdminUsers returns all users with the admin role.
func (r *SqlRepo) GetAdminUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User

	err := r.db.WithContext(ctx).Where("role = ?", domain.UserRoleAdmin).Find(&users).Error
	if err != nil {
		return nil, err
	}

	return users, nil
}

// SaveUser creates or updates the user with the given id. A zero id creates a
// new record with a database assigned identifier.
func (r *SqlRepo) SaveUser(
	ctx context.Context,
	id domain.UserIdentifier,
	updateFunc func(u *domain.User) (*domain.User, error),
) error {
	userInfo := domain.GetUserInfo(ctx)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := r.getOrCreateUser(userInfo, tx, id)
		if err != nil {
			return err // return any error will roll back
		}

		user, err = updateFunc(user)
		if err != nil {
			return err
		}

		user.UpdatedBy = userInfo.UserId()
		user.UpdatedAt = time.Now()

		// return nil will commit the whole transaction
		return tx.Save(user).Error
	})
	if err != nil {
		return err
	}

	return nil
}

func (r *SqlRepo) getOrCreateUser(
	ui *domain.ContextUserInfo,
	tx *gorm.DB,
	id domain.UserIdentifier,
) (*domain.User, error) {
	if id == 0 {
		// the database assigns the identifier of new records
		return &domain.User{
			BaseModel: domain.BaseModel{
				CreatedBy: ui.UserId(),
				UpdatedBy: ui.UserId(),
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			},
		}, nil
	}

	var user domain.User
	err := tx.First(&user, id).Error
	if err != nil && errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// endregion users

// region assets

// GetAsset returns the asset with the given id.
// If no asset is found, an error domain.ErrNotFound is returned.
func (r *SqlRepo) GetAsset(ctx context.Context, id domain.AssetIdentifier) (*domain.Asset, error) {
	var asset domain.Asset

	err := r.db.WithContext(ctx).First(&asset, id).Error

	if err != nil && errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &asset, nil
}

// GetAllAssets returns all assets, ordered by name.
func (r *SqlRepo) GetAllAssets(ctx context.Context) ([]domain.Asset, error) {
	var assets []domain.Asset

	err := r.db.WithContext(ctx).Order("name").Find(&assets).Error
	if err != nil {
		return nil, err
	}

	return assets, nil
}

// GetActiveAssets returns all assets with the active status.
func (r *SqlRepo) GetActiveAssets(ctx context.Context) ([]domain.Asset, error) {
	var assets []domain.Asset

	err := r.db.WithContext(ctx).Where("status = ?", domain.AssetStatusActive).Find(&assets).Error
	if err != nil {
		return nil, err
	}

	return assets, nil
}

// SaveAsset creates or updates the asset with the given id. A zero id creates
// a new record with a database assigned identifier.
func (r *SqlRepo) SaveAsset(
	ctx context.Context,
	id domain.AssetIdentifier,
	updateFunc func(a *domain.Asset) (*domain.Asset, error),
) error {
	userInfo := domain.GetUserInfo(ctx)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		asset, err := r.getOrCreateAsset(userInfo, tx, id)
		if err != nil {
			return err
		}

		asset, err = updateFunc(asset)
		if err != nil {
			return err
		}

		asset.UpdatedBy = userInfo.UserId()
		asset.UpdatedAt = time.Now()

		return tx.Save(asset).Error
	})
	if err != nil {
		return err
	}

	return nil
}

func (r *SqlRepo) getOrCreateAsset(
	ui *domain.ContextUserInfo,
	tx *gorm.DB,
	id domain.AssetIdentifier,
) (*domain.Asset, error) {
	if id == 0 {
		return &domain.Asset{
			BaseModel: domain.BaseModel{
				CreatedBy: ui.UserId(),
				UpdatedBy: ui.UserId(),
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			},
		}, nil
	}

	var asset domain.Asset
	err := tx.First(&asset, id).Error
	if err != nil && errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &asset, nil
}

// endregion assets

// region vulnerabilities

// GetVulnerability returns the vulnerability with the given id.
// If no vulnerability is found, an error domain.ErrNotFound is returned.
func (r *SqlRepo) GetVulnerability(ctx context.Context, id domain.VulnerabilityIdentifier) (
	*domain.Vulnerability,
	error,
) {
	var vuln domain.Vulnerability

	err := r.db.WithContext(ctx).First(&vuln, id).Error

	if err != nil && errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &vuln, nil
}

// GetAllVulnerabilities returns all vulnerabilities, newest first.
func (r *SqlRepo) GetAllVulnerabilities(ctx context.Context) ([]domain.Vulnerability, error) {
	var vulns []domain.Vulnerability

	err := r.db.WithContext(ctx).Order("discovered_date DESC").Find(&vulns).Error
	if err != nil {
		return nil, err
	}

	return vulns, nil
}

// SaveVulnerability creates or updates the vulnerability with the given id.
// A zero id creates a new record with a database assigned identifier.
func (r *SqlRepo) SaveVulnerability(
	ctx context.Context,
	id domain.VulnerabilityIdentifier,
	updateFunc func(v *domain.Vulnerability) (*domain.Vulnerability, error),
) error {
	userInfo := domain.GetUserInfo(ctx)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		vuln, err := r.getOrCreateVulnerability(userInfo, tx, id)
		if err != nil {
			return err
		}

		vuln, err = updateFunc(vuln)
		if err != nil {
			return err
		}

		vuln.UpdatedBy = userInfo.UserId()
		vuln.UpdatedAt = time.Now()

		return tx.Save(vuln).Error
	})
	if err != nil {
		return err
	}

	return nil
}

func (r *SqlRepo) getOrCreateVulnerability(
	ui *domain.ContextUserInfo,
	tx *gorm.DB,
	id domain.VulnerabilityIdentifier,
) (*domain.Vulnerability, error) {
	if id == 0 {
		return &domain.Vulnerability{
			BaseModel: domain.BaseModel{
				CreatedBy: ui.UserId(),
				UpdatedBy: ui.UserId(),
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			},
		}, nil
	}

	var vuln domain.Vulnerability
	err := tx.First(&vuln, id).Error
	if err != nil && errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &vuln, nil
}

// endregion vulnerabilities

// region audits

// GetAudit returns the audit with the given id, including its assets and the
// auditor and auditee user records.
// If no audit is found, an error domain.ErrNotFound is returned.
func (r *SqlRepo) GetAudit(ctx context.Context, id domain.AuditIdentifier) (*domain.Audit, error) {
	var audit domain.Audit

	err := r.db.WithContext(ctx).
		Preload("Assets").
		Preload("Auditor").
		Preload("Auditee").
		First(&audit, id).Error

	if err != nil && errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &audit, nil
}

// GetAllAudits returns all audits with their assets and user records, newest
// scheduled date first.
func (r *SqlRepo) GetAllAudits(ctx context.Context) ([]domain.Audit, error) {
	var audits []domain.Audit

	err := r.db.WithContext(ctx).
		Preload("Assets").
		Preload("Auditor").
		Preload("Auditee").
		Order("scheduled_date DESC").
		Find(&audits).Error
	if err != nil {
		return nil, err
	}

	return audits, nil
}

// SaveAudit creates or updates the audit with the given id. A zero id creates
// a new record with a database assigned identifier. If the updateFunc leaves
// the Assets field nil, the asset associations stay untouched; a non-nil
// Assets slice replaces all associations within the same transaction.
func (r *SqlRepo) SaveAudit(
	ctx context.Context,
	id domain.AuditIdentifier,
	updateFunc func(a *domain.Audit) (*domain.Audit, error),
) (*domain.Audit, error) {
	userInfo := domain.GetUserInfo(ctx)

	var audit *domain.Audit
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		a, err := r.getOrCreateAudit(userInfo, tx, id)
		if err != nil {
			return err // return any error will roll back
		}

		a, err = updateFunc(a)
		if err != nil {
			return err
		}

		err = r.upsertAudit(userInfo, tx, a)
		if err != nil {
			return err
		}

		audit = a

		// return nil will commit the whole transaction
		return nil
	})
	if err != nil {
		return nil, err
	}

	return audit, nil
}

func (r *SqlRepo) getOrCreateAudit(
	ui *domain.ContextUserInfo,
	tx *gorm.DB,
	id domain.AuditIdentifier,
) (*domain.Audit, error) {
	if id == 0 {
		// auditDefaults will be applied to newly created audit records
		auditDefaults := domain.Audit{
			BaseModel: domain.BaseModel{
				CreatedBy: ui.UserId(),
				UpdatedBy: ui.UserId(),
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			},
			Status: domain.AuditStatusScheduled,
		}
		return &auditDefaults, nil
	}

	var audit domain.Audit
	err := tx.Preload("Assets").First(&audit, id).Error
	if err != nil && errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &audit, nil
}

func (r *SqlRepo) upsertAudit(ui *domain.ContextUserInfo, tx *gorm.DB, a *domain.Audit) error {
	a.UpdatedBy = ui.UserId()
	a.UpdatedAt = time.Now()

	newAssets := a.Assets

	// associated records are written separately below
	err := tx.Omit(clause.Associations).Save(a).Error
	if err != nil {
		return err
	}

	if newAssets == nil {
		return nil
	}

	assets, err := r.resolveAssets(tx, assetIdsOf(newAssets))
	if err != nil {
		return err
	}

	if len(assets) == 0 {
		err = tx.Model(a).Association("Assets").Clear()
	} else {
		err = tx.Model(a).Association("Assets").Replace(&assets)
	}
	if err != nil {
		return fmt.Errorf("failed to update audit assets: %w", err)
	}

	a.Assets = assets

	return nil
}

// resolveAssets loads the full asset records for the given ids. All ids must
// reference existing assets, otherwise domain.ErrInvalidData is returned.
func (r *SqlRepo) resolveAssets(tx *gorm.DB, ids []domain.AssetIdentifier) ([]domain.Asset, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var assets []domain.Asset
	err := tx.Where("id IN ?", ids).Find(&assets).Error
	if err != nil {
		return nil, err
	}

	if len(assets) != len(ids) {
		return nil, fmt.Errorf("unknown asset in association set: %w", domain.ErrInvalidData)
	}

	return assets, nil
}

func assetIdsOf(assets []domain.Asset) []domain.AssetIdentifier {
	ids := make([]domain.AssetIdentifier, 0, len(assets))
	for _, asset := range assets {
		ids = append(ids, asset.Id)
	}
	return ids
}

// DeleteAudit deletes the audit with the given id. The asset associations are
// removed in the same transaction.
func (r *SqlRepo) DeleteAudit(ctx context.Context, id domain.AuditIdentifier) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Select(clause.Associations).Delete(&domain.Audit{Id: id}).Error
	})
	if err != nil {
		return err
	}

	return nil
}

// endregion audits

// region reports

// GetReport returns the report with the given id.
// If no report is found, an error domain.ErrNotFound is returned.
func (r *SqlRepo) GetReport(ctx context.Context, id domain.ReportIdentifier) (*domain.Report, error) {
	var report domain.Report

	err := r.db.WithContext(ctx).First(&report, id).Error

	if err != nil && errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &report, nil
}

// GetAllReports returns all reports, newest first.
func (r *SqlRepo) GetAllReports(ctx context.Context) ([]domain.Report, error) {
	var reports []domain.Report

	err := r.db.WithContext(ctx).Order("generated_date DESC, id DESC").Find(&reports).Error
	if err != nil {
		return nil, err
	}

	return reports, nil
}

// SaveReport creates or updates the report with the given id. A zero id
// creates a new record with a database assigned identifier.
func (r *SqlRepo) SaveReport(
	ctx context.Context,
	id domain.ReportIdentifier,
	updateFunc func(rep *domain.Report) (*domain.Report, error),
) (*domain.Report, error) {
	userInfo := domain.GetUserInfo(ctx)

	var report *domain.Report
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rep, err := r.getOrCreateReport(userInfo, tx, id)
		if err != nil {
			return err
		}

		rep, err = updateFunc(rep)
		if err != nil {
			return err
		}

		rep.UpdatedBy = userInfo.UserId()
		rep.UpdatedAt = time.Now()

		if err := tx.Save(rep).Error; err != nil {
			return err
		}

		report = rep

		return nil
	})
	if err != nil {
		return nil, err
	}

	return report, nil
}

func (r *SqlRepo) getOrCreateReport(
	ui *domain.ContextUserInfo,
	tx *gorm.DB,
	id domain.ReportIdentifier,
) (*domain.Report, error) {
	if id == 0 {
		reportDefaults := domain.Report{
			BaseModel: domain.BaseModel{
				CreatedBy: ui.UserId(),
				UpdatedBy: ui.UserId(),
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			},
			Status: domain.ReportStatusDraft,
			Format: "pdf",
		}
		return &reportDefaults, nil
	}

	var report domain.Report
	err := tx.First(&report, id).Error
	if err != nil && errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &report, nil
}

// DeleteReport deletes the report with the given id.
func (r *SqlRepo) DeleteReport(ctx context.Context, id domain.ReportIdentifier) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Delete(&domain.Report{Id: id}).Error
	})
	if err != nil {
		return err
	}

	return nil
}

// endregion reports

// region activity

// SaveActivityEntry appends a new activity entry. Activity entries are
// append-only, there is no update or delete counterpart.
func (r *SqlRepo) SaveActivityEntry(ctx context.Context, entry *domain.ActivityEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	return r.db.WithContext(ctx).Create(entry).Error
}

// GetAllActivityEntries returns the most recent activity entries, newest
// first. A limit of 0 returns all entries.
func (r *SqlRepo) GetAllActivityEntries(ctx context.Context, limit int) ([]domain.ActivityEntry, error) {
	var entries []domain.ActivityEntry

	tx := r.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}

	err := tx.Find(&entries).Error
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// FindActivityEntries returns the most recent activity entries for the given
// entity type, newest first. A limit of 0 returns all matching entries.
func (r *SqlRepo) FindActivityEntries(ctx context.Context, entityType string, limit int) (
	[]domain.ActivityEntry,
	error,
) {
	var entries []domain.ActivityEntry

	tx := r.db.WithContext(ctx).
		Where("entity_type = ?", entityType).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}

	err := tx.Find(&entries).Error
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// endregion activity

// region statistics

// CountAuditsByStatus returns the number of audits per lifecycle status.
func (r *SqlRepo) CountAuditsByStatus(ctx context.Context) (map[domain.AuditStatus]int, error) {
	var rows []struct {
		Status domain.AuditStatus `gorm:"column:status"`
		Num    int                `gorm:"column:num"`
	}

	err := r.db.WithContext(ctx).
		Model(&domain.Audit{}).
		Select("status, COUNT(*) AS num").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[domain.AuditStatus]int, len(rows))
	for _, row := range rows {
		result[row.Status] = row.Num
	}
	return result, nil
}

// CountOpenVulnerabilitiesBySeverity returns the number of open and
// in-progress vulnerabilities per severity.
func (r *SqlRepo) CountOpenVulnerabilitiesBySeverity(ctx context.Context) (
	map[domain.VulnerabilitySeverity]int,
	error,
) {
	var rows []struct {
		Severity domain.VulnerabilitySeverity `gorm:"column:severity"`
		Num      int                          `gorm:"column:num"`
	}

	err := r.db.WithContext(ctx).
		Model(&domain.Vulnerability{}).
		Select("severity, COUNT(*) AS num").
		Where("status IN ?", []domain.VulnerabilityStatus{
			domain.VulnerabilityStatusOpen,
			domain.VulnerabilityStatusInProgress,
		}).
		Group("severity").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[domain.VulnerabilitySeverity]int, len(rows))
	for _, row := range rows {
		result[row.Severity] = row.Num
	}
	return result, nil
}

// CountVulnerabilitiesByStatus returns the number of vulnerabilities per
// status, over all severities.
func (r *SqlRepo) CountVulnerabilitiesByStatus(ctx context.Context) (
	map[domain.VulnerabilityStatus]int,
	error,
) {
	var rows []struct {
		Status domain.VulnerabilityStatus `gorm:"column:status"`
		Num    int                        `gorm:"column:num"`
	}

	err := r.db.WithContext(ctx).
		Model(&domain.Vulnerability{}).
		Select("status, COUNT(*) AS num").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[domain.VulnerabilityStatus]int, len(rows))
	for _, row := range rows {
		result[row.Status] = row.Num
	}
	return result, nil
}

// CountActiveAssets returns the number of assets with the active status.
func (r *SqlRepo) CountActiveAssets(ctx context.Context) (int, error) {
	var num int64

	err := r.db.WithContext(ctx).
		Model(&domain.Asset{}).
		Where("status = ?", domain.AssetStatusActive).
		Count(&num).Error
	if err != nil {
		return 0, err
	}

	return int(num), nil
}

// CountReports returns the total number of reports.
func (r *SqlRepo) CountReports(ctx context.Context) (int, error) {
	var num int64

	err := r.db.WithContext(ctx).Model(&domain.Report{}).Count(&num).Error
	if err != nil {
		return 0, err
	}

	return int(num), nil
}

// endregion statistics
