package activity

import (
	"context"
	"fmt"

	"github.com/argus-sec/argus-portal/internal/domain"
)

type ManagerDatabaseRepo interface {
	// GetAllActivityEntries retrieves the most recent activity entries from
	// the database, newest first. A limit of 0 returns all entries.
	GetAllActivityEntries(ctx context.Context, limit int) ([]domain.ActivityEntry, error)
	// FindActivityEntries retrieves the most recent activity entries for one
	// entity type, newest first. A limit of 0 returns all matching entries.
	FindActivityEntries(ctx context.Context, entityType string, limit int) ([]domain.ActivityEntry, error)
}

type Manager struct {
	db ManagerDatabaseRepo
}

func NewManager(db ManagerDatabaseRepo) *Manager {
	return &Manager{db: db}
}

func (m *Manager) GetAll(ctx context.Context, limit int) ([]domain.ActivityEntry, error) {
	currentUser := domain.GetUserInfo(ctx)

	if !currentUser.IsAdmin {
		return nil, domain.ErrNoPermission
	}

	entries, err := m.db.GetAllActivityEntries(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity entries: %w", err)
	}

	return entries, nil
}

func (m *Manager) GetForEntity(ctx context.Context, entityType string, limit int) ([]domain.ActivityEntry, error) {
	currentUser := domain.GetUserInfo(ctx)

	if !currentUser.IsAdmin {
		return nil, domain.ErrNoPermission
	}

	entries, err := m.db.FindActivityEntries(ctx, entityType, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity entries for %s: %w", entityType, err)
	}

	return entries, nil
}
