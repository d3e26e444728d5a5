package audits

import (
	"context"
	"fmt"
	"time"

	"github.com/argus-sec/argus-portal/internal/app"
	"github.com/argus-sec/argus-portal/internal/config"
	"github.com/argus-sec/argus-portal/internal/domain"
)

// Manager implements the audit lifecycle: creation, partial updates, the
// one-way status transitions and deletion. All mutations run inside a
// database transaction and publish an event on the message bus afterwards.
type Manager struct {
	cfg *config.Config
	bus EventBus

	db DatabaseRepo
}

func NewAuditManager(cfg *config.Config, bus EventBus, db DatabaseRepo) (*Manager, error) {
	m := &Manager{
		cfg: cfg,
		bus: bus,

		db: db,
	}

	return m, nil
}

// GetAllAudits returns all audits with their asset associations and the
// auditor and auditee records, newest scheduled date first.
func (m Manager) GetAllAudits(ctx context.Context) ([]domain.Audit, error) {
	audits, err := m.db.GetAllAudits(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to load audits: %w", err)
	}

	return audits, nil
}

// GetAudit returns the audit with the given id.
func (m Manager) GetAudit(ctx context.Context, id domain.AuditIdentifier) (*domain.Audit, error) {
	audit, err := m.db.GetAudit(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("unable to load audit %s: %w", id, err)
	}

	return audit, nil
}

// CreateAudit persists a new audit together with its asset associations in
// one transaction. The status is always scheduled, regardless of the input.
func (m Manager) CreateAudit(
	ctx context.Context,
	audit *domain.Audit,
	assetIds []domain.AssetIdentifier,
) (*domain.Audit, error) {
	if err := validateCreation(audit); err != nil {
		return nil, err
	}

	saved, err := m.db.SaveAudit(ctx, 0, func(a *domain.Audit) (*domain.Audit, error) {
		a.Title = audit.Title
		a.Type = audit.Type
		a.Scope = audit.Scope
		a.AuditorId = audit.AuditorId
		a.AuditeeId = audit.AuditeeId
		a.Status = domain.AuditStatusScheduled
		a.ScheduledDate = audit.ScheduledDate
		a.Frequency = audit.Frequency
		a.Documents = audit.Documents
		a.Assets = assetStubs(assetIds)
		return a, nil
	})
	if err != nil {
		return nil, fmt.Errorf("creation failure: %w", err)
	}

	created, err := m.db.GetAudit(ctx, saved.Id)
	if err != nil {
		return nil, fmt.Errorf("unable to load audit %s: %w", saved.Id, err)
	}

	m.bus.Publish(app.TopicAuditCreated, domain.EventWrapper[domain.Audit]{Ctx: ctx, Event: *created})
	m.bus.Publish(app.TopicMetricsChanged)

	return created, nil
}

// UpdateAudit applies the non-nil fields of the given patch to the audit. If
// the patch carries asset ids, the associations are replaced wholesale in the
// same transaction. An empty patch performs no write and returns the current
// record.
func (m Manager) UpdateAudit(
	ctx context.Context,
	id domain.AuditIdentifier,
	patch *domain.AuditPatch,
) (*domain.Audit, error) {
	if patch.Empty() {
		audit, err := m.db.GetAudit(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("unable to load audit %s: %w", id, err)
		}
		return audit, nil
	}

	_, err := m.db.SaveAudit(ctx, id, func(a *domain.Audit) (*domain.Audit, error) {
		patch.Apply(a)
		if patch.AssetIds != nil {
			a.Assets = assetStubs(*patch.AssetIds)
		} else {
			a.Assets = nil // leave associations untouched
		}
		return a, nil
	})
	if err != nil {
		return nil, fmt.Errorf("update failure for audit %s: %w", id, err)
	}

	updated, err := m.db.GetAudit(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("unable to load audit %s: %w", id, err)
	}

	m.bus.Publish(app.TopicAuditUpdated, domain.EventWrapper[domain.Audit]{Ctx: ctx, Event: *updated})
	m.bus.Publish(app.TopicMetricsChanged)

	return updated, nil
}

// DeleteAudit removes the audit and its asset associations.
func (m Manager) DeleteAudit(ctx context.Context, id domain.AuditIdentifier) error {
	audit, err := m.db.GetAudit(ctx, id)
	if err != nil {
		return fmt.Errorf("unable to load audit %s: %w", id, err)
	}

	if err := m.db.DeleteAudit(ctx, id); err != nil {
		return fmt.Errorf("deletion failure for audit %s: %w", id, err)
	}

	m.bus.Publish(app.TopicAuditDeleted, domain.EventWrapper[domain.Audit]{Ctx: ctx, Event: *audit})
	m.bus.Publish(app.TopicMetricsChanged)

	return nil
}

// StartAudit transitions the audit from scheduled to in_progress. A missing
// audit yields domain.ErrNotFound, any other current status yields
// domain.ErrInvalidState.
func (m Manager) StartAudit(ctx context.Context, id domain.AuditIdentifier) (*domain.Audit, error) {
	_, err := m.db.SaveAudit(ctx, id, func(a *domain.Audit) (*domain.Audit, error) {
		if !a.CanStart() {
			return nil, fmt.Errorf("audit has status %s: %w", a.Status, domain.ErrInvalidState)
		}
		a.Status = domain.AuditStatusInProgress
		a.Assets = nil // leave associations untouched
		return a, nil
	})
	if err != nil {
		return nil, fmt.Errorf("start failure for audit %s: %w", id, err)
	}

	started, err := m.db.GetAudit(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("unable to load audit %s: %w", id, err)
	}

	m.bus.Publish(app.TopicAuditStarted, domain.EventWrapper[domain.Audit]{Ctx: ctx, Event: *started})
	m.bus.Publish(app.TopicMetricsChanged)

	return started, nil
}

// CompleteAudit transitions the audit from in_progress to completed and
// stamps the completion date. The same error semantics as StartAudit apply.
func (m Manager) CompleteAudit(ctx context.Context, id domain.AuditIdentifier) (*domain.Audit, error) {
	_, err := m.db.SaveAudit(ctx, id, func(a *domain.Audit) (*domain.Audit, error) {
		if !a.CanComplete() {
			return nil, fmt.Errorf("audit has status %s: %w", a.Status, domain.ErrInvalidState)
		}
		now := time.Now()
		a.Status = domain.AuditStatusCompleted
		a.CompletedDate = &now
		a.Assets = nil // leave associations untouched
		return a, nil
	})
	if err != nil {
		return nil, fmt.Errorf("complete failure for audit %s: %w", id, err)
	}

	completed, err := m.db.GetAudit(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("unable to load audit %s: %w", id, err)
	}

	m.bus.Publish(app.TopicAuditCompleted, domain.EventWrapper[domain.Audit]{Ctx: ctx, Event: *completed})
	m.bus.Publish(app.TopicMetricsChanged)

	return completed, nil
}

func validateCreation(audit *domain.Audit) error {
	switch {
	case audit.Title == "":
		return fmt.Errorf("missing required field title: %w", domain.ErrInvalidData)
	case audit.Type == "":
		return fmt.Errorf("missing required field type: %w", domain.ErrInvalidData)
	case len(audit.Scope) == 0:
		return fmt.Errorf("missing required field scope: %w", domain.ErrInvalidData)
	case audit.AuditorId == 0:
		return fmt.Errorf("missing required field auditorId: %w", domain.ErrInvalidData)
	case audit.AuditeeId == 0:
		return fmt.Errorf("missing required field auditeeId: %w", domain.ErrInvalidData)
	case audit.ScheduledDate.IsZero():
		return fmt.Errorf("missing required field scheduledDate: %w", domain.ErrInvalidData)
	case audit.Frequency == "":
		return fmt.Errorf("missing required field frequency: %w", domain.ErrInvalidData)
	}

	return nil
}

func assetStubs(ids []domain.AssetIdentifier) []domain.Asset {
	assets := make([]domain.Asset, 0, len(ids))
	for _, id := range ids {
		assets = append(assets, domain.Asset{Id: id})
	}
	return assets
}
