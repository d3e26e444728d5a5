package activity

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/argus-sec/argus-portal/internal"
	"github.com/argus-sec/argus-portal/internal/app"
	"github.com/argus-sec/argus-portal/internal/config"
	"github.com/argus-sec/argus-portal/internal/domain"
)

// maxDescriptionLength caps stored activity descriptions, the embedded entity
// titles are unbounded user input.
const maxDescriptionLength = 128

// Recorder listens for audit and report events on the message bus and turns
// them into append-only activity entries. After an entry has been persisted it
// is re-published on the activity topic for live consumers.
type Recorder struct {
	cfg *config.Config
	bus EventBus

	db DatabaseRepo
}

func NewActivityRecorder(cfg *config.Config, bus EventBus, db DatabaseRepo) (*Recorder, error) {
	r := &Recorder{
		cfg: cfg,
		bus: bus,

		db: db,
	}

	r.connectToMessageBus()

	return r, nil
}

func (r *Recorder) connectToMessageBus() {
	_ = r.bus.Subscribe(app.TopicAuditCreated, r.handleAuditCreatedEvent)
	_ = r.bus.Subscribe(app.TopicAuditUpdated, r.handleAuditUpdatedEvent)
	_ = r.bus.Subscribe(app.TopicAuditDeleted, r.handleAuditDeletedEvent)
	_ = r.bus.Subscribe(app.TopicAuditStarted, r.handleAuditStartedEvent)
	_ = r.bus.Subscribe(app.TopicAuditCompleted, r.handleAuditCompletedEvent)

	_ = r.bus.Subscribe(app.TopicReportCreated, r.handleReportCreatedEvent)
	_ = r.bus.Subscribe(app.TopicReportGenerated, r.handleReportGeneratedEvent)
	_ = r.bus.Subscribe(app.TopicReportDeleted, r.handleReportDeletedEvent)
}

func (r *Recorder) handleAuditCreatedEvent(evt domain.EventWrapper[domain.Audit]) {
	r.record(evt.Ctx, domain.ActivityActionCreate, domain.ActivityEntityAudit, evt.Event.Id.String(),
		fmt.Sprintf("Created new audit: %s", evt.Event.Title))
}

func (r *Recorder) handleAuditUpdatedEvent(evt domain.EventWrapper[domain.Audit]) {
	r.record(evt.Ctx, domain.ActivityActionUpdate, domain.ActivityEntityAudit, evt.Event.Id.String(),
		fmt.Sprintf("Updated audit: %s", evt.Event.Title))
}

func (r *Recorder) handleAuditDeletedEvent(evt domain.EventWrapper[domain.Audit]) {
	r.record(evt.Ctx, domain.ActivityActionDelete, domain.ActivityEntityAudit, evt.Event.Id.String(),
		fmt.Sprintf("Deleted audit: %s", evt.Event.Title))
}

func (r *Recorder) handleAuditStartedEvent(evt domain.EventWrapper[domain.Audit]) {
	r.record(evt.Ctx, domain.ActivityActionStart, domain.ActivityEntityAudit, evt.Event.Id.String(),
		fmt.Sprintf("Started audit: %s", evt.Event.Title))
}

func (r *Recorder) handleAuditCompletedEvent(evt domain.EventWrapper[domain.Audit]) {
	r.record(evt.Ctx, domain.ActivityActionComplete, domain.ActivityEntityAudit, evt.Event.Id.String(),
		fmt.Sprintf("Completed audit: %s", evt.Event.Title))
}

func (r *Recorder) handleReportCreatedEvent(evt domain.EventWrapper[domain.Report]) {
	r.record(evt.Ctx, domain.ActivityActionCreate, domain.ActivityEntityReport, evt.Event.Id.String(),
		fmt.Sprintf("Created new report: %s", evt.Event.Title))
}

func (r *Recorder) handleReportGeneratedEvent(evt domain.EventWrapper[domain.Report]) {
	r.record(evt.Ctx, domain.ActivityActionGenerate, domain.ActivityEntityReport, evt.Event.Id.String(),
		fmt.Sprintf("Generated report: %s", evt.Event.Title))
}

func (r *Recorder) handleReportDeletedEvent(evt domain.EventWrapper[domain.Report]) {
	r.record(evt.Ctx, domain.ActivityActionDelete, domain.ActivityEntityReport, evt.Event.Id.String(),
		fmt.Sprintf("Deleted report: %s", evt.Event.Title))
}

func (r *Recorder) record(
	ctx context.Context,
	action domain.ActivityAction,
	entityType, entityId, description string,
) {
	entry := &domain.ActivityEntry{
		CreatedAt:   time.Now(),
		ContextUser: actorFromContext(ctx),
		Action:      action,
		EntityType:  entityType,
		EntityId:    entityId,
		Description: internal.TruncateString(description, maxDescriptionLength),
	}

	err := r.db.SaveActivityEntry(context.Background(), entry)
	if err != nil {
		slog.Error("[ACTIVITY] failed to save activity entry", "action", action, "entity_type", entityType,
			"entity_id", entityId, "error", err)
		return
	}

	r.bus.Publish(app.TopicActivityLogged, *entry)
}

func actorFromContext(ctx context.Context) string {
	userId := domain.GetUserInfo(ctx).UserId()
	if userId == domain.CtxUnknownUserId {
		return ""
	}
	return userId
}
