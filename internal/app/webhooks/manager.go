package webhooks

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/argus-sec/argus-portal/internal/app"
	"github.com/argus-sec/argus-portal/internal/app/webhooks/models"
	"github.com/argus-sec/argus-portal/internal/config"
	"github.com/argus-sec/argus-portal/internal/domain"
)

// region dependencies

type EventBus interface {
	// Publish sends a message to the message bus.
	Publish(topic string, args ...any)
	// Subscribe subscribes to a topic
	Subscribe(topic string, fn interface{}) error
}

// endregion dependencies

type Manager struct {
	cfg *config.Config
	bus EventBus

	client *http.Client
}

// NewManager creates a new webhook manager instance.
func NewManager(cfg *config.Config, bus EventBus) (*Manager, error) {
	m := &Manager{
		cfg: cfg,
		bus: bus,
		client: &http.Client{
			Timeout: cfg.Webhook.Timeout,
		},
	}

	m.connectToMessageBus()

	return m, nil
}

// StartBackgroundJobs starts background jobs for the webhook manager.
// This method is non-blocking and returns immediately.
func (m Manager) StartBackgroundJobs(_ context.Context) {
	// this is a no-op for now
}

func (m Manager) connectToMessageBus() {
	if m.cfg.Webhook.Url == "" {
		slog.Info("[WEBHOOK] no webhook configured, skipping event-bus subscription")
		return
	}

	_ = m.bus.Subscribe(app.TopicAuditCreated, m.handleAuditCreateEvent)
	_ = m.bus.Subscribe(app.TopicAuditUpdated, m.handleAuditUpdateEvent)
	_ = m.bus.Subscribe(app.TopicAuditDeleted, m.handleAuditDeleteEvent)
	_ = m.bus.Subscribe(app.TopicAuditStarted, m.handleAuditStartEvent)
	_ = m.bus.Subscribe(app.TopicAuditCompleted, m.handleAuditCompleteEvent)

	_ = m.bus.Subscribe(app.TopicReportCreated, m.handleReportCreateEvent)
	_ = m.bus.Subscribe(app.TopicReportGenerated, m.handleReportGenerateEvent)
	_ = m.bus.Subscribe(app.TopicReportDeleted, m.handleReportDeleteEvent)
}

func (m Manager) sendWebhook(ctx context.Context, data io.Reader) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.Webhook.Url, data)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if m.cfg.Webhook.Authentication != "" {
		req.Header.Set("Authorization", m.cfg.Webhook.Authentication)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			slog.Error("[WEBHOOK] failed to close response body", "error", err)
		}
	}(resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("webhook request failed with status: %s", resp.Status)
	}

	return nil
}

func (m Manager) handleAuditCreateEvent(evt domain.EventWrapper[domain.Audit]) {
	m.handleGenericEvent(WebhookEventCreate, models.NewAudit(evt.Event))
}

func (m Manager) handleAuditUpdateEvent(evt domain.EventWrapper[domain.Audit]) {
	m.handleGenericEvent(WebhookEventUpdate, models.NewAudit(evt.Event))
}

func (m Manager) handleAuditDeleteEvent(evt domain.EventWrapper[domain.Audit]) {
	m.handleGenericEvent(WebhookEventDelete, models.NewAudit(evt.Event))
}

func (m Manager) handleAuditStartEvent(evt domain.EventWrapper[domain.Audit]) {
	m.handleGenericEvent(WebhookEventStart, models.NewAudit(evt.Event))
}

func (m Manager) handleAuditCompleteEvent(evt domain.EventWrapper[domain.Audit]) {
	m.handleGenericEvent(WebhookEventComplete, models.NewAudit(evt.Event))
}

func (m Manager) handleReportCreateEvent(evt domain.EventWrapper[domain.Report]) {
	m.handleGenericEvent(WebhookEventCreate, models.NewReport(evt.Event))
}

func (m Manager) handleReportGenerateEvent(evt domain.EventWrapper[domain.Report]) {
	m.handleGenericEvent(WebhookEventGenerate, models.NewReport(evt.Event))
}

func (m Manager) handleReportDeleteEvent(evt domain.EventWrapper[domain.Report]) {
	m.handleGenericEvent(WebhookEventDelete, models.NewReport(evt.Event))
}

func (m Manager) handleGenericEvent(action WebhookEvent, payload any) {
	eventData, err := m.createWebhookData(action, payload)
	if err != nil {
		slog.Error("[WEBHOOK] failed to create webhook data", "error", err, "action", action,
			"payload", fmt.Sprintf("%T", payload))
		return
	}

	eventJson, err := eventData.Serialize()
	if err != nil {
		slog.Error("[WEBHOOK] failed to serialize event data", "error", err, "action", action,
			"payload", fmt.Sprintf("%T", payload), "identifier", eventData.Identifier)
		return
	}

	err = m.sendWebhook(context.Background(), eventJson)
	if err != nil {
		slog.Error("[WEBHOOK] failed to execute webhook", "error", err, "action", action,
			"payload", fmt.Sprintf("%T", payload), "identifier", eventData.Identifier)
		return
	}

	slog.Info("[WEBHOOK] executed webhook", "action", action, "payload", fmt.Sprintf("%T", payload),
		"identifier", eventData.Identifier)
}

func (m Manager) createWebhookData(action WebhookEvent, payload any) (*WebhookData, error) {
	d := &WebhookData{
		Event:   action,
		Payload: payload,
	}

	switch v := payload.(type) {
	case models.Audit:
		d.Entity = WebhookEntityAudit
		d.Identifier = fmt.Sprintf("%d", v.Id)
	case models.Report:
		d.Entity = WebhookEntityReport
		d.Identifier = fmt.Sprintf("%d", v.Id)
	default:
		return nil, fmt.Errorf("unsupported payload type: %T", v)
	}

	return d, nil
}
