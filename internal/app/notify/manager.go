package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/argus-sec/argus-portal/internal/app"
	"github.com/argus-sec/argus-portal/internal/config"
	"github.com/argus-sec/argus-portal/internal/domain"
)

// Manager sends mail notifications for raised security alerts and completed
// audits. Notification failures are logged and never propagate, the
// triggering business operation has already committed.
type Manager struct {
	cfg        *config.Config
	bus        EventBus
	tplHandler *TemplateHandler

	mailer Mailer
	users  UserDatabaseRepo
}

func NewNotificationManager(
	cfg *config.Config,
	bus EventBus,
	mailer Mailer,
	users UserDatabaseRepo,
) (*Manager, error) {
	tplHandler, err := newTemplateHandler(cfg.Web.ExternalUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize template handler: %w", err)
	}

	m := &Manager{
		cfg:        cfg,
		bus:        bus,
		tplHandler: tplHandler,

		mailer: mailer,
		users:  users,
	}

	m.connectToMessageBus()

	return m, nil
}

func (m Manager) connectToMessageBus() {
	_ = m.bus.Subscribe(app.TopicAlertRaised, m.handleAlertRaisedEvent)

	if m.cfg.Notifications.NotifyOnAuditCompleted {
		_ = m.bus.Subscribe(app.TopicAuditCompleted, m.handleAuditCompletedEvent)
	}
}

func (m Manager) handleAlertRaisedEvent(alert domain.SecurityAlert) {
	ctx := domain.SetUserInfo(context.Background(), domain.SystemUserInfo())

	recipients, err := m.recipients(ctx)
	if err != nil {
		slog.Error("[NOTIFY] failed to resolve alert recipients", "alert", alert.Id, "error", err)
		return
	}
	if len(recipients) == 0 {
		slog.Debug("[NOTIFY] skipping alert notification, no recipients", "alert", alert.Id)
		return
	}

	txtMail, htmlMail, err := m.tplHandler.GetAlertMail(alert)
	if err != nil {
		slog.Error("[NOTIFY] failed to render alert mail", "alert", alert.Id, "error", err)
		return
	}

	subject := fmt.Sprintf("Security Alert: %s", alert.Title)
	if err := m.sendMail(ctx, subject, recipients, txtMail, htmlMail); err != nil {
		slog.Error("[NOTIFY] failed to send alert mail", "alert", alert.Id, "error", err)
		return
	}

	slog.Info("[NOTIFY] sent alert notification", "alert", alert.Id, "recipients", len(recipients))
}

func (m Manager) handleAuditCompletedEvent(evt domain.EventWrapper[domain.Audit]) {
	ctx := domain.SetUserInfo(context.Background(), domain.SystemUserInfo())
	audit := evt.Event

	recipients, err := m.recipients(ctx)
	if err != nil {
		slog.Error("[NOTIFY] failed to resolve audit recipients", "audit", audit.Id, "error", err)
		return
	}
	if len(recipients) == 0 {
		slog.Debug("[NOTIFY] skipping audit notification, no recipients", "audit", audit.Id)
		return
	}

	txtMail, htmlMail, err := m.tplHandler.GetAuditCompletedMail(audit)
	if err != nil {
		slog.Error("[NOTIFY] failed to render audit mail", "audit", audit.Id, "error", err)
		return
	}

	subject := fmt.Sprintf("Audit completed: %s", audit.Title)
	if err := m.sendMail(ctx, subject, recipients, txtMail, htmlMail); err != nil {
		slog.Error("[NOTIFY] failed to send audit mail", "audit", audit.Id, "error", err)
		return
	}

	slog.Info("[NOTIFY] sent audit completion notification", "audit", audit.Id, "recipients", len(recipients))
}

// recipients returns the configured notification addresses, falling back to
// the mail addresses of all admin users.
func (m Manager) recipients(ctx context.Context) ([]string, error) {
	if len(m.cfg.Notifications.Recipients) > 0 {
		return m.cfg.Notifications.Recipients, nil
	}

	admins, err := m.users.GetAdminUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch admin users: %w", err)
	}

	var addresses []string
	for _, admin := range admins {
		if admin.Email == "" {
			continue
		}
		addresses = append(addresses, admin.Email)
	}

	return addresses, nil
}

func (m Manager) sendMail(ctx context.Context, subject string, to []string, txtMail, htmlMail io.Reader) error {
	txtMailStr, _ := io.ReadAll(txtMail)
	htmlMailStr, _ := io.ReadAll(htmlMail)

	mailOptions := domain.MailOptions{
		HtmlBody: string(htmlMailStr),
	}

	err := m.mailer.Send(ctx, subject, string(txtMailStr), to, &mailOptions)
	if err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}

	return nil
}
