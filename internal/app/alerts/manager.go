package alerts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/argus-sec/argus-portal/internal/app"
	"github.com/argus-sec/argus-portal/internal/config"
	"github.com/argus-sec/argus-portal/internal/domain"
)

const (
	// maxDerivedAlerts bounds the number of alerts taken from the activity feed.
	maxDerivedAlerts = 5
	// maxAlerts bounds the total alert list, including the demo seed.
	maxAlerts = 6

	defaultFeedLimit = 50
)

// Manager derives the security alert list from the recent activity feed.
// Alerts are recomputed on every read, only the per-session resolve and
// dismiss markers survive between reads.
type Manager struct {
	cfg *config.Config
	bus EventBus

	db      DatabaseRepo
	metrics MetricsUpdater
}

func NewAlertManager(cfg *config.Config, bus EventBus, db DatabaseRepo, metrics MetricsUpdater) (*Manager, error) {
	m := &Manager{
		cfg: cfg,
		bus: bus,

		db:      db,
		metrics: metrics,
	}

	m.connectToMessageBus()

	return m, nil
}

func (m Manager) connectToMessageBus() {
	_ = m.bus.Subscribe(app.TopicActivityLogged, m.handleActivityLoggedEvent)
}

// handleActivityLoggedEvent re-publishes freshly logged activity that derives
// a critical alert, so notification consumers can react without polling the
// feed.
func (m Manager) handleActivityLoggedEvent(entry domain.ActivityEntry) {
	alert, ok := deriveAlert(entry)
	if !ok || alert.Severity != domain.AlertSeverityCritical {
		return
	}

	m.bus.Publish(app.TopicAlertRaised, alert)
}

// GetAll derives the current alert list. The newest matching activity entries
// come first, followed by the static demonstration seed if enabled.
func (m Manager) GetAll(ctx context.Context) ([]domain.SecurityAlert, error) {
	limit := m.cfg.Alerts.ActivityFeedLimit
	if limit <= 0 {
		limit = defaultFeedLimit
	}

	entries, err := m.db.GetAllActivityEntries(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("unable to load activity entries: %w", err)
	}

	alerts := make([]domain.SecurityAlert, 0, maxAlerts)
	for _, entry := range entries {
		if len(alerts) == maxDerivedAlerts {
			break
		}

		alert, ok := deriveAlert(entry)
		if !ok {
			continue
		}
		alerts = append(alerts, alert)
	}

	if m.metrics != nil {
		m.metrics.UpdateAlertMetrics(len(alerts))
	}

	if m.cfg.Alerts.IncludeDemoAlerts {
		alerts = append(alerts, demoAlerts()...)
	}

	if len(alerts) > maxAlerts {
		alerts = alerts[:maxAlerts]
	}

	return alerts, nil
}

// GetById returns the alert with the given id from the currently derived
// alert list. If the feed has moved on and the id no longer derives,
// domain.ErrNotFound is returned.
func (m Manager) GetById(ctx context.Context, id string) (*domain.SecurityAlert, error) {
	alerts, err := m.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	for _, alert := range alerts {
		if alert.Id == id {
			return &alert, nil
		}
	}

	return nil, fmt.Errorf("alert %s: %w", id, domain.ErrNotFound)
}

// ApplySessionState overlays the per-session resolve and dismiss markers onto
// a freshly derived alert list. Dismissed alerts are dropped, resolved ones
// are kept but flagged.
func ApplySessionState(
	alerts []domain.SecurityAlert,
	resolved map[string]bool,
	dismissed map[string]bool,
) []domain.SecurityAlert {
	result := make([]domain.SecurityAlert, 0, len(alerts))
	for _, alert := range alerts {
		if dismissed[alert.Id] {
			continue
		}
		if resolved[alert.Id] {
			alert.Resolved = true
		}
		result = append(result, alert)
	}

	return result
}

// deriveAlert maps an activity entry to a security alert. Only create actions
// whose description mentions a vulnerability or something critical yield an
// alert; the keyword match ignores case.
func deriveAlert(entry domain.ActivityEntry) (domain.SecurityAlert, bool) {
	if entry.Action != domain.ActivityActionCreate {
		return domain.SecurityAlert{}, false
	}

	description := strings.ToLower(entry.Description)
	hasVulnerability := strings.Contains(description, "vulnerability")
	hasCritical := strings.Contains(description, "critical")
	if !hasVulnerability && !hasCritical {
		return domain.SecurityAlert{}, false
	}

	severity := domain.AlertSeverityInfo
	switch {
	case hasCritical:
		severity = domain.AlertSeverityCritical
	case hasVulnerability:
		severity = domain.AlertSeverityWarning
	}

	return domain.SecurityAlert{
		Id:          fmt.Sprintf("activity-%d", entry.UniqueId),
		Severity:    severity,
		Title:       alertTitle(severity),
		Description: entry.Description,
		Timestamp:   entry.CreatedAt,
	}, true
}

func alertTitle(severity domain.AlertSeverity) string {
	switch severity {
	case domain.AlertSeverityCritical:
		return "Critical Security Event"
	case domain.AlertSeverityWarning:
		return "New Vulnerability Reported"
	default:
		return "Security Notice"
	}
}

// demoAlerts is the static demonstration seed that pads the dashboard on
// fresh installations. Timestamps are relative so the entries always look
// recent.
func demoAlerts() []domain.SecurityAlert {
	now := time.Now()

	return []domain.SecurityAlert{
		{
			Id:          "demo-1",
			Severity:    domain.AlertSeverityCritical,
			Title:       "Critical Security Event",
			Description: "Unpatched remote code execution vulnerability on the public web server",
			Timestamp:   now.Add(-30 * time.Minute),
		},
		{
			Id:          "demo-2",
			Severity:    domain.AlertSeverityWarning,
			Title:       "New Vulnerability Reported",
			Description: "TLS certificate of the customer portal expires in 7 days",
			Timestamp:   now.Add(-2 * time.Hour),
		},
		{
			Id:          "demo-3",
			Severity:    domain.AlertSeverityInfo,
			Title:       "Security Notice",
			Description: "Quarterly access review is due next week",
			Timestamp:   now.Add(-6 * time.Hour),
		},
	}
}
