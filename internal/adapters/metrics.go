package adapters

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/argus-sec/argus-portal/internal"
	"github.com/argus-sec/argus-portal/internal/config"
	"github.com/argus-sec/argus-portal/internal/domain"
)

type MetricsServer struct {
	*http.Server
	db *SqlRepo

	auditCount         *prometheus.GaugeVec
	vulnOpenCount      *prometheus.GaugeVec
	vulnCount          *prometheus.GaugeVec
	assetUp            *prometheus.GaugeVec
	activeAssetCount   prometheus.Gauge
	reportCount        prometheus.Gauge
	alertFeedDerived   prometheus.Gauge
	wsConnectedClients prometheus.Gauge
}

var assetLabels = []string{"id", "name", "address"}

// NewMetricsServer returns a new prometheus server
func NewMetricsServer(cfg *config.Config, db *SqlRepo) *MetricsServer {
	reg := prometheus.NewRegistry()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	return &MetricsServer{
		Server: &http.Server{
			Addr:    cfg.Statistics.ListeningAddress,
			Handler: mux,
		},
		db: db,

		auditCount: promauto.With(reg).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "argus_audits",
				Help: "Number of audits per lifecycle status.",
			}, []string{"status"},
		),
		vulnOpenCount: promauto.With(reg).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "argus_vulnerabilities_open",
				Help: "Number of unresolved vulnerabilities per severity.",
			}, []string{"severity"},
		),
		vulnCount: promauto.With(reg).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "argus_vulnerabilities",
				Help: "Number of vulnerabilities per status.",
			}, []string{"status"},
		),
		assetUp: promauto.With(reg).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "argus_asset_up",
				Help: "Asset reachability state (boolean: 1/0).",
			}, assetLabels,
		),
		activeAssetCount: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "argus_assets_active",
				Help: "Number of assets with active status.",
			},
		),
		reportCount: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "argus_reports",
				Help: "Number of stored reports.",
			},
		),
		alertFeedDerived: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "argus_alerts_derived",
				Help: "Number of alerts derived from the activity feed.",
			},
		),
		wsConnectedClients: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "argus_websocket_clients",
				Help: "Number of connected websocket clients.",
			},
		),
	}
}

// Run starts the metrics server
func (m *MetricsServer) Run(ctx context.Context) {
	// Run the metrics server in a goroutine
	go func() {
		if err := m.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("metrics service exited", "address", m.Addr, "error", err)
		}
	}()

	slog.Info("started metrics service", "address", m.Addr)

	// Wait for the context to be done
	<-ctx.Done()

	// Create a context with timeout for the shutdown process
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Attempt to gracefully shutdown the metrics server
	if err := m.Shutdown(shutdownCtx); err != nil {
		slog.Error("metrics service shutdown failed", "address", m.Addr, "error", err)
	} else {
		slog.Info("metrics service shutdown gracefully", "address", m.Addr)
	}
}

// UpdateAuditMetrics refreshes the audit count gauges from the database.
func (m *MetricsServer) UpdateAuditMetrics(ctx context.Context) {
	counts, err := m.db.CountAuditsByStatus(ctx)
	if err != nil {
		slog.Warn("failed to fetch audit counts for metrics", "error", err)
		return
	}

	for _, status := range []domain.AuditStatus{
		domain.AuditStatusScheduled,
		domain.AuditStatusInProgress,
		domain.AuditStatusCompleted,
	} {
		m.auditCount.WithLabelValues(string(status)).Set(float64(counts[status]))
	}
}

// UpdateVulnerabilityMetrics refreshes the vulnerability count gauges from the database.
func (m *MetricsServer) UpdateVulnerabilityMetrics(ctx context.Context) {
	openCounts, err := m.db.CountOpenVulnerabilitiesBySeverity(ctx)
	if err != nil {
		slog.Warn("failed to fetch open vulnerability counts for metrics", "error", err)
		return
	}
	for _, severity := range []domain.VulnerabilitySeverity{
		domain.VulnerabilitySeverityCritical,
		domain.VulnerabilitySeverityHigh,
		domain.VulnerabilitySeverityMedium,
		domain.VulnerabilitySeverityLow,
	} {
		m.vulnOpenCount.WithLabelValues(string(severity)).Set(float64(openCounts[severity]))
	}

	statusCounts, err := m.db.CountVulnerabilitiesByStatus(ctx)
	if err != nil {
		slog.Warn("failed to fetch vulnerability counts for metrics", "error", err)
		return
	}
	for _, status := range []domain.VulnerabilityStatus{
		domain.VulnerabilityStatusOpen,
		domain.VulnerabilityStatusInProgress,
		domain.VulnerabilityStatusResolved,
		domain.VulnerabilityStatusAccepted,
	} {
		m.vulnCount.WithLabelValues(string(status)).Set(float64(statusCounts[status]))
	}
}

// UpdateReportMetrics refreshes the report count gauge from the database.
func (m *MetricsServer) UpdateReportMetrics(ctx context.Context) {
	count, err := m.db.CountReports(ctx)
	if err != nil {
		slog.Warn("failed to fetch report count for metrics", "error", err)
		return
	}
	m.reportCount.Set(float64(count))
}

// UpdateAssetMetrics refreshes the active asset count gauge from the database.
func (m *MetricsServer) UpdateAssetMetrics(ctx context.Context) {
	count, err := m.db.CountActiveAssets(ctx)
	if err != nil {
		slog.Warn("failed to fetch active asset count for metrics", "error", err)
		return
	}
	m.activeAssetCount.Set(float64(count))
}

// UpdateAssetStatus updates the reachability gauge for the given asset.
func (m *MetricsServer) UpdateAssetStatus(asset *domain.Asset) {
	labels := []string{asset.Id.String(), asset.Name, asset.Address}
	m.assetUp.WithLabelValues(labels...).Set(internal.BoolToFloat64(asset.Reachable))
}

// UpdateAlertMetrics sets the number of alerts currently derived from the activity feed.
func (m *MetricsServer) UpdateAlertMetrics(derived int) {
	m.alertFeedDerived.Set(float64(derived))
}

// WebsocketClientConnected increments the connected websocket client gauge.
func (m *MetricsServer) WebsocketClientConnected() {
	m.wsConnectedClients.Inc()
}

// WebsocketClientDisconnected decrements the connected websocket client gauge.
func (m *MetricsServer) WebsocketClientDisconnected() {
	m.wsConnectedClients.Dec()
}
