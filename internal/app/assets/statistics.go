package assets

import (
	"context"
	"log/slog"
	"sync"
	"time"

	probing "github.com/prometheus-community/pro-bing"

	"github.com/argus-sec/argus-portal/internal/app"
	"github.com/argus-sec/argus-portal/internal/config"
	"github.com/argus-sec/argus-portal/internal/domain"
)

// StatisticsCollector keeps the liveness fields of active assets current and
// refreshes the exported Prometheus gauges whenever the dashboard counters
// change.
type StatisticsCollector struct {
	cfg *config.Config
	bus EventBus

	pingWaitGroup sync.WaitGroup
	pingJobs      chan domain.Asset

	db      DatabaseRepo
	metrics MetricsUpdater
}

func NewStatisticsCollector(
	cfg *config.Config,
	bus EventBus,
	db DatabaseRepo,
	metrics MetricsUpdater,
) (*StatisticsCollector, error) {
	c := &StatisticsCollector{
		cfg: cfg,
		bus: bus,

		db:      db,
		metrics: metrics,
	}

	c.connectToMessageBus()

	return c, nil
}

func (c *StatisticsCollector) connectToMessageBus() {
	if c.metrics == nil {
		slog.Info("[STATS] no metrics server configured, skipping event-bus subscription")
		return
	}

	_ = c.bus.Subscribe(app.TopicMetricsChanged, c.handleMetricsChangedEvent)
}

// handleMetricsChangedEvent recomputes all database backed gauges. The event
// carries no payload, publishers fire it after any change that affects the
// dashboard counters.
func (c *StatisticsCollector) handleMetricsChangedEvent() {
	ctx := domain.SetUserInfo(context.Background(), domain.SystemUserInfo())

	c.metrics.UpdateAuditMetrics(ctx)
	c.metrics.UpdateVulnerabilityMetrics(ctx)
	c.metrics.UpdateReportMetrics(ctx)
	c.metrics.UpdateAssetMetrics(ctx)
}

// StartBackgroundJobs starts the asset liveness workers.
// This method is non-blocking and returns immediately.
func (c *StatisticsCollector) StartBackgroundJobs(ctx context.Context) {
	c.startPingWorkers(ctx)
}

func (c *StatisticsCollector) startPingWorkers(ctx context.Context) {
	if !c.cfg.Statistics.UsePingChecks {
		return
	}

	if c.pingJobs != nil {
		return // already started
	}

	c.pingWaitGroup = sync.WaitGroup{}
	c.pingWaitGroup.Add(c.cfg.Statistics.PingCheckWorkers)
	c.pingJobs = make(chan domain.Asset, c.cfg.Statistics.PingCheckWorkers)

	// start workers
	for i := 0; i < c.cfg.Statistics.PingCheckWorkers; i++ {
		go c.pingWorker(ctx)
	}

	// start cleanup goroutine
	go func() {
		c.pingWaitGroup.Wait()

		slog.Debug("[STATS] stopped asset liveness checks")
	}()

	go c.enqueuePingChecks(ctx)

	slog.Debug("[STATS] started asset liveness checks")
}

func (c *StatisticsCollector) enqueuePingChecks(ctx context.Context) {
	// Start ticker
	ticker := time.NewTicker(c.cfg.Statistics.PingCheckInterval)
	defer ticker.Stop()
	defer close(c.pingJobs)

	for {
		select {
		case <-ctx.Done():
			return // program stopped
		case <-ticker.C:
			assets, err := c.db.GetActiveAssets(ctx)
			if err != nil {
				slog.Warn("[STATS] failed to fetch active assets for liveness checks", "error", err)
				continue
			}

			for _, asset := range assets {
				c.pingJobs <- asset
			}
		}
	}
}

func (c *StatisticsCollector) pingWorker(ctx context.Context) {
	defer c.pingWaitGroup.Done()
	for asset := range c.pingJobs {
		reachable := c.isAssetReachable(ctx, asset)
		slog.Debug("[STATS] asset reachability checked", "asset", asset.Id, "reachable", reachable)

		c.updateAssetLiveness(ctx, asset, reachable)
	}
}

func (c *StatisticsCollector) updateAssetLiveness(ctx context.Context, asset domain.Asset, reachable bool) {
	ctx = domain.SetUserInfo(ctx, domain.SystemUserInfo())
	checkedAt := time.Now()

	flipped := false
	err := c.db.SaveAsset(ctx, asset.Id, func(a *domain.Asset) (*domain.Asset, error) {
		flipped = a.Reachable != reachable
		a.Reachable, a.LastSeen = nextLiveness(*a, reachable, checkedAt)
		return a, nil
	})
	if err != nil {
		slog.Warn("[STATS] failed to update asset liveness", "asset", asset.Id, "error", err)
		return
	}

	if c.metrics != nil {
		asset.Reachable = reachable
		c.metrics.UpdateAssetStatus(&asset)
	}

	if flipped {
		c.bus.Publish(app.TopicMetricsChanged)
	}
}

// nextLiveness returns the new reachability flag and last seen timestamp for
// an asset after a liveness check. An unreachable asset keeps its previous
// sighting.
func nextLiveness(asset domain.Asset, reachable bool, checkedAt time.Time) (bool, *time.Time) {
	if !reachable {
		return false, asset.LastSeen
	}

	return true, &checkedAt
}

func (c *StatisticsCollector) isAssetReachable(ctx context.Context, asset domain.Asset) bool {
	if c.cfg.Statistics.UsePingChecks == false {
		return false
	}

	checkAddr := asset.Address
	if checkAddr == "" {
		return false
	}

	pinger, err := probing.NewPinger(checkAddr)
	if err != nil {
		slog.Debug("[STATS] failed to instantiate pinger", "address", checkAddr, "error", err)
		return false
	}

	checkCount := 1
	pinger.SetPrivileged(!c.cfg.Statistics.PingUnprivileged)
	pinger.Count = checkCount
	pinger.Timeout = 2 * time.Second
	err = pinger.RunWithContext(ctx) // Blocks until finished.
	if err != nil {
		slog.Debug("[STATS] pinger exited unexpectedly", "address", checkAddr, "error", err)
		return false
	}
	stats := pinger.Statistics()
	return stats.PacketsRecv == checkCount
}
