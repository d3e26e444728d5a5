package main

import (
	"context"
	"log/slog"
	"os"
	"syscall"

	"github.com/go-playground/validator/v10"
	evbus "github.com/vardius/message-bus"

	"github.com/argus-sec/argus-portal/internal"
	"github.com/argus-sec/argus-portal/internal/adapters"
	"github.com/argus-sec/argus-portal/internal/adapters/reportstore"
	"github.com/argus-sec/argus-portal/internal/app"
	"github.com/argus-sec/argus-portal/internal/app/activity"
	"github.com/argus-sec/argus-portal/internal/app/alerts"
	"github.com/argus-sec/argus-portal/internal/app/api/core"
	handlersV0 "github.com/argus-sec/argus-portal/internal/app/api/v0/handlers"
	"github.com/argus-sec/argus-portal/internal/app/assets"
	"github.com/argus-sec/argus-portal/internal/app/audits"
	"github.com/argus-sec/argus-portal/internal/app/notify"
	"github.com/argus-sec/argus-portal/internal/app/reports"
	"github.com/argus-sec/argus-portal/internal/app/webhooks"
	"github.com/argus-sec/argus-portal/internal/config"
)

func main() {
	ctx := internal.SignalAwareContext(context.Background(), syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)

	cfg, err := config.GetConfig()
	internal.AssertNoError(err)

	internal.SetupLogging(cfg.Advanced.LogLevel, cfg.Advanced.LogPretty, cfg.Advanced.LogJson)

	slog.Info("Starting the Argus portal...", "version", internal.Version)
	cfg.LogStartupValues()

	rawDb, err := adapters.NewDatabase(cfg.Database)
	internal.AssertNoError(err)

	database, err := adapters.NewSqlRepository(rawDb)
	internal.AssertNoError(err)

	shouldExit, err := app.HandleProgramArgs(rawDb)
	switch {
	case shouldExit && err == nil:
		return
	case shouldExit && err != nil:
		slog.Error("failed to process program args", "error", err)
		os.Exit(1)
	case !shouldExit:
		internal.AssertNoError(err)
	}

	queueSize := cfg.Advanced.EventBusQueueSize
	eventBus := evbus.New(queueSize)

	reportStore, err := reportstore.New(cfg.Storage)
	internal.AssertNoError(err)

	mailer := adapters.NewSmtpMailRepo(cfg.Mail)

	metricsServer := adapters.NewMetricsServer(cfg, database)

	auditManager, err := audits.NewAuditManager(cfg, eventBus, database)
	internal.AssertNoError(err)

	reportManager, err := reports.NewReportManager(cfg, eventBus, database, reportStore)
	internal.AssertNoError(err)

	assetManager, err := assets.NewAssetManager(cfg, eventBus, database)
	internal.AssertNoError(err)

	activityManager := activity.NewManager(database)

	// the recorder, notifier and webhook manager only react to bus events
	_, err = activity.NewActivityRecorder(cfg, eventBus, database)
	internal.AssertNoError(err)

	_, err = notify.NewNotificationManager(cfg, eventBus, mailer, database)
	internal.AssertNoError(err)

	_, err = webhooks.NewManager(cfg, eventBus)
	internal.AssertNoError(err)

	alertManager, err := alerts.NewAlertManager(cfg, eventBus, database, metricsServer)
	internal.AssertNoError(err)

	statisticsCollector, err := assets.NewStatisticsCollector(cfg, eventBus, database, metricsServer)
	internal.AssertNoError(err)

	backend, err := app.New(cfg, eventBus, database, statisticsCollector)
	internal.AssertNoError(err)

	err = backend.Startup(ctx)
	internal.AssertNoError(err)

	apiV0Session := handlersV0.NewSessionWrapper(cfg)
	apiV0Validator := validator.New()

	apiV0 := handlersV0.NewRestApi(apiV0Session,
		handlersV0.NewAuditEndpoint(auditManager, apiV0Validator),
		handlersV0.NewReportEndpoint(reportManager, apiV0Validator),
		handlersV0.NewActivityEndpoint(activityManager),
		handlersV0.NewAlertEndpoint(alertManager, apiV0Session),
		handlersV0.NewAssetEndpoint(assetManager),
		handlersV0.NewWebsocketEndpoint(cfg, eventBus, metricsServer),
		handlersV0.NewTestEndpoint(),
	)

	webSrv, err := core.NewServer(cfg, apiV0)
	internal.AssertNoError(err)

	go metricsServer.Run(ctx)
	go webSrv.Run(ctx, cfg.Web.ListeningAddress)

	slog.Info("Application startup complete")

	// wait until context gets cancelled
	<-ctx.Done()

	slog.Info("Stopped the Argus portal")
}
