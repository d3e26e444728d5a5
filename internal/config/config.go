package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/a8m/envsubst"
	"gopkg.in/yaml.v3"
)

// Config is the configuration of the portal. It is loaded from a single YAML
// file; environment variables in the file are substituted before parsing.
type Config struct {
	Core struct {
		// CompanyName is used in notification mails and on the API landing page.
		CompanyName string `yaml:"company_name"`
	} `yaml:"core"`

	Advanced struct {
		// LogLevel defines the log verbosity: trace, debug, info, warn, error
		LogLevel string `yaml:"log_level"`
		// LogPretty enables colorized, human readable console logs.
		LogPretty bool `yaml:"log_pretty"`
		// LogJson enables JSON formatted logs.
		LogJson bool `yaml:"log_json"`
		// EventBusQueueSize is the buffer size of the internal event bus.
		EventBusQueueSize int `yaml:"event_bus_queue_size"`
	} `yaml:"advanced"`

	Alerts struct {
		// ActivityFeedLimit is the number of recent activity entries that are
		// scanned when the alert list is derived.
		ActivityFeedLimit int `yaml:"activity_feed_limit"`
		// IncludeDemoAlerts merges a static set of demonstration alerts into
		// the derived alert list.
		IncludeDemoAlerts bool `yaml:"include_demo_alerts"`
	} `yaml:"alerts"`

	Statistics struct {
		// UsePingChecks enables periodic liveness checks for active assets.
		UsePingChecks bool `yaml:"use_ping_checks"`
		// PingCheckWorkers is the number of parallel ping workers.
		PingCheckWorkers int `yaml:"ping_check_workers"`
		// PingUnprivileged uses unprivileged UDP pings instead of raw ICMP sockets.
		PingUnprivileged bool `yaml:"ping_unprivileged"`
		// PingCheckInterval is the interval between two liveness sweeps.
		PingCheckInterval time.Duration `yaml:"ping_check_interval"`
		// ListeningAddress is the address and port of the Prometheus metrics server.
		ListeningAddress string `yaml:"listening_address"`
	} `yaml:"statistics"`

	Notifications struct {
		// Recipients is a static list of mail addresses that receive alert
		// notifications. If empty, all users with the admin role are notified.
		Recipients []string `yaml:"recipients"`
		// NotifyOnAuditCompleted sends a mail whenever an audit reaches the
		// completed status.
		NotifyOnAuditCompleted bool `yaml:"notify_on_audit_completed"`
	} `yaml:"notifications"`

	Mail MailConfig `yaml:"mail"`

	Database DatabaseConfig `yaml:"database"`

	Storage StorageConfig `yaml:"storage"`

	Web WebConfig `yaml:"web"`

	Webhook WebhookConfig `yaml:"webhook"`
}

// LogStartupValues logs the effective settings that are relevant during startup.
func (c *Config) LogStartupValues() {
	slog.Info("Configuration loaded!", "logLevel", c.Advanced.LogLevel)

	slog.Debug("Config Features",
		"pingChecks", c.Statistics.UsePingChecks,
		"demoAlerts", c.Alerts.IncludeDemoAlerts,
		"mailNotifications", c.Notifications.NotifyOnAuditCompleted,
		"webhooks", c.Webhook.Url != "",
	)
	slog.Debug("Config Storage",
		"databaseType", c.Database.Type,
		"reportStorageType", c.Storage.Type,
	)
}

func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Core.CompanyName = "Argus Security"

	cfg.Database = DatabaseConfig{
		Type: "sqlite",
		DSN:  "data/argus.db",
	}

	cfg.Storage = StorageConfig{
		Type:     StorageTypeFilesystem,
		BasePath: "data/reports",
	}

	cfg.Web = WebConfig{
		RequestLogging:    false,
		ListeningAddress:  ":8888",
		ExternalUrl:       "http://localhost:8888",
		SessionIdentifier: "argusPortalSession",
		SessionSecret:     "verysecret",
		CsrfSecret:        "extremelysecret",
	}

	cfg.Advanced.LogLevel = "info"
	cfg.Advanced.EventBusQueueSize = 100

	cfg.Alerts.ActivityFeedLimit = 50
	cfg.Alerts.IncludeDemoAlerts = true

	cfg.Statistics.UsePingChecks = true
	cfg.Statistics.PingCheckWorkers = 10
	cfg.Statistics.PingUnprivileged = false
	cfg.Statistics.PingCheckInterval = 1 * time.Minute
	cfg.Statistics.ListeningAddress = ":8787"

	cfg.Mail = MailConfig{
		Host:           "127.0.0.1",
		Port:           25,
		Encryption:     MailEncryptionNone,
		CertValidation: true,
		AuthType:       MailAuthPlain,
		From:           "Argus Portal <noreply@argus.local>",
	}

	cfg.Webhook.Timeout = 10 * time.Second

	return cfg
}

// GetConfig returns the portal configuration. The config file location can be
// overridden with the ARGUS_PORTAL_CONFIG environment variable. A missing
// config file is not an error, the defaults apply in that case.
func GetConfig() (*Config, error) {
	cfg := defaultConfig()

	cfgFileName := "config/config.yaml"
	if envCfgFileName := os.Getenv("ARGUS_PORTAL_CONFIG"); envCfgFileName != "" {
		cfgFileName = envCfgFileName
	}

	if err := loadConfigFile(cfg, cfgFileName); err != nil {
		return nil, fmt.Errorf("failed to load config from yaml: %w", err)
	}

	cfg.Web.Sanitize()

	return cfg, nil
}

func loadConfigFile(cfg any, filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("config file not found, using default configuration", "file", filename)
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", filename, err)
	}

	data, err = envsubst.Bytes(data)
	if err != nil {
		return fmt.Errorf("failed to substitute environment variables: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", filename, err)
	}

	return nil
}
