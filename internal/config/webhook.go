package config

import "time"

// WebhookConfig configures the outgoing event webhook. The webhook feature
// stays disabled as long as no target URL is set.
type WebhookConfig struct {
	// Url is the target of the webhook POST requests. An empty value disables
	// the webhook feature.
	Url string `yaml:"url"`
	// Authentication is sent verbatim as the Authorization header of the
	// webhook request, e.g. a Bearer token or a Basic auth string.
	Authentication string `yaml:"authentication"`
	// Timeout limits the duration of a single webhook request.
	Timeout time.Duration `yaml:"timeout"`
}
