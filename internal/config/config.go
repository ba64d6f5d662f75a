package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds the process configuration. Values are resolved once at
// startup; the core takes them as plain values and never re-reads the
// environment.
type Config struct {
	Service  string `koanf:"service"`
	Env      string `koanf:"env"`
	LogLevel string `koanf:"log_level"`

	HTTPAddr string `koanf:"http_addr"`

	// AdminActorID is the single configured administrator identity.
	AdminActorID string `koanf:"admin_actor_id"`

	// DatabaseDSN selects the sqlite store; empty runs fully in memory.
	DatabaseDSN string `koanf:"database_dsn"`

	// SessionIdleTTL discards workflows idle past this duration; zero
	// disables expiry.
	SessionIdleTTL time.Duration `koanf:"session_idle_ttl"`

	Export ExportConfig `koanf:"export"`
}

// ExportConfig configures the ledger export target. With neither a webhook
// URL nor a CSV path set, export degrades to log-only.
type ExportConfig struct {
	WebhookURL string `koanf:"webhook_url"`
	CSVPath    string `koanf:"csv_path"`
}

// Load builds the configuration from defaults overlaid with DOKONBOT_*
// environment variables (DOKONBOT_EXPORT_WEBHOOK_URL -> export.webhook_url).
func Load() (*Config, error) {
	k := koanf.New(".")

	_ = k.Load(confmap.Provider(map[string]interface{}{
		"service":          "dokonbot",
		"env":              "dev",
		"log_level":        "info",
		"http_addr":        ":8080",
		"session_idle_ttl": "30m",
	}, "."), nil)

	if err := k.Load(env.Provider("DOKONBOT_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "DOKONBOT_")
		s = strings.ToLower(s)
		if after, ok := strings.CutPrefix(s, "export_"); ok {
			return "export." + after
		}
		return s
	}), nil); err != nil {
		return nil, fmt.Errorf("load env config: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.AdminActorID == "" {
		return nil, fmt.Errorf("config: admin actor id is required")
	}
	return &cfg, nil
}
