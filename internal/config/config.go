// Package config loads service configuration from the environment.
package config

import (
	"errors"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Server    ServerConfig    `koanf:"server"`
	RateLimit RateLimitConfig `koanf:"ratelimit"`
	Webhook   WebhookConfig   `koanf:"webhook"`
	GitHub    GitHubConfig    `koanf:"github"`
	Email     EmailConfig     `koanf:"email"`
	Database  DatabaseConfig  `koanf:"database"`
	Admin     AdminConfig     `koanf:"admin"`
}

type ServerConfig struct {
	Port        int    `koanf:"port"`
	Environment string `koanf:"environment"`
	CORSOrigin  string `koanf:"cors_origin"`
	LogLevel    string `koanf:"log_level"`
}

type RateLimitConfig struct {
	Max    int `koanf:"max"`
	Window int `koanf:"window"` // seconds
}

type WebhookConfig struct {
	// Secret is the shared HMAC key. Empty disables signature checking.
	Secret string `koanf:"secret"`
}

type GitHubConfig struct {
	Token string `koanf:"token"`
	Repo  string `koanf:"repo"` // "owner/name"
}

type EmailConfig struct {
	APIKey string `koanf:"api_key"`
	From   string `koanf:"from"`
	To     string `koanf:"to"`
}

type DatabaseConfig struct {
	URL         string `koanf:"url"`
	FallbackURL string `koanf:"fallback_url"`
}

type AdminConfig struct {
	Token string `koanf:"token"`
}

// envKeys maps recognized environment variables to config keys. Anything not
// listed here is ignored.
var envKeys = map[string]string{
	"PORT":               "server.port",
	"ENVIRONMENT":        "server.environment",
	"CORS_ORIGIN":        "server.cors_origin",
	"LOG_LEVEL":          "server.log_level",
	"RATE_LIMIT_MAX":     "ratelimit.max",
	"RATE_LIMIT_WINDOW":  "ratelimit.window",
	"WEBHOOK_SECRET":     "webhook.secret",
	"GITHUB_TOKEN":       "github.token",
	"GITHUB_REPO":        "github.repo",
	"RESEND_API_KEY":     "email.api_key",
	"CONTACT_EMAIL_FROM": "email.from",
	"CONTACT_EMAIL_TO":   "email.to",
	"SUPABASE_DB_URL":    "database.url",
	"DATABASE_URL":       "database.fallback_url",
	"ADMIN_TOKEN":        "admin.token",
}

// Load reads configuration from the environment (seeded from a .env file when
// one exists) and applies defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string {
		return envKeys[s] // empty string drops unrecognized variables
	}), nil); err != nil {
		return nil, err
	}

	defaults := map[string]any{
		"server.port":        8080,
		"server.environment": "production",
		"server.cors_origin": "*",
		"ratelimit.max":      10,
		"ratelimit.window":   3600,
	}
	for key, value := range defaults {
		if !k.Exists(key) {
			_ = k.Set(key, value)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	if cfg.Database.URL == "" {
		cfg.Database.URL = cfg.Database.FallbackURL
	}
	if cfg.Database.URL == "" {
		return nil, errors.New("config: SUPABASE_DB_URL or DATABASE_URL is required")
	}
	if cfg.RateLimit.Max < 1 || cfg.RateLimit.Window < 1 {
		return nil, errors.New("config: rate limit max and window must be positive")
	}

	return &cfg, nil
}

// IsDevelopment reports whether diagnostic detail may be included in error
// responses.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}
