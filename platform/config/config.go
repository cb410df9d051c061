// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings for the lead backend.
type DatabaseConfig interface {
	GetDatabaseURL() string
	IsDatabaseConfigured() bool
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// TokenConfig provides settings for signed visitor session tokens.
type TokenConfig interface {
	GetVisitorTokenSecret() string
	GetVisitorTokenTTL() time.Duration
}

// SessionConfig provides lifecycle settings for visitor and funnel sessions.
type SessionConfig interface {
	GetSessionTTL() time.Duration
	GetSessionSweepInterval() time.Duration
}

// DataLayerConfig provides settings for the primary analytics sink.
type DataLayerConfig interface {
	GetRedisURL() string
	GetDataLayerKey() string
}

// PixelConfig provides settings for the secondary (pixel-style) analytics sink.
type PixelConfig interface {
	GetPixelURL() string
	GetPixelID() string
	IsPixelEnabled() bool
}

// WhatsAppConfig provides settings for the outbound messaging deep link.
type WhatsAppConfig interface {
	GetWhatsAppNumber() string
}

// ScoringConfig provides settings for the lead scoring engine.
type ScoringConfig interface {
	GetScoringWeightsPath() string
}

// EmailConfig provides settings for lead notification emails.
type EmailConfig interface {
	GetEmailEnabled() bool
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
	GetLeadInboxAddress() string
}

// RateLimitConfig provides settings for public endpoint rate limiting.
type RateLimitConfig interface {
	GetRateLimitPerSecond() float64
	GetRateLimitBurst() int
}

// =============================================================================
// Config struct and loading
// =============================================================================

// Config holds all application configuration loaded from the environment.
type Config struct {
	Env      string
	HTTPAddr string

	DatabaseURL string

	CORSAllowAll   bool
	CORSOrigins    []string
	CORSAllowCreds bool

	VisitorTokenSecret string
	VisitorTokenTTL    time.Duration

	SessionTTL           time.Duration
	SessionSweepInterval time.Duration

	RedisURL     string
	DataLayerKey string

	PixelURL string
	PixelID  string

	WhatsAppNumber string

	ScoringWeightsPath string

	EmailEnabled     bool
	SMTPHost         string
	SMTPPort         int
	SMTPUsername     string
	SMTPPassword     string
	EmailFromName    string
	EmailFromAddress string
	LeadInboxAddress string

	RateLimitPerSecond float64
	RateLimitBurst     int
}

// Load reads configuration from the environment (and .env if present).
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:      getEnv("APP_ENV", "development"),
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		CORSAllowAll:   corsAllowAll,
		CORSOrigins:    corsOrigins,
		CORSAllowCreds: strings.EqualFold(getEnv("CORS_ALLOW_CREDS", "true"), "true"),

		VisitorTokenSecret: getEnv("VISITOR_TOKEN_SECRET", ""),
		VisitorTokenTTL:    getDuration("VISITOR_TOKEN_TTL", 24*time.Hour),

		SessionTTL:           getDuration("SESSION_TTL", 2*time.Hour),
		SessionSweepInterval: getDuration("SESSION_SWEEP_INTERVAL", 5*time.Minute),

		RedisURL:     getEnv("REDIS_URL", ""),
		DataLayerKey: getEnv("DATA_LAYER_KEY", "analytics:datalayer"),

		PixelURL: getEnv("PIXEL_URL", ""),
		PixelID:  getEnv("PIXEL_ID", ""),

		WhatsAppNumber: getEnv("WHATSAPP_NUMBER", "5561999999999"),

		ScoringWeightsPath: getEnv("SCORING_WEIGHTS_PATH", ""),

		EmailEnabled:     strings.EqualFold(getEnv("EMAIL_ENABLED", "false"), "true"),
		SMTPHost:         getEnv("SMTP_HOST", ""),
		SMTPPort:         getInt("SMTP_PORT", 587),
		SMTPUsername:     getEnv("SMTP_USERNAME", ""),
		SMTPPassword:     getEnv("SMTP_PASSWORD", ""),
		EmailFromName:    getEnv("EMAIL_FROM_NAME", "Funnel Portal"),
		EmailFromAddress: getEnv("EMAIL_FROM_ADDRESS", ""),
		LeadInboxAddress: getEnv("LEAD_INBOX_ADDRESS", ""),

		RateLimitPerSecond: getFloat("RATE_LIMIT_PER_SECOND", 10),
		RateLimitBurst:     getInt("RATE_LIMIT_BURST", 30),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.VisitorTokenSecret == "" {
		if strings.EqualFold(c.Env, "development") {
			c.VisitorTokenSecret = "dev-only-visitor-secret"
		} else {
			return fmt.Errorf("VISITOR_TOKEN_SECRET is required outside development")
		}
	}

	if c.EmailEnabled {
		if c.SMTPHost == "" || c.EmailFromAddress == "" || c.LeadInboxAddress == "" {
			return fmt.Errorf("EMAIL_ENABLED requires SMTP_HOST, EMAIL_FROM_ADDRESS and LEAD_INBOX_ADDRESS")
		}
	}

	return nil
}

// =============================================================================
// Interface implementations
// =============================================================================

func (c *Config) GetDatabaseURL() string       { return c.DatabaseURL }
func (c *Config) IsDatabaseConfigured() bool   { return c.DatabaseURL != "" }
func (c *Config) GetHTTPAddr() string          { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool        { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string     { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool      { return c.CORSAllowCreds }
func (c *Config) GetVisitorTokenSecret() string { return c.VisitorTokenSecret }
func (c *Config) GetVisitorTokenTTL() time.Duration { return c.VisitorTokenTTL }
func (c *Config) GetSessionTTL() time.Duration { return c.SessionTTL }
func (c *Config) GetSessionSweepInterval() time.Duration { return c.SessionSweepInterval }
func (c *Config) GetRedisURL() string          { return c.RedisURL }
func (c *Config) GetDataLayerKey() string      { return c.DataLayerKey }
func (c *Config) GetPixelURL() string          { return c.PixelURL }
func (c *Config) GetPixelID() string           { return c.PixelID }
func (c *Config) IsPixelEnabled() bool         { return c.PixelURL != "" && c.PixelID != "" }
func (c *Config) GetWhatsAppNumber() string    { return c.WhatsAppNumber }
func (c *Config) GetScoringWeightsPath() string { return c.ScoringWeightsPath }
func (c *Config) GetEmailEnabled() bool        { return c.EmailEnabled }
func (c *Config) GetSMTPHost() string          { return c.SMTPHost }
func (c *Config) GetSMTPPort() int             { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string      { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string      { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string     { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string  { return c.EmailFromAddress }
func (c *Config) GetLeadInboxAddress() string  { return c.LeadInboxAddress }
func (c *Config) GetRateLimitPerSecond() float64 { return c.RateLimitPerSecond }
func (c *Config) GetRateLimitBurst() int       { return c.RateLimitBurst }

// =============================================================================
// Helpers
// =============================================================================

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
