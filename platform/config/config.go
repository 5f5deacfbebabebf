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

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
}

// EmailConfig provides settings for email sending.
type EmailConfig interface {
	GetEmailProvider() string
	GetBrevoAPIKey() string
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
}

// QuoteNotificationConfig provides settings for quote request notifications.
type QuoteNotificationConfig interface {
	GetQuoteRecipientEmail() string
	GetBookingURL() string
}

// GeocoderConfig provides settings for the address geocoding provider.
type GeocoderConfig interface {
	GetGeocoderProvider() string
	GetGoogleMapsAPIKey() string
	GetNominatimURL() string
}

// PricingConfig provides settings for the quote calculator.
type PricingConfig interface {
	GetPricingFile() string
	GetQuoteDebounce() time.Duration
	GetSessionIdleTTL() time.Duration
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Email providers.
const (
	EmailProviderBrevo = "brevo"
	EmailProviderSMTP  = "smtp"
	EmailProviderLog   = "log"
)

// Geocoder providers.
const (
	GeocoderGoogle    = "google"
	GeocoderNominatim = "nominatim"
)

// Config holds all application configuration values.
type Config struct {
	Env                 string
	HTTPAddr            string
	CORSAllowAll        bool
	CORSOrigins         []string
	EmailProvider       string
	BrevoAPIKey         string
	SMTPHost            string
	SMTPPort            int
	SMTPUsername        string
	SMTPPassword        string
	EmailFromName       string
	EmailFromAddress    string
	QuoteRecipientEmail string
	BookingURL          string
	GeocoderProvider    string
	GoogleMapsAPIKey    string
	NominatimURL        string
	PricingFile         string
	QuoteDebounce       time.Duration
	SessionIdleTTL      time.Duration
}

// =============================================================================
// Interface Implementations
// =============================================================================

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }

// EmailConfig implementation
func (c *Config) GetEmailProvider() string    { return c.EmailProvider }
func (c *Config) GetBrevoAPIKey() string      { return c.BrevoAPIKey }
func (c *Config) GetSMTPHost() string         { return c.SMTPHost }
func (c *Config) GetSMTPPort() int            { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string     { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string     { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string    { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string { return c.EmailFromAddress }

// QuoteNotificationConfig implementation
func (c *Config) GetQuoteRecipientEmail() string { return c.QuoteRecipientEmail }
func (c *Config) GetBookingURL() string          { return c.BookingURL }

// GeocoderConfig implementation
func (c *Config) GetGeocoderProvider() string { return c.GeocoderProvider }
func (c *Config) GetGoogleMapsAPIKey() string { return c.GoogleMapsAPIKey }
func (c *Config) GetNominatimURL() string     { return c.NominatimURL }

// PricingConfig implementation
func (c *Config) GetPricingFile() string           { return c.PricingFile }
func (c *Config) GetQuoteDebounce() time.Duration  { return c.QuoteDebounce }
func (c *Config) GetSessionIdleTTL() time.Duration { return c.SessionIdleTTL }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	googleKey := getEnv("GOOGLE_MAPS_API_KEY", "")
	defaultGeocoder := GeocoderNominatim
	if googleKey != "" {
		defaultGeocoder = GeocoderGoogle
	}

	cfg := &Config{
		Env:                 getEnv("APP_ENV", "development"),
		HTTPAddr:            getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:        corsAllowAll,
		CORSOrigins:         corsOrigins,
		EmailProvider:       strings.ToLower(getEnv("EMAIL_PROVIDER", EmailProviderLog)),
		BrevoAPIKey:         getEnv("BREVO_API_KEY", ""),
		SMTPHost:            getEnv("SMTP_HOST", ""),
		SMTPPort:            mustInt(getEnv("SMTP_PORT", "587")),
		SMTPUsername:        getEnv("SMTP_USERNAME", ""),
		SMTPPassword:        getEnv("SMTP_PASSWORD", ""),
		EmailFromName:       getEnv("EMAIL_FROM_NAME", "The Magazine Photo Booth"),
		EmailFromAddress:    getEnv("EMAIL_FROM_ADDRESS", ""),
		QuoteRecipientEmail: strings.TrimSpace(getEnv("QUOTE_RECIPIENT_EMAIL", "")),
		BookingURL:          getEnv("BOOKING_URL", ""),
		GeocoderProvider:    strings.ToLower(getEnv("GEOCODER_PROVIDER", defaultGeocoder)),
		GoogleMapsAPIKey:    googleKey,
		NominatimURL:        getEnv("NOMINATIM_URL", "https://nominatim.openstreetmap.org"),
		PricingFile:         getEnv("PRICING_FILE", ""),
		QuoteDebounce:       mustDuration(getEnv("QUOTE_DEBOUNCE", "500ms")),
		SessionIdleTTL:      mustDuration(getEnv("SESSION_IDLE_TTL", "30m")),
	}

	if cfg.EmailProvider == "" {
		cfg.EmailProvider = EmailProviderLog
	}
	if cfg.GeocoderProvider == "" {
		cfg.GeocoderProvider = defaultGeocoder
	}

	switch cfg.EmailProvider {
	case EmailProviderBrevo:
		if cfg.BrevoAPIKey == "" {
			return nil, fmt.Errorf("BREVO_API_KEY is required when EMAIL_PROVIDER is brevo")
		}
	case EmailProviderSMTP:
		if cfg.SMTPHost == "" {
			return nil, fmt.Errorf("SMTP_HOST is required when EMAIL_PROVIDER is smtp")
		}
	case EmailProviderLog:
	default:
		return nil, fmt.Errorf("unknown EMAIL_PROVIDER %q", cfg.EmailProvider)
	}
	if cfg.EmailProvider != EmailProviderLog && cfg.EmailFromAddress == "" {
		return nil, fmt.Errorf("EMAIL_FROM_ADDRESS is required when email is enabled")
	}

	switch cfg.GeocoderProvider {
	case GeocoderGoogle:
		if cfg.GoogleMapsAPIKey == "" {
			return nil, fmt.Errorf("GOOGLE_MAPS_API_KEY is required when GEOCODER_PROVIDER is google")
		}
	case GeocoderNominatim:
	default:
		return nil, fmt.Errorf("unknown GEOCODER_PROVIDER %q", cfg.GeocoderProvider)
	}

	if cfg.QuoteDebounce <= 0 {
		return nil, fmt.Errorf("QUOTE_DEBOUNCE must be a positive duration")
	}
	if cfg.SessionIdleTTL <= 0 {
		return nil, fmt.Errorf("SESSION_IDLE_TTL must be a positive duration")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
