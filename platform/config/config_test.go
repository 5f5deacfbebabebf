package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", "")
	t.Setenv("EMAIL_PROVIDER", "log")
	t.Setenv("GEOCODER_PROVIDER", "")
	t.Setenv("QUOTE_DEBOUNCE", "500ms")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, https://booth.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.GetGeocoderProvider() != GeocoderNominatim {
		t.Fatalf("expected nominatim geocoder, got %q", cfg.GetGeocoderProvider())
	}
	if cfg.GetQuoteDebounce() != 500*time.Millisecond {
		t.Fatalf("expected 500ms debounce, got %s", cfg.GetQuoteDebounce())
	}
	if got := cfg.GetCORSOrigins(); len(got) != 2 || got[1] != "https://booth.example.com" {
		t.Fatalf("unexpected CORS origins %v", got)
	}
}

func TestLoadRejectsBrevoWithoutKey(t *testing.T) {
	t.Setenv("EMAIL_PROVIDER", "brevo")
	t.Setenv("BREVO_API_KEY", "")
	t.Setenv("EMAIL_FROM_ADDRESS", "hello@booth.example.com")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for brevo without API key")
	}
}

func TestLoadRejectsGoogleWithoutKey(t *testing.T) {
	t.Setenv("EMAIL_PROVIDER", "log")
	t.Setenv("GEOCODER_PROVIDER", "google")
	t.Setenv("GOOGLE_MAPS_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for google geocoder without API key")
	}
}

func TestLoadRequiresFromAddressForSMTP(t *testing.T) {
	t.Setenv("EMAIL_PROVIDER", "smtp")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("EMAIL_FROM_ADDRESS", "")
	t.Setenv("GEOCODER_PROVIDER", "nominatim")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for smtp without from address")
	}
}

func TestLoadMissingRecipientIsNotFatal(t *testing.T) {
	t.Setenv("EMAIL_PROVIDER", "log")
	t.Setenv("GEOCODER_PROVIDER", "nominatim")
	t.Setenv("QUOTE_RECIPIENT_EMAIL", "")
	t.Setenv("QUOTE_DEBOUNCE", "500ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.GetQuoteRecipientEmail() != "" {
		t.Fatalf("expected empty recipient, got %q", cfg.GetQuoteRecipientEmail())
	}
}

func TestLoadRejectsInvalidDurations(t *testing.T) {
	cases := map[string]map[string]string{
		"malformed idle ttl": {"SESSION_IDLE_TTL": "thirty minutes"},
		"zero idle ttl":      {"SESSION_IDLE_TTL": "0s"},
		"malformed debounce": {"QUOTE_DEBOUNCE": "fast"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("EMAIL_PROVIDER", "log")
			t.Setenv("GOOGLE_MAPS_API_KEY", "")
			t.Setenv("GEOCODER_PROVIDER", "")
			t.Setenv("QUOTE_DEBOUNCE", "500ms")
			t.Setenv("SESSION_IDLE_TTL", "30m")
			for key, value := range env {
				t.Setenv(key, value)
			}
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %v", env)
			}
		})
	}
}
