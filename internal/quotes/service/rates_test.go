package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
)

func TestLoadRatesEmptyPathReturnsDefaults(t *testing.T) {
	rates, err := LoadRates("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rates.BasePrice.Equal(decimal.NewFromInt(800)) || rates.BaseHours != 6 {
		t.Fatalf("unexpected defaults %+v", rates)
	}
	if rates.HomeLabel != "Chicago" {
		t.Fatalf("expected Chicago home base, got %q", rates.HomeLabel)
	}
}

func TestLoadRatesOverridesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pricing.yaml")
	content := []byte("base_price: 900\ntravel_fee: 175.50\nhome:\n  label: Evanston\n  lat: 42.0451\n  lng: -87.6877\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write pricing file: %v", err)
	}

	rates, err := LoadRates(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rates.BasePrice.Equal(decimal.NewFromInt(900)) {
		t.Fatalf("expected base price 900, got %s", rates.BasePrice)
	}
	if !rates.TravelFee.Equal(decimal.RequireFromString("175.5")) {
		t.Fatalf("expected travel fee 175.5, got %s", rates.TravelFee)
	}
	if !rates.MaxRentalFee.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("expected default max rental fee, got %s", rates.MaxRentalFee)
	}
	if rates.HomeLabel != "Evanston" || rates.Home.Lat != 42.0451 {
		t.Fatalf("expected Evanston home base, got %+v", rates.Home)
	}
}

func TestParseRatesRejectsUnknownFields(t *testing.T) {
	if _, err := ParseRates([]byte("base_prise: 900\n")); err == nil {
		t.Fatal("expected error for misspelled field")
	}
}

func TestParseRatesRejectsCapBelowBase(t *testing.T) {
	if _, err := ParseRates([]byte("max_rental_fee: 500\n")); err == nil {
		t.Fatal("expected error when the cap is below the base price")
	}
}
