package service

import (
	"bytes"
	"fmt"
	"os"

	"photobooth_backend/internal/quotes/domain"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ratesFile mirrors the pricing YAML. Every field is optional and falls back
// to the default rates.
type ratesFile struct {
	BasePrice         *float64 `yaml:"base_price"`
	BaseHours         *int     `yaml:"base_hours"`
	ExtraHourRate     *float64 `yaml:"extra_hour_rate"`
	MaxRentalFee      *float64 `yaml:"max_rental_fee"`
	TravelFee         *float64 `yaml:"travel_fee"`
	TravelRadiusMiles *float64 `yaml:"travel_radius_miles"`
	Home              *struct {
		Label string  `yaml:"label"`
		Lat   float64 `yaml:"lat"`
		Lng   float64 `yaml:"lng"`
	} `yaml:"home"`
}

// LoadRates reads pricing overrides from path. An empty path returns the defaults.
func LoadRates(path string) (domain.Rates, error) {
	if path == "" {
		return domain.DefaultRates(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Rates{}, fmt.Errorf("read pricing file: %w", err)
	}
	return ParseRates(data)
}

// ParseRates decodes a pricing YAML document on top of the default rates.
func ParseRates(data []byte) (domain.Rates, error) {
	rates := domain.DefaultRates()
	if len(bytes.TrimSpace(data)) == 0 {
		return rates, nil
	}

	var file ratesFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return domain.Rates{}, fmt.Errorf("parse pricing file: %w", err)
	}

	if file.BasePrice != nil {
		rates.BasePrice = decimal.NewFromFloat(*file.BasePrice)
	}
	if file.BaseHours != nil {
		rates.BaseHours = *file.BaseHours
	}
	if file.ExtraHourRate != nil {
		rates.ExtraHourRate = decimal.NewFromFloat(*file.ExtraHourRate)
	}
	if file.MaxRentalFee != nil {
		rates.MaxRentalFee = decimal.NewFromFloat(*file.MaxRentalFee)
	}
	if file.TravelFee != nil {
		rates.TravelFee = decimal.NewFromFloat(*file.TravelFee)
	}
	if file.TravelRadiusMiles != nil {
		rates.TravelRadiusMiles = *file.TravelRadiusMiles
	}
	if file.Home != nil {
		rates.Home.Lat = file.Home.Lat
		rates.Home.Lng = file.Home.Lng
		if file.Home.Label != "" {
			rates.HomeLabel = file.Home.Label
		}
	}

	if err := validateRates(rates); err != nil {
		return domain.Rates{}, err
	}
	return rates, nil
}

func validateRates(r domain.Rates) error {
	switch {
	case r.BasePrice.IsNegative():
		return fmt.Errorf("pricing: base_price must not be negative")
	case r.BaseHours < 0:
		return fmt.Errorf("pricing: base_hours must not be negative")
	case r.ExtraHourRate.IsNegative():
		return fmt.Errorf("pricing: extra_hour_rate must not be negative")
	case r.MaxRentalFee.LessThan(r.BasePrice):
		return fmt.Errorf("pricing: max_rental_fee must be at least base_price")
	case r.TravelFee.IsNegative():
		return fmt.Errorf("pricing: travel_fee must not be negative")
	case r.TravelRadiusMiles < 0:
		return fmt.Errorf("pricing: travel_radius_miles must not be negative")
	case r.Home.Lat < -90 || r.Home.Lat > 90 || r.Home.Lng < -180 || r.Home.Lng > 180:
		return fmt.Errorf("pricing: home coordinates out of range")
	}
	return nil
}
