package domain

import (
	"photobooth_backend/platform/geo"

	"github.com/shopspring/decimal"
)

// Rates are the pricing constants used by the calculator.
type Rates struct {
	BasePrice         decimal.Decimal
	BaseHours         int
	ExtraHourRate     decimal.Decimal
	MaxRentalFee      decimal.Decimal
	TravelFee         decimal.Decimal
	TravelRadiusMiles float64
	Home              geo.Coordinate
	HomeLabel         string
}

// DefaultRates returns the published Chicago pricing.
func DefaultRates() Rates {
	return Rates{
		BasePrice:         decimal.NewFromInt(800),
		BaseHours:         6,
		ExtraHourRate:     decimal.NewFromInt(100),
		MaxRentalFee:      decimal.NewFromInt(1000),
		TravelFee:         decimal.NewFromInt(150),
		TravelRadiusMiles: 30,
		Home:              geo.Coordinate{Lat: 41.8781, Lng: -87.6298},
		HomeLabel:         "Chicago",
	}
}
