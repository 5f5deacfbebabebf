package service

import (
	"context"
	"math"
	"time"

	"photobooth_backend/internal/quotes/domain"
	"photobooth_backend/platform/geo"
	"photobooth_backend/platform/logger"
	"photobooth_backend/platform/metrics"

	"github.com/shopspring/decimal"
)

// Geocoder resolves a free-form address to candidate coordinates, best match first.
type Geocoder interface {
	Geocode(ctx context.Context, address string) ([]geo.Coordinate, error)
}

// Calculator produces price estimates from the quote form fields.
type Calculator struct {
	rates    domain.Rates
	geocoder Geocoder
	metrics  *metrics.QuoteMetrics
	log      *logger.Logger
}

// NewCalculator creates a calculator. A nil metrics recorder is allowed.
func NewCalculator(rates domain.Rates, geocoder Geocoder, m *metrics.QuoteMetrics, log *logger.Logger) *Calculator {
	return &Calculator{rates: rates, geocoder: geocoder, metrics: m, log: log}
}

// Rates returns the pricing constants in use.
func (c *Calculator) Rates() domain.Rates {
	return c.rates
}

// Estimate prices a rental. It never fails: a failed address lookup applies the
// travel fee and sets a warning instead.
func (c *Calculator) Estimate(ctx context.Context, in domain.EstimateInput) domain.Estimate {
	duration := DurationHours(in.StartTime, in.EndTime)

	if in.ServiceType != domain.ServiceRent {
		est := domain.Estimate{
			Breakdown:     domain.PlaceholderBreakdown(),
			DurationHours: duration,
			TravelReason:  domain.TravelNotApplicable,
		}
		c.metrics.IncEstimate(string(in.ServiceType), string(est.TravelReason))
		return est
	}

	extraHours := c.extraHours(duration)
	extraCost := c.rates.ExtraHourRate.Mul(decimal.NewFromInt(int64(extraHours)))
	if c.rates.BasePrice.Add(extraCost).GreaterThan(c.rates.MaxRentalFee) {
		extraCost = decimal.Max(decimal.Zero, c.rates.MaxRentalFee.Sub(c.rates.BasePrice))
	}

	est := domain.Estimate{
		DurationHours: duration,
		TravelReason:  domain.TravelNoAddress,
	}
	travelFee := decimal.Zero
	if in.HasAddress() {
		est.TravelReason, est.DistanceMiles = c.travel(ctx, in.VenueAddress)
		switch est.TravelReason {
		case domain.TravelOutsideRadius:
			travelFee = c.rates.TravelFee
		case domain.TravelAddressUnverified:
			travelFee = c.rates.TravelFee
			est.Warning = domain.UnverifiedAddressWarning
		}
	}

	est.Breakdown = domain.Breakdown{
		BasePrice:      c.rates.BasePrice,
		ExtraHours:     extraHours,
		ExtraHoursCost: extraCost,
		TravelFee:      travelFee,
		Total:          domain.AmountTotal(c.rates.BasePrice.Add(extraCost).Add(travelFee)),
	}
	c.metrics.IncEstimate(string(in.ServiceType), string(est.TravelReason))
	return est
}

func (c *Calculator) extraHours(duration float64) int {
	extra := math.Ceil(duration - float64(c.rates.BaseHours))
	if extra <= 0 {
		return 0
	}
	return int(extra)
}

func (c *Calculator) travel(ctx context.Context, address string) (domain.TravelReason, *float64) {
	if c.geocoder == nil {
		return domain.TravelAddressUnverified, nil
	}

	start := time.Now()
	coords, err := c.geocoder.Geocode(ctx, address)
	switch {
	case err != nil:
		c.metrics.ObserveGeocode("error", time.Since(start))
		c.log.WithContext(ctx).ExternalCallFailed("geocoder", "geocode", err)
		return domain.TravelAddressUnverified, nil
	case len(coords) == 0:
		c.metrics.ObserveGeocode("not_found", time.Since(start))
		c.log.WithContext(ctx).Debug("venue address not found", "address", address)
		return domain.TravelAddressUnverified, nil
	}
	c.metrics.ObserveGeocode("ok", time.Since(start))

	miles := geo.DistanceMiles(c.rates.Home, coords[0])
	if miles > c.rates.TravelRadiusMiles {
		return domain.TravelOutsideRadius, &miles
	}
	return domain.TravelWithinRadius, &miles
}

var timeLayouts = []string{"15:04", "15:04:05"}

// DurationHours returns the length of the event in hours. An end time before
// the start wraps past midnight. Unparseable times yield 0.
func DurationHours(startTime, endTime string) float64 {
	start, ok := parseClock(startTime)
	if !ok {
		return 0
	}
	end, ok := parseClock(endTime)
	if !ok {
		return 0
	}
	if end.Before(start) {
		end = end.Add(24 * time.Hour)
	}
	return end.Sub(start).Hours()
}

func parseClock(value string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
