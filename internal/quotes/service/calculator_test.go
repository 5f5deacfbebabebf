package service

import (
	"context"
	"errors"
	"testing"

	"photobooth_backend/internal/quotes/domain"
	"photobooth_backend/platform/geo"
	"photobooth_backend/platform/logger"
	"photobooth_backend/platform/metrics"

	"github.com/shopspring/decimal"
)

type fakeGeocoder struct {
	coords []geo.Coordinate
	err    error
	calls  int
}

func (f *fakeGeocoder) Geocode(_ context.Context, _ string) ([]geo.Coordinate, error) {
	f.calls++
	return f.coords, f.err
}

var (
	evanston  = geo.Coordinate{Lat: 42.0451, Lng: -87.6877}
	milwaukee = geo.Coordinate{Lat: 43.0389, Lng: -87.9065}
)

func newTestCalculator(g Geocoder) *Calculator {
	return NewCalculator(domain.DefaultRates(), g, metrics.NewQuoteMetrics(nil), logger.Discard())
}

func assertMoney(t *testing.T, field string, got decimal.Decimal, want int64) {
	t.Helper()
	if !got.Equal(decimal.NewFromInt(want)) {
		t.Fatalf("expected %s %d, got %s", field, want, got)
	}
}

func TestEstimateSaleReturnsPlaceholder(t *testing.T) {
	geocoder := &fakeGeocoder{coords: []geo.Coordinate{milwaukee}}
	calc := newTestCalculator(geocoder)

	est := calc.Estimate(context.Background(), domain.EstimateInput{
		ServiceType:  domain.ServiceSale,
		StartTime:    "09:00",
		EndTime:      "23:00",
		VenueAddress: "700 N Art Museum Dr, Milwaukee, WI 53202",
	})

	b := est.Breakdown
	assertMoney(t, "basePrice", b.BasePrice, 0)
	assertMoney(t, "extraHoursCost", b.ExtraHoursCost, 0)
	assertMoney(t, "travelFee", b.TravelFee, 0)
	if b.ExtraHours != 0 {
		t.Fatalf("expected 0 extra hours, got %d", b.ExtraHours)
	}
	if !b.Total.IsPlaceholder() || b.Total.Placeholder != domain.PriceOnRequest {
		t.Fatalf("expected placeholder total, got %+v", b.Total)
	}
	if est.TravelReason != domain.TravelNotApplicable {
		t.Fatalf("expected not_applicable, got %s", est.TravelReason)
	}
	if geocoder.calls != 0 {
		t.Fatalf("expected no geocoding for sale, got %d calls", geocoder.calls)
	}
}

func TestEstimateBaseRentalWithoutAddress(t *testing.T) {
	geocoder := &fakeGeocoder{}
	calc := newTestCalculator(geocoder)

	est := calc.Estimate(context.Background(), domain.EstimateInput{
		ServiceType: domain.ServiceRent,
		StartTime:   "09:00",
		EndTime:     "15:00",
	})

	b := est.Breakdown
	assertMoney(t, "basePrice", b.BasePrice, 800)
	assertMoney(t, "extraHoursCost", b.ExtraHoursCost, 0)
	assertMoney(t, "travelFee", b.TravelFee, 0)
	assertMoney(t, "total", b.Total.Amount, 800)
	if b.ExtraHours != 0 || est.DurationHours != 6 {
		t.Fatalf("expected 6h with no extra hours, got %.2fh / %d extra", est.DurationHours, b.ExtraHours)
	}
	if est.TravelReason != domain.TravelNoAddress || est.Warning != "" {
		t.Fatalf("unexpected travel outcome %s %q", est.TravelReason, est.Warning)
	}
	if geocoder.calls != 0 {
		t.Fatalf("expected no geocoding without an address")
	}
}

func TestEstimateClampsExtraHoursToMaxRentalFee(t *testing.T) {
	calc := newTestCalculator(&fakeGeocoder{})

	est := calc.Estimate(context.Background(), domain.EstimateInput{
		ServiceType: domain.ServiceRent,
		StartTime:   "09:00",
		EndTime:     "19:00",
	})

	b := est.Breakdown
	if b.ExtraHours != 4 {
		t.Fatalf("expected 4 extra hours, got %d", b.ExtraHours)
	}
	assertMoney(t, "extraHoursCost", b.ExtraHoursCost, 200)
	assertMoney(t, "total", b.Total.Amount, 1000)
}

func TestEstimateRoundsPartialHoursUp(t *testing.T) {
	calc := newTestCalculator(&fakeGeocoder{})

	est := calc.Estimate(context.Background(), domain.EstimateInput{
		ServiceType: domain.ServiceRent,
		StartTime:   "09:00",
		EndTime:     "15:30",
	})

	if est.Breakdown.ExtraHours != 1 {
		t.Fatalf("expected 1 extra hour, got %d", est.Breakdown.ExtraHours)
	}
	assertMoney(t, "total", est.Breakdown.Total.Amount, 900)
}

func TestEstimateOvernightRollsToNextDay(t *testing.T) {
	calc := newTestCalculator(&fakeGeocoder{})

	est := calc.Estimate(context.Background(), domain.EstimateInput{
		ServiceType: domain.ServiceRent,
		StartTime:   "22:00",
		EndTime:     "02:00",
	})

	if est.DurationHours != 4 {
		t.Fatalf("expected 4 hours, got %.2f", est.DurationHours)
	}
	if est.Breakdown.ExtraHours != 0 {
		t.Fatalf("expected no extra hours, got %d", est.Breakdown.ExtraHours)
	}
}

func TestEstimateMalformedTimesYieldZeroDuration(t *testing.T) {
	calc := newTestCalculator(&fakeGeocoder{})

	est := calc.Estimate(context.Background(), domain.EstimateInput{
		ServiceType: domain.ServiceRent,
		StartTime:   "nine",
		EndTime:     "",
	})

	if est.DurationHours != 0 {
		t.Fatalf("expected 0 hours, got %.2f", est.DurationHours)
	}
	assertMoney(t, "total", est.Breakdown.Total.Amount, 800)
}

func TestEstimateAppliesTravelFeeOutsideRadius(t *testing.T) {
	calc := newTestCalculator(&fakeGeocoder{coords: []geo.Coordinate{milwaukee}})

	est := calc.Estimate(context.Background(), domain.EstimateInput{
		ServiceType:  domain.ServiceRent,
		StartTime:    "09:00",
		EndTime:      "15:00",
		VenueAddress: "700 N Art Museum Dr, Milwaukee, WI 53202",
	})

	assertMoney(t, "travelFee", est.Breakdown.TravelFee, 150)
	assertMoney(t, "total", est.Breakdown.Total.Amount, 950)
	if est.TravelReason != domain.TravelOutsideRadius {
		t.Fatalf("expected outside_radius, got %s", est.TravelReason)
	}
	if est.DistanceMiles == nil || *est.DistanceMiles < 30 {
		t.Fatalf("expected distance beyond 30 miles, got %v", est.DistanceMiles)
	}
	if est.Warning != "" {
		t.Fatalf("expected no warning, got %q", est.Warning)
	}
}

func TestEstimateWaivesTravelFeeWithinRadius(t *testing.T) {
	calc := newTestCalculator(&fakeGeocoder{coords: []geo.Coordinate{evanston, milwaukee}})

	est := calc.Estimate(context.Background(), domain.EstimateInput{
		ServiceType:  domain.ServiceRent,
		StartTime:    "09:00",
		EndTime:      "15:00",
		VenueAddress: "1501 Central St, Evanston, IL 60201",
	})

	assertMoney(t, "travelFee", est.Breakdown.TravelFee, 0)
	if est.TravelReason != domain.TravelWithinRadius {
		t.Fatalf("expected within_radius from the first match, got %s", est.TravelReason)
	}
}

func TestEstimateAppliesTravelFeeWhenLookupFails(t *testing.T) {
	cases := map[string]*fakeGeocoder{
		"error":      {err: errors.New("connection refused")},
		"no results": {},
	}
	for name, geocoder := range cases {
		t.Run(name, func(t *testing.T) {
			calc := newTestCalculator(geocoder)

			est := calc.Estimate(context.Background(), domain.EstimateInput{
				ServiceType:  domain.ServiceRent,
				StartTime:    "09:00",
				EndTime:      "15:00",
				VenueAddress: "1 Nowhere Rd, Atlantis, ZZ 00000",
			})

			assertMoney(t, "travelFee", est.Breakdown.TravelFee, 150)
			assertMoney(t, "total", est.Breakdown.Total.Amount, 950)
			if est.TravelReason != domain.TravelAddressUnverified {
				t.Fatalf("expected address_unverified, got %s", est.TravelReason)
			}
			if est.Warning != domain.UnverifiedAddressWarning {
				t.Fatalf("expected warning, got %q", est.Warning)
			}
			if est.DistanceMiles != nil {
				t.Fatalf("expected no distance, got %v", *est.DistanceMiles)
			}
		})
	}
}

func TestEstimateTravelFeeStacksOnCappedRental(t *testing.T) {
	calc := newTestCalculator(&fakeGeocoder{coords: []geo.Coordinate{milwaukee}})

	est := calc.Estimate(context.Background(), domain.EstimateInput{
		ServiceType:  domain.ServiceRent,
		StartTime:    "08:00",
		EndTime:      "23:00",
		VenueAddress: "700 N Art Museum Dr, Milwaukee, WI 53202",
	})

	assertMoney(t, "total", est.Breakdown.Total.Amount, 1150)
}

func TestDurationHoursAcceptsSeconds(t *testing.T) {
	if got := DurationHours("09:00:00", "10:30:00"); got != 1.5 {
		t.Fatalf("expected 1.5, got %.2f", got)
	}
	if got := DurationHours("10:00", "10:00"); got != 0 {
		t.Fatalf("expected 0 for equal times, got %.2f", got)
	}
}
