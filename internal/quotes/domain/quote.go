// Package domain holds the photo-booth quote model shared by the calculator,
// the submitter and the live session layer.
package domain

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// ServiceType is what the customer asks a quote for.
type ServiceType string

const (
	ServiceRent ServiceType = "Rent"
	ServiceSale ServiceType = "Sale"
)

// PriceOnRequest is shown instead of a total for services that are not priced online.
const PriceOnRequest = "Contact for price"

// TravelReason explains how the travel fee was decided.
type TravelReason string

const (
	// TravelNotApplicable is used for services that are not priced online.
	TravelNotApplicable TravelReason = "not_applicable"
	// TravelNoAddress means no venue address was given, so no lookup happened.
	TravelNoAddress TravelReason = "no_address"
	// TravelWithinRadius means the venue is inside the free travel radius.
	TravelWithinRadius TravelReason = "within_radius"
	// TravelOutsideRadius means the venue is beyond the radius and the fee applies.
	TravelOutsideRadius TravelReason = "outside_radius"
	// TravelAddressUnverified means the lookup failed or found nothing; the fee is applied.
	TravelAddressUnverified TravelReason = "address_unverified"
)

// UnverifiedAddressWarning is surfaced when the venue could not be geocoded.
const UnverifiedAddressWarning = "Could not verify address for travel fee. Fee may be applied."

// EstimateInput carries the form fields the price depends on.
type EstimateInput struct {
	ServiceType  ServiceType
	StartTime    string
	EndTime      string
	VenueAddress string
}

// HasAddress reports whether a venue address was entered.
func (in EstimateInput) HasAddress() bool {
	return strings.TrimSpace(in.VenueAddress) != ""
}

// Total is either an amount or the price-on-request placeholder.
type Total struct {
	Amount      decimal.Decimal
	Placeholder string
}

// AmountTotal returns a numeric total rounded to cents.
func AmountTotal(amount decimal.Decimal) Total {
	return Total{Amount: amount.Round(2)}
}

// PlaceholderTotal returns the price-on-request total.
func PlaceholderTotal() Total {
	return Total{Amount: decimal.Zero, Placeholder: PriceOnRequest}
}

// IsPlaceholder reports whether the total is the price-on-request text.
func (t Total) IsPlaceholder() bool {
	return t.Placeholder != ""
}

// MarshalJSON renders the total as a JSON number, or as a string for the placeholder.
func (t Total) MarshalJSON() ([]byte, error) {
	if t.IsPlaceholder() {
		return []byte(`"` + t.Placeholder + `"`), nil
	}
	return []byte(t.Amount.StringFixed(2)), nil
}

// UnmarshalJSON accepts either form written by MarshalJSON.
func (t *Total) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*t = Total{Amount: decimal.Zero, Placeholder: text}
		return nil
	}
	var amount decimal.Decimal
	if err := amount.UnmarshalJSON(data); err != nil {
		return err
	}
	*t = AmountTotal(amount)
	return nil
}

// Breakdown is the itemized price estimate.
type Breakdown struct {
	BasePrice      decimal.Decimal
	ExtraHours     int
	ExtraHoursCost decimal.Decimal
	TravelFee      decimal.Decimal
	Total          Total
}

// PlaceholderBreakdown is returned for services that are not priced online.
func PlaceholderBreakdown() Breakdown {
	return Breakdown{
		BasePrice:      decimal.Zero,
		ExtraHoursCost: decimal.Zero,
		TravelFee:      decimal.Zero,
		Total:          PlaceholderTotal(),
	}
}

// Estimate is the result of one calculation: the breakdown plus how it was reached.
type Estimate struct {
	Breakdown     Breakdown
	DurationHours float64
	TravelReason  TravelReason
	DistanceMiles *float64
	Warning       string
}

// QuoteRequest is a submitted quote form. It is never stored.
type QuoteRequest struct {
	Name         string
	Email        string
	Phone        string
	EventType    string
	EventDate    string
	StartTime    string
	EndTime      string
	VenueName    string
	VenueAddress string
	ServiceType  ServiceType
	Message      string
}

// EstimateInput extracts the pricing-relevant fields.
func (r QuoteRequest) EstimateInput() EstimateInput {
	return EstimateInput{
		ServiceType:  r.ServiceType,
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		VenueAddress: r.VenueAddress,
	}
}

// NotificationResult is what the form sees after a submission.
type NotificationResult struct {
	Success bool
	Error   string
	// Err is the typed cause of a failure, used to pick a response status.
	Err error
}
