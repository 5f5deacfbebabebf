package transport

import (
	"photobooth_backend/internal/quotes/domain"

	"github.com/google/uuid"
)

// ── Requests ──────────────────────────────────────────────────────────────────

// EstimateRequest is the request body for a one-off price estimate.
// Times are not validated: unparseable values price as a zero-hour rental.
type EstimateRequest struct {
	ServiceType  string `json:"serviceType" validate:"required,oneof=Rent Sale"`
	StartTime    string `json:"startTime" validate:"max=8"`
	EndTime      string `json:"endTime" validate:"max=8"`
	VenueAddress string `json:"venueAddress" validate:"max=300"`
}

// ToInput converts the request to calculator input.
func (r EstimateRequest) ToInput() domain.EstimateInput {
	return domain.EstimateInput{
		ServiceType:  domain.ServiceType(r.ServiceType),
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		VenueAddress: r.VenueAddress,
	}
}

// SubmitQuoteRequest is the quote form payload.
type SubmitQuoteRequest struct {
	Name         string `json:"name" validate:"required,max=200"`
	Email        string `json:"email" validate:"required,email,max=320"`
	Phone        string `json:"phone" validate:"omitempty,max=40"`
	EventType    string `json:"eventType" validate:"required,eventtype"`
	EventDate    string `json:"eventDate" validate:"required,datetime=2006-01-02"`
	StartTime    string `json:"startTime" validate:"required,datetime=15:04"`
	EndTime      string `json:"endTime" validate:"required,datetime=15:04"`
	VenueName    string `json:"venueName" validate:"required,max=200"`
	VenueAddress string `json:"venueAddress" validate:"required,max=300,venueaddress"`
	ServiceType  string `json:"serviceType" validate:"required,oneof=Rent Sale"`
	Message      string `json:"message" validate:"max=5000"`
}

// ToDomain converts the payload to a domain quote request.
func (r SubmitQuoteRequest) ToDomain() domain.QuoteRequest {
	return domain.QuoteRequest{
		Name:         r.Name,
		Email:        r.Email,
		Phone:        r.Phone,
		EventType:    r.EventType,
		EventDate:    r.EventDate,
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		VenueName:    r.VenueName,
		VenueAddress: r.VenueAddress,
		ServiceType:  domain.ServiceType(r.ServiceType),
		Message:      r.Message,
	}
}

// SessionFieldsRequest carries changed form fields for a live session.
// Omitted fields are left unchanged.
type SessionFieldsRequest struct {
	ServiceType  *string `json:"serviceType" validate:"omitempty,oneof=Rent Sale"`
	StartTime    *string `json:"startTime" validate:"omitempty,max=8"`
	EndTime      *string `json:"endTime" validate:"omitempty,max=8"`
	VenueAddress *string `json:"venueAddress" validate:"omitempty,max=300"`
}

// ── Responses ─────────────────────────────────────────────────────────────────

// BreakdownResponse is the itemized estimate as the form renders it.
type BreakdownResponse struct {
	BasePrice      float64      `json:"basePrice"`
	ExtraHours     int          `json:"extraHours"`
	ExtraHoursCost float64      `json:"extraHoursCost"`
	TravelFee      float64      `json:"travelFee"`
	Total          domain.Total `json:"total"`
}

// EstimateResponse is returned by the estimate endpoint and streamed by live sessions.
type EstimateResponse struct {
	Quote         BreakdownResponse `json:"quote"`
	DurationHours float64           `json:"durationHours"`
	TravelReason  string            `json:"travelReason"`
	DistanceMiles *float64          `json:"distanceMiles,omitempty"`
	Warning       string            `json:"warning,omitempty"`
	// AddressError flags a venue address that does not look like a full street address.
	AddressError  bool              `json:"addressError,omitempty"`
}

// SubmitQuoteResponse mirrors the form's {success, error} contract.
type SubmitQuoteResponse struct {
	Success bool               `json:"success"`
	Error   string             `json:"error,omitempty"`
	Details map[string]string  `json:"details,omitempty"`
	Quote   *BreakdownResponse `json:"quote,omitempty"`
}

// SessionResponse is returned when a live session is opened.
type SessionResponse struct {
	ID         uuid.UUID `json:"id"`
	EventsURL  string    `json:"eventsUrl"`
	DebounceMs int64     `json:"debounceMs"`
}

// SessionUpdateResponse acknowledges field updates.
type SessionUpdateResponse struct {
	Generation uint64 `json:"generation"`
}

// SessionEvent is the payload of an SSE "estimate" event.
type SessionEvent struct {
	Generation uint64           `json:"generation"`
	Estimate   EstimateResponse `json:"estimate"`
}

// PricingResponse publishes the rates behind the estimate footnote.
type PricingResponse struct {
	BasePrice         float64  `json:"basePrice"`
	BaseHours         int      `json:"baseHours"`
	ExtraHourRate     float64  `json:"extraHourRate"`
	MaxRentalFee      float64  `json:"maxRentalFee"`
	TravelFee         float64  `json:"travelFee"`
	TravelRadiusMiles float64  `json:"travelRadiusMiles"`
	HomeBase          string   `json:"homeBase"`
	EventTypes        []string `json:"eventTypes"`
}

// ── Mapping ───────────────────────────────────────────────────────────────────

// NewBreakdownResponse converts a domain breakdown.
func NewBreakdownResponse(b domain.Breakdown) BreakdownResponse {
	return BreakdownResponse{
		BasePrice:      b.BasePrice.Round(2).InexactFloat64(),
		ExtraHours:     b.ExtraHours,
		ExtraHoursCost: b.ExtraHoursCost.Round(2).InexactFloat64(),
		TravelFee:      b.TravelFee.Round(2).InexactFloat64(),
		Total:          b.Total,
	}
}

// NewEstimateResponse converts a domain estimate.
func NewEstimateResponse(est domain.Estimate) EstimateResponse {
	return EstimateResponse{
		Quote:         NewBreakdownResponse(est.Breakdown),
		DurationHours: est.DurationHours,
		TravelReason:  string(est.TravelReason),
		DistanceMiles: est.DistanceMiles,
		Warning:       est.Warning,
	}
}

// NewPricingResponse converts the calculator rates.
func NewPricingResponse(r domain.Rates, eventTypes []string) PricingResponse {
	return PricingResponse{
		BasePrice:         r.BasePrice.InexactFloat64(),
		BaseHours:         r.BaseHours,
		ExtraHourRate:     r.ExtraHourRate.InexactFloat64(),
		MaxRentalFee:      r.MaxRentalFee.InexactFloat64(),
		TravelFee:         r.TravelFee.InexactFloat64(),
		TravelRadiusMiles: r.TravelRadiusMiles,
		HomeBase:          r.HomeLabel,
		EventTypes:        eventTypes,
	}
}
