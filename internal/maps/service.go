package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"photobooth_backend/platform/config"
	"photobooth_backend/platform/geo"
	"photobooth_backend/platform/logger"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const (
	defaultNominatimURL = "https://nominatim.openstreetmap.org"
	defaultGoogleURL    = "https://maps.googleapis.com/maps/api/geocode/json"
	userAgent           = "MagazinePhotoBooth/1.0"

	// sharedLookupTimeout bounds a coalesced lookup, including the rate limiter wait.
	sharedLookupTimeout = 5 * time.Second
)

// Service geocodes venue addresses and serves address suggestions.
type Service struct {
	client       *http.Client
	provider     string
	googleKey    string
	googleURL    string
	nominatimURL string
	limiter      *rate.Limiter
	group        singleflight.Group
	log          *logger.Logger
}

// Option customizes a Service.
type Option func(*Service)

// WithHTTPClient overrides the outbound HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Service) { s.client = client }
}

// WithGoogleURL overrides the Geocoding API endpoint.
func WithGoogleURL(endpoint string) Option {
	return func(s *Service) { s.googleURL = endpoint }
}

// WithRateLimit overrides the Nominatim request rate.
func WithRateLimit(limit rate.Limit) Option {
	return func(s *Service) { s.limiter = rate.NewLimiter(limit, 1) }
}

// NewService builds the geocoding service for the configured provider.
// Nominatim requests are limited to one per second per its usage policy.
func NewService(cfg config.GeocoderConfig, log *logger.Logger, opts ...Option) *Service {
	nominatimURL := strings.TrimRight(cfg.GetNominatimURL(), "/")
	if nominatimURL == "" {
		nominatimURL = defaultNominatimURL
	}
	s := &Service{
		client:       &http.Client{Timeout: 5 * time.Second},
		provider:     cfg.GetGeocoderProvider(),
		googleKey:    cfg.GetGoogleMapsAPIKey(),
		googleURL:    defaultGoogleURL,
		nominatimURL: nominatimURL,
		limiter:      rate.NewLimiter(rate.Every(time.Second), 1),
		log:          log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Provider returns the geocoding backend in use.
func (s *Service) Provider() string {
	return s.provider
}

// Geocode resolves address to candidate coordinates, best match first.
// No match is an empty slice, not an error. Identical concurrent lookups
// share one upstream request.
func (s *Service) Geocode(ctx context.Context, address string) ([]geo.Coordinate, error) {
	key := strings.ToLower(strings.Join(strings.Fields(address), " "))
	if key == "" {
		return nil, nil
	}

	ch := s.group.DoChan(key, func() (interface{}, error) {
		// Joined callers must not inherit the first caller's cancellation.
		lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedLookupTimeout)
		defer cancel()
		if s.provider == config.GeocoderGoogle {
			return s.geocodeGoogle(lookupCtx, address)
		}
		return s.geocodeNominatim(lookupCtx, address)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		coords, _ := res.Val.([]geo.Coordinate)
		return coords, nil
	}
}

func (s *Service) geocodeGoogle(ctx context.Context, address string) ([]geo.Coordinate, error) {
	params := url.Values{}
	params.Add("address", address)
	params.Add("key", s.googleKey)

	var payload googleGeocodeResponse
	if err := s.getJSON(ctx, config.GeocoderGoogle, s.googleURL+"?"+params.Encode(), &payload); err != nil {
		return nil, err
	}

	switch payload.Status {
	case "OK":
	case "ZERO_RESULTS":
		return []geo.Coordinate{}, nil
	case "REQUEST_DENIED", "OVER_DAILY_LIMIT":
		s.log.Warn("google geocoding rejected the api key", "status", payload.Status, "message", payload.ErrorMessage)
		return nil, fmt.Errorf("google geocoding status %s: %s", payload.Status, payload.ErrorMessage)
	default:
		return nil, fmt.Errorf("google geocoding status %s: %s", payload.Status, payload.ErrorMessage)
	}

	coords := make([]geo.Coordinate, 0, len(payload.Results))
	for _, r := range payload.Results {
		coords = append(coords, geo.Coordinate{Lat: r.Geometry.Location.Lat, Lng: r.Geometry.Location.Lng})
	}
	return coords, nil
}

func (s *Service) geocodeNominatim(ctx context.Context, address string) ([]geo.Coordinate, error) {
	results, err := s.searchNominatim(ctx, address, 1)
	if err != nil {
		return nil, err
	}

	coords := make([]geo.Coordinate, 0, len(results))
	for _, raw := range results {
		c, ok := parseCoordinate(raw.Lat, raw.Lon)
		if !ok {
			continue
		}
		coords = append(coords, c)
	}
	return coords, nil
}

// SearchAddress returns up to five US address suggestions for query.
func (s *Service) SearchAddress(ctx context.Context, query string) ([]AddressSuggestion, error) {
	rawResults, err := s.searchNominatim(ctx, query, 5)
	if err != nil {
		return nil, err
	}

	suggestions := make([]AddressSuggestion, 0, len(rawResults))
	for _, raw := range rawResults {
		suggestion, ok := buildSuggestion(raw)
		if !ok {
			continue
		}

		suggestions = append(suggestions, suggestion)
	}

	return suggestions, nil
}

func (s *Service) searchNominatim(ctx context.Context, query string, limit int) ([]nominatimResponse, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Add("q", query)
	params.Add("format", "json")
	params.Add("addressdetails", "1")
	params.Add("limit", strconv.Itoa(limit))
	params.Add("countrycodes", "us")

	var rawResults []nominatimResponse
	if err := s.getJSON(ctx, config.GeocoderNominatim, s.nominatimURL+"/search?"+params.Encode(), &rawResults); err != nil {
		return nil, err
	}
	return rawResults, nil
}

func (s *Service) getJSON(ctx context.Context, upstream, reqURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s request: %w", upstream, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s upstream error: %d", upstream, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s payload: %w", upstream, err)
	}
	return nil
}

func parseCoordinate(lat, lng string) (geo.Coordinate, bool) {
	la, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return geo.Coordinate{}, false
	}
	lo, err := strconv.ParseFloat(lng, 64)
	if err != nil {
		return geo.Coordinate{}, false
	}
	return geo.Coordinate{Lat: la, Lng: lo}, true
}

func buildSuggestion(raw nominatimResponse) (AddressSuggestion, bool) {
	if raw.Address.Road == "" {
		return AddressSuggestion{}, false
	}

	city := pickCity(raw.Address)
	if city == "" {
		return AddressSuggestion{}, false
	}

	coord, ok := parseCoordinate(raw.Lat, raw.Lon)
	if !ok {
		return AddressSuggestion{}, false
	}

	suggestion := AddressSuggestion{
		Street:      raw.Address.Road,
		HouseNumber: raw.Address.HouseNumber,
		City:        city,
		State:       stateCode(raw.Address),
		ZipCode:     raw.Address.Postcode,
		Lat:         coord.Lat,
		Lng:         coord.Lng,
	}

	suggestion.Label = buildLabel(suggestion)

	return suggestion, true
}

func pickCity(address nominatimAddress) string {
	if address.City != "" {
		return address.City
	}
	if address.Town != "" {
		return address.Town
	}
	if address.Village != "" {
		return address.Village
	}
	if address.Municipality != "" {
		return address.Municipality
	}
	return address.Hamlet
}

// stateCode turns "US-IL" into "IL".
func stateCode(address nominatimAddress) string {
	if code, ok := strings.CutPrefix(address.StateCode, "US-"); ok {
		return code
	}
	return address.State
}

// buildLabel formats a suggestion the way the quote form expects:
// "140 East Walton Place, Chicago, IL 60611".
func buildLabel(suggestion AddressSuggestion) string {
	street := suggestion.Street
	if suggestion.HouseNumber != "" {
		street = suggestion.HouseNumber + " " + street
	}

	parts := []string{street, suggestion.City}
	region := strings.TrimSpace(suggestion.State + " " + suggestion.ZipCode)
	if region != "" {
		parts = append(parts, region)
	}
	return strings.Join(parts, ", ")
}
