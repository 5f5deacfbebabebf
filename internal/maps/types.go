package maps

// LookupRequest represents the query parameters from the frontend.
type LookupRequest struct {
	Query string `form:"q" binding:"required,min=3"`
}

// AddressSuggestion is the normalized data returned to the venue address field.
type AddressSuggestion struct {
	Label       string  `json:"label"`
	Street      string  `json:"street"`
	HouseNumber string  `json:"houseNumber"`
	City        string  `json:"city"`
	State       string  `json:"state"`
	ZipCode     string  `json:"zipCode"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
}

type nominatimAddress struct {
	Road         string `json:"road"`
	HouseNumber  string `json:"house_number"`
	Postcode     string `json:"postcode"`
	City         string `json:"city"`
	Town         string `json:"town"`
	Village      string `json:"village"`
	Municipality string `json:"municipality"`
	Hamlet       string `json:"hamlet"`
	State        string `json:"state"`
	StateCode    string `json:"ISO3166-2-lvl4"`
}

// nominatimResponse mirrors the relevant parts of the OSM search payload.
type nominatimResponse struct {
	DisplayName string           `json:"display_name"`
	Lat         string           `json:"lat"`
	Lon         string           `json:"lon"`
	Address     nominatimAddress `json:"address"`
}

// googleGeocodeResponse mirrors the relevant parts of the Geocoding API payload.
type googleGeocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}
