package service

import (
	"regexp"
	"strings"

	"photobooth_backend/platform/validator"

	playground "github.com/go-playground/validator/v10"
)

// EventTypes are the event categories offered on the quote form.
var EventTypes = []string{"Wedding", "Corporate Event", "Birthday Party", "Graduation", "Other"}

// venueAddressRegex expects "123 Main St, City, ST 12345" with the state optional.
var venueAddressRegex = regexp.MustCompile(`^\d+\s+[A-Za-z0-9.'# -]+,\s*[A-Za-z .'-]+(,\s*[A-Za-z]{2})?\s*,?\s*\d{5}(-\d{4})?$`)

// ValidEventType reports whether value is one of EventTypes.
func ValidEventType(value string) bool {
	for _, t := range EventTypes {
		if value == t {
			return true
		}
	}
	return false
}

// ValidVenueAddress reports whether value looks like a full US street address.
func ValidVenueAddress(value string) bool {
	return venueAddressRegex.MatchString(strings.TrimSpace(value))
}

// RegisterValidations adds the quote form rules to val.
func RegisterValidations(val *validator.Validator) error {
	if err := val.RegisterValidation("eventtype", func(fl playground.FieldLevel) bool {
		return ValidEventType(fl.Field().String())
	}); err != nil {
		return err
	}
	return val.RegisterValidation("venueaddress", func(fl playground.FieldLevel) bool {
		return ValidVenueAddress(fl.Field().String())
	})
}
