package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed templates/*.html
var templateFS embed.FS

var usdPrinter = message.NewPrinter(language.AmericanEnglish)

// QuoteSummary is the price estimate as shown in emails.
type QuoteSummary struct {
	BasePrice      string
	ExtraHours     int
	ExtraHoursCost string
	TravelFee      string
	Total          string
	PriceOnRequest bool
	Warning        string
}

// QuoteNotification is the operator email content.
type QuoteNotification struct {
	ServiceType  string
	Name         string
	Email        string
	Phone        string
	EventType    string
	EventDate    string
	StartTime    string
	EndTime      string
	VenueName    string
	VenueAddress string
	Message      string
	Quote        *QuoteSummary
}

// QuoteConfirmation is the customer acknowledgement content.
type QuoteConfirmation struct {
	Name           string
	EventType      string
	EventDate      string
	StartTime      string
	EndTime        string
	VenueName      string
	BusinessName   string
	Quote          *QuoteSummary
	BookingURL     string
	HasAttachments bool
}

func renderEmailTemplate(name string, data any) (string, error) {
	templates := []string{"templates/base.html", "templates/" + name}
	tmpl, err := template.New("base.html").ParseFS(templateFS, templates...)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return "", fmt.Errorf("execute email template %s: %w", name, err)
	}
	return buf.String(), nil
}

// FormatUSD renders an amount as US dollars, e.g. "$950.00".
func FormatUSD(amount decimal.Decimal) string {
	return usdPrinter.Sprintf("$%.2f", amount.Round(2).InexactFloat64())
}
