package email

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"photobooth_backend/platform/logger"

	"github.com/shopspring/decimal"
)

func sampleNotification() QuoteNotification {
	return QuoteNotification{
		ServiceType:  "Rent",
		Name:         "Jane Doe",
		Email:        "jane@example.com",
		EventType:    "Wedding",
		EventDate:    "2026-06-13",
		StartTime:    "17:00",
		EndTime:      "23:00",
		VenueName:    "The Drake",
		VenueAddress: "140 E Walton Pl, Chicago, IL 60611",
	}
}

func TestRenderNotificationFallbacks(t *testing.T) {
	html, err := renderEmailTemplate("quote_notification.html", sampleNotification())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"New Photo Booth Quote Request", "Not provided", "No message provided.", "The Drake"} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected rendered email to contain %q", want)
		}
	}
}

func TestRenderNotificationEscapesCustomerInput(t *testing.T) {
	data := sampleNotification()
	data.Message = "<script>alert(1)</script>"

	html, err := renderEmailTemplate("quote_notification.html", data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Fatal("expected customer message to be escaped")
	}
}

func TestRenderConfirmationIncludesBookingLink(t *testing.T) {
	html, err := renderEmailTemplate("quote_confirmation.html", QuoteConfirmation{
		Name:           "Jane Doe",
		EventType:      "Wedding",
		EventDate:      "2026-06-13",
		StartTime:      "17:00",
		EndTime:        "23:00",
		VenueName:      "The Drake",
		BookingURL:     "https://example.com/book",
		HasAttachments: true,
		Quote:          &QuoteSummary{Total: "$950.00"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"Thanks for reaching out, Jane Doe!", "17:00 to 23:00", "https://example.com/book", "QR code", "$950.00"} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected rendered email to contain %q", want)
		}
	}
}

func TestFormatUSD(t *testing.T) {
	if got := FormatUSD(decimal.NewFromInt(950)); got != "$950.00" {
		t.Fatalf("expected $950.00, got %q", got)
	}
	if got := FormatUSD(decimal.RequireFromString("12.345")); got != "$12.35" {
		t.Fatalf("expected $12.35, got %q", got)
	}
}

func TestBrevoSenderSetsReplyToAndSenderName(t *testing.T) {
	var captured brevoEmailRequest
	var apiKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey = r.Header.Get("api-key")
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	sender := NewBrevoSender("secret", "hello@example.com", "The Magazine Photo Booth", WithBrevoEndpoint(srv.URL))
	if err := sender.SendQuoteNotificationEmail(context.Background(), "owner@example.com", sampleNotification()); err != nil {
		t.Fatalf("send: %v", err)
	}

	if apiKey != "secret" {
		t.Fatalf("expected api key header, got %q", apiKey)
	}
	if captured.Sender.Name != "Quote Request" || captured.Sender.Email != "hello@example.com" {
		t.Fatalf("unexpected sender %+v", captured.Sender)
	}
	if len(captured.To) != 1 || captured.To[0].Email != "owner@example.com" {
		t.Fatalf("unexpected recipients %+v", captured.To)
	}
	if captured.ReplyTo == nil || captured.ReplyTo.Email != "jane@example.com" {
		t.Fatalf("expected reply-to the customer, got %+v", captured.ReplyTo)
	}
	if captured.Subject != "New Photo Booth Quote Request - Wedding" {
		t.Fatalf("unexpected subject %q", captured.Subject)
	}
}

func TestBrevoSenderEncodesAttachments(t *testing.T) {
	var captured brevoEmailRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&captured)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	att, err := BookingQRCode("https://example.com/book")
	if err != nil {
		t.Fatalf("qr code: %v", err)
	}

	sender := NewBrevoSender("secret", "hello@example.com", "The Magazine Photo Booth", WithBrevoEndpoint(srv.URL))
	err = sender.SendQuoteConfirmationEmail(context.Background(), "jane@example.com", QuoteConfirmation{Name: "Jane"}, att)
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	if captured.Sender.Name != "The Magazine Photo Booth" {
		t.Fatalf("expected default sender name, got %q", captured.Sender.Name)
	}
	if captured.ReplyTo != nil {
		t.Fatalf("expected no reply-to on confirmation, got %+v", captured.ReplyTo)
	}
	if len(captured.Attachment) != 1 || captured.Attachment[0].Name != "booking-qr.png" {
		t.Fatalf("unexpected attachments %+v", captured.Attachment)
	}
	decoded, err := base64.StdEncoding.DecodeString(captured.Attachment[0].Content)
	if err != nil || !bytes.Equal(decoded, att.Content) {
		t.Fatalf("attachment content did not round-trip")
	}
}

func TestBrevoSenderReturnsErrorOnFailureStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"unauthorized"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	sender := NewBrevoSender("bad", "hello@example.com", "Booth", WithBrevoEndpoint(srv.URL))
	err := sender.SendQuoteNotificationEmail(context.Background(), "owner@example.com", sampleNotification())
	if err == nil || !strings.Contains(err.Error(), "401") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestSMTPBuildMessageSetsReplyTo(t *testing.T) {
	sender := NewSMTPSender("smtp.example.com", 587, "", "", "hello@example.com", "The Magazine Photo Booth")
	msg, err := sender.buildMessage(envelope{
		fromName: "Quote Request",
		to:       "owner@example.com",
		replyTo:  "jane@example.com",
		subject:  "New Photo Booth Quote Request - Wedding",
		html:     "<p>hi</p>",
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	var buf bytes.Buffer
	if _, err := msg.WriteTo(&buf); err != nil {
		t.Fatalf("write message: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Reply-To:") || !strings.Contains(out, "jane@example.com") {
		t.Fatalf("expected reply-to header in message:\n%s", out)
	}
	if !strings.Contains(out, "Quote Request") {
		t.Fatalf("expected sender display name in message")
	}
}

func TestBookingQRCodeProducesPNG(t *testing.T) {
	att, err := BookingQRCode("https://example.com/book")
	if err != nil {
		t.Fatalf("qr code: %v", err)
	}
	if !bytes.HasPrefix(att.Content, []byte("\x89PNG")) {
		t.Fatal("expected PNG content")
	}
	if att.MIMEType != "image/png" {
		t.Fatalf("unexpected mime type %q", att.MIMEType)
	}
}

func TestLogSenderDoesNotFail(t *testing.T) {
	var buf bytes.Buffer
	sender := NewLogSender(logger.NewWithWriter("test", &buf))
	if err := sender.SendQuoteNotificationEmail(context.Background(), "owner@example.com", sampleNotification()); err != nil {
		t.Fatalf("send: %v", err)
	}
	if !strings.Contains(buf.String(), "quote_notification") {
		t.Fatalf("expected log entry, got %q", buf.String())
	}
}
