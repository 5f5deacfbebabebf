package service

import (
	"context"

	"photobooth_backend/internal/email"
	"photobooth_backend/internal/quotes/domain"
	"photobooth_backend/platform/apperr"
	"photobooth_backend/platform/logger"
	"photobooth_backend/platform/metrics"
	"photobooth_backend/platform/phone"
	"photobooth_backend/platform/sanitize"
)

const (
	msgConfigurationError = "Server configuration error."
	msgSendFailed         = "Failed to send email."
)

// SubmitterConfig holds the notification settings.
type SubmitterConfig struct {
	// Recipient receives the operator notification. Empty disables submissions.
	Recipient string
	// BookingURL is linked, and attached as a QR code, in the confirmation.
	BookingURL string
	// BusinessName signs the confirmation email.
	BusinessName string
}

// Submission is a validated quote request plus the estimate shown to the customer.
type Submission struct {
	Request  domain.QuoteRequest
	Estimate *domain.Estimate
}

// Submitter notifies the operator and the customer about a quote request.
type Submitter struct {
	sender  email.Sender
	cfg     SubmitterConfig
	metrics *metrics.QuoteMetrics
	log     *logger.Logger
}

// NewSubmitter creates a submitter. A nil metrics recorder is allowed.
func NewSubmitter(sender email.Sender, cfg SubmitterConfig, m *metrics.QuoteMetrics, log *logger.Logger) *Submitter {
	return &Submitter{sender: sender, cfg: cfg, metrics: m, log: log}
}

// Submit sends the operator notification, then the customer confirmation.
// Nothing is sent when no recipient is configured. Any send failure yields
// the generic failure message; the cause is only logged.
func (s *Submitter) Submit(ctx context.Context, sub Submission) domain.NotificationResult {
	log := s.log.WithContext(ctx)

	if s.cfg.Recipient == "" {
		log.Error("quote recipient email is not configured")
		s.metrics.IncSubmission("config_error")
		return domain.NotificationResult{
			Error: msgConfigurationError,
			Err:   apperr.Configuration(msgConfigurationError).WithOp("quotes.Submit"),
		}
	}

	req := sub.Request
	summary := quoteSummary(sub.Estimate)

	notification := email.QuoteNotification{
		ServiceType:  string(req.ServiceType),
		Name:         sanitize.Line(req.Name),
		Email:        req.Email,
		Phone:        formatPhone(req.Phone),
		EventType:    sanitize.Line(req.EventType),
		EventDate:    req.EventDate,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		VenueName:    sanitize.Line(req.VenueName),
		VenueAddress: sanitize.Line(req.VenueAddress),
		Message:      sanitize.Text(req.Message),
		Quote:        summary,
	}
	if err := s.sender.SendQuoteNotificationEmail(ctx, s.cfg.Recipient, notification); err != nil {
		return s.sendFailed(ctx, "quote_notification", err)
	}
	s.metrics.IncEmail("quote_notification", "sent")

	confirmation := email.QuoteConfirmation{
		Name:         notification.Name,
		EventType:    notification.EventType,
		EventDate:    req.EventDate,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		VenueName:    notification.VenueName,
		BusinessName: s.cfg.BusinessName,
		Quote:        summary,
		BookingURL:   s.cfg.BookingURL,
	}
	var attachments []email.Attachment
	if s.cfg.BookingURL != "" {
		qr, err := email.BookingQRCode(s.cfg.BookingURL)
		if err != nil {
			log.Warn("booking qr code skipped", "error", err)
		} else {
			attachments = append(attachments, qr)
		}
	}
	if err := s.sender.SendQuoteConfirmationEmail(ctx, req.Email, confirmation, attachments...); err != nil {
		return s.sendFailed(ctx, "quote_confirmation", err)
	}
	s.metrics.IncEmail("quote_confirmation", "sent")

	s.metrics.IncSubmission("sent")
	log.Info("quote request sent", "eventType", notification.EventType, "serviceType", req.ServiceType)
	return domain.NotificationResult{Success: true}
}

func (s *Submitter) sendFailed(ctx context.Context, kind string, err error) domain.NotificationResult {
	s.log.WithContext(ctx).ExternalCallFailed("email", kind, err)
	s.metrics.IncEmail(kind, "error")
	s.metrics.IncSubmission("send_error")
	return domain.NotificationResult{
		Error: msgSendFailed,
		Err:   apperr.External(msgSendFailed, err).WithOp("quotes.Submit"),
	}
}

func formatPhone(raw string) string {
	return sanitize.Line(phone.NormalizeE164(raw))
}

func quoteSummary(est *domain.Estimate) *email.QuoteSummary {
	if est == nil {
		return nil
	}
	b := est.Breakdown
	summary := &email.QuoteSummary{
		BasePrice:      email.FormatUSD(b.BasePrice),
		ExtraHours:     b.ExtraHours,
		ExtraHoursCost: email.FormatUSD(b.ExtraHoursCost),
		TravelFee:      email.FormatUSD(b.TravelFee),
		PriceOnRequest: b.Total.IsPlaceholder(),
		Warning:        est.Warning,
	}
	if !summary.PriceOnRequest {
		summary.Total = email.FormatUSD(b.Total.Amount)
	}
	return summary
}
