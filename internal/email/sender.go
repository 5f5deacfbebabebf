// Package email renders and delivers the quote request notifications.
package email

import (
	"context"
	"fmt"

	"photobooth_backend/platform/config"
	"photobooth_backend/platform/logger"
)

// Attachment represents a file attachment for an email.
type Attachment struct {
	Content  []byte // raw file bytes (will be base64-encoded for Brevo)
	FileName string // e.g. "booking-qr.png"
	MIMEType string // e.g. "image/png"
}

// Sender delivers the quote request emails.
type Sender interface {
	// SendQuoteNotificationEmail tells the operator about a new request.
	// Replies go to the customer.
	SendQuoteNotificationEmail(ctx context.Context, toEmail string, data QuoteNotification) error
	// SendQuoteConfirmationEmail acknowledges the request to the customer.
	SendQuoteConfirmationEmail(ctx context.Context, toEmail string, data QuoteConfirmation, attachments ...Attachment) error
}

// envelope is a rendered message ready for a transport.
type envelope struct {
	fromName    string
	to          string
	replyTo     string
	subject     string
	html        string
	attachments []Attachment
}

type transport interface {
	send(ctx context.Context, env envelope) error
}

// renderingSender turns Sender calls into envelopes for a transport.
type renderingSender struct {
	transport transport
}

func (s renderingSender) SendQuoteNotificationEmail(ctx context.Context, toEmail string, data QuoteNotification) error {
	content, err := renderEmailTemplate("quote_notification.html", data)
	if err != nil {
		return err
	}
	return s.transport.send(ctx, envelope{
		fromName: quoteNotificationFromName,
		to:       toEmail,
		replyTo:  data.Email,
		subject:  fmt.Sprintf(subjectQuoteNotificationFmt, data.EventType),
		html:     content,
	})
}

func (s renderingSender) SendQuoteConfirmationEmail(ctx context.Context, toEmail string, data QuoteConfirmation, attachments ...Attachment) error {
	data.HasAttachments = len(attachments) > 0
	content, err := renderEmailTemplate("quote_confirmation.html", data)
	if err != nil {
		return err
	}
	return s.transport.send(ctx, envelope{
		to:          toEmail,
		subject:     subjectQuoteConfirmation,
		html:        content,
		attachments: attachments,
	})
}

// LogSender writes emails to the log instead of delivering them.
type LogSender struct {
	log *logger.Logger
}

// NewLogSender creates a sender for local development.
func NewLogSender(log *logger.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) SendQuoteNotificationEmail(ctx context.Context, toEmail string, data QuoteNotification) error {
	if _, err := renderEmailTemplate("quote_notification.html", data); err != nil {
		return err
	}
	s.log.WithContext(ctx).Info("email not sent (log provider)",
		"kind", "quote_notification",
		"to", toEmail,
		"replyTo", data.Email,
		"subject", fmt.Sprintf(subjectQuoteNotificationFmt, data.EventType),
	)
	return nil
}

func (s *LogSender) SendQuoteConfirmationEmail(ctx context.Context, toEmail string, data QuoteConfirmation, attachments ...Attachment) error {
	if _, err := renderEmailTemplate("quote_confirmation.html", data); err != nil {
		return err
	}
	s.log.WithContext(ctx).Info("email not sent (log provider)",
		"kind", "quote_confirmation",
		"to", toEmail,
		"subject", subjectQuoteConfirmation,
		"attachments", len(attachments),
	)
	return nil
}

// NewSender builds the sender selected by EMAIL_PROVIDER.
func NewSender(cfg config.EmailConfig, log *logger.Logger) (Sender, error) {
	switch cfg.GetEmailProvider() {
	case config.EmailProviderBrevo:
		return NewBrevoSender(cfg.GetBrevoAPIKey(), cfg.GetEmailFromAddress(), cfg.GetEmailFromName()), nil
	case config.EmailProviderSMTP:
		return NewSMTPSender(
			cfg.GetSMTPHost(),
			cfg.GetSMTPPort(),
			cfg.GetSMTPUsername(),
			cfg.GetSMTPPassword(),
			cfg.GetEmailFromAddress(),
			cfg.GetEmailFromName(),
		), nil
	case config.EmailProviderLog, "":
		return NewLogSender(log), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.GetEmailProvider())
	}
}
