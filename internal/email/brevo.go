package email

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBrevoEndpoint = "https://api.brevo.com/v3/smtp/email"

// BrevoSender delivers email through the Brevo transactional API.
type BrevoSender struct {
	renderingSender
	apiKey    string
	fromName  string
	fromEmail string
	endpoint  string
	client    *http.Client
}

// BrevoOption customizes a BrevoSender.
type BrevoOption func(*BrevoSender)

// WithBrevoEndpoint overrides the API URL.
func WithBrevoEndpoint(endpoint string) BrevoOption {
	return func(b *BrevoSender) { b.endpoint = endpoint }
}

// WithBrevoHTTPClient overrides the HTTP client.
func WithBrevoHTTPClient(client *http.Client) BrevoOption {
	return func(b *BrevoSender) { b.client = client }
}

type brevoContact struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type brevoAttachment struct {
	Content string `json:"content"` // base64-encoded file content
	Name    string `json:"name"`
}

type brevoEmailRequest struct {
	Sender      brevoContact      `json:"sender"`
	To          []brevoContact    `json:"to"`
	ReplyTo     *brevoContact     `json:"replyTo,omitempty"`
	Subject     string            `json:"subject"`
	HTMLContent string            `json:"htmlContent"`
	Attachment  []brevoAttachment `json:"attachment,omitempty"`
}

// NewBrevoSender creates a Brevo-backed sender.
func NewBrevoSender(apiKey, fromEmail, fromName string, opts ...BrevoOption) *BrevoSender {
	b := &BrevoSender{
		apiKey:    apiKey,
		fromName:  fromName,
		fromEmail: fromEmail,
		endpoint:  defaultBrevoEndpoint,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(b)
	}
	b.renderingSender = renderingSender{transport: b}
	return b
}

func (b *BrevoSender) send(ctx context.Context, env envelope) error {
	fromName := env.fromName
	if fromName == "" {
		fromName = b.fromName
	}
	payload := brevoEmailRequest{
		Sender:      brevoContact{Name: fromName, Email: b.fromEmail},
		To:          []brevoContact{{Email: env.to}},
		Subject:     env.subject,
		HTMLContent: env.html,
	}
	if env.replyTo != "" {
		payload.ReplyTo = &brevoContact{Email: env.replyTo}
	}
	for _, att := range env.attachments {
		payload.Attachment = append(payload.Attachment, brevoAttachment{
			Content: base64.StdEncoding.EncodeToString(att.Content),
			Name:    att.FileName,
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("api-key", b.apiKey)
	req.Header.Set("content-type", "application/json")
	req.Header.Set("accept", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("brevo send failed: status %d: %s", resp.StatusCode, string(data))
	}

	return nil
}
