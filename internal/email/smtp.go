package email

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender delivers email over a direct SMTP connection via go-mail.
// It renders the same HTML templates as BrevoSender.
type SMTPSender struct {
	renderingSender
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewSMTPSender creates a new SMTPSender with the given SMTP credentials.
func NewSMTPSender(host string, port int, username, password, fromEmail, fromName string) *SMTPSender {
	s := &SMTPSender{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		fromName:  fromName,
		fromEmail: fromEmail,
	}
	s.renderingSender = renderingSender{transport: s}
	return s
}

// buildMessage assembles the MIME message for env.
func (s *SMTPSender) buildMessage(env envelope) (*gomail.Msg, error) {
	fromName := env.fromName
	if fromName == "" {
		fromName = s.fromName
	}

	msg := gomail.NewMsg()
	if err := msg.FromFormat(fromName, s.fromEmail); err != nil {
		return nil, fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(env.to); err != nil {
		return nil, fmt.Errorf("smtp to: %w", err)
	}
	if env.replyTo != "" {
		if err := msg.ReplyTo(env.replyTo); err != nil {
			return nil, fmt.Errorf("smtp reply-to: %w", err)
		}
	}
	msg.Subject(env.subject)
	msg.SetBodyString(gomail.TypeTextHTML, env.html)

	for _, att := range env.attachments {
		if err := msg.AttachReader(att.FileName, bytes.NewReader(att.Content)); err != nil {
			return nil, fmt.Errorf("smtp attach %s: %w", att.FileName, err)
		}
	}
	return msg, nil
}

func (s *SMTPSender) send(ctx context.Context, env envelope) error {
	msg, err := s.buildMessage(env)
	if err != nil {
		return err
	}

	opts := []gomail.Option{
		gomail.WithPort(s.port),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15 * time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	}
	if s.username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.username),
			gomail.WithPassword(s.password),
		)
	}

	client, err := gomail.NewClient(s.host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}
