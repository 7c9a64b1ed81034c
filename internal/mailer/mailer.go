package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
)

// Email is a fully rendered outgoing message
type Email struct {
	To       string
	From     string
	Subject  string
	TextBody string
	HTMLBody string
}

// Mailer dispatches rendered emails. Sends are best-effort from the
// caller's perspective; a failed send never rolls back the workflow that
// triggered it.
type Mailer interface {
	Send(ctx context.Context, email Email) error
}

// SMTPMailer sends mail through a plain-auth SMTP relay
type SMTPMailer struct {
	addr string
	auth smtp.Auth
}

// NewSMTPMailer creates a mailer for the given relay. Auth is skipped when
// no username is configured.
func NewSMTPMailer(host, port, username, password string) *SMTPMailer {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPMailer{addr: host + ":" + port, auth: auth}
}

// Send delivers the email as a multipart/alternative message
func (m *SMTPMailer) Send(ctx context.Context, email Email) error {
	msg := buildMessage(email)
	if err := smtp.SendMail(m.addr, m.auth, email.From, []string{email.To}, msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}

const boundary = "=_roleplay_alt"

func buildMessage(email Email) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "From: %s\r\n", email.From)
	fmt.Fprintf(&b, "To: %s\r\n", email.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", email.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(email.TextBody)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(email.HTMLBody)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s--\r\n", boundary)

	return []byte(b.String())
}

// LogMailer logs outgoing mail instead of sending it. Used when no SMTP
// relay is configured (development, tests).
type LogMailer struct {
	logger *zap.Logger
}

// NewLogMailer creates a logging mailer
func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send logs the message and drops it
func (m *LogMailer) Send(ctx context.Context, email Email) error {
	m.logger.Info("outgoing mail (not sent: SMTP unconfigured)",
		zap.String("to", email.To),
		zap.String("from", email.From),
		zap.String("subject", email.Subject),
	)
	return nil
}
