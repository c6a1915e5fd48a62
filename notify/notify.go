// Package notify delivers customer SMS and staff e-mail. Senders are best-effort:
// callers log failures and carry on.
package notify

import (
	"context"
	"log"
)

//go:generate mockgen -source=notify.go -destination=mocks/mock_notify.go -package=mocks

// SMSSender delivers a text message to a phone number.
type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

// Mailer delivers an HTML e-mail.
type Mailer interface {
	SendMail(ctx context.Context, to, subject, html string) error
}

// NoopSMS is used when no SMS provider is configured.
type NoopSMS struct{}

func (NoopSMS) SendSMS(_ context.Context, to, _ string) error {
	log.Printf("[notify][sms] provider not configured, dropping message to %s", to)
	return nil
}

// NoopMailer is used when no e-mail provider is configured.
type NoopMailer struct{}

func (NoopMailer) SendMail(_ context.Context, to, subject, _ string) error {
	log.Printf("[notify][mail] provider not configured, dropping %q to %s", subject, to)
	return nil
}
