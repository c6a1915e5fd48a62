package notify

import (
	"context"
	"log"

	"github.com/resend/resend-go/v2"
)

// ResendMailer sends transactional e-mail through Resend.
type ResendMailer struct {
	client *resend.Client
	from   string
}

func NewResendMailer(apiKey, from string) *ResendMailer {
	return &ResendMailer{client: resend.NewClient(apiKey), from: from}
}

func (m *ResendMailer) SendMail(_ context.Context, to, subject, html string) error {
	sent, err := m.client.Emails.Send(&resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return err
	}
	log.Printf("[notify][mail] %q sent to %s, id: %s", subject, to, sent.Id)
	return nil
}
