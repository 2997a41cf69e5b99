// services/mail_service.go
package services

import (
	"errors"
	"fmt"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// MailService relays transactional email. Credentials come from the
// environment, never from request payloads.
type MailService struct {
	apiKey      string
	defaultFrom string
}

func NewMailService() *MailService {
	return &MailService{
		apiKey:      os.Getenv("SENDGRID_API_KEY"),
		defaultFrom: os.Getenv("MAIL_FROM"),
	}
}

// Send relays one email and returns the provider message id.
func (m *MailService) Send(from, to, subject, text, html string) (string, error) {
	if m.apiKey == "" {
		return "", errors.New("SENDGRID_API_KEY not set")
	}
	if to == "" {
		return "", errors.New("recipient address is required")
	}
	if from == "" {
		from = m.defaultFrom
	}
	if from == "" {
		return "", errors.New("sender address is required")
	}

	message := mail.NewSingleEmail(
		mail.NewEmail("", from),
		subject,
		mail.NewEmail("", to),
		text,
		html,
	)

	client := sendgrid.NewSendClient(m.apiKey)
	resp, err := client.Send(message)
	if err != nil {
		return "", err
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("mail relay rejected the message: status %d: %s", resp.StatusCode, resp.Body)
	}

	messageID := ""
	if ids, ok := resp.Headers["X-Message-Id"]; ok && len(ids) > 0 {
		messageID = ids[0]
	}
	return messageID, nil
}
