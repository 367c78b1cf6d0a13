package contact

import (
	"context"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridMailer forwards contact messages to the shop inbox via SendGrid.
type SendGridMailer struct {
	client    *sendgrid.Client
	fromEmail string
	toEmail   string
}

func NewSendGridMailer(apiKey, fromEmail, toEmail string) *SendGridMailer {
	return &SendGridMailer{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		toEmail:   toEmail,
	}
}

func (m *SendGridMailer) Send(_ context.Context, msg Message) error {
	from := mail.NewEmail("OnePoint Motors", m.fromEmail)
	to := mail.NewEmail("", m.toEmail)
	subject := fmt.Sprintf("Contact form: %s", msg.Name)
	body := fmt.Sprintf("From: %s <%s>\nPhone: %s\n\n%s", msg.Name, msg.Email, msg.Phone, msg.Body)

	message := mail.NewSingleEmail(from, subject, to, body, "")
	message.SetReplyTo(mail.NewEmail(msg.Name, msg.Email))

	resp, err := m.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected message: status %d", resp.StatusCode)
	}
	return nil
}

// LogMailer is used when no SendGrid key is configured, so the contact form
// keeps working in development.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, msg Message) error {
	log.Printf("contact message from %s <%s>: %s", msg.Name, msg.Email, msg.Body)
	return nil
}
