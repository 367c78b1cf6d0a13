package contact

import (
	"context"
	"errors"
	"strings"
)

// Message is a contact-form submission.
type Message struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Body  string `json:"message"`
}

var (
	ErrNameRequired    = errors.New("name is required")
	ErrEmailRequired   = errors.New("a valid email is required")
	ErrMessageRequired = errors.New("message is required")
)

// Validate applies the same checks the storefront form does.
func (m Message) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(m.Email) == "" || !strings.Contains(m.Email, "@") {
		return ErrEmailRequired
	}
	if strings.TrimSpace(m.Body) == "" {
		return ErrMessageRequired
	}
	return nil
}

// Mailer delivers contact messages to the shop inbox.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
