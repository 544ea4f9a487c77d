package email

import (
	"context"
	"fmt"
	"regexp"
)

// Sender sends a transactional email.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Message is a single outbound email.
type Message struct {
	To       string `json:"to"`            // Recipient email address
	Subject  string `json:"subject"`       // Subject line
	BodyHTML string `json:"body_html"`     // HTML body
	Tag      string `json:"tag,omitempty"` // Optional provider-side tag for grouping
}

// emailRegex is intentionally permissive; real validation happens at
// the provider. It only rejects obviously malformed addresses.
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Validate checks the message for fields the provider would reject.
func (m Message) Validate() error {
	if m.To == "" {
		return fmt.Errorf("%w: recipient is required", ErrInvalidMessage)
	}
	if !emailRegex.MatchString(m.To) {
		return fmt.Errorf("%w: recipient %q is not a valid email address", ErrInvalidMessage, m.To)
	}
	if m.Subject == "" {
		return fmt.Errorf("%w: subject is required", ErrInvalidMessage)
	}
	if m.BodyHTML == "" {
		return fmt.Errorf("%w: body is required", ErrInvalidMessage)
	}
	return nil
}
