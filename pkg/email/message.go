// Package email builds the contact notification emails and sends them through
// SendGrid, AWS SES or a plain SMTP relay.
package email

import (
	"context"
	"fmt"
)

// Message is a provider-neutral email with plain text and HTML bodies.
type Message struct {
	From     string
	FromName string
	To       string
	ReplyTo  string
	Subject  string
	Text     string
	HTML     string
}

// Receipt is what a provider told us about an accepted message.
type Receipt struct {
	StatusCode int
	MessageID  string
}

// Sender delivers a single message.
type Sender interface {
	Name() string
	Send(ctx context.Context, msg *Message) (*Receipt, error)
}

// ProviderError is a non-2xx answer from an email provider. Body is kept for logs only.
type ProviderError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: provider returned status %d", e.Provider, e.StatusCode)
}
