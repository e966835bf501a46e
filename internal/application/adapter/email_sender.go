package adapter

import "context"

// SendEmailInput contains the data needed to send an email.
type SendEmailInput struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult contains the provider's response for a sent email.
type SendEmailResult struct {
	ProviderID string
}

// EmailSender defines the interface for sending emails.
type EmailSender interface {
	// Send sends a single email.
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)

	// IsConfigured reports whether the sender has credentials.
	IsConfigured() bool
}
