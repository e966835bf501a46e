package mock

import (
	"context"
	"sync"

	"github.com/spendlens/backend/internal/application/adapter"
)

// EmailSender records outgoing emails instead of delivering them.
type EmailSender struct {
	mu         sync.Mutex
	configured bool
	sent       []adapter.SendEmailInput
}

// NewEmailSender creates a configured recording sender.
func NewEmailSender() *EmailSender {
	return &EmailSender{configured: true}
}

func (s *EmailSender) IsConfigured() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.configured
}

func (s *EmailSender) Send(_ context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, input)
	return &adapter.SendEmailResult{ProviderID: "mock-email-id"}, nil
}

// SetConfigured toggles whether the sender reports itself as configured.
func (s *EmailSender) SetConfigured(configured bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.configured = configured
}

// Sent returns a copy of the recorded emails.
func (s *EmailSender) Sent() []adapter.SendEmailInput {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]adapter.SendEmailInput, len(s.sent))
	copy(out, s.sent)
	return out
}

// Reset clears the recorded emails and restores the configured state.
func (s *EmailSender) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = nil
	s.configured = true
}
