// Package email provides email sending functionality via Resend.
package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"

	"github.com/spendlens/backend/internal/application/adapter"
	domainerror "github.com/spendlens/backend/internal/domain/error"
)

// ResendClient implements the adapter.EmailSender interface using Resend.
type ResendClient struct {
	client    *resend.Client
	apiKey    string
	fromName  string
	fromEmail string
}

// NewResendClient creates a new Resend client.
func NewResendClient(apiKey, fromName, fromEmail string) *ResendClient {
	return &ResendClient{
		client:    resend.NewClient(apiKey),
		apiKey:    apiKey,
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

// IsConfigured reports whether the sender has credentials.
func (c *ResendClient) IsConfigured() bool {
	return c.apiKey != ""
}

// Send sends an email via Resend.
func (c *ResendClient) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	if !c.IsConfigured() {
		return nil, domainerror.NewEmailError(
			domainerror.ErrCodeEmailNotConfigured,
			"email delivery is not configured",
			nil,
		)
	}

	from := fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail)

	params := &resend.SendEmailRequest{
		From:    from,
		To:      []string{input.To},
		Subject: input.Subject,
		Html:    input.HTML,
		Text:    input.Text,
	}

	resp, err := c.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return nil, domainerror.NewEmailError(
			domainerror.ErrCodeEmailSendFailed,
			"failed to send email",
			err,
		)
	}

	return &adapter.SendEmailResult{
		ProviderID: resp.Id,
	}, nil
}
