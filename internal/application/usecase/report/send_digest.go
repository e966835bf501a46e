package report

import (
	"context"
	"fmt"

	"github.com/spendlens/backend/internal/application/adapter"
	"github.com/spendlens/backend/internal/domain/entity"
	domainerror "github.com/spendlens/backend/internal/domain/error"
)

// SendDigestInput represents the input for an on-demand summary email.
type SendDigestInput struct {
	UserID string
	Email  string
	Period entity.ReportPeriod
}

// SendDigestOutput represents the output of a digest send.
type SendDigestOutput struct {
	Summary    *entity.SpendingSummary
	Insights   []string
	ProviderID string
}

// DigestRenderer renders a summary and its insights into email bodies.
type DigestRenderer interface {
	RenderDigest(summary *entity.SpendingSummary, insights []string) (html string, text string, err error)
}

// SendDigestUseCase composes a spending summary with insights and delivers
// it by email.
type SendDigestUseCase struct {
	summarizeUC *SummarizeUseCase
	insightsUC  *InsightsUseCase
	renderer    DigestRenderer
	emailSender adapter.EmailSender
}

// NewSendDigestUseCase creates a new SendDigestUseCase instance.
func NewSendDigestUseCase(
	summarizeUC *SummarizeUseCase,
	insightsUC *InsightsUseCase,
	renderer DigestRenderer,
	emailSender adapter.EmailSender,
) *SendDigestUseCase {
	return &SendDigestUseCase{
		summarizeUC: summarizeUC,
		insightsUC:  insightsUC,
		renderer:    renderer,
		emailSender: emailSender,
	}
}

// Execute builds and sends the digest email.
func (uc *SendDigestUseCase) Execute(ctx context.Context, input SendDigestInput) (*SendDigestOutput, error) {
	if !uc.emailSender.IsConfigured() {
		return nil, domainerror.NewEmailError(
			domainerror.ErrCodeEmailNotConfigured,
			"email delivery is not configured",
			domainerror.ErrEmailNotConfigured,
		)
	}

	summary, err := uc.summarizeUC.Execute(ctx, SummarizeInput{UserID: input.UserID, Period: input.Period})
	if err != nil {
		return nil, err
	}
	insights := uc.insightsUC.Execute(ctx, summary)

	html, text, err := uc.renderer.RenderDigest(summary, insights)
	if err != nil {
		return nil, fmt.Errorf("failed to render digest: %w", err)
	}

	result, err := uc.emailSender.Send(ctx, adapter.SendEmailInput{
		To:      input.Email,
		Subject: fmt.Sprintf("Your %s spending summary", input.Period),
		HTML:    html,
		Text:    text,
	})
	if err != nil {
		return nil, domainerror.NewEmailError(
			domainerror.ErrCodeEmailSendFailed,
			"failed to send digest email",
			err,
		)
	}

	return &SendDigestOutput{
		Summary:    summary,
		Insights:   insights,
		ProviderID: result.ProviderID,
	}, nil
}
