package ingestion

import (
	"context"
	"fmt"

	"github.com/spendlens/backend/internal/application/adapter"
	"github.com/spendlens/backend/internal/domain/entity"
	domainerror "github.com/spendlens/backend/internal/domain/error"
)

const (
	defaultMessageLimit = 50
	maxMessageLimit     = 200
)

// ListMessagesInput represents the input for the SMS audit listing.
type ListMessagesInput struct {
	UserID string
	Limit  int // 0 uses the default
}

// ListMessagesOutput represents the output of the SMS audit listing.
type ListMessagesOutput struct {
	Messages []*entity.SMSMessage
	Limit    int
}

// ListMessagesUseCase serves a user's ingested-SMS audit trail, most
// recent first.
type ListMessagesUseCase struct {
	smsRepo adapter.SMSMessageRepository
}

// NewListMessagesUseCase creates a new ListMessagesUseCase instance.
func NewListMessagesUseCase(smsRepo adapter.SMSMessageRepository) *ListMessagesUseCase {
	return &ListMessagesUseCase{smsRepo: smsRepo}
}

// Execute performs the listing.
func (uc *ListMessagesUseCase) Execute(ctx context.Context, input ListMessagesInput) (*ListMessagesOutput, error) {
	if input.UserID == "" {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeMissingUserID,
			"user id is required",
			domainerror.ErrMissingUserID,
		)
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultMessageLimit
	}
	if limit > maxMessageLimit {
		limit = maxMessageLimit
	}

	messages, err := uc.smsRepo.FindByUser(ctx, input.UserID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list SMS messages: %w", err)
	}

	return &ListMessagesOutput{Messages: messages, Limit: limit}, nil
}
