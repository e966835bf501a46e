package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendlens/backend/internal/application/adapter"
	"github.com/spendlens/backend/internal/application/usecase/categorization"
	"github.com/spendlens/backend/internal/application/usecase/duplicate"
	"github.com/spendlens/backend/internal/domain/entity"
	domainerror "github.com/spendlens/backend/internal/domain/error"
)

// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
const MaxDescriptionLength = 255

// CreateTransactionInput represents the input for manual transaction creation.
type CreateTransactionInput struct {
	UserID      string
	Amount      decimal.Decimal
	Description string
	Category    string // optional, auto-categorized when empty
	Source      string
	Date        time.Time
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *TransactionOutput
	Duplicate   *entity.DuplicateCheckResult
}

// CreateTransactionUseCase handles manual transaction creation. Duplicate
// detection runs pre-insert but is advisory: a positive result is reported
// back and logged, never rejected.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	categorizeUC    *categorization.CategorizeUseCase
	duplicateUC     *duplicate.CheckDuplicateUseCase
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categorizeUC *categorization.CategorizeUseCase,
	duplicateUC *duplicate.CheckDuplicateUseCase,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		categorizeUC:    categorizeUC,
		duplicateUC:     duplicateUC,
	}
}

// Execute performs the transaction creation.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	if input.UserID == "" {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeMissingUserID,
			"user id is required",
			domainerror.ErrMissingUserID,
		)
	}
	if !input.Amount.IsPositive() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must be positive",
			domainerror.ErrInvalidTransactionAmount,
		)
	}
	if input.Description == "" {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeEmptyDescription,
			"description is required",
			domainerror.ErrEmptyTransactionDescription,
		)
	}
	if len(input.Description) > MaxDescriptionLength {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}

	category := entity.NormalizeCategory(input.Category)
	if category == "" {
		category = uc.categorizeUC.Execute(ctx, categorization.CategorizeInput{
			Description: input.Description,
		})
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	// Advisory pre-insert duplicate check.
	dupResult, err := uc.duplicateUC.Execute(ctx, duplicate.CheckDuplicateInput{
		UserID:      input.UserID,
		Amount:      input.Amount,
		Description: input.Description,
		Source:      input.Source,
		Date:        date,
	})
	if err != nil {
		slog.Debug("Duplicate check failed, creating transaction anyway",
			"userID", input.UserID,
			"error", err,
		)
		dupResult = nil
	} else if dupResult.IsDuplicate {
		slog.Warn("Possible duplicate transaction created",
			"userID", input.UserID,
			"confidence", dupResult.Confidence,
			"reason", dupResult.Reason,
		)
	}

	txn := entity.NewTransaction(
		input.UserID,
		input.Amount,
		input.Description,
		category,
		input.Source,
		date,
	)

	if err := uc.transactionRepo.Create(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return &CreateTransactionOutput{
		Transaction: toOutput(txn),
		Duplicate:   dupResult,
	}, nil
}
