package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/spendlens/backend/internal/application/adapter"
	domainerror "github.com/spendlens/backend/internal/domain/error"
)

// DeleteTransactionInput represents the input for transaction deletion.
type DeleteTransactionInput struct {
	ID     uuid.UUID
	UserID string
}

// DeleteTransactionUseCase handles transaction deletion with ownership checks.
type DeleteTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewDeleteTransactionUseCase creates a new DeleteTransactionUseCase instance.
func NewDeleteTransactionUseCase(transactionRepo adapter.TransactionRepository) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{transactionRepo: transactionRepo}
}

// Execute performs the transaction deletion.
func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, input DeleteTransactionInput) error {
	if input.UserID == "" {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeMissingUserID,
			"user id is required",
			domainerror.ErrMissingUserID,
		)
	}

	// The delete is scoped to the owner, so another user's transaction is
	// indistinguishable from a missing one.
	if err := uc.transactionRepo.Delete(ctx, input.ID, input.UserID); err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionNotFound,
				"transaction not found",
				domainerror.ErrTransactionNotFound,
			)
		}
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}
