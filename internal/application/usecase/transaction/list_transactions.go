package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/spendlens/backend/internal/application/adapter"
	domainerror "github.com/spendlens/backend/internal/domain/error"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	UserID    string
	StartDate *time.Time
	EndDate   *time.Time
	Category  string
	Source    string
	Search    string
	Page      int
	Limit     int
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Transactions []*TransactionOutput
	Total        int64
	Page         int
	Limit        int
	TotalPages   int
}

// ListTransactionsUseCase handles transaction listing with filters and pagination.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{transactionRepo: transactionRepo}
}

// Execute performs the transaction listing.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	if input.UserID == "" {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeMissingUserID,
			"user id is required",
			domainerror.ErrMissingUserID,
		)
	}

	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	result, err := uc.transactionRepo.FindByFilter(
		ctx,
		adapter.TransactionFilter{
			UserID:    input.UserID,
			StartDate: input.StartDate,
			EndDate:   input.EndDate,
			Category:  input.Category,
			Source:    input.Source,
			Search:    input.Search,
		},
		adapter.TransactionPagination{Page: page, Limit: limit},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	outputs := make([]*TransactionOutput, len(result.Transactions))
	for i, txn := range result.Transactions {
		outputs[i] = toOutput(txn)
	}

	return &ListTransactionsOutput{
		Transactions: outputs,
		Total:        result.Total,
		Page:         result.Page,
		Limit:        result.Limit,
		TotalPages:   result.TotalPages,
	}, nil
}
