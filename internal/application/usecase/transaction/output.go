// Package transaction contains transaction-related use cases.
package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spendlens/backend/internal/domain/entity"
)

// TransactionOutput represents a transaction in use-case outputs.
type TransactionOutput struct {
	ID          uuid.UUID
	UserID      string
	Amount      decimal.Decimal
	Description string
	Category    string
	Source      string
	Date        time.Time
	CreatedAt   time.Time
}

func toOutput(txn *entity.Transaction) *TransactionOutput {
	return &TransactionOutput{
		ID:          txn.ID,
		UserID:      txn.UserID,
		Amount:      txn.Amount,
		Description: txn.Description,
		Category:    txn.Category,
		Source:      txn.Source,
		Date:        txn.Date,
		CreatedAt:   txn.CreatedAt,
	}
}
