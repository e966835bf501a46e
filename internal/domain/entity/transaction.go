// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction represents a financial transaction in the SpendLens system.
// Transactions are created once (manual entry or SMS ingestion), never
// updated in place, and are deletable by id.
type Transaction struct {
	ID          uuid.UUID
	UserID      string // opaque owner identifier
	Amount      decimal.Decimal
	Description string
	Category    string
	Source      string // payment channel label, e.g. "UPI", "HDFC Card"
	Date        time.Time
	CreatedAt   time.Time
	DeletedAt   *time.Time
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	userID string,
	amount decimal.Decimal,
	description string,
	category string,
	source string,
	date time.Time,
) *Transaction {
	return &Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Amount:      amount,
		Description: description,
		Category:    category,
		Source:      source,
		Date:        date,
		CreatedAt:   time.Now().UTC(),
	}
}

// TransactionListResult represents the result of listing transactions.
type TransactionListResult struct {
	Transactions []*Transaction
	Total        int64
	Page         int
	Limit        int
	TotalPages   int
}
