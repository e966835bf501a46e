// Package adapter defines interfaces that are implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spendlens/backend/internal/domain/entity"
)

// TransactionFilter defines filter options for listing transactions.
type TransactionFilter struct {
	UserID    string
	StartDate *time.Time
	EndDate   *time.Time
	Category  string
	Source    string
	Search    string // case-insensitive description match
}

// TransactionPagination defines pagination options.
type TransactionPagination struct {
	Page  int
	Limit int
}

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// Create creates a new transaction in the database.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByFilter retrieves transactions based on filter criteria with
	// pagination, ordered by date descending.
	FindByFilter(ctx context.Context, filter TransactionFilter, pagination TransactionPagination) (*entity.TransactionListResult, error)

	// FindByDateRange retrieves a user's transactions within [start, end],
	// ordered by date ascending.
	FindByDateRange(ctx context.Context, userID string, start, end time.Time) ([]*entity.Transaction, error)

	// FindCandidates retrieves a user's transactions with the given source
	// and an amount within [minAmount, maxAmount], dated within [start, end],
	// most recent first, limited to limit rows.
	FindCandidates(
		ctx context.Context,
		userID string,
		source string,
		minAmount, maxAmount decimal.Decimal,
		start, end time.Time,
		limit int,
	) ([]*entity.Transaction, error)

	// Delete soft-deletes a transaction owned by the given user.
	Delete(ctx context.Context, id uuid.UUID, userID string) error
}

// SMSMessageRepository stores the audit trail of raw ingested SMS messages.
type SMSMessageRepository interface {
	// Create persists a received SMS message record.
	Create(ctx context.Context, message *entity.SMSMessage) error

	// FindByUser retrieves a user's message records, most recent first.
	FindByUser(ctx context.Context, userID string, limit int) ([]*entity.SMSMessage, error)
}
