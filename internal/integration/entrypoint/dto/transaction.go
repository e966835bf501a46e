package dto

import (
	"time"

	"github.com/spendlens/backend/internal/application/usecase/transaction"
	"github.com/spendlens/backend/internal/domain/entity"
)

// CreateTransactionRequest represents the request body for transaction creation.
type CreateTransactionRequest struct {
	Amount      float64 `json:"amount" binding:"required"`
	Description string  `json:"description" binding:"required,min=1,max=255"`
	Category    string  `json:"category,omitempty"`
	Source      string  `json:"source,omitempty"`
	Date        string  `json:"date" binding:"required"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Amount      string    `json:"amount"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Source      string    `json:"source"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}

// DuplicateAdvisoryResponse reports an advisory duplicate match alongside a
// created transaction.
type DuplicateAdvisoryResponse struct {
	IsDuplicate bool                  `json:"is_duplicate"`
	Confidence  string                `json:"confidence,omitempty"`
	Reason      string                `json:"reason,omitempty"`
	Similar     []TransactionResponse `json:"similar_transactions,omitempty"`
}

// CreateTransactionResponse represents the response for transaction creation.
type CreateTransactionResponse struct {
	Transaction TransactionResponse        `json:"transaction"`
	Duplicate   *DuplicateAdvisoryResponse `json:"duplicate,omitempty"`
}

// PaginationResponse represents pagination information in API responses.
type PaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// ListTransactionsResponse represents the response for transaction listing.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Pagination   PaginationResponse    `json:"pagination"`
}

// ToTransactionResponse converts a use-case transaction output to a response DTO.
func ToTransactionResponse(out *transaction.TransactionOutput) TransactionResponse {
	return TransactionResponse{
		ID:          out.ID.String(),
		UserID:      out.UserID,
		Amount:      out.Amount.StringFixed(2),
		Description: out.Description,
		Category:    out.Category,
		Source:      out.Source,
		Date:        out.Date,
		CreatedAt:   out.CreatedAt,
	}
}

// ToEntityTransactionResponse converts a domain transaction to a response DTO.
func ToEntityTransactionResponse(txn *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          txn.ID.String(),
		UserID:      txn.UserID,
		Amount:      txn.Amount.StringFixed(2),
		Description: txn.Description,
		Category:    txn.Category,
		Source:      txn.Source,
		Date:        txn.Date,
		CreatedAt:   txn.CreatedAt,
	}
}

// ToDuplicateAdvisoryResponse converts an advisory duplicate result to a DTO.
// Returns nil when no duplicate was found.
func ToDuplicateAdvisoryResponse(result *entity.DuplicateCheckResult) *DuplicateAdvisoryResponse {
	if result == nil || !result.IsDuplicate {
		return nil
	}
	resp := &DuplicateAdvisoryResponse{
		IsDuplicate: true,
		Confidence:  string(result.Confidence),
		Reason:      result.Reason,
	}
	for _, txn := range result.SimilarTransactions {
		resp.Similar = append(resp.Similar, ToEntityTransactionResponse(txn))
	}
	return resp
}
