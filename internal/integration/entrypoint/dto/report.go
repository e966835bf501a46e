package dto

import (
	"time"

	"github.com/spendlens/backend/internal/domain/entity"
)

// RecurringPatternResponse represents one detected recurring pattern.
type RecurringPatternResponse struct {
	Description      string     `json:"description"`
	Category         string     `json:"category"`
	Source           string     `json:"source"`
	Frequency        string     `json:"frequency"`
	Confidence       string     `json:"confidence"`
	Occurrences      int        `json:"occurrences"`
	AverageAmount    string     `json:"average_amount"`
	LastDate         time.Time  `json:"last_date"`
	NextExpectedDate *time.Time `json:"next_expected_date,omitempty"`
}

// RecurringPatternsResponse represents the recurring patterns report.
type RecurringPatternsResponse struct {
	Patterns     []RecurringPatternResponse `json:"patterns"`
	LookbackDays int                        `json:"lookback_days"`
}

// DuplicateGroupResponse represents one cluster in the duplicates report.
type DuplicateGroupResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Confidence   string                `json:"confidence"`
	Reason       string                `json:"reason"`
}

// DuplicateGroupsResponse represents the duplicates report.
type DuplicateGroupsResponse struct {
	Groups      []DuplicateGroupResponse `json:"groups"`
	WindowHours int                      `json:"window_hours"`
}

// CategoryTotalResponse is a per-category total within a summary.
type CategoryTotalResponse struct {
	Category string `json:"category"`
	Total    string `json:"total"`
}

// SummaryResponse represents the spending summary report.
type SummaryResponse struct {
	Period           string                  `json:"period"`
	StartDate        time.Time               `json:"start_date"`
	EndDate          time.Time               `json:"end_date"`
	Total            string                  `json:"total"`
	ByCategory       []CategoryTotalResponse `json:"by_category"`
	TopTransactions  []TransactionResponse   `json:"top_transactions"`
	TransactionCount int                     `json:"transaction_count"`
	Insights         []string                `json:"insights"`
}

// SendDigestRequest represents the request body for an on-demand summary email.
type SendDigestRequest struct {
	Email  string `json:"email" binding:"required,email"`
	Period string `json:"period,omitempty"`
}

// SendDigestResponse represents the response for a digest send.
type SendDigestResponse struct {
	Sent       bool   `json:"sent"`
	ProviderID string `json:"provider_id,omitempty"`
}

// ToRecurringPatternResponse converts a domain recurring pattern to a DTO.
func ToRecurringPatternResponse(p *entity.RecurringPattern) RecurringPatternResponse {
	return RecurringPatternResponse{
		Description:      p.Description,
		Category:         p.Category,
		Source:           p.Source,
		Frequency:        string(p.Frequency),
		Confidence:       string(p.Confidence),
		Occurrences:      p.Occurrences,
		AverageAmount:    p.AverageAmount.StringFixed(2),
		LastDate:         p.LastDate,
		NextExpectedDate: p.NextExpectedDate,
	}
}

// ToSummaryResponse converts a domain spending summary and its insights to a DTO.
func ToSummaryResponse(s *entity.SpendingSummary, insights []string) SummaryResponse {
	resp := SummaryResponse{
		Period:           string(s.Period),
		StartDate:        s.StartDate,
		EndDate:          s.EndDate,
		Total:            s.Total.StringFixed(2),
		ByCategory:       make([]CategoryTotalResponse, 0, len(s.ByCategory)),
		TopTransactions:  make([]TransactionResponse, 0, len(s.TopTransactions)),
		TransactionCount: s.TransactionCount,
		Insights:         insights,
	}
	for _, ct := range s.ByCategory {
		resp.ByCategory = append(resp.ByCategory, CategoryTotalResponse{
			Category: ct.Category,
			Total:    ct.Total.StringFixed(2),
		})
	}
	for _, txn := range s.TopTransactions {
		resp.TopTransactions = append(resp.TopTransactions, ToEntityTransactionResponse(txn))
	}
	return resp
}
