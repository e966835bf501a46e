// Package report contains summary and insight use cases.
package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendlens/backend/internal/application/adapter"
	"github.com/spendlens/backend/internal/domain/entity"
	domainerror "github.com/spendlens/backend/internal/domain/error"
)

const (
	weeklyTopN  = 3
	monthlyTopN = 10

	weeklyLookbackDays  = 7
	monthlyLookbackDays = 30
)

// SummarizeInput represents the input for a spending summary.
type SummarizeInput struct {
	UserID string
	Period entity.ReportPeriod
}

// SummarizeUseCase aggregates a user's transactions for the report period
// into totals by category and the top transactions by amount.
type SummarizeUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewSummarizeUseCase creates a new SummarizeUseCase instance.
func NewSummarizeUseCase(transactionRepo adapter.TransactionRepository) *SummarizeUseCase {
	return &SummarizeUseCase{transactionRepo: transactionRepo}
}

// Execute computes the summary. Repeated calls with unchanged data return
// identical output; no state is kept between calls.
func (uc *SummarizeUseCase) Execute(ctx context.Context, input SummarizeInput) (*entity.SpendingSummary, error) {
	if input.UserID == "" {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeMissingUserID,
			"user id is required",
			domainerror.ErrMissingUserID,
		)
	}

	var lookbackDays, topN int
	switch input.Period {
	case entity.PeriodWeekly:
		lookbackDays, topN = weeklyLookbackDays, weeklyTopN
	case entity.PeriodMonthly:
		lookbackDays, topN = monthlyLookbackDays, monthlyTopN
	default:
		return nil, domainerror.ErrInvalidReportPeriod
	}

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -lookbackDays)

	transactions, err := uc.transactionRepo.FindByDateRange(ctx, input.UserID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions for summary: %w", err)
	}

	return Summarize(transactions, input.Period, start, end, topN), nil
}

// Summarize aggregates an already-fetched transaction set. Exposed so that
// report composition (insights, digest) can reuse one fetch.
func Summarize(transactions []*entity.Transaction, period entity.ReportPeriod, start, end time.Time, topN int) *entity.SpendingSummary {
	total := decimal.Zero
	byCategory := map[string]decimal.Decimal{}
	categoryOrder := []string{}

	for _, txn := range transactions {
		total = total.Add(txn.Amount)
		if _, seen := byCategory[txn.Category]; !seen {
			categoryOrder = append(categoryOrder, txn.Category)
		}
		byCategory[txn.Category] = byCategory[txn.Category].Add(txn.Amount)
	}

	totals := make([]entity.CategoryTotal, 0, len(byCategory))
	for _, category := range categoryOrder {
		totals = append(totals, entity.CategoryTotal{Category: category, Total: byCategory[category]})
	}
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Total.GreaterThan(totals[j].Total)
	})

	top := make([]*entity.Transaction, len(transactions))
	copy(top, transactions)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Amount.GreaterThan(top[j].Amount)
	})
	if len(top) > topN {
		top = top[:topN]
	}

	return &entity.SpendingSummary{
		Period:           period,
		StartDate:        start,
		EndDate:          end,
		Total:            total,
		ByCategory:       totals,
		TopTransactions:  top,
		TransactionCount: len(transactions),
	}
}
