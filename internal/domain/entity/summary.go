package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportPeriod selects the aggregation window for a spending report.
type ReportPeriod string

const (
	PeriodWeekly  ReportPeriod = "weekly"
	PeriodMonthly ReportPeriod = "monthly"
)

// CategoryTotal is a per-category spending total within a summary.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// SpendingSummary aggregates a transaction set into totals by category and
// the top transactions by amount.
type SpendingSummary struct {
	Period           ReportPeriod
	StartDate        time.Time
	EndDate          time.Time
	Total            decimal.Decimal
	ByCategory       []CategoryTotal // sorted by total descending
	TopTransactions  []*Transaction  // sorted by amount descending, truncated
	TransactionCount int
}

// TopCategory returns the highest-spending category, or nil for an empty summary.
func (s *SpendingSummary) TopCategory() *CategoryTotal {
	if len(s.ByCategory) == 0 {
		return nil
	}
	return &s.ByCategory[0]
}
