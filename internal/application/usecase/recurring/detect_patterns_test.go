package recurring

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendlens/backend/internal/application/adapter"
	"github.com/spendlens/backend/internal/domain/entity"
	"github.com/spendlens/backend/internal/domain/valueobject"
)

// stubTransactionRepository serves canned history for pattern detection.
type stubTransactionRepository struct {
	adapter.TransactionRepository
	transactions []*entity.Transaction
}

func (s *stubTransactionRepository) FindByDateRange(_ context.Context, _ string, _, _ time.Time) ([]*entity.Transaction, error) {
	return s.transactions, nil
}

func monthlySeries(description string, amount float64, dayGaps ...int) []*entity.Transaction {
	date := time.Now().UTC().AddDate(0, 0, -80)
	txns := []*entity.Transaction{
		entity.NewTransaction("user-1", decimal.NewFromFloat(amount), description, "Bills", "UPI", date),
	}
	for _, gap := range dayGaps {
		date = date.AddDate(0, 0, gap)
		txns = append(txns, entity.NewTransaction("user-1", decimal.NewFromFloat(amount), description, "Bills", "UPI", date))
	}
	return txns
}

func TestDetectPatterns_MonthlyHighConfidence(t *testing.T) {
	repo := &stubTransactionRepository{
		transactions: monthlySeries("Netflix Subscription", 649, 30, 31, 29),
	}
	uc := NewDetectPatternsUseCase(repo, valueobject.DefaultRecurringConfig())

	output, err := uc.Execute(context.Background(), DetectPatternsInput{UserID: "user-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(output.Patterns) != 1 {
		t.Fatalf("expected 1 pattern, got %d", len(output.Patterns))
	}

	p := output.Patterns[0]
	if p.Description != "Netflix Subscription" {
		t.Errorf("expected original-cased description, got %q", p.Description)
	}
	if p.Frequency != entity.FrequencyMonthly {
		t.Errorf("expected MONTHLY, got %s", p.Frequency)
	}
	if p.Confidence != entity.ConfidenceHigh {
		t.Errorf("expected HIGH confidence, got %s", p.Confidence)
	}
	if p.Occurrences != 4 {
		t.Errorf("expected 4 occurrences, got %d", p.Occurrences)
	}
	if got := p.AverageAmount.StringFixed(2); got != "649.00" {
		t.Errorf("expected average 649.00, got %s", got)
	}

	if p.NextExpectedDate == nil {
		t.Fatal("expected next expected date")
	}
	wantNext := p.LastDate.AddDate(0, 0, 30)
	if !p.NextExpectedDate.Equal(wantNext) {
		t.Errorf("expected next date %s, got %s", wantNext, p.NextExpectedDate)
	}
}

func TestDetectPatterns_VariableAmountsExcluded(t *testing.T) {
	// Same merchant, wildly different amounts: grocery runs, not a pattern.
	date := time.Now().UTC().AddDate(0, 0, -70)
	txns := []*entity.Transaction{}
	for i, amount := range []float64{250, 1200, 90, 2100} {
		txns = append(txns, entity.NewTransaction(
			"user-1", decimal.NewFromFloat(amount), "DMart Groceries", "Food", "UPI",
			date.AddDate(0, 0, i*30),
		))
	}
	repo := &stubTransactionRepository{transactions: txns}
	uc := NewDetectPatternsUseCase(repo, valueobject.DefaultRecurringConfig())

	output, err := uc.Execute(context.Background(), DetectPatternsInput{UserID: "user-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(output.Patterns) != 0 {
		t.Errorf("expected no patterns for variable amounts, got %d", len(output.Patterns))
	}
}

func TestDetectPatterns_SingleOccurrenceIgnored(t *testing.T) {
	repo := &stubTransactionRepository{
		transactions: []*entity.Transaction{
			entity.NewTransaction("user-1", decimal.NewFromInt(999), "Annual Domain Renewal", "Bills", "Card", time.Now().UTC().AddDate(0, 0, -10)),
		},
	}
	uc := NewDetectPatternsUseCase(repo, valueobject.DefaultRecurringConfig())

	output, err := uc.Execute(context.Background(), DetectPatternsInput{UserID: "user-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(output.Patterns) != 0 {
		t.Errorf("expected no patterns, got %d", len(output.Patterns))
	}
}

func TestClassifyFrequency(t *testing.T) {
	tests := []struct {
		days float64
		want entity.Frequency
	}{
		{30, entity.FrequencyMonthly},
		{28, entity.FrequencyMonthly},
		{32, entity.FrequencyMonthly},
		{14, entity.FrequencyBiweekly},
		{7, entity.FrequencyWeekly},
		{1, entity.FrequencyDaily},
		{3, entity.FrequencyUnknown},
		{45, entity.FrequencyUnknown},
	}

	for _, tt := range tests {
		if got := valueobject.ClassifyFrequency(tt.days); got != tt.want {
			t.Errorf("ClassifyFrequency(%v) = %s, want %s", tt.days, got, tt.want)
		}
	}
}

func TestMatchPattern(t *testing.T) {
	avgAmount := decimal.NewFromInt(649)
	patterns := []*entity.RecurringPattern{
		{
			Description:   "Netflix Subscription",
			Category:      "Bills",
			Source:        "UPI",
			Frequency:     entity.FrequencyMonthly,
			Confidence:    entity.ConfidenceHigh,
			AverageAmount: avgAmount,
		},
	}
	uc := NewMatchPatternUseCase(valueobject.DefaultRecurringConfig())

	t.Run("matches same merchant within amount tolerance", func(t *testing.T) {
		txn := entity.NewTransaction("user-1", decimal.NewFromInt(699), "Netflix Subscription", "Bills", "UPI", time.Now())
		if got := uc.Execute(txn, patterns); got == nil {
			t.Error("expected a pattern match")
		}
	})

	t.Run("rejects amount outside tolerance", func(t *testing.T) {
		txn := entity.NewTransaction("user-1", decimal.NewFromInt(1500), "Netflix Subscription", "Bills", "UPI", time.Now())
		if got := uc.Execute(txn, patterns); got != nil {
			t.Errorf("expected no match, got %+v", got)
		}
	})

	t.Run("rejects different category", func(t *testing.T) {
		txn := entity.NewTransaction("user-1", decimal.NewFromInt(649), "Netflix Subscription", "Shopping", "UPI", time.Now())
		if got := uc.Execute(txn, patterns); got != nil {
			t.Errorf("expected no match, got %+v", got)
		}
	})
}
