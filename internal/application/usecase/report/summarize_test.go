package report

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendlens/backend/internal/application/adapter"
	"github.com/spendlens/backend/internal/domain/entity"
	domainerror "github.com/spendlens/backend/internal/domain/error"
)

// stubTransactionRepository serves canned history for summaries.
type stubTransactionRepository struct {
	adapter.TransactionRepository
	transactions []*entity.Transaction
}

func (s *stubTransactionRepository) FindByDateRange(_ context.Context, _ string, _, _ time.Time) ([]*entity.Transaction, error) {
	return s.transactions, nil
}

func newTxn(description, category string, amount float64, daysAgo int) *entity.Transaction {
	return entity.NewTransaction(
		"user-1",
		decimal.NewFromFloat(amount),
		description,
		category,
		"UPI",
		time.Now().UTC().AddDate(0, 0, -daysAgo),
	)
}

func TestSummarize_WeeklyTotalsAndOrdering(t *testing.T) {
	repo := &stubTransactionRepository{
		transactions: []*entity.Transaction{
			newTxn("Swiggy Order", "Food", 200, 1),
			newTxn("Uber Trip", "Transport", 50, 2),
			newTxn("Zomato Order", "Food", 100, 3),
		},
	}
	uc := NewSummarizeUseCase(repo)

	summary, err := uc.Execute(context.Background(), SummarizeInput{UserID: "user-1", Period: entity.PeriodWeekly})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := summary.Total.StringFixed(2); got != "350.00" {
		t.Errorf("expected total 350.00, got %s", got)
	}
	if summary.TransactionCount != 3 {
		t.Errorf("expected count 3, got %d", summary.TransactionCount)
	}

	if len(summary.ByCategory) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(summary.ByCategory))
	}
	if summary.ByCategory[0].Category != "Food" {
		t.Errorf("expected Food first, got %s", summary.ByCategory[0].Category)
	}
	if got := summary.ByCategory[0].Total.StringFixed(2); got != "300.00" {
		t.Errorf("expected Food total 300.00, got %s", got)
	}

	if len(summary.TopTransactions) != 3 {
		t.Fatalf("expected 3 top transactions, got %d", len(summary.TopTransactions))
	}
	if got := summary.TopTransactions[0].Amount.StringFixed(2); got != "200.00" {
		t.Errorf("expected largest first (200.00), got %s", got)
	}

	if top := summary.TopCategory(); top == nil || top.Category != "Food" {
		t.Errorf("expected top category Food, got %+v", top)
	}
}

func TestSummarize_WeeklyCapsTopTransactionsAtThree(t *testing.T) {
	repo := &stubTransactionRepository{
		transactions: []*entity.Transaction{
			newTxn("a", "Food", 10, 1),
			newTxn("b", "Food", 20, 1),
			newTxn("c", "Food", 30, 1),
			newTxn("d", "Food", 40, 1),
			newTxn("e", "Food", 50, 1),
		},
	}
	uc := NewSummarizeUseCase(repo)

	summary, err := uc.Execute(context.Background(), SummarizeInput{UserID: "user-1", Period: entity.PeriodWeekly})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(summary.TopTransactions) != 3 {
		t.Errorf("expected top capped at 3, got %d", len(summary.TopTransactions))
	}
	if got := summary.TopTransactions[0].Amount.StringFixed(2); got != "50.00" {
		t.Errorf("expected 50.00 first, got %s", got)
	}
}

func TestSummarize_EmptyHistory(t *testing.T) {
	uc := NewSummarizeUseCase(&stubTransactionRepository{})

	summary, err := uc.Execute(context.Background(), SummarizeInput{UserID: "user-1", Period: entity.PeriodMonthly})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !summary.Total.IsZero() {
		t.Errorf("expected zero total, got %s", summary.Total)
	}
	if summary.TransactionCount != 0 {
		t.Errorf("expected zero count, got %d", summary.TransactionCount)
	}
	if summary.TopCategory() != nil {
		t.Error("expected nil top category for empty summary")
	}
}

func TestSummarize_InvalidPeriod(t *testing.T) {
	uc := NewSummarizeUseCase(&stubTransactionRepository{})

	_, err := uc.Execute(context.Background(), SummarizeInput{UserID: "user-1", Period: "yearly"})
	if err == nil {
		t.Fatal("expected error for invalid period")
	}
	if err != domainerror.ErrInvalidReportPeriod {
		t.Errorf("expected ErrInvalidReportPeriod, got %v", err)
	}
}
