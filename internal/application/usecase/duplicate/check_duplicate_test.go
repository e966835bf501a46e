package duplicate

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendlens/backend/internal/application/adapter"
	"github.com/spendlens/backend/internal/domain/entity"
	"github.com/spendlens/backend/internal/domain/valueobject"
)

// stubTransactionRepository serves canned candidates for duplicate checks.
type stubTransactionRepository struct {
	adapter.TransactionRepository
	candidates   []*entity.Transaction
	rangeResults []*entity.Transaction
}

func (s *stubTransactionRepository) FindCandidates(
	_ context.Context,
	_ string,
	_ string,
	_, _ decimal.Decimal,
	_, _ time.Time,
	_ int,
) ([]*entity.Transaction, error) {
	return s.candidates, nil
}

func (s *stubTransactionRepository) FindByDateRange(_ context.Context, _ string, _, _ time.Time) ([]*entity.Transaction, error) {
	return s.rangeResults, nil
}

func newTxn(userID, description, source string, amount float64, date time.Time) *entity.Transaction {
	return entity.NewTransaction(userID, decimal.NewFromFloat(amount), description, "Food", source, date)
}

func TestCheckDuplicate_HighConfidenceWithinOneHour(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &stubTransactionRepository{
		candidates: []*entity.Transaction{
			newTxn("user-1", "Swiggy Order Payment", "UPI", 450, now.Add(-30*time.Minute)),
		},
	}
	uc := NewCheckDuplicateUseCase(repo, valueobject.DefaultDuplicateConfig())

	result, err := uc.Execute(context.Background(), CheckDuplicateInput{
		UserID:      "user-1",
		Amount:      decimal.NewFromInt(450),
		Description: "Swiggy Order Payment",
		Source:      "UPI",
		Date:        now,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.IsDuplicate {
		t.Fatal("expected duplicate")
	}
	if result.Confidence != entity.ConfidenceHigh {
		t.Errorf("expected HIGH confidence, got %s", result.Confidence)
	}
	if len(result.SimilarTransactions) != 1 {
		t.Errorf("expected 1 similar transaction, got %d", len(result.SimilarTransactions))
	}
	if result.Reason == "" {
		t.Error("expected non-empty reason")
	}
}

func TestCheckDuplicate_MediumConfidenceOutsideOneHour(t *testing.T) {
	now := time.Date(2025, 3, 10, 22, 0, 0, 0, time.UTC)
	repo := &stubTransactionRepository{
		candidates: []*entity.Transaction{
			newTxn("user-1", "Swiggy Order Payment", "UPI", 450, now.Add(-20*time.Hour)),
		},
	}
	uc := NewCheckDuplicateUseCase(repo, valueobject.DefaultDuplicateConfig())

	result, err := uc.Execute(context.Background(), CheckDuplicateInput{
		UserID:      "user-1",
		Amount:      decimal.NewFromInt(450),
		Description: "Swiggy Order Payment",
		Source:      "UPI",
		Date:        now,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.IsDuplicate {
		t.Fatal("expected duplicate")
	}
	if result.Confidence != entity.ConfidenceMedium {
		t.Errorf("expected MEDIUM confidence, got %s", result.Confidence)
	}
}

func TestCheckDuplicate_DissimilarDescriptionIsNotDuplicate(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &stubTransactionRepository{
		candidates: []*entity.Transaction{
			newTxn("user-1", "Electricity Bill BESCOM", "UPI", 450, now.Add(-10*time.Minute)),
		},
	}
	uc := NewCheckDuplicateUseCase(repo, valueobject.DefaultDuplicateConfig())

	result, err := uc.Execute(context.Background(), CheckDuplicateInput{
		UserID:      "user-1",
		Amount:      decimal.NewFromInt(450),
		Description: "Swiggy Order Payment",
		Source:      "UPI",
		Date:        now,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.IsDuplicate {
		t.Errorf("expected no duplicate, got %+v", result)
	}
	if result.Confidence != entity.ConfidenceLow {
		t.Errorf("expected LOW confidence, got %s", result.Confidence)
	}
}

func TestCheckDuplicate_AmountOutsideToleranceFiltered(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &stubTransactionRepository{
		candidates: []*entity.Transaction{
			// 2% off; tolerance is 1%.
			newTxn("user-1", "Swiggy Order Payment", "UPI", 459, now.Add(-10*time.Minute)),
		},
	}
	uc := NewCheckDuplicateUseCase(repo, valueobject.DefaultDuplicateConfig())

	result, err := uc.Execute(context.Background(), CheckDuplicateInput{
		UserID:      "user-1",
		Amount:      decimal.NewFromInt(450),
		Description: "Swiggy Order Payment",
		Source:      "UPI",
		Date:        now,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.IsDuplicate {
		t.Errorf("expected no duplicate for out-of-tolerance amount, got %+v", result)
	}
}

func TestCheckDuplicate_MissingUserID(t *testing.T) {
	uc := NewCheckDuplicateUseCase(&stubTransactionRepository{}, valueobject.DefaultDuplicateConfig())

	_, err := uc.Execute(context.Background(), CheckDuplicateInput{
		Amount:      decimal.NewFromInt(450),
		Description: "anything",
	})
	if err == nil {
		t.Fatal("expected error for missing user id")
	}
}

func TestFindGroups_ClustersSimilarTransactions(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &stubTransactionRepository{
		rangeResults: []*entity.Transaction{
			newTxn("user-1", "Swiggy Order Payment", "UPI", 450, now.Add(-2*time.Hour)),
			newTxn("user-1", "Swiggy Order Payment", "UPI", 450, now.Add(-90*time.Minute)),
			newTxn("user-1", "Uber Trip", "UPI", 230, now.Add(-1*time.Hour)),
		},
	}
	uc := NewFindGroupsUseCase(repo, valueobject.DefaultDuplicateConfig())

	output, err := uc.Execute(context.Background(), FindGroupsInput{UserID: "user-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(output.Groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(output.Groups))
	}
	if len(output.Groups[0].Transactions) != 2 {
		t.Errorf("expected 2 transactions in group, got %d", len(output.Groups[0].Transactions))
	}
	if output.WindowHours != valueobject.DefaultDuplicateConfig().WindowHours {
		t.Errorf("expected default window, got %d", output.WindowHours)
	}
}

func TestFindGroups_NoGroupsForDistinctTransactions(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &stubTransactionRepository{
		rangeResults: []*entity.Transaction{
			newTxn("user-1", "Swiggy Order Payment", "UPI", 450, now.Add(-2*time.Hour)),
			newTxn("user-1", "Uber Trip", "UPI", 230, now.Add(-1*time.Hour)),
		},
	}
	uc := NewFindGroupsUseCase(repo, valueobject.DefaultDuplicateConfig())

	output, err := uc.Execute(context.Background(), FindGroupsInput{UserID: "user-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(output.Groups) != 0 {
		t.Errorf("expected no groups, got %d", len(output.Groups))
	}
}
