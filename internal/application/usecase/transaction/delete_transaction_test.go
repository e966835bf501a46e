package transaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spendlens/backend/internal/application/adapter"
	"github.com/spendlens/backend/internal/domain/entity"
	domainerror "github.com/spendlens/backend/internal/domain/error"
)

// stubTransactionRepository keeps transactions in memory and scopes deletes
// by owner, mirroring the persistence layer's behavior.
type stubTransactionRepository struct {
	adapter.TransactionRepository
	transactions map[uuid.UUID]*entity.Transaction
}

func (s *stubTransactionRepository) Delete(_ context.Context, id uuid.UUID, userID string) error {
	txn, ok := s.transactions[id]
	if !ok || txn.UserID != userID {
		return domainerror.ErrTransactionNotFound
	}
	delete(s.transactions, id)
	return nil
}

func TestDeleteTransaction(t *testing.T) {
	newRepo := func(owned *entity.Transaction) *stubTransactionRepository {
		return &stubTransactionRepository{
			transactions: map[uuid.UUID]*entity.Transaction{owned.ID: owned},
		}
	}
	owned := entity.NewTransaction("user-1", decimal.NewFromInt(100), "Coffee", "Food", "UPI", time.Now().UTC())

	t.Run("deletes owned transaction", func(t *testing.T) {
		repo := newRepo(owned)
		uc := NewDeleteTransactionUseCase(repo)

		err := uc.Execute(context.Background(), DeleteTransactionInput{ID: owned.ID, UserID: "user-1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(repo.transactions) != 0 {
			t.Error("expected transaction to be removed")
		}
	})

	t.Run("another user's transaction looks missing", func(t *testing.T) {
		repo := newRepo(owned)
		uc := NewDeleteTransactionUseCase(repo)

		err := uc.Execute(context.Background(), DeleteTransactionInput{ID: owned.ID, UserID: "user-2"})
		if !errors.Is(err, domainerror.ErrTransactionNotFound) {
			t.Fatalf("expected not-found error, got %v", err)
		}
		var txnErr *domainerror.TransactionError
		if !errors.As(err, &txnErr) || txnErr.Code != domainerror.ErrCodeTransactionNotFound {
			t.Errorf("expected code %s, got %v", domainerror.ErrCodeTransactionNotFound, err)
		}
		if len(repo.transactions) != 1 {
			t.Error("expected transaction to survive")
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		repo := newRepo(owned)
		uc := NewDeleteTransactionUseCase(repo)

		err := uc.Execute(context.Background(), DeleteTransactionInput{ID: uuid.New(), UserID: "user-1"})
		if !errors.Is(err, domainerror.ErrTransactionNotFound) {
			t.Fatalf("expected not-found error, got %v", err)
		}
	})

	t.Run("missing user id", func(t *testing.T) {
		repo := newRepo(owned)
		uc := NewDeleteTransactionUseCase(repo)

		err := uc.Execute(context.Background(), DeleteTransactionInput{ID: owned.ID})
		var txnErr *domainerror.TransactionError
		if !errors.As(err, &txnErr) || txnErr.Code != domainerror.ErrCodeMissingUserID {
			t.Errorf("expected code %s, got %v", domainerror.ErrCodeMissingUserID, err)
		}
	})
}
