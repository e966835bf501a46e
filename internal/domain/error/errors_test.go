package error

import (
	"errors"
	"strconv"
	"strings"
	"testing"
)

func TestTransactionError(t *testing.T) {
	t.Run("message without wrapped error", func(t *testing.T) {
		err := NewTransactionError(ErrCodeMissingUserID, "user id is required", nil)
		if err.Error() != "user id is required" {
			t.Errorf("unexpected message %q", err.Error())
		}
	})

	t.Run("message includes wrapped error", func(t *testing.T) {
		err := NewTransactionError(ErrCodeInvalidTransactionAmount, "invalid amount", ErrInvalidTransactionAmount)
		want := "invalid amount: transaction amount must be positive"
		if err.Error() != want {
			t.Errorf("expected %q, got %q", want, err.Error())
		}
	})

	t.Run("unwraps to the sentinel", func(t *testing.T) {
		err := NewTransactionError(ErrCodeTransactionNotFound, "not found", ErrTransactionNotFound)
		if !errors.Is(err, ErrTransactionNotFound) {
			t.Error("expected errors.Is to match the sentinel")
		}
	})

	t.Run("matches as TransactionError", func(t *testing.T) {
		var txnErr *TransactionError
		err := error(NewTransactionError(ErrCodeEmptyDescription, "empty description", ErrEmptyTransactionDescription))
		if !errors.As(err, &txnErr) {
			t.Fatal("expected errors.As to match")
		}
		if txnErr.Code != ErrCodeEmptyDescription {
			t.Errorf("expected code %s, got %s", ErrCodeEmptyDescription, txnErr.Code)
		}
	})
}

func TestErrorCodes(t *testing.T) {
	codes := []struct {
		name string
		code string
	}{
		{"invalid amount", string(ErrCodeInvalidTransactionAmount)},
		{"missing user id", string(ErrCodeMissingUserID)},
		{"invalid token", string(ErrCodeInvalidToken)},
		{"email not configured", string(ErrCodeEmailNotConfigured)},
		{"invalid report period", string(ErrCodeInvalidReportPeriod)},
	}

	seen := make(map[string]string, len(codes))
	for _, c := range codes {
		prefix, digits, found := strings.Cut(c.code, "-")
		if !found || prefix == "" || len(digits) != 6 {
			t.Errorf("%s: code %q does not follow the PREFIX-NNNNNN format", c.name, c.code)
			continue
		}
		if _, err := strconv.Atoi(digits); err != nil {
			t.Errorf("%s: code %q has a non-numeric suffix", c.name, c.code)
		}
		if prev, dup := seen[c.code]; dup {
			t.Errorf("code %q reused by %s and %s", c.code, prev, c.name)
		}
		seen[c.code] = c.name
	}
}

func TestAuthError(t *testing.T) {
	cause := errors.New("token is expired")
	err := NewInvalidTokenError(cause)

	if !errors.Is(err, cause) {
		t.Error("expected the cause to be wrapped")
	}

	var authErr *AuthError
	if !errors.As(error(err), &authErr) {
		t.Fatal("expected errors.As to match")
	}
	if authErr.Code != ErrCodeInvalidToken {
		t.Errorf("unexpected code %s", authErr.Code)
	}
}
