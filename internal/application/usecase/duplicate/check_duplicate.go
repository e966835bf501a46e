// Package duplicate contains duplicate-detection use cases.
package duplicate

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendlens/backend/internal/application/adapter"
	"github.com/spendlens/backend/internal/domain/entity"
	domainerror "github.com/spendlens/backend/internal/domain/error"
	"github.com/spendlens/backend/internal/domain/valueobject"
)

// CheckDuplicateInput represents the input for a duplicate check.
type CheckDuplicateInput struct {
	UserID      string
	Amount      decimal.Decimal
	Description string
	Source      string
	Date        time.Time
	WindowHours int // 0 uses the configured default
}

// CheckDuplicateUseCase scores whether a candidate transaction duplicates an
// existing record. The result is advisory only and never blocks creation.
type CheckDuplicateUseCase struct {
	transactionRepo adapter.TransactionRepository
	config          valueobject.DuplicateConfig
}

// NewCheckDuplicateUseCase creates a new CheckDuplicateUseCase instance.
func NewCheckDuplicateUseCase(
	transactionRepo adapter.TransactionRepository,
	config valueobject.DuplicateConfig,
) *CheckDuplicateUseCase {
	return &CheckDuplicateUseCase{
		transactionRepo: transactionRepo,
		config:          config,
	}
}

// Execute performs the duplicate check against the user's recent history.
func (uc *CheckDuplicateUseCase) Execute(ctx context.Context, input CheckDuplicateInput) (*entity.DuplicateCheckResult, error) {
	if input.UserID == "" {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeMissingUserID,
			"user id is required",
			domainerror.ErrMissingUserID,
		)
	}

	windowHours := input.WindowHours
	if windowHours <= 0 {
		windowHours = uc.config.WindowHours
	}
	windowStart := input.Date.Add(-time.Duration(windowHours) * time.Hour)

	minAmount, maxAmount := uc.config.AmountBounds(input.Amount)
	candidates, err := uc.transactionRepo.FindCandidates(
		ctx,
		input.UserID,
		input.Source,
		minAmount, maxAmount,
		windowStart, input.Date,
		uc.config.MaxCandidates,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch duplicate candidates: %w", err)
	}

	similar := make([]*entity.Transaction, 0, len(candidates))
	for _, candidate := range candidates {
		if !uc.config.WithinAmountTolerance(candidate.Amount, input.Amount) {
			continue
		}
		if valueobject.SimilarDescriptions(candidate.Description, input.Description, uc.config.SimilarityThreshold) {
			similar = append(similar, candidate)
		}
	}

	if len(similar) == 0 {
		return &entity.DuplicateCheckResult{
			IsDuplicate: false,
			Confidence:  entity.ConfidenceLow,
			Reason:      fmt.Sprintf("no similar transaction of amount %s found within %dh window", input.Amount.StringFixed(2), windowHours),
		}, nil
	}

	// Very similar matches within one hour upgrade the confidence to HIGH.
	for _, match := range similar {
		timeDiff := input.Date.Sub(match.Date)
		if timeDiff < 0 {
			timeDiff = -timeDiff
		}
		if timeDiff <= uc.config.HighConfidenceWindow &&
			valueobject.SimilarDescriptions(match.Description, input.Description, uc.config.HighSimilarityThreshold) {
			return &entity.DuplicateCheckResult{
				IsDuplicate:         true,
				Confidence:          entity.ConfidenceHigh,
				SimilarTransactions: similar,
				Reason: fmt.Sprintf(
					"near-identical transaction of amount %s within 1h of candidate (searched %dh window)",
					match.Amount.StringFixed(2), windowHours,
				),
			}, nil
		}
	}

	return &entity.DuplicateCheckResult{
		IsDuplicate:         true,
		Confidence:          entity.ConfidenceMedium,
		SimilarTransactions: similar,
		Reason: fmt.Sprintf(
			"%d similar transaction(s) of amount %s found within %dh window",
			len(similar), similar[0].Amount.StringFixed(2), windowHours,
		),
	}, nil
}
