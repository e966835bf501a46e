package duplicate

import (
	"context"
	"fmt"
	"time"

	"github.com/spendlens/backend/internal/application/adapter"
	"github.com/spendlens/backend/internal/domain/entity"
	domainerror "github.com/spendlens/backend/internal/domain/error"
	"github.com/spendlens/backend/internal/domain/valueobject"
)

// FindGroupsInput represents the input for the duplicates report.
type FindGroupsInput struct {
	UserID      string
	WindowHours int // 0 uses the configured default
}

// FindGroupsOutput represents the output of the duplicates report.
type FindGroupsOutput struct {
	Groups      []*entity.DuplicateGroup
	WindowHours int
}

// FindGroupsUseCase clusters a user's recent transactions into advisory
// duplicate groups for the duplicates report.
type FindGroupsUseCase struct {
	transactionRepo adapter.TransactionRepository
	config          valueobject.DuplicateConfig
}

// NewFindGroupsUseCase creates a new FindGroupsUseCase instance.
func NewFindGroupsUseCase(
	transactionRepo adapter.TransactionRepository,
	config valueobject.DuplicateConfig,
) *FindGroupsUseCase {
	return &FindGroupsUseCase{
		transactionRepo: transactionRepo,
		config:          config,
	}
}

// Execute fetches the recent window and greedily clusters transactions that
// share a source, an amount within tolerance, and a similar description.
func (uc *FindGroupsUseCase) Execute(ctx context.Context, input FindGroupsInput) (*FindGroupsOutput, error) {
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
	end := time.Now().UTC()
	start := end.Add(-time.Duration(windowHours) * time.Hour)

	transactions, err := uc.transactionRepo.FindByDateRange(ctx, input.UserID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions for duplicates report: %w", err)
	}

	groups := []*entity.DuplicateGroup{}
	assigned := make(map[int]bool, len(transactions))

	for i, seed := range transactions {
		if assigned[i] {
			continue
		}
		members := []*entity.Transaction{seed}
		confidence := entity.ConfidenceMedium

		for j := i + 1; j < len(transactions); j++ {
			if assigned[j] {
				continue
			}
			other := transactions[j]
			if other.Source != seed.Source {
				continue
			}
			if !uc.config.WithinAmountTolerance(other.Amount, seed.Amount) {
				continue
			}
			if !valueobject.SimilarDescriptions(other.Description, seed.Description, uc.config.SimilarityThreshold) {
				continue
			}

			timeDiff := other.Date.Sub(seed.Date)
			if timeDiff < 0 {
				timeDiff = -timeDiff
			}
			if timeDiff <= uc.config.HighConfidenceWindow &&
				valueobject.SimilarDescriptions(other.Description, seed.Description, uc.config.HighSimilarityThreshold) {
				confidence = entity.ConfidenceHigh
			}

			members = append(members, other)
			assigned[j] = true
		}

		if len(members) < 2 {
			continue
		}
		assigned[i] = true
		groups = append(groups, &entity.DuplicateGroup{
			Transactions: members,
			Confidence:   confidence,
			Reason: fmt.Sprintf(
				"%d transactions of amount %s on source %q within %dh window",
				len(members), seed.Amount.StringFixed(2), seed.Source, windowHours,
			),
		})
	}

	return &FindGroupsOutput{Groups: groups, WindowHours: windowHours}, nil
}
