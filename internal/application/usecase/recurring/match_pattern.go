package recurring

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/spendlens/backend/internal/domain/entity"
	"github.com/spendlens/backend/internal/domain/valueobject"
)

// MatchPatternUseCase tests a single new transaction against previously
// detected patterns.
type MatchPatternUseCase struct {
	config valueobject.RecurringConfig
}

// NewMatchPatternUseCase creates a new MatchPatternUseCase instance.
func NewMatchPatternUseCase(config valueobject.RecurringConfig) *MatchPatternUseCase {
	return &MatchPatternUseCase{config: config}
}

// Execute returns the first pattern the transaction matches, or nil. A match
// requires normalized-description containment, an amount within the
// configured tolerance of the pattern average, and an exact category match.
func (uc *MatchPatternUseCase) Execute(txn *entity.Transaction, patterns []*entity.RecurringPattern) *entity.RecurringPattern {
	if txn == nil {
		return nil
	}
	normalized := valueobject.NormalizeDescription(txn.Description)

	for _, pattern := range patterns {
		if pattern.Category != txn.Category {
			continue
		}
		patternDesc := valueobject.NormalizeDescription(pattern.Description)
		if normalized == "" || patternDesc == "" {
			continue
		}
		if !strings.Contains(normalized, patternDesc) && !strings.Contains(patternDesc, normalized) {
			continue
		}

		tolerance := pattern.AverageAmount.Mul(decimal.NewFromFloat(uc.config.MatchAmountTolerance))
		diff := txn.Amount.Sub(pattern.AverageAmount).Abs()
		if diff.GreaterThan(tolerance) {
			continue
		}

		return pattern
	}
	return nil
}
