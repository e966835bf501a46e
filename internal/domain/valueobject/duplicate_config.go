package valueobject

import (
	"time"

	"github.com/shopspring/decimal"
)

// DuplicateConfig contains the configuration for duplicate detection.
type DuplicateConfig struct {
	// Default lookback window when the caller does not supply one.
	WindowHours int

	// Relative amount tolerance: |amount - candidate| / candidate < tolerance.
	AmountTolerance decimal.Decimal // 0.01 = 1%

	// Max candidates fetched from the store, most recent first.
	MaxCandidates int

	// Word-overlap thresholds for "similar" and "very similar" descriptions.
	SimilarityThreshold     float64 // 0.5
	HighSimilarityThreshold float64 // 0.8

	// Matches within this window of the candidate's time qualify for HIGH.
	HighConfidenceWindow time.Duration
}

// DefaultDuplicateConfig returns the default duplicate detection configuration.
func DefaultDuplicateConfig() DuplicateConfig {
	return DuplicateConfig{
		WindowHours:             24,
		AmountTolerance:         decimal.NewFromFloat(0.01),
		MaxCandidates:           10,
		SimilarityThreshold:     0.5,
		HighSimilarityThreshold: 0.8,
		HighConfidenceWindow:    time.Hour,
	}
}

// AmountBounds returns the inclusive [min, max] amount band a stored
// transaction must fall in to count as an amount match for the candidate.
func (c DuplicateConfig) AmountBounds(amount decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	delta := amount.Mul(c.AmountTolerance)
	return amount.Sub(delta), amount.Add(delta)
}

// WithinAmountTolerance checks the relative difference between a stored
// amount and the candidate amount, guarding the zero-amount case.
func (c DuplicateConfig) WithinAmountTolerance(stored, candidate decimal.Decimal) bool {
	if candidate.IsZero() {
		return stored.IsZero()
	}
	diff := stored.Sub(candidate).Abs()
	return diff.Div(candidate.Abs()).LessThan(c.AmountTolerance)
}
