// Package recurring contains recurring-pattern detection use cases.
package recurring

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendlens/backend/internal/application/adapter"
	"github.com/spendlens/backend/internal/domain/entity"
	domainerror "github.com/spendlens/backend/internal/domain/error"
	"github.com/spendlens/backend/internal/domain/valueobject"
)

// DetectPatternsInput represents the input for recurring-pattern detection.
type DetectPatternsInput struct {
	UserID       string
	LookbackDays int // 0 uses the configured default
}

// DetectPatternsOutput represents the output of recurring-pattern detection.
type DetectPatternsOutput struct {
	Patterns     []*entity.RecurringPattern
	LookbackDays int
}

// DetectPatternsUseCase groups a user's transaction history and classifies
// groups as recurring with a frequency and confidence. Patterns are
// recomputed fresh on every call; nothing is persisted.
type DetectPatternsUseCase struct {
	transactionRepo adapter.TransactionRepository
	config          valueobject.RecurringConfig
}

// NewDetectPatternsUseCase creates a new DetectPatternsUseCase instance.
func NewDetectPatternsUseCase(
	transactionRepo adapter.TransactionRepository,
	config valueobject.RecurringConfig,
) *DetectPatternsUseCase {
	return &DetectPatternsUseCase{
		transactionRepo: transactionRepo,
		config:          config,
	}
}

// groupKey identifies a candidate recurring series.
type groupKey struct {
	description string // normalized
	category    string
	source      string
}

// Execute performs the detection over the lookback window.
func (uc *DetectPatternsUseCase) Execute(ctx context.Context, input DetectPatternsInput) (*DetectPatternsOutput, error) {
	if input.UserID == "" {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeMissingUserID,
			"user id is required",
			domainerror.ErrMissingUserID,
		)
	}

	lookbackDays := input.LookbackDays
	if lookbackDays <= 0 {
		lookbackDays = uc.config.LookbackDays
	}
	if lookbackDays < 0 {
		return nil, domainerror.ErrInvalidLookback
	}

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -lookbackDays)

	transactions, err := uc.transactionRepo.FindByDateRange(ctx, input.UserID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions for pattern detection: %w", err)
	}

	groups := make(map[groupKey][]*entity.Transaction)
	keyOrder := []groupKey{}
	for _, txn := range transactions {
		key := groupKey{
			description: valueobject.NormalizeDescription(txn.Description),
			category:    txn.Category,
			source:      txn.Source,
		}
		if _, seen := groups[key]; !seen {
			keyOrder = append(keyOrder, key)
		}
		groups[key] = append(groups[key], txn)
	}

	patterns := []*entity.RecurringPattern{}
	for _, key := range keyOrder {
		group := groups[key]
		if len(group) < uc.config.MinOccurrences {
			continue
		}
		if pattern := uc.classify(key, group); pattern != nil {
			patterns = append(patterns, pattern)
		}
	}

	// HIGH before MEDIUM; ties keep group order.
	sort.SliceStable(patterns, func(i, j int) bool {
		return patterns[i].Confidence.Above(patterns[j].Confidence)
	})

	return &DetectPatternsOutput{Patterns: patterns, LookbackDays: lookbackDays}, nil
}

// classify computes the group statistics and returns a pattern, or nil when
// the group only reaches LOW confidence.
func (uc *DetectPatternsUseCase) classify(key groupKey, group []*entity.Transaction) *entity.RecurringPattern {
	sort.Slice(group, func(i, j int) bool { return group[i].Date.Before(group[j].Date) })

	amounts := make([]float64, len(group))
	sum := decimal.Zero
	for i, txn := range group {
		amounts[i] = txn.Amount.InexactFloat64()
		sum = sum.Add(txn.Amount)
	}
	averageAmount := sum.Div(decimal.NewFromInt(int64(len(group))))
	amountCV := coefficientOfVariation(amounts)

	intervals := make([]float64, 0, len(group)-1)
	for i := 1; i < len(group); i++ {
		intervals = append(intervals, group[i].Date.Sub(group[i-1].Date).Hours()/24)
	}
	meanInterval := mean(intervals)
	intervalStdDev := stddev(intervals)

	frequency := valueobject.ClassifyFrequency(meanInterval)
	confidence := uc.config.ConfidenceFor(len(group), amountCV, intervalStdDev, frequency)
	if confidence == entity.ConfidenceLow {
		return nil
	}

	last := group[len(group)-1].Date
	var nextExpected *time.Time
	if days := frequency.IntervalDays(); days > 0 {
		next := last.AddDate(0, 0, days)
		nextExpected = &next
	}

	return &entity.RecurringPattern{
		Description:      group[len(group)-1].Description,
		Category:         key.category,
		Source:           key.source,
		Frequency:        frequency,
		Confidence:       confidence,
		Occurrences:      len(group),
		AverageAmount:    averageAmount,
		LastDate:         last,
		NextExpectedDate: nextExpected,
		Transactions:     group,
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stddev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	variance := 0.0
	for _, v := range values {
		variance += (v - m) * (v - m)
	}
	return math.Sqrt(variance / float64(len(values)))
}

func coefficientOfVariation(values []float64) float64 {
	m := mean(values)
	if m == 0 {
		return 0
	}
	return stddev(values) / m
}
