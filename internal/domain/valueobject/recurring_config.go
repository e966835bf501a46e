package valueobject

import "github.com/spendlens/backend/internal/domain/entity"

// RecurringConfig contains the configuration for recurring-pattern detection.
type RecurringConfig struct {
	// Default lookback window when the caller does not supply one.
	LookbackDays int

	// Minimum group size considered at all.
	MinOccurrences int

	// HIGH confidence thresholds.
	HighMinOccurrences int
	HighAmountCV       float64 // coefficient of variation (stddev/mean)
	HighIntervalStdDev float64 // days

	// MEDIUM confidence thresholds.
	MedMinOccurrences int
	MedAmountCV       float64
	MedIntervalStdDev float64

	// Amount tolerance for matching a new transaction against a known
	// pattern, relative to the pattern's average amount.
	MatchAmountTolerance float64 // 0.20 = ±20%
}

// DefaultRecurringConfig returns the default recurring detection configuration.
func DefaultRecurringConfig() RecurringConfig {
	return RecurringConfig{
		LookbackDays:         90,
		MinOccurrences:       2,
		HighMinOccurrences:   3,
		HighAmountCV:         0.1,
		HighIntervalStdDev:   3,
		MedMinOccurrences:    2,
		MedAmountCV:          0.2,
		MedIntervalStdDev:    5,
		MatchAmountTolerance: 0.20,
	}
}

// ClassifyFrequency maps a mean inter-transaction interval in days onto a
// frequency band.
func ClassifyFrequency(meanIntervalDays float64) entity.Frequency {
	switch {
	case meanIntervalDays >= 28 && meanIntervalDays <= 32:
		return entity.FrequencyMonthly
	case meanIntervalDays >= 13 && meanIntervalDays <= 15:
		return entity.FrequencyBiweekly
	case meanIntervalDays >= 6 && meanIntervalDays <= 8:
		return entity.FrequencyWeekly
	case meanIntervalDays >= 0.8 && meanIntervalDays <= 1.2:
		return entity.FrequencyDaily
	default:
		return entity.FrequencyUnknown
	}
}

// ConfidenceFor derives the confidence tier for a group's statistics.
func (c RecurringConfig) ConfidenceFor(occurrences int, amountCV, intervalStdDev float64, freq entity.Frequency) entity.Confidence {
	if freq == entity.FrequencyUnknown {
		return entity.ConfidenceLow
	}
	if occurrences >= c.HighMinOccurrences && amountCV < c.HighAmountCV && intervalStdDev < c.HighIntervalStdDev {
		return entity.ConfidenceHigh
	}
	if occurrences >= c.MedMinOccurrences && amountCV < c.MedAmountCV && intervalStdDev < c.MedIntervalStdDev {
		return entity.ConfidenceMedium
	}
	return entity.ConfidenceLow
}
