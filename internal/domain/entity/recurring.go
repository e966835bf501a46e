package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Frequency classifies how often a recurring pattern repeats.
type Frequency string

const (
	FrequencyDaily    Frequency = "DAILY"
	FrequencyWeekly   Frequency = "WEEKLY"
	FrequencyBiweekly Frequency = "BIWEEKLY"
	FrequencyMonthly  Frequency = "MONTHLY"
	FrequencyUnknown  Frequency = "UNKNOWN"
)

// IntervalDays returns the nominal repeat interval in days, or 0 for UNKNOWN.
func (f Frequency) IntervalDays() int {
	switch f {
	case FrequencyDaily:
		return 1
	case FrequencyWeekly:
		return 7
	case FrequencyBiweekly:
		return 14
	case FrequencyMonthly:
		return 30
	default:
		return 0
	}
}

// RecurringPattern groups historical transactions that share a normalized
// description, category and source and repeat at a regular interval.
// Patterns are recomputed fresh on every report request; nothing is persisted.
type RecurringPattern struct {
	Description      string // normalized grouping key
	Category         string
	Source           string
	Frequency        Frequency
	Confidence       Confidence
	Occurrences      int
	AverageAmount    decimal.Decimal
	LastDate         time.Time
	NextExpectedDate *time.Time // nil when frequency is UNKNOWN
	Transactions     []*Transaction
}
