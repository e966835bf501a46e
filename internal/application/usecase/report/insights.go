package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/spendlens/backend/internal/application/adapter"
	"github.com/spendlens/backend/internal/domain/entity"
)

const (
	// Insight caps: the weekly report allows up to five oracle insights,
	// the monthly report keeps the legacy cap of four. Fallback rules
	// always cap at four.
	weeklyInsightCap   = 5
	monthlyInsightCap  = 4
	fallbackInsightCap = 4

	// Totals above this are flagged as high spending by the fallback rules.
	highSpendingThreshold = 50000

	diverseCategoryCount = 5
)

// InsightsUseCase derives human-readable observations from a spending
// summary, preferring the external oracle and degrading silently to
// deterministic rules.
type InsightsUseCase struct {
	aiService adapter.AIService
}

// NewInsightsUseCase creates a new InsightsUseCase instance.
func NewInsightsUseCase(aiService adapter.AIService) *InsightsUseCase {
	return &InsightsUseCase{aiService: aiService}
}

// Execute returns 0-5 short observation strings for the summary.
func (uc *InsightsUseCase) Execute(ctx context.Context, summary *entity.SpendingSummary) []string {
	maxInsights := monthlyInsightCap
	if summary.Period == entity.PeriodWeekly {
		maxInsights = weeklyInsightCap
	}

	if uc.aiService != nil && uc.aiService.IsAvailable() {
		if insights, ok := uc.fromOracle(ctx, summary, maxInsights); ok {
			return insights
		}
	}

	return RuleBasedInsights(summary)
}

func (uc *InsightsUseCase) fromOracle(ctx context.Context, summary *entity.SpendingSummary, maxInsights int) ([]string, bool) {
	byCategory := make(map[string]decimal.Decimal, len(summary.ByCategory))
	for _, ct := range summary.ByCategory {
		byCategory[ct.Category] = ct.Total
	}
	topDescriptions := make([]string, 0, len(summary.TopTransactions))
	for _, txn := range summary.TopTransactions {
		topDescriptions = append(topDescriptions, txn.Description)
	}

	insights, err := uc.aiService.GenerateInsights(ctx, &adapter.InsightsRequest{
		Period:           string(summary.Period),
		Total:            summary.Total,
		ByCategory:       byCategory,
		TopDescriptions:  topDescriptions,
		TransactionCount: summary.TransactionCount,
		MaxInsights:      maxInsights,
	})
	if err != nil {
		slog.Debug("Oracle insights failed, using rules", "error", err)
		return nil, false
	}

	valid := insights[:0]
	for _, insight := range insights {
		if insight != "" {
			valid = append(valid, insight)
		}
	}
	if len(valid) == 0 {
		slog.Warn("Oracle returned no usable insights, using rules")
		return nil, false
	}
	if len(valid) > maxInsights {
		valid = valid[:maxInsights]
	}
	return valid, true
}

// RuleBasedInsights derives observations deterministically, emitting only
// the rules that apply, capped at four.
func RuleBasedInsights(summary *entity.SpendingSummary) []string {
	insights := []string{}
	if summary.TransactionCount == 0 {
		return insights
	}

	// Highest-spending category and its share of the total.
	if top := summary.TopCategory(); top != nil && summary.Total.IsPositive() {
		share := top.Total.Div(summary.Total).Mul(decimal.NewFromInt(100))
		if share.GreaterThan(decimal.NewFromInt(50)) {
			insights = append(insights, fmt.Sprintf(
				"More than half of your spending (%s%%) went to %s.",
				share.StringFixed(0), top.Category,
			))
		} else {
			insights = append(insights, fmt.Sprintf(
				"Your top spending category was %s at %s%% of the total.",
				top.Category, share.StringFixed(0),
			))
		}
	}

	// Overall spend level.
	if summary.Total.GreaterThan(decimal.NewFromInt(highSpendingThreshold)) {
		insights = append(insights, fmt.Sprintf(
			"Spending was high this period: %s in total.",
			summary.Total.StringFixed(2),
		))
	} else {
		insights = append(insights, fmt.Sprintf(
			"You spent %s in total this period.",
			summary.Total.StringFixed(2),
		))
	}

	// Largest single transaction.
	if len(summary.TopTransactions) > 0 {
		largest := summary.TopTransactions[0]
		insights = append(insights, fmt.Sprintf(
			"Your largest transaction was %s on %s.",
			largest.Amount.StringFixed(2), largest.Category,
		))
	}

	// Category diversity.
	if len(summary.ByCategory) >= diverseCategoryCount {
		insights = append(insights, fmt.Sprintf(
			"Spending was spread across %d categories.",
			len(summary.ByCategory),
		))
	}

	if len(insights) > fallbackInsightCap {
		insights = insights[:fallbackInsightCap]
	}
	return insights
}
