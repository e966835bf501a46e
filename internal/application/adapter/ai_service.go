package adapter

import (
	"context"

	"github.com/shopspring/decimal"
)

// CategorizationRequest carries the description and optional context given
// to the categorization agent.
type CategorizationRequest struct {
	Description string
	Amount      *decimal.Decimal
	Channel     string
	RawText     string
	Categories  []string // fixed vocabulary embedded in the prompt
}

// InsightsRequest carries the aggregated summary given to the insights agent.
type InsightsRequest struct {
	Period           string
	Total            decimal.Decimal
	ByCategory       map[string]decimal.Decimal
	TopDescriptions  []string
	TransactionCount int
	MaxInsights      int
}

// AIService is the external text-generation oracle. It is strictly
// best-effort: every error (unconfigured, unreachable, malformed response)
// is a normal fallback signal for callers, never a user-facing failure.
// Implementations normalize all observed response shapes into the canonical
// return types before business logic sees them.
type AIService interface {
	// IsAvailable reports whether the service is configured.
	IsAvailable() bool

	// SuggestCategory invokes the categorization agent and returns a single
	// bare category label.
	SuggestCategory(ctx context.Context, request *CategorizationRequest) (string, error)

	// GenerateInsights invokes the insights agent and returns a non-empty
	// list of non-empty observation strings.
	GenerateInsights(ctx context.Context, request *InsightsRequest) ([]string, error)
}
