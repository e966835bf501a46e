package categorization

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/spendlens/backend/internal/application/adapter"
	"github.com/spendlens/backend/internal/domain/entity"
)

// CategorizeInput represents the input for category assignment.
type CategorizeInput struct {
	Description string
	Amount      *decimal.Decimal // optional context for the oracle
	Channel     string
	RawText     string
}

// CategorizeUseCase maps a free-text description to a category label via the
// external oracle, falling back silently to rule-based matching on any
// oracle failure or invalid label.
type CategorizeUseCase struct {
	aiService adapter.AIService
}

// NewCategorizeUseCase creates a new CategorizeUseCase instance.
func NewCategorizeUseCase(aiService adapter.AIService) *CategorizeUseCase {
	return &CategorizeUseCase{aiService: aiService}
}

// Execute returns a non-empty category label. It never fails: a missing or
// misbehaving oracle degrades to the deterministic rules.
func (uc *CategorizeUseCase) Execute(ctx context.Context, input CategorizeInput) string {
	if uc.aiService != nil && uc.aiService.IsAvailable() {
		label, err := uc.aiService.SuggestCategory(ctx, &adapter.CategorizationRequest{
			Description: input.Description,
			Amount:      input.Amount,
			Channel:     input.Channel,
			RawText:     input.RawText,
			Categories:  entity.Categories(),
		})
		if err == nil {
			if normalized := entity.NormalizeCategory(label); normalized != "" {
				return normalized
			}
			slog.Warn("Oracle returned an empty category label, using rules",
				"description", input.Description,
			)
		} else {
			slog.Debug("Oracle categorization failed, using rules",
				"description", input.Description,
				"error", err,
			)
		}
	}

	return RuleBasedCategory(input.Description)
}
