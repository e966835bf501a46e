package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spendlens/backend/internal/application/adapter"
	"github.com/spendlens/backend/internal/application/usecase/categorization"
	"github.com/spendlens/backend/internal/application/usecase/duplicate"
	"github.com/spendlens/backend/internal/application/usecase/recurring"
	"github.com/spendlens/backend/internal/application/usecase/transaction"
	"github.com/spendlens/backend/internal/domain/entity"
	domainerror "github.com/spendlens/backend/internal/domain/error"
)

// IngestSMSInput represents a raw SMS received on the webhook.
type IngestSMSInput struct {
	UserID     string
	Text       string
	Sender     string
	ReceivedAt *time.Time // nil means now
}

// IngestSMSOutput represents the outcome of an ingestion call. Recognized is
// false for non-transactional messages; that is a benign result, not an error.
type IngestSMSOutput struct {
	Recognized  bool
	Transaction *transaction.TransactionOutput
	Duplicate   *entity.DuplicateCheckResult
	Recurring   *entity.RecurringPattern // set when the transaction matches a detected series
}

// IngestSMSUseCase runs the full ingestion pipeline: parse, categorize,
// advisory duplicate check, persist, audit, recurring match.
type IngestSMSUseCase struct {
	transactionRepo adapter.TransactionRepository
	smsRepo         adapter.SMSMessageRepository
	categorizeUC    *categorization.CategorizeUseCase
	duplicateUC     *duplicate.CheckDuplicateUseCase
	patternsUC      *recurring.DetectPatternsUseCase
	matchUC         *recurring.MatchPatternUseCase
}

// NewIngestSMSUseCase creates a new IngestSMSUseCase instance.
func NewIngestSMSUseCase(
	transactionRepo adapter.TransactionRepository,
	smsRepo adapter.SMSMessageRepository,
	categorizeUC *categorization.CategorizeUseCase,
	duplicateUC *duplicate.CheckDuplicateUseCase,
	patternsUC *recurring.DetectPatternsUseCase,
	matchUC *recurring.MatchPatternUseCase,
) *IngestSMSUseCase {
	return &IngestSMSUseCase{
		transactionRepo: transactionRepo,
		smsRepo:         smsRepo,
		categorizeUC:    categorizeUC,
		duplicateUC:     duplicateUC,
		patternsUC:      patternsUC,
		matchUC:         matchUC,
	}
}

// Execute performs the SMS ingestion.
func (uc *IngestSMSUseCase) Execute(ctx context.Context, input IngestSMSInput) (*IngestSMSOutput, error) {
	if input.UserID == "" {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeMissingUserID,
			"user id is required",
			domainerror.ErrMissingUserID,
		)
	}

	receivedAt := time.Now().UTC()
	if input.ReceivedAt != nil {
		receivedAt = input.ReceivedAt.UTC()
	}
	message := entity.NewSMSMessage(input.UserID, input.Text, input.Sender, receivedAt)

	parsed := Parse(input.Text, input.Sender)
	if parsed == nil {
		// Not a transaction. Keep the audit record best-effort and report
		// a benign "not recognized" outcome.
		if err := uc.smsRepo.Create(ctx, message); err != nil {
			slog.Debug("Failed to store unrecognized SMS message",
				"userID", input.UserID,
				"error", err,
			)
		}
		return &IngestSMSOutput{Recognized: false}, nil
	}

	category := uc.categorizeUC.Execute(ctx, categorization.CategorizeInput{
		Description: parsed.Merchant,
		Amount:      &parsed.Amount,
		Channel:     string(parsed.Channel),
		RawText:     parsed.RawText,
	})

	source := parsed.Source()

	// Advisory only: log and proceed on a positive result.
	dupResult, err := uc.duplicateUC.Execute(ctx, duplicate.CheckDuplicateInput{
		UserID:      input.UserID,
		Amount:      parsed.Amount,
		Description: parsed.Merchant,
		Source:      source,
		Date:        parsed.Date,
	})
	if err != nil {
		slog.Debug("Duplicate check failed during SMS ingestion",
			"userID", input.UserID,
			"error", err,
		)
		dupResult = nil
	} else if dupResult.IsDuplicate {
		slog.Warn("Ingested SMS looks like a duplicate transaction",
			"userID", input.UserID,
			"confidence", dupResult.Confidence,
			"reason", dupResult.Reason,
		)
	}

	txn := entity.NewTransaction(
		input.UserID,
		parsed.Amount,
		parsed.Merchant,
		category,
		source,
		parsed.Date,
	)

	if err := uc.transactionRepo.Create(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to persist ingested transaction: %w", err)
	}

	message.Recognized = true
	message.TransactionID = &txn.ID
	if err := uc.smsRepo.Create(ctx, message); err != nil {
		slog.Debug("Failed to store SMS audit record",
			"userID", input.UserID,
			"transactionID", txn.ID,
			"error", err,
		)
	}

	return &IngestSMSOutput{
		Recognized: true,
		Recurring:  uc.matchRecurring(ctx, txn),
		Transaction: &transaction.TransactionOutput{
			ID:          txn.ID,
			UserID:      txn.UserID,
			Amount:      txn.Amount,
			Description: txn.Description,
			Category:    txn.Category,
			Source:      txn.Source,
			Date:        txn.Date,
			CreatedAt:   txn.CreatedAt,
		},
		Duplicate: dupResult,
	}, nil
}

// matchRecurring tags the persisted transaction with the recurring series it
// belongs to, if any. Advisory: detection failures are logged and ignored.
func (uc *IngestSMSUseCase) matchRecurring(ctx context.Context, txn *entity.Transaction) *entity.RecurringPattern {
	detected, err := uc.patternsUC.Execute(ctx, recurring.DetectPatternsInput{UserID: txn.UserID})
	if err != nil {
		slog.Debug("Recurring detection failed during SMS ingestion",
			"userID", txn.UserID,
			"error", err,
		)
		return nil
	}
	return uc.matchUC.Execute(txn, detected.Patterns)
}
