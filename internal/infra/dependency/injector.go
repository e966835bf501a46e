// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/spendlens/backend/config"
	"github.com/spendlens/backend/internal/application/usecase/categorization"
	"github.com/spendlens/backend/internal/application/usecase/duplicate"
	"github.com/spendlens/backend/internal/application/usecase/ingestion"
	"github.com/spendlens/backend/internal/application/usecase/recurring"
	"github.com/spendlens/backend/internal/application/usecase/report"
	"github.com/spendlens/backend/internal/application/usecase/transaction"
	"github.com/spendlens/backend/internal/domain/valueobject"
	"github.com/spendlens/backend/internal/infra/server/router"
	"github.com/spendlens/backend/internal/integration/adapters"
	"github.com/spendlens/backend/internal/integration/email"
	"github.com/spendlens/backend/internal/integration/email/templates"
	"github.com/spendlens/backend/internal/integration/entrypoint/controller"
	"github.com/spendlens/backend/internal/integration/entrypoint/middleware"
	"github.com/spendlens/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisClient may be nil; rate limiting then runs in-process.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Injector, error) {
	// Repositories
	transactionRepo := persistence.NewTransactionRepository(db)
	smsRepo := persistence.NewSMSMessageRepository(db)

	// External services
	aiService := adapters.NewGeminiService(cfg.AI.GeminiAPIKey, cfg.AI.Model, cfg.AI.Timeout)
	tokenService := adapters.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenExpiry)
	emailSender := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, err
	}

	// Detection configuration
	duplicateConfig := valueobject.DefaultDuplicateConfig()
	recurringConfig := valueobject.DefaultRecurringConfig()

	// Use cases
	categorizeUseCase := categorization.NewCategorizeUseCase(aiService)
	checkDuplicateUseCase := duplicate.NewCheckDuplicateUseCase(transactionRepo, duplicateConfig)
	findGroupsUseCase := duplicate.NewFindGroupsUseCase(transactionRepo, duplicateConfig)
	detectPatternsUseCase := recurring.NewDetectPatternsUseCase(transactionRepo, recurringConfig)
	matchPatternUseCase := recurring.NewMatchPatternUseCase(recurringConfig)

	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, categorizeUseCase, checkDuplicateUseCase)
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo)

	ingestSMSUseCase := ingestion.NewIngestSMSUseCase(
		transactionRepo,
		smsRepo,
		categorizeUseCase,
		checkDuplicateUseCase,
		detectPatternsUseCase,
		matchPatternUseCase,
	)
	listMessagesUseCase := ingestion.NewListMessagesUseCase(smsRepo)

	summarizeUseCase := report.NewSummarizeUseCase(transactionRepo)
	insightsUseCase := report.NewInsightsUseCase(aiService)
	sendDigestUseCase := report.NewSendDigestUseCase(summarizeUseCase, insightsUseCase, renderer, emailSender)

	// Controllers
	healthController := controller.NewHealthController(
		func() bool {
			sqlDB, err := db.DB()
			if err != nil {
				return false
			}
			return sqlDB.Ping() == nil
		},
		redisHealthCheck(redisClient),
	)
	ingestController := controller.NewIngestController(ingestSMSUseCase, listMessagesUseCase)
	transactionController := controller.NewTransactionController(
		createTransactionUseCase,
		listTransactionsUseCase,
		deleteTransactionUseCase,
	)
	reportController := controller.NewReportController(
		detectPatternsUseCase,
		findGroupsUseCase,
		summarizeUseCase,
		insightsUseCase,
		sendDigestUseCase,
	)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(tokenService)
	ingestKeyMiddleware := middleware.NewIngestKeyMiddleware(cfg.Auth.IngestAPIKey)

	var ingestRateLimiter middleware.Limiter
	if redisClient != nil {
		ingestRateLimiter = middleware.NewRedisRateLimiter(redisClient, cfg.Ingestion.RateLimitMaxAttempts, cfg.Ingestion.RateLimitWindow)
	} else {
		slog.Info("Using in-process rate limiter for ingestion webhook")
		ingestRateLimiter = middleware.NewRateLimiter(cfg.Ingestion.RateLimitMaxAttempts, cfg.Ingestion.RateLimitWindow)
	}

	r := router.NewRouter(
		healthController,
		ingestController,
		transactionController,
		reportController,
		authMiddleware,
		ingestKeyMiddleware,
		ingestRateLimiter,
	)

	return &Injector{
		Config: cfg,
		DB:     db,
		Router: r,
	}, nil
}

func redisHealthCheck(client *redis.Client) func() bool {
	if client == nil {
		return nil
	}
	return func() bool {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return client.Ping(ctx).Err() == nil
	}
}
