// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/spendlens/backend/internal/integration/entrypoint/controller"
	"github.com/spendlens/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	ingestController      *controller.IngestController
	transactionController *controller.TransactionController
	reportController      *controller.ReportController
	authMiddleware        *middleware.AuthMiddleware
	ingestKeyMiddleware   *middleware.IngestKeyMiddleware
	ingestRateLimiter     middleware.Limiter
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	ingestController *controller.IngestController,
	transactionController *controller.TransactionController,
	reportController *controller.ReportController,
	authMiddleware *middleware.AuthMiddleware,
	ingestKeyMiddleware *middleware.IngestKeyMiddleware,
	ingestRateLimiter middleware.Limiter,
) *Router {
	return &Router{
		healthController:      healthController,
		ingestController:      ingestController,
		transactionController: transactionController,
		reportController:      reportController,
		authMiddleware:        authMiddleware,
		ingestKeyMiddleware:   ingestKeyMiddleware,
		ingestRateLimiter:     ingestRateLimiter,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Default middleware: logger and recovery
	r.engine = gin.Default()

	r.engine.GET("/health", r.healthController.Check)

	v1 := r.engine.Group("/api/v1")
	{
		// Ingestion webhook (API key + rate limit, no user session)
		if r.ingestController != nil && r.ingestKeyMiddleware != nil {
			ingest := v1.Group("/ingest")
			ingest.Use(r.ingestKeyMiddleware.Authenticate())
			if r.ingestRateLimiter != nil {
				ingest.Use(middleware.RateLimitMiddleware(r.ingestRateLimiter))
			}
			{
				ingest.POST("/sms", r.ingestController.IngestSMS)
			}
		}

		// SMS audit trail (requires authentication)
		if r.ingestController != nil && r.authMiddleware != nil {
			sms := v1.Group("/sms")
			sms.Use(r.authMiddleware.Authenticate())
			{
				sms.GET("", r.ingestController.ListMessages)
			}
		}

		// Transaction routes (require authentication)
		if r.transactionController != nil && r.authMiddleware != nil {
			transactions := v1.Group("/transactions")
			transactions.Use(r.authMiddleware.Authenticate())
			{
				transactions.GET("", r.transactionController.List)
				transactions.POST("", r.transactionController.Create)
				transactions.DELETE("/:id", r.transactionController.Delete)
			}
		}

		// Report routes (require authentication)
		if r.reportController != nil && r.authMiddleware != nil {
			reports := v1.Group("/reports")
			reports.Use(r.authMiddleware.Authenticate())
			{
				reports.GET("/recurring", r.reportController.Recurring)
				reports.GET("/duplicates", r.reportController.Duplicates)
				reports.GET("/summary", r.reportController.Summary)
				reports.POST("/summary/email", r.reportController.SendDigest)
			}
		}
	}

	return r.engine
}
