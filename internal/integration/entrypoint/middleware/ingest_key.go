package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/spendlens/backend/internal/domain/error"
	"github.com/spendlens/backend/internal/integration/entrypoint/dto"
)

// IngestKeyHeader is the header carrying the webhook API key.
const IngestKeyHeader = "X-API-Key"

// IngestKeyMiddleware authenticates the SMS ingestion webhook with a shared
// API key. Device forwarders cannot hold a per-user session token.
type IngestKeyMiddleware struct {
	apiKey string
}

// NewIngestKeyMiddleware creates a new ingest key middleware instance.
func NewIngestKeyMiddleware(apiKey string) *IngestKeyMiddleware {
	return &IngestKeyMiddleware{apiKey: apiKey}
}

// Authenticate returns a Gin middleware handler that enforces the API key.
// An empty configured key disables the webhook entirely.
func (m *IngestKeyMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.apiKey == "" {
			c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{
				Error: "SMS ingestion is not configured",
				Code:  string(domainerror.ErrCodeInvalidIngestKey),
			})
			c.Abort()
			return
		}

		provided := c.GetHeader(IngestKeyHeader)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(m.apiKey)) != 1 {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Invalid API key",
				Code:  string(domainerror.ErrCodeInvalidIngestKey),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
