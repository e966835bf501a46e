// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthController handles health check endpoints.
type HealthController struct {
	checkDB    func() bool
	checkRedis func() bool
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Redis     string `json:"redis,omitempty"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance. checkRedis
// may be nil when Redis is not configured.
func NewHealthController(checkDB, checkRedis func() bool) *HealthController {
	return &HealthController{
		checkDB:    checkDB,
		checkRedis: checkRedis,
	}
}

// Check handles GET /health requests.
func (h *HealthController) Check(c *gin.Context) {
	response := HealthResponse{
		Status:    "ok",
		Database:  "disconnected",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if h.checkDB != nil && h.checkDB() {
		response.Database = "connected"
	}
	if h.checkRedis != nil {
		response.Redis = "disconnected"
		if h.checkRedis() {
			response.Redis = "connected"
		}
	}

	c.JSON(http.StatusOK, response)
}
