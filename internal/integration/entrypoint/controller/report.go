package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/spendlens/backend/internal/application/usecase/duplicate"
	"github.com/spendlens/backend/internal/application/usecase/recurring"
	"github.com/spendlens/backend/internal/application/usecase/report"
	"github.com/spendlens/backend/internal/domain/entity"
	domainerror "github.com/spendlens/backend/internal/domain/error"
	"github.com/spendlens/backend/internal/integration/entrypoint/dto"
	"github.com/spendlens/backend/internal/integration/entrypoint/middleware"
)

// ReportController handles the report endpoints.
type ReportController struct {
	recurringUseCase *recurring.DetectPatternsUseCase
	groupsUseCase    *duplicate.FindGroupsUseCase
	summarizeUseCase *report.SummarizeUseCase
	insightsUseCase  *report.InsightsUseCase
	digestUseCase    *report.SendDigestUseCase
}

// NewReportController creates a new report controller instance.
func NewReportController(
	recurringUseCase *recurring.DetectPatternsUseCase,
	groupsUseCase *duplicate.FindGroupsUseCase,
	summarizeUseCase *report.SummarizeUseCase,
	insightsUseCase *report.InsightsUseCase,
	digestUseCase *report.SendDigestUseCase,
) *ReportController {
	return &ReportController{
		recurringUseCase: recurringUseCase,
		groupsUseCase:    groupsUseCase,
		summarizeUseCase: summarizeUseCase,
		insightsUseCase:  insightsUseCase,
		digestUseCase:    digestUseCase,
	}
}

// Recurring handles GET /reports/recurring requests.
func (c *ReportController) Recurring(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	input := recurring.DetectPatternsInput{UserID: userID}
	if daysStr := ctx.Query("lookbackDays"); daysStr != "" {
		if days, err := strconv.Atoi(daysStr); err == nil {
			input.LookbackDays = days
		}
	}

	output, err := c.recurringUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to detect recurring patterns",
		})
		return
	}

	resp := dto.RecurringPatternsResponse{
		Patterns:     make([]dto.RecurringPatternResponse, 0, len(output.Patterns)),
		LookbackDays: output.LookbackDays,
	}
	for _, p := range output.Patterns {
		resp.Patterns = append(resp.Patterns, dto.ToRecurringPatternResponse(p))
	}

	ctx.JSON(http.StatusOK, resp)
}

// Duplicates handles GET /reports/duplicates requests.
func (c *ReportController) Duplicates(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	input := duplicate.FindGroupsInput{UserID: userID}
	if hoursStr := ctx.Query("windowHours"); hoursStr != "" {
		if hours, err := strconv.Atoi(hoursStr); err == nil {
			input.WindowHours = hours
		}
	}

	output, err := c.groupsUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to find duplicate groups",
		})
		return
	}

	resp := dto.DuplicateGroupsResponse{
		Groups:      make([]dto.DuplicateGroupResponse, 0, len(output.Groups)),
		WindowHours: output.WindowHours,
	}
	for _, g := range output.Groups {
		group := dto.DuplicateGroupResponse{
			Confidence: string(g.Confidence),
			Reason:     g.Reason,
		}
		for _, txn := range g.Transactions {
			group.Transactions = append(group.Transactions, dto.ToEntityTransactionResponse(txn))
		}
		resp.Groups = append(resp.Groups, group)
	}

	ctx.JSON(http.StatusOK, resp)
}

// Summary handles GET /reports/summary requests.
func (c *ReportController) Summary(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	period, ok := parsePeriod(ctx.DefaultQuery("period", string(entity.PeriodWeekly)))
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Period must be 'weekly' or 'monthly'",
			Code:  string(domainerror.ErrCodeInvalidReportPeriod),
		})
		return
	}

	summary, err := c.summarizeUseCase.Execute(ctx.Request.Context(), report.SummarizeInput{
		UserID: userID,
		Period: period,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to build spending summary",
		})
		return
	}
	insights := c.insightsUseCase.Execute(ctx.Request.Context(), summary)

	ctx.JSON(http.StatusOK, dto.ToSummaryResponse(summary, insights))
}

// SendDigest handles POST /reports/summary/email requests.
func (c *ReportController) SendDigest(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.SendDigestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	period := entity.PeriodWeekly
	if req.Period != "" {
		period, ok = parsePeriod(req.Period)
		if !ok {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Period must be 'weekly' or 'monthly'",
				Code:  string(domainerror.ErrCodeInvalidReportPeriod),
			})
			return
		}
	}

	output, err := c.digestUseCase.Execute(ctx.Request.Context(), report.SendDigestInput{
		UserID: userID,
		Email:  req.Email,
		Period: period,
	})
	if err != nil {
		var emailErr *domainerror.EmailError
		if errors.As(err, &emailErr) {
			status := http.StatusBadGateway
			if emailErr.Code == domainerror.ErrCodeEmailNotConfigured {
				status = http.StatusServiceUnavailable
			}
			ctx.JSON(status, dto.ErrorResponse{
				Error: emailErr.Message,
				Code:  string(emailErr.Code),
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to send summary email",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.SendDigestResponse{
		Sent:       true,
		ProviderID: output.ProviderID,
	})
}

// parsePeriod validates a report period query value.
func parsePeriod(value string) (entity.ReportPeriod, bool) {
	switch entity.ReportPeriod(value) {
	case entity.PeriodWeekly:
		return entity.PeriodWeekly, true
	case entity.PeriodMonthly:
		return entity.PeriodMonthly, true
	default:
		return "", false
	}
}
