package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spendlens/backend/internal/application/usecase/transaction"
	domainerror "github.com/spendlens/backend/internal/domain/error"
	"github.com/spendlens/backend/internal/integration/entrypoint/dto"
	"github.com/spendlens/backend/internal/integration/entrypoint/middleware"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	createUseCase *transaction.CreateTransactionUseCase
	listUseCase   *transaction.ListTransactionsUseCase
	deleteUseCase *transaction.DeleteTransactionUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	createUseCase *transaction.CreateTransactionUseCase,
	listUseCase *transaction.ListTransactionsUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
) *TransactionController {
	return &TransactionController{
		createUseCase: createUseCase,
		listUseCase:   listUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	date, err := parseDateField(req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid date, expected YYYY-MM-DD or RFC 3339",
			Details: err.Error(),
		})
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), transaction.CreateTransactionInput{
		UserID:      userID,
		Amount:      decimal.NewFromFloat(req.Amount),
		Description: req.Description,
		Category:    req.Category,
		Source:      req.Source,
		Date:        date,
	})
	if err != nil {
		var txnErr *domainerror.TransactionError
		if errors.As(err, &txnErr) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: txnErr.Message,
				Code:  string(txnErr.Code),
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to create transaction",
		})
		return
	}

	ctx.JSON(http.StatusCreated, dto.CreateTransactionResponse{
		Transaction: dto.ToTransactionResponse(output.Transaction),
		Duplicate:   dto.ToDuplicateAdvisoryResponse(output.Duplicate),
	})
}

// List handles GET /transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	input := transaction.ListTransactionsInput{
		UserID: userID,
	}

	if startDateStr := ctx.Query("startDate"); startDateStr != "" {
		if startDate, err := time.Parse(time.DateOnly, startDateStr); err == nil {
			input.StartDate = &startDate
		}
	}
	if endDateStr := ctx.Query("endDate"); endDateStr != "" {
		if endDate, err := time.Parse(time.DateOnly, endDateStr); err == nil {
			input.EndDate = &endDate
		}
	}

	input.Category = ctx.Query("category")
	input.Source = ctx.Query("source")
	input.Search = ctx.Query("search")

	if pageStr := ctx.Query("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil {
			input.Page = page
		}
	}
	if limitStr := ctx.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			input.Limit = limit
		}
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to list transactions",
		})
		return
	}

	resp := dto.ListTransactionsResponse{
		Transactions: make([]dto.TransactionResponse, 0, len(output.Transactions)),
		Pagination: dto.PaginationResponse{
			Page:       output.Page,
			Limit:      output.Limit,
			Total:      output.Total,
			TotalPages: output.TotalPages,
		},
	}
	for _, txn := range output.Transactions {
		resp.Transactions = append(resp.Transactions, dto.ToTransactionResponse(txn))
	}

	ctx.JSON(http.StatusOK, resp)
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid transaction ID",
		})
		return
	}

	err = c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{
		ID:     id,
		UserID: userID,
	})
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
				Error: "Transaction not found",
				Code:  string(domainerror.ErrCodeTransactionNotFound),
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to delete transaction",
		})
		return
	}

	ctx.Status(http.StatusNoContent)
}

// parseDateField accepts both date-only and RFC 3339 timestamps.
func parseDateField(value string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
