package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/spendlens/backend/internal/application/usecase/ingestion"
	domainerror "github.com/spendlens/backend/internal/domain/error"
	"github.com/spendlens/backend/internal/integration/entrypoint/dto"
	"github.com/spendlens/backend/internal/integration/entrypoint/middleware"
)

// IngestController handles the SMS ingestion webhook and the audit listing.
type IngestController struct {
	ingestUseCase *ingestion.IngestSMSUseCase
	listUseCase   *ingestion.ListMessagesUseCase
}

// NewIngestController creates a new ingest controller instance.
func NewIngestController(
	ingestUseCase *ingestion.IngestSMSUseCase,
	listUseCase *ingestion.ListMessagesUseCase,
) *IngestController {
	return &IngestController{
		ingestUseCase: ingestUseCase,
		listUseCase:   listUseCase,
	}
}

// IngestSMS handles POST /ingest/sms requests.
// Non-transactional messages are accepted with recognized=false; only
// malformed requests fail.
func (c *IngestController) IngestSMS(ctx *gin.Context) {
	var req dto.IngestSMSRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	input := ingestion.IngestSMSInput{
		UserID: req.UserID,
		Text:   req.Text,
		Sender: req.Sender,
	}
	if req.ReceivedAt != "" {
		receivedAt, err := time.Parse(time.RFC3339, req.ReceivedAt)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "Invalid received_at, expected RFC 3339",
				Details: err.Error(),
			})
			return
		}
		input.ReceivedAt = &receivedAt
	}

	output, err := c.ingestUseCase.Execute(ctx.Request.Context(), input)
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
			Error: "Failed to ingest SMS",
		})
		return
	}

	resp := dto.IngestSMSResponse{
		Recognized: output.Recognized,
	}
	if output.Transaction != nil {
		txnResp := dto.ToTransactionResponse(output.Transaction)
		resp.Transaction = &txnResp
		resp.Duplicate = dto.ToDuplicateAdvisoryResponse(output.Duplicate)
	}
	if output.Recurring != nil {
		patternResp := dto.ToRecurringPatternResponse(output.Recurring)
		resp.Recurring = &patternResp
	}

	status := http.StatusCreated
	if !output.Recognized {
		status = http.StatusOK
	}
	ctx.JSON(status, resp)
}

// ListMessages handles GET /sms requests for the ingestion audit trail.
func (c *IngestController) ListMessages(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	input := ingestion.ListMessagesInput{UserID: userID}
	if limitStr := ctx.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			input.Limit = limit
		}
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to list SMS messages",
		})
		return
	}

	resp := dto.SMSMessagesResponse{
		Messages: make([]dto.SMSMessageResponse, 0, len(output.Messages)),
		Limit:    output.Limit,
	}
	for _, m := range output.Messages {
		resp.Messages = append(resp.Messages, dto.ToSMSMessageResponse(m))
	}

	ctx.JSON(http.StatusOK, resp)
}
