package dto

import (
	"time"

	"github.com/spendlens/backend/internal/domain/entity"
)

// IngestSMSRequest represents the request body for the SMS ingestion webhook.
type IngestSMSRequest struct {
	UserID     string `json:"user_id" binding:"required"`
	Text       string `json:"text" binding:"required"`
	Sender     string `json:"sender,omitempty"`
	ReceivedAt string `json:"received_at,omitempty"` // RFC 3339, defaults to now
}

// IngestSMSResponse represents the response for the SMS ingestion webhook.
// Recognized is false for non-transactional messages; the request still
// succeeds.
type IngestSMSResponse struct {
	Recognized  bool                       `json:"recognized"`
	Transaction *TransactionResponse       `json:"transaction,omitempty"`
	Duplicate   *DuplicateAdvisoryResponse `json:"duplicate,omitempty"`
	Recurring   *RecurringPatternResponse  `json:"recurring,omitempty"`
}

// SMSMessageResponse represents one record in the SMS audit trail.
type SMSMessageResponse struct {
	ID            string    `json:"id"`
	Text          string    `json:"text"`
	Sender        string    `json:"sender,omitempty"`
	ReceivedAt    time.Time `json:"received_at"`
	Recognized    bool      `json:"recognized"`
	TransactionID string    `json:"transaction_id,omitempty"`
}

// SMSMessagesResponse represents the SMS audit listing.
type SMSMessagesResponse struct {
	Messages []SMSMessageResponse `json:"messages"`
	Limit    int                  `json:"limit"`
}

// ToSMSMessageResponse converts an SMS message entity to a DTO.
func ToSMSMessageResponse(m *entity.SMSMessage) SMSMessageResponse {
	resp := SMSMessageResponse{
		ID:         m.ID.String(),
		Text:       m.Text,
		Sender:     m.Sender,
		ReceivedAt: m.ReceivedAt,
		Recognized: m.Recognized,
	}
	if m.TransactionID != nil {
		resp.TransactionID = m.TransactionID.String()
	}
	return resp
}
