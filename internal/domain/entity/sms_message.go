package entity

import (
	"time"

	"github.com/google/uuid"
)

// SMSMessage is the audit record of a raw SMS received on the ingestion
// webhook, kept whether or not it was recognized as a transaction.
type SMSMessage struct {
	ID            uuid.UUID
	UserID        string
	Text          string
	Sender        string
	ReceivedAt    time.Time
	Recognized    bool
	TransactionID *uuid.UUID // set when the message produced a transaction
	CreatedAt     time.Time
}

// NewSMSMessage creates a new SMSMessage entity.
func NewSMSMessage(userID, text, sender string, receivedAt time.Time) *SMSMessage {
	return &SMSMessage{
		ID:         uuid.New(),
		UserID:     userID,
		Text:       text,
		Sender:     sender,
		ReceivedAt: receivedAt,
		CreatedAt:  time.Now().UTC(),
	}
}
