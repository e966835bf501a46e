package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/spendlens/backend/internal/domain/entity"
)

// SMSMessageModel represents the sms_messages audit table in the database.
type SMSMessageModel struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID        string     `gorm:"type:varchar(64);not null;index"`
	Text          string     `gorm:"type:text;not null"`
	Sender        string     `gorm:"type:varchar(50)"`
	ReceivedAt    time.Time  `gorm:"type:timestamp;not null;index"`
	Recognized    bool       `gorm:"default:false"`
	TransactionID *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt     time.Time  `gorm:"not null"`
}

// TableName returns the table name for the SMSMessageModel.
func (SMSMessageModel) TableName() string {
	return "sms_messages"
}

// ToEntity converts an SMSMessageModel to a domain SMSMessage entity.
func (m *SMSMessageModel) ToEntity() *entity.SMSMessage {
	return &entity.SMSMessage{
		ID:            m.ID,
		UserID:        m.UserID,
		Text:          m.Text,
		Sender:        m.Sender,
		ReceivedAt:    m.ReceivedAt,
		Recognized:    m.Recognized,
		TransactionID: m.TransactionID,
		CreatedAt:     m.CreatedAt,
	}
}

// FromEntity converts a domain SMSMessage entity to an SMSMessageModel.
func (m *SMSMessageModel) FromEntity(e *entity.SMSMessage) {
	m.ID = e.ID
	m.UserID = e.UserID
	m.Text = e.Text
	m.Sender = e.Sender
	m.ReceivedAt = e.ReceivedAt
	m.Recognized = e.Recognized
	m.TransactionID = e.TransactionID
	m.CreatedAt = e.CreatedAt
}
