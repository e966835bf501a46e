// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/spendlens/backend/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID      string          `gorm:"type:varchar(64);not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Description string          `gorm:"type:varchar(255);not null"`
	Category    string          `gorm:"type:varchar(50);not null;index"`
	Source      string          `gorm:"type:varchar(50);not null;index"`
	Date        time.Time       `gorm:"type:timestamp;not null;index"`
	CreatedAt   time.Time       `gorm:"not null"`
	DeletedAt   gorm.DeletedAt  `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Transaction{
		ID:          m.ID,
		UserID:      m.UserID,
		Amount:      m.Amount,
		Description: m.Description,
		Category:    m.Category,
		Source:      m.Source,
		Date:        m.Date,
		CreatedAt:   m.CreatedAt,
		DeletedAt:   deletedAt,
	}
}

// FromEntity converts a domain Transaction entity to a TransactionModel.
func (m *TransactionModel) FromEntity(e *entity.Transaction) {
	m.ID = e.ID
	m.UserID = e.UserID
	m.Amount = e.Amount
	m.Description = e.Description
	m.Category = e.Category
	m.Source = e.Source
	m.Date = e.Date
	m.CreatedAt = e.CreatedAt
}
