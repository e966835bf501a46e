package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/spendlens/backend/internal/application/adapter"
	"github.com/spendlens/backend/internal/domain/entity"
	"github.com/spendlens/backend/internal/integration/persistence/model"
)

// smsMessageRepository implements the adapter.SMSMessageRepository interface.
type smsMessageRepository struct {
	db *gorm.DB
}

// NewSMSMessageRepository creates a new SMS message repository instance.
func NewSMSMessageRepository(db *gorm.DB) adapter.SMSMessageRepository {
	return &smsMessageRepository{
		db: db,
	}
}

// Create persists a received SMS message record.
func (r *smsMessageRepository) Create(ctx context.Context, message *entity.SMSMessage) error {
	var messageModel model.SMSMessageModel
	messageModel.FromEntity(message)
	result := r.db.WithContext(ctx).Create(&messageModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByUser retrieves a user's message records, most recent first.
func (r *smsMessageRepository) FindByUser(ctx context.Context, userID string, limit int) ([]*entity.SMSMessage, error) {
	var messageModels []model.SMSMessageModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("received_at DESC").
		Limit(limit).
		Find(&messageModels)
	if result.Error != nil {
		return nil, result.Error
	}

	messages := make([]*entity.SMSMessage, len(messageModels))
	for i, mm := range messageModels {
		messages[i] = mm.ToEntity()
	}
	return messages, nil
}
