package repositories

import (
	"fmt"

	"mindbloom/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMConversationRepository is a GORM implementation of ConversationRepository.
type GORMConversationRepository struct {
	db *gorm.DB
}

// NewGORMConversationRepository creates a new instance of GORMConversationRepository.
func NewGORMConversationRepository(db *gorm.DB) *GORMConversationRepository {
	return &GORMConversationRepository{db: db}
}

// Create stores one chat exchange.
func (r *GORMConversationRepository) Create(conv *models.AIConversation) error {
	if conv.ID == "" {
		conv.ID = uuid.New().String()
	}
	if err := r.db.Create(conv).Error; err != nil {
		return fmt.Errorf("failed to create conversation record: %w", err)
	}
	return nil
}

// ListByUser returns the user's most recent exchanges, newest first.
func (r *GORMConversationRepository) ListByUser(userID string, limit int) ([]models.AIConversation, error) {
	var convs []models.AIConversation
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&convs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	return convs, nil
}
