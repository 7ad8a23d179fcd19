package repositories

import "mindbloom/internal/models"

// ConversationRepository defines the interface for AI conversation history
// data access.
type ConversationRepository interface {
	Create(conv *models.AIConversation) error
	ListByUser(userID string, limit int) ([]models.AIConversation, error)
}
