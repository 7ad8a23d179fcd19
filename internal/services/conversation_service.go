package services

import (
	"context"

	"mindbloom/internal/models"
	"mindbloom/internal/repositories"
	"mindbloom/pkg/genai"
)

// Companion produces AI companion replies. Implemented by genai.Client;
// implementations must return a usable (fallback) reply rather than failing,
// so the user can always retry.
type Companion interface {
	Chat(ctx context.Context, userMessage, priorContext string) *genai.GenieResponse
}

// ConversationService handles the AI chat companion and its per-user history.
type ConversationService struct {
	convRepo  repositories.ConversationRepository
	companion Companion
}

// NewConversationService creates a new ConversationService.
func NewConversationService(convRepo repositories.ConversationRepository, companion Companion) *ConversationService {
	return &ConversationService{convRepo: convRepo, companion: companion}
}

// Chat forwards the message to the companion model and records the exchange
// in the caller's history.
func (s *ConversationService) Chat(ctx context.Context, userID, message, priorContext string) (*genai.GenieResponse, error) {
	resp := s.companion.Chat(ctx, message, priorContext)

	conv := &models.AIConversation{
		UserID:   userID,
		Message:  message,
		Response: resp.Message,
	}
	if err := s.convRepo.Create(conv); err != nil {
		return nil, err
	}
	return resp, nil
}

// History returns the caller's most recent exchanges, newest first.
func (s *ConversationService) History(userID string, limit int) ([]models.AIConversation, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.convRepo.ListByUser(userID, limit)
}
