package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"mindbloom/internal/models"
	"mindbloom/internal/repositories"
	"mindbloom/pkg/rabbitmq"
)

// MoodService handles direct mood tracking.
type MoodService struct {
	moodRepo repositories.MoodRepository
	mqClient *rabbitmq.Client
}

// NewMoodService creates a new MoodService. mqClient may be nil to disable
// event publishing.
func NewMoodService(moodRepo repositories.MoodRepository, mqClient *rabbitmq.Client) *MoodService {
	return &MoodService{moodRepo: moodRepo, mqClient: mqClient}
}

// Create records a mood point for the user.
func (s *MoodService) Create(userID, mood, notes string) (*models.MoodEntry, error) {
	if !models.ValidMoods[mood] {
		return nil, fmt.Errorf("invalid mood value: %s", mood)
	}
	entry := &models.MoodEntry{
		UserID: userID,
		Mood:   mood,
		Notes:  notes,
	}
	if err := s.moodRepo.Create(entry); err != nil {
		return nil, err
	}

	if s.mqClient != nil {
		body, err := json.Marshal(map[string]interface{}{
			"entryId": entry.ID,
			"userId":  userID,
			"mood":    mood,
		})
		if err == nil {
			if err := s.mqClient.Publish("mood.recorded", body); err != nil {
				log.Printf("Warning: failed to publish mood.recorded event: %v", err)
			}
		}
	}
	return entry, nil
}

// History returns the user's mood entries from the last `days` days, newest
// first.
func (s *MoodService) History(userID string, days int) ([]models.MoodEntry, error) {
	if days <= 0 {
		days = 7
	}
	since := time.Now().AddDate(0, 0, -days)
	return s.moodRepo.ListByUserSince(userID, since)
}
