package repositories

import (
	"time"

	"mindbloom/internal/models"
)

// MoodRepository defines the interface for mood entry data access.
type MoodRepository interface {
	Create(entry *models.MoodEntry) error
	ListByUserSince(userID string, since time.Time) ([]models.MoodEntry, error)
}
