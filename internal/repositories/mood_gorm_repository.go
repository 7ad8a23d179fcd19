package repositories

import (
	"fmt"
	"time"

	"mindbloom/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMMoodRepository is a GORM implementation of MoodRepository.
type GORMMoodRepository struct {
	db *gorm.DB
}

// NewGORMMoodRepository creates a new instance of GORMMoodRepository.
func NewGORMMoodRepository(db *gorm.DB) *GORMMoodRepository {
	return &GORMMoodRepository{db: db}
}

// Create creates a new mood entry.
func (r *GORMMoodRepository) Create(entry *models.MoodEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if err := r.db.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create mood entry: %w", err)
	}
	return nil
}

// ListByUserSince returns the user's mood entries recorded at or after the
// given time, newest first.
func (r *GORMMoodRepository) ListByUserSince(userID string, since time.Time) ([]models.MoodEntry, error) {
	var entries []models.MoodEntry
	err := r.db.Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list mood entries: %w", err)
	}
	return entries, nil
}
