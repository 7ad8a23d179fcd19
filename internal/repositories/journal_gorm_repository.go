package repositories

import (
	"errors"
	"fmt"

	"mindbloom/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMJournalRepository is a GORM implementation of JournalRepository.
type GORMJournalRepository struct {
	db *gorm.DB
}

// NewGORMJournalRepository creates a new instance of GORMJournalRepository.
func NewGORMJournalRepository(db *gorm.DB) *GORMJournalRepository {
	return &GORMJournalRepository{db: db}
}

// Create creates a new journal entry.
func (r *GORMJournalRepository) Create(entry *models.JournalEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if err := r.db.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create journal entry: %w", err)
	}
	return nil
}

// ListByUser returns the user's entries, newest first.
func (r *GORMJournalRepository) ListByUser(userID string) ([]models.JournalEntry, error) {
	var entries []models.JournalEntry
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	return entries, nil
}

// GetForUser retrieves one entry, filtering on both the entry id and the
// owner id.
func (r *GORMJournalRepository) GetForUser(id, userID string) (*models.JournalEntry, error) {
	var entry models.JournalEntry
	if err := r.db.First(&entry, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get journal entry %s: %w", id, err)
	}
	return &entry, nil
}

// Update saves an entry previously loaded through GetForUser.
func (r *GORMJournalRepository) Update(entry *models.JournalEntry) error {
	res := r.db.Save(entry)
	if res.Error != nil {
		return fmt.Errorf("failed to update journal entry: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteForUser deletes an entry only if it belongs to the user. Zero rows
// affected means not found, whether the id is missing or foreign.
func (r *GORMJournalRepository) DeleteForUser(id, userID string) error {
	res := r.db.Delete(&models.JournalEntry{}, "id = ? AND user_id = ?", id, userID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete journal entry: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
