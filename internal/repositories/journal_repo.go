package repositories

import "mindbloom/internal/models"

// JournalRepository defines the interface for journal entry data access.
// Every lookup and mutation is scoped to the owning user; an id that exists
// but belongs to someone else behaves exactly like a missing id.
type JournalRepository interface {
	Create(entry *models.JournalEntry) error
	ListByUser(userID string) ([]models.JournalEntry, error)
	GetForUser(id, userID string) (*models.JournalEntry, error)
	Update(entry *models.JournalEntry) error
	DeleteForUser(id, userID string) error
}
