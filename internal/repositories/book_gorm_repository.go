package repositories

import (
	"errors"
	"fmt"

	"mindbloom/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMBookRepository is a GORM implementation of BookRepository.
type GORMBookRepository struct {
	db *gorm.DB
}

// NewGORMBookRepository creates a new instance of GORMBookRepository.
func NewGORMBookRepository(db *gorm.DB) *GORMBookRepository {
	return &GORMBookRepository{db: db}
}

// GetReading retrieves the user's reading state for a book.
func (r *GORMBookRepository) GetReading(userID, bookID string) (*models.BookReading, error) {
	var reading models.BookReading
	if err := r.db.First(&reading, "user_id = ? AND book_id = ?", userID, bookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get book reading: %w", err)
	}
	return &reading, nil
}

// CreateReading creates the reading state row for a (user, book) pair.
func (r *GORMBookRepository) CreateReading(reading *models.BookReading) error {
	if reading.ID == "" {
		reading.ID = uuid.New().String()
	}
	if err := r.db.Create(reading).Error; err != nil {
		return fmt.Errorf("failed to create book reading: %w", err)
	}
	return nil
}

// UpdateReading saves a reading row previously loaded through GetReading.
func (r *GORMBookRepository) UpdateReading(reading *models.BookReading) error {
	res := r.db.Save(reading)
	if res.Error != nil {
		return fmt.Errorf("failed to update book reading: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListBookmarks returns the user's bookmarks for a book, by page order.
func (r *GORMBookRepository) ListBookmarks(userID, bookID string) ([]models.BookBookmark, error) {
	var bookmarks []models.BookBookmark
	err := r.db.Where("user_id = ? AND book_id = ?", userID, bookID).
		Order("page_number ASC").
		Find(&bookmarks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	return bookmarks, nil
}

// CreateBookmark creates a bookmark.
func (r *GORMBookRepository) CreateBookmark(bookmark *models.BookBookmark) error {
	if bookmark.ID == "" {
		bookmark.ID = uuid.New().String()
	}
	if err := r.db.Create(bookmark).Error; err != nil {
		return fmt.Errorf("failed to create bookmark: %w", err)
	}
	return nil
}

// DeleteBookmarkForUser deletes a bookmark only if the user owns it.
func (r *GORMBookRepository) DeleteBookmarkForUser(id, userID string) error {
	res := r.db.Delete(&models.BookBookmark{}, "id = ? AND user_id = ?", id, userID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete bookmark: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListHighlights returns the user's highlights for a book, by page order.
func (r *GORMBookRepository) ListHighlights(userID, bookID string) ([]models.BookHighlight, error) {
	var highlights []models.BookHighlight
	err := r.db.Where("user_id = ? AND book_id = ?", userID, bookID).
		Order("page_number ASC").
		Find(&highlights).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list highlights: %w", err)
	}
	return highlights, nil
}

// CreateHighlight creates a highlight.
func (r *GORMBookRepository) CreateHighlight(highlight *models.BookHighlight) error {
	if highlight.ID == "" {
		highlight.ID = uuid.New().String()
	}
	if err := r.db.Create(highlight).Error; err != nil {
		return fmt.Errorf("failed to create highlight: %w", err)
	}
	return nil
}

// DeleteHighlightForUser deletes a highlight only if the user owns it.
func (r *GORMBookRepository) DeleteHighlightForUser(id, userID string) error {
	res := r.db.Delete(&models.BookHighlight{}, "id = ? AND user_id = ?", id, userID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete highlight: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
