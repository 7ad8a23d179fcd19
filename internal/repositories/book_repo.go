package repositories

import "mindbloom/internal/models"

// BookRepository defines the interface for per-user book reader state:
// reading position, bookmarks, and highlights. Everything is scoped to the
// owning user.
type BookRepository interface {
	GetReading(userID, bookID string) (*models.BookReading, error)
	CreateReading(reading *models.BookReading) error
	UpdateReading(reading *models.BookReading) error

	ListBookmarks(userID, bookID string) ([]models.BookBookmark, error)
	CreateBookmark(bookmark *models.BookBookmark) error
	DeleteBookmarkForUser(id, userID string) error

	ListHighlights(userID, bookID string) ([]models.BookHighlight, error)
	CreateHighlight(highlight *models.BookHighlight) error
	DeleteHighlightForUser(id, userID string) error
}
