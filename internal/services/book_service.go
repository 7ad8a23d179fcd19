package services

import (
	"errors"

	"mindbloom/internal/models"
	"mindbloom/internal/repositories"
)

// BookService handles per-user book reader state.
type BookService struct {
	bookRepo repositories.BookRepository
}

// NewBookService creates a new BookService.
func NewBookService(bookRepo repositories.BookRepository) *BookService {
	return &BookService{bookRepo: bookRepo}
}

// GetReading returns the caller's reading state for a book, or ErrNotFound if
// the book was never opened.
func (s *BookService) GetReading(userID, bookID string) (*models.BookReading, error) {
	return s.bookRepo.GetReading(userID, bookID)
}

// SaveReading creates or replaces the caller's reading state for a book.
func (s *BookService) SaveReading(reading *models.BookReading) (*models.BookReading, error) {
	existing, err := s.bookRepo.GetReading(reading.UserID, reading.BookID)
	if errors.Is(err, ErrNotFound) {
		if err := s.bookRepo.CreateReading(reading); err != nil {
			return nil, err
		}
		return reading, nil
	}
	if err != nil {
		return nil, err
	}

	existing.CurrentPage = reading.CurrentPage
	if reading.TotalPages > 0 {
		existing.TotalPages = reading.TotalPages
	}
	if reading.ReadingTheme != "" {
		existing.ReadingTheme = reading.ReadingTheme
	}
	if reading.FontSize > 0 {
		existing.FontSize = reading.FontSize
	}
	if err := s.bookRepo.UpdateReading(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// ReadingUpdate carries the mutable reading-state fields; nil means leave as
// is.
type ReadingUpdate struct {
	CurrentPage  *int
	TotalPages   *int
	ReadingTheme *string
	FontSize     *int
}

// UpdateReading applies a partial update to the caller's reading state.
func (s *BookService) UpdateReading(userID, bookID string, update ReadingUpdate) (*models.BookReading, error) {
	reading, err := s.bookRepo.GetReading(userID, bookID)
	if err != nil {
		return nil, err
	}
	if update.CurrentPage != nil {
		reading.CurrentPage = *update.CurrentPage
	}
	if update.TotalPages != nil {
		reading.TotalPages = *update.TotalPages
	}
	if update.ReadingTheme != nil {
		reading.ReadingTheme = *update.ReadingTheme
	}
	if update.FontSize != nil {
		reading.FontSize = *update.FontSize
	}
	if err := s.bookRepo.UpdateReading(reading); err != nil {
		return nil, err
	}
	return reading, nil
}

// Bookmarks returns the caller's bookmarks for a book.
func (s *BookService) Bookmarks(userID, bookID string) ([]models.BookBookmark, error) {
	return s.bookRepo.ListBookmarks(userID, bookID)
}

// CreateBookmark adds a bookmark for the caller.
func (s *BookService) CreateBookmark(bookmark *models.BookBookmark) (*models.BookBookmark, error) {
	if err := s.bookRepo.CreateBookmark(bookmark); err != nil {
		return nil, err
	}
	return bookmark, nil
}

// DeleteBookmark removes the caller's bookmark; a foreign id behaves like a
// missing one.
func (s *BookService) DeleteBookmark(userID, bookmarkID string) error {
	return s.bookRepo.DeleteBookmarkForUser(bookmarkID, userID)
}

// Highlights returns the caller's highlights for a book.
func (s *BookService) Highlights(userID, bookID string) ([]models.BookHighlight, error) {
	return s.bookRepo.ListHighlights(userID, bookID)
}

// CreateHighlight adds a highlight for the caller.
func (s *BookService) CreateHighlight(highlight *models.BookHighlight) (*models.BookHighlight, error) {
	if err := s.bookRepo.CreateHighlight(highlight); err != nil {
		return nil, err
	}
	return highlight, nil
}

// DeleteHighlight removes the caller's highlight; a foreign id behaves like a
// missing one.
func (s *BookService) DeleteHighlight(userID, highlightID string) error {
	return s.bookRepo.DeleteHighlightForUser(highlightID, userID)
}
