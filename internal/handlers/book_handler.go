package handlers

import (
	"errors"
	"log"

	"mindbloom/internal/middleware"
	"mindbloom/internal/models"
	"mindbloom/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// BookHandler handles HTTP requests for per-user book reader state.
type BookHandler struct {
	service  *services.BookService
	validate *validator.Validate
}

// NewBookHandler creates a new BookHandler.
func NewBookHandler(service *services.BookService) *BookHandler {
	return &BookHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the reader-state routes. All of them require auth
// and are scoped to the caller.
func (h *BookHandler) RegisterRoutes(router fiber.Router) {
	bookRoutes := router.Group("/books/:bookId")
	bookRoutes.Get("/reading", h.HandleGetReading)
	bookRoutes.Post("/reading", h.HandleSaveReading)
	bookRoutes.Patch("/reading", h.HandleUpdateReading)
	bookRoutes.Get("/bookmarks", h.HandleListBookmarks)
	bookRoutes.Post("/bookmarks", h.HandleCreateBookmark)
	bookRoutes.Delete("/bookmarks/:bookmarkId", h.HandleDeleteBookmark)
	bookRoutes.Get("/highlights", h.HandleListHighlights)
	bookRoutes.Post("/highlights", h.HandleCreateHighlight)
	bookRoutes.Delete("/highlights/:highlightId", h.HandleDeleteHighlight)
}

// HandleGetReading returns the caller's reading state, or null when the book
// was never opened.
func (h *BookHandler) HandleGetReading(c *fiber.Ctx) error {
	reading, err := h.service.GetReading(middleware.UserID(c), c.Params("bookId"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.JSON(nil)
		}
		log.Printf("Error fetching book reading: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch book reading",
		})
	}
	return c.JSON(reading)
}

// SaveReadingRequest represents the request body for saving reading state.
type SaveReadingRequest struct {
	CurrentPage  int    `json:"currentPage" validate:"omitempty,gt=0"`
	TotalPages   int    `json:"totalPages" validate:"omitempty,gt=0"`
	ReadingTheme string `json:"readingTheme" validate:"omitempty,oneof=light dark sepia"`
	FontSize     int    `json:"fontSize" validate:"omitempty,gt=0"`
}

// HandleSaveReading creates or replaces the caller's reading state.
func (h *BookHandler) HandleSaveReading(c *fiber.Ctx) error {
	var req SaveReadingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	reading := &models.BookReading{
		UserID:       middleware.UserID(c),
		BookID:       c.Params("bookId"),
		CurrentPage:  req.CurrentPage,
		TotalPages:   req.TotalPages,
		ReadingTheme: req.ReadingTheme,
		FontSize:     req.FontSize,
	}
	if reading.CurrentPage == 0 {
		reading.CurrentPage = 1
	}

	saved, err := h.service.SaveReading(reading)
	if err != nil {
		log.Printf("Error saving book reading: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to save book reading",
		})
	}
	return c.JSON(saved)
}

// UpdateReadingRequest represents the request body for partial reading-state
// updates.
type UpdateReadingRequest struct {
	CurrentPage  *int    `json:"currentPage" validate:"omitempty,gt=0"`
	TotalPages   *int    `json:"totalPages" validate:"omitempty,gt=0"`
	ReadingTheme *string `json:"readingTheme" validate:"omitempty,oneof=light dark sepia"`
	FontSize     *int    `json:"fontSize" validate:"omitempty,gt=0"`
}

// HandleUpdateReading applies a partial update to the caller's reading state.
func (h *BookHandler) HandleUpdateReading(c *fiber.Ctx) error {
	var req UpdateReadingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	reading, err := h.service.UpdateReading(middleware.UserID(c), c.Params("bookId"), services.ReadingUpdate{
		CurrentPage:  req.CurrentPage,
		TotalPages:   req.TotalPages,
		ReadingTheme: req.ReadingTheme,
		FontSize:     req.FontSize,
	})
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Book reading not found",
			})
		}
		log.Printf("Error updating book reading: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to update book reading",
		})
	}
	return c.JSON(reading)
}

// HandleListBookmarks returns the caller's bookmarks for the book.
func (h *BookHandler) HandleListBookmarks(c *fiber.Ctx) error {
	bookmarks, err := h.service.Bookmarks(middleware.UserID(c), c.Params("bookId"))
	if err != nil {
		log.Printf("Error fetching bookmarks: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch bookmarks",
		})
	}
	return c.JSON(bookmarks)
}

// CreateBookmarkRequest represents the request body for adding a bookmark.
type CreateBookmarkRequest struct {
	PageNumber int    `json:"pageNumber" validate:"required,gt=0"`
	Title      string `json:"title" validate:"omitempty,max=255"`
	Notes      string `json:"notes"`
}

// HandleCreateBookmark adds a bookmark for the caller.
func (h *BookHandler) HandleCreateBookmark(c *fiber.Ctx) error {
	var req CreateBookmarkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	bookmark, err := h.service.CreateBookmark(&models.BookBookmark{
		UserID:     middleware.UserID(c),
		BookID:     c.Params("bookId"),
		PageNumber: req.PageNumber,
		Title:      req.Title,
		Notes:      req.Notes,
	})
	if err != nil {
		log.Printf("Error creating bookmark: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to create bookmark",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(bookmark)
}

// HandleDeleteBookmark removes the caller's bookmark.
func (h *BookHandler) HandleDeleteBookmark(c *fiber.Ctx) error {
	err := h.service.DeleteBookmark(middleware.UserID(c), c.Params("bookmarkId"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Bookmark not found",
			})
		}
		log.Printf("Error deleting bookmark: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to delete bookmark",
		})
	}
	return c.JSON(fiber.Map{"success": true})
}

// HandleListHighlights returns the caller's highlights for the book.
func (h *BookHandler) HandleListHighlights(c *fiber.Ctx) error {
	highlights, err := h.service.Highlights(middleware.UserID(c), c.Params("bookId"))
	if err != nil {
		log.Printf("Error fetching highlights: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch highlights",
		})
	}
	return c.JSON(highlights)
}

// CreateHighlightRequest represents the request body for adding a highlight.
type CreateHighlightRequest struct {
	PageNumber int    `json:"pageNumber" validate:"required,gt=0"`
	Text       string `json:"text" validate:"required"`
	Color      string `json:"color" validate:"omitempty,oneof=yellow green blue pink"`
	Notes      string `json:"notes"`
}

// HandleCreateHighlight adds a highlight for the caller.
func (h *BookHandler) HandleCreateHighlight(c *fiber.Ctx) error {
	var req CreateHighlightRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	highlight, err := h.service.CreateHighlight(&models.BookHighlight{
		UserID:     middleware.UserID(c),
		BookID:     c.Params("bookId"),
		PageNumber: req.PageNumber,
		Text:       req.Text,
		Color:      req.Color,
		Notes:      req.Notes,
	})
	if err != nil {
		log.Printf("Error creating highlight: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to create highlight",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(highlight)
}

// HandleDeleteHighlight removes the caller's highlight.
func (h *BookHandler) HandleDeleteHighlight(c *fiber.Ctx) error {
	err := h.service.DeleteHighlight(middleware.UserID(c), c.Params("highlightId"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Highlight not found",
			})
		}
		log.Printf("Error deleting highlight: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to delete highlight",
		})
	}
	return c.JSON(fiber.Map{"success": true})
}
