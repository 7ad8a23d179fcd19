package handlers

import (
	"errors"
	"log"

	"mindbloom/internal/middleware"
	"mindbloom/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// JournalHandler handles HTTP requests for journal entries.
type JournalHandler struct {
	service  *services.JournalService
	validate *validator.Validate
}

// NewJournalHandler creates a new JournalHandler.
func NewJournalHandler(service *services.JournalService) *JournalHandler {
	return &JournalHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the journal routes. All of them require auth.
func (h *JournalHandler) RegisterRoutes(router fiber.Router) {
	journalRoutes := router.Group("/journal")
	journalRoutes.Get("/", h.HandleList)
	journalRoutes.Post("/", h.HandleCreate)
	journalRoutes.Patch("/:id", h.HandleUpdate)
	journalRoutes.Delete("/:id", h.HandleDelete)
}

// HandleList returns the caller's entries, newest first.
func (h *JournalHandler) HandleList(c *fiber.Ctx) error {
	entries, err := h.service.List(middleware.UserID(c))
	if err != nil {
		log.Printf("Error fetching journal entries: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch journal entries",
		})
	}
	return c.JSON(entries)
}

// CreateJournalRequest represents the request body for entry creation.
type CreateJournalRequest struct {
	Title   string `json:"title" validate:"omitempty,max=255"`
	Content string `json:"content" validate:"required"`
	Tags    string `json:"tags"`
}

// HandleCreate saves a new entry. The mood classification is best-effort and
// never blocks the save.
func (h *JournalHandler) HandleCreate(c *fiber.Ctx) error {
	var req CreateJournalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	entry, err := h.service.Create(c.Context(), middleware.UserID(c), req.Title, req.Content, req.Tags)
	if err != nil {
		log.Printf("Error creating journal entry: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to create journal entry",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// UpdateJournalRequest represents the request body for entry edits.
type UpdateJournalRequest struct {
	Title   *string `json:"title" validate:"omitempty,max=255"`
	Content *string `json:"content"`
	Tags    *string `json:"tags"`
}

// HandleUpdate applies a partial update to the caller's entry.
func (h *JournalHandler) HandleUpdate(c *fiber.Ctx) error {
	var req UpdateJournalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	entry, err := h.service.Update(c.Context(), middleware.UserID(c), c.Params("id"), services.JournalUpdate{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Journal entry not found",
			})
		}
		log.Printf("Error updating journal entry: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to update journal entry",
		})
	}
	return c.JSON(entry)
}

// HandleDelete removes the caller's entry. An entry owned by someone else
// gets the same not-found response as a missing one.
func (h *JournalHandler) HandleDelete(c *fiber.Ctx) error {
	err := h.service.Delete(middleware.UserID(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Journal entry not found",
			})
		}
		log.Printf("Error deleting journal entry: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to delete journal entry",
		})
	}
	return c.JSON(fiber.Map{"success": true})
}
