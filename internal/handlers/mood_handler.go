package handlers

import (
	"log"

	"mindbloom/internal/middleware"
	"mindbloom/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// MoodHandler handles HTTP requests for mood tracking.
type MoodHandler struct {
	service  *services.MoodService
	validate *validator.Validate
}

// NewMoodHandler creates a new MoodHandler.
func NewMoodHandler(service *services.MoodService) *MoodHandler {
	return &MoodHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the mood routes. All of them require auth.
func (h *MoodHandler) RegisterRoutes(router fiber.Router) {
	moodRoutes := router.Group("/mood")
	moodRoutes.Get("/", h.HandleHistory)
	moodRoutes.Post("/", h.HandleCreate)
}

// HandleHistory returns the caller's mood entries in the requested window
// (default 7 days), newest first.
func (h *MoodHandler) HandleHistory(c *fiber.Ctx) error {
	days := c.QueryInt("days", 7)
	entries, err := h.service.History(middleware.UserID(c), days)
	if err != nil {
		log.Printf("Error fetching mood entries: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch mood entries",
		})
	}
	return c.JSON(entries)
}

// CreateMoodRequest represents the request body for recording a mood.
type CreateMoodRequest struct {
	Mood  string `json:"mood" validate:"required,oneof=very_happy happy neutral sad very_sad"`
	Notes string `json:"notes"`
}

// HandleCreate records a mood point for the caller.
func (h *MoodHandler) HandleCreate(c *fiber.Ctx) error {
	var req CreateMoodRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	entry, err := h.service.Create(middleware.UserID(c), req.Mood, req.Notes)
	if err != nil {
		log.Printf("Error creating mood entry: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to create mood entry",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}
