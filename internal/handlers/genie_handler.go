package handlers

import (
	"log"

	"mindbloom/internal/middleware"
	"mindbloom/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// GenieHandler handles HTTP requests for the AI companion.
type GenieHandler struct {
	service  *services.ConversationService
	validate *validator.Validate
}

// NewGenieHandler creates a new GenieHandler.
func NewGenieHandler(service *services.ConversationService) *GenieHandler {
	return &GenieHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the AI companion routes. All of them require auth.
func (h *GenieHandler) RegisterRoutes(router fiber.Router) {
	aiRoutes := router.Group("/ai")
	aiRoutes.Post("/chat", h.HandleChat)
	aiRoutes.Get("/conversations", h.HandleHistory)
}

// ChatRequest represents the request body for a chat turn.
type ChatRequest struct {
	Message string `json:"message" validate:"required"`
	Context string `json:"context"`
}

// HandleChat forwards the caller's message to the companion and stores the
// exchange. The companion degrades to a canned reply when the model is down,
// so the user can retry.
func (h *GenieHandler) HandleChat(c *fiber.Ctx) error {
	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	resp, err := h.service.Chat(c.Context(), middleware.UserID(c), req.Message, req.Context)
	if err != nil {
		log.Printf("Error in AI chat: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to process chat message",
		})
	}
	return c.JSON(resp)
}

// HandleHistory returns the caller's recent exchanges, newest first.
func (h *GenieHandler) HandleHistory(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	convs, err := h.service.History(middleware.UserID(c), limit)
	if err != nil {
		log.Printf("Error fetching AI conversations: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch conversations",
		})
	}
	return c.JSON(convs)
}
