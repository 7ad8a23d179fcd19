package handlers

import (
	"errors"
	"log"

	"mindbloom/internal/middleware"
	"mindbloom/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CommunityHandler handles HTTP requests for the shared feed.
type CommunityHandler struct {
	service  *services.CommunityService
	validate *validator.Validate
}

// NewCommunityHandler creates a new CommunityHandler.
func NewCommunityHandler(service *services.CommunityService) *CommunityHandler {
	return &CommunityHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterPublicRoutes registers the public-read feed routes. They run behind
// OptionalAuth so caller-relative fields resolve when a token is present.
func (h *CommunityHandler) RegisterPublicRoutes(router fiber.Router) {
	router.Get("/community/posts", h.HandleFeed)
	router.Get("/community/posts/:id/comments", h.HandleComments)
}

// RegisterProtectedRoutes registers the authenticated feed mutations.
func (h *CommunityHandler) RegisterProtectedRoutes(router fiber.Router) {
	router.Post("/community/posts", h.HandleCreatePost)
	router.Delete("/community/posts/:id", h.HandleDeletePost)
	router.Post("/community/posts/:id/like", h.HandleLike)
	router.Delete("/community/posts/:id/like", h.HandleUnlike)
	router.Post("/community/posts/:id/comments", h.HandleCreateComment)
}

// HandleFeed lists posts newest first with aggregate counts. userLiked is
// relative to the caller resolved from the optional token.
func (h *CommunityHandler) HandleFeed(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	posts, err := h.service.Feed(limit, offset, middleware.UserID(c))
	if err != nil {
		log.Printf("Error fetching community posts: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch community posts",
		})
	}
	return c.JSON(posts)
}

// CreatePostRequest represents the request body for posting to the feed.
// ImageBase64 is stored as the image URL directly; uploads to object storage
// are out of scope.
type CreatePostRequest struct {
	Content     string `json:"content" validate:"required"`
	ImageBase64 string `json:"imageBase64"`
}

// HandleCreatePost publishes a post by the caller.
func (h *CommunityHandler) HandleCreatePost(c *fiber.Ctx) error {
	var req CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	post, err := h.service.CreatePost(middleware.UserID(c), req.Content, req.ImageBase64)
	if err != nil {
		log.Printf("Error creating community post: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to create community post",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// HandleDeletePost removes the caller's own post; anyone else's post gets the
// not-found response.
func (h *CommunityHandler) HandleDeletePost(c *fiber.Ctx) error {
	err := h.service.DeletePost(middleware.UserID(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Post not found",
			})
		}
		log.Printf("Error deleting post: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to delete post",
		})
	}
	return c.JSON(fiber.Map{"success": true})
}

// HandleLike records the caller's like. Liking twice does not double-count.
func (h *CommunityHandler) HandleLike(c *fiber.Ctx) error {
	err := h.service.Like(middleware.UserID(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Post not found",
			})
		}
		log.Printf("Error liking post: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to like post",
		})
	}
	return c.JSON(fiber.Map{"success": true})
}

// HandleUnlike removes the caller's like; unliking a never-liked post
// succeeds.
func (h *CommunityHandler) HandleUnlike(c *fiber.Ctx) error {
	if err := h.service.Unlike(middleware.UserID(c), c.Params("id")); err != nil {
		log.Printf("Error unliking post: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to unlike post",
		})
	}
	return c.JSON(fiber.Map{"success": true})
}

// HandleComments lists a post's comments, oldest first.
func (h *CommunityHandler) HandleComments(c *fiber.Ctx) error {
	comments, err := h.service.Comments(c.Params("id"))
	if err != nil {
		log.Printf("Error fetching comments: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch comments",
		})
	}
	return c.JSON(comments)
}

// CreateCommentRequest represents the request body for commenting.
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

// HandleCreateComment adds the caller's comment to a post.
func (h *CommunityHandler) HandleCreateComment(c *fiber.Ctx) error {
	var req CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	comment, err := h.service.CreateComment(middleware.UserID(c), c.Params("id"), req.Content)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Post not found",
			})
		}
		log.Printf("Error creating comment: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to create comment",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}
