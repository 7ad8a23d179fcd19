package handlers

import (
	"context"
	"errors"
	"log"

	"mindbloom/internal/services"
	"mindbloom/pkg/genai"

	"github.com/gofiber/fiber/v2"
)

// Quoter generates a motivational quote. Implemented by genai.Client.
type Quoter interface {
	MotivationalQuote(ctx context.Context) *genai.Quote
}

// MediaHandler handles HTTP requests for the curated media catalogs, the
// YouTube search proxy, the book catalog, and the quote of the day. All of
// these are public reads.
type MediaHandler struct {
	service *services.MediaService
	quoter  Quoter
}

// NewMediaHandler creates a new MediaHandler.
func NewMediaHandler(service *services.MediaService, quoter Quoter) *MediaHandler {
	return &MediaHandler{service: service, quoter: quoter}
}

// RegisterRoutes registers the public media routes.
func (h *MediaHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/content/quote", h.HandleQuote)
	router.Get("/games", h.HandleGames)
	router.Get("/books", h.HandleBooks)

	mediaRoutes := router.Group("/media")
	mediaRoutes.Get("/movies", h.HandleMovies)
	mediaRoutes.Get("/movies/search", h.HandleMovieSearch)
	mediaRoutes.Get("/music", h.HandleMusic)
	mediaRoutes.Get("/ted-talks", h.HandleTedTalks)
	mediaRoutes.Get("/shorts", h.HandleShorts)
}

// HandleQuote returns a generated motivational quote, or the canned fallback
// when the model is unreachable.
func (h *MediaHandler) HandleQuote(c *fiber.Ctx) error {
	return c.JSON(h.quoter.MotivationalQuote(c.Context()))
}

// HandleMovies returns the curated movie list.
func (h *MediaHandler) HandleMovies(c *fiber.Ctx) error {
	return c.JSON(h.service.Movies())
}

// HandleMovieSearch proxies a movie search to YouTube.
func (h *MediaHandler) HandleMovieSearch(c *fiber.Ctx) error {
	movies, err := h.service.SearchMovies(c.Context(), c.Query("q"))
	if err != nil {
		if errors.Is(err, services.ErrYouTubeNotConfigured) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Missing YOUTUBE_API_KEY",
			})
		}
		log.Printf("Error searching movies: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to search movies",
		})
	}
	return c.JSON(movies)
}

// HandleMusic returns the curated track list.
func (h *MediaHandler) HandleMusic(c *fiber.Ctx) error {
	return c.JSON(h.service.Music())
}

// HandleTedTalks returns the curated talk list.
func (h *MediaHandler) HandleTedTalks(c *fiber.Ctx) error {
	return c.JSON(h.service.TedTalks())
}

// HandleShorts returns short-form videos for the optional query.
func (h *MediaHandler) HandleShorts(c *fiber.Ctx) error {
	shorts, err := h.service.Shorts(c.Context(), c.Query("q"))
	if err != nil {
		if errors.Is(err, services.ErrYouTubeNotConfigured) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Missing YOUTUBE_API_KEY",
			})
		}
		log.Printf("Error fetching shorts: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to load shorts",
		})
	}
	return c.JSON(shorts)
}

// HandleGames returns the curated calming-games list.
func (h *MediaHandler) HandleGames(c *fiber.Ctx) error {
	return c.JSON(h.service.Games())
}

// HandleBooks returns the PDF catalog scanned from the library directory.
func (h *MediaHandler) HandleBooks(c *fiber.Ctx) error {
	books, err := h.service.Books()
	if err != nil {
		log.Printf("Error loading books: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to load books",
		})
	}
	return c.JSON(books)
}
