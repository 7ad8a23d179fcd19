package handlers

import (
	"errors"
	"fmt"
	"log"

	"mindbloom/internal/middleware"
	"mindbloom/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication and the current-user
// profile.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the public authentication routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/google", h.HandleGoogleLogin)
}

// RegisterProtectedRoutes registers the routes that need a resolved caller.
func (h *AuthHandler) RegisterProtectedRoutes(router fiber.Router) {
	router.Get("/auth/user", h.HandleCurrentUser)
	router.Patch("/user/profile", h.HandleUpdateProfile)
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"omitempty,max=100"`
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	result, err := h.authService.Register(req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, services.ErrEmailExists) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Email already registered",
			})
		}
		log.Printf("Error registering user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not register user",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": result.Token,
		"user":  result.User.Public(),
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin handles user login and issues a session token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	result, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		// One generic message whether the email or the password was wrong.
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid credentials",
		})
	}

	return c.JSON(fiber.Map{
		"token": result.Token,
		"user":  result.User.Public(),
	})
}

// GoogleLoginRequest represents the request body for federated sign-in.
type GoogleLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// HandleGoogleLogin exchanges a Google ID token for a session token.
func (h *AuthHandler) HandleGoogleLogin(c *fiber.Ctx) error {
	var req GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	result, err := h.authService.GoogleLogin(c.Context(), req.IDToken)
	if err != nil {
		if errors.Is(err, services.ErrGoogleNotConfigured) {
			log.Printf("Google sign-in attempted without configuration")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Google sign-in is not configured",
			})
		}
		if errors.Is(err, services.ErrInvalidGoogleToken) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid Google token",
			})
		}
		log.Printf("Google auth error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Google sign-in failed",
		})
	}

	return c.JSON(fiber.Map{
		"token": result.Token,
		"user":  result.User.Public(),
	})
}

// HandleCurrentUser returns the caller's own profile.
func (h *AuthHandler) HandleCurrentUser(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	user, err := h.authService.GetUser(userID)
	if err != nil {
		log.Printf("Error fetching user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch user",
		})
	}
	return c.JSON(user.Public())
}

// UpdateProfileRequest represents the request body for profile edits.
type UpdateProfileRequest struct {
	Name            *string `json:"name" validate:"omitempty,max=100"`
	ProfileImageURL *string `json:"profileImageUrl" validate:"omitempty,max=512"`
	Theme           *string `json:"theme" validate:"omitempty,oneof=light dark"`
	Language        *string `json:"language" validate:"omitempty,max=10"`
}

// HandleUpdateProfile applies a partial profile update for the caller.
func (h *AuthHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	user, err := h.authService.UpdateProfile(middleware.UserID(c), services.ProfileUpdate{
		Name:            req.Name,
		ProfileImageURL: req.ProfileImageURL,
		Theme:           req.Theme,
		Language:        req.Language,
	})
	if err != nil {
		log.Printf("Error updating profile: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to update profile",
		})
	}
	return c.JSON(user.Public())
}

// validationError renders validator errors as a per-field message map.
func validationError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
		})
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}
