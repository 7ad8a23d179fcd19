package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// TokenValidator resolves a bearer token to a user id. Implemented by
// services.AuthService.
type TokenValidator interface {
	ValidateToken(tokenString string) (string, error)
}

// UserIDKey is the fiber.Ctx locals key holding the resolved caller id.
const UserIDKey = "user_id"

// AuthRequired checks for a valid session token and stores the resolved user
// id in the request context. Clients send both "Authorization: <token>" and
// "Authorization: Bearer <token>"; both forms are accepted.
func AuthRequired(auth TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		userID, err := auth.ValidateToken(extractToken(authHeader))
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}

// OptionalAuth resolves the caller id when a valid token is present but lets
// anonymous requests through. Used by public-read routes whose response has
// caller-relative fields.
func OptionalAuth(auth TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader != "" {
			if userID, err := auth.ValidateToken(extractToken(authHeader)); err == nil {
				c.Locals(UserIDKey, userID)
			}
		}
		return c.Next()
	}
}

// UserID returns the resolved caller id, or "" when the request is anonymous.
func UserID(c *fiber.Ctx) string {
	if id, ok := c.Locals(UserIDKey).(string); ok {
		return id
	}
	return ""
}

func extractToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return header
}
