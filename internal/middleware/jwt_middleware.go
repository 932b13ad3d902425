package middleware

import (
	"log"
	"strings"

	"bjjtracker/internal/apperr"
	"bjjtracker/internal/services"

	"github.com/gofiber/fiber/v2"
)

const userIDKey = "user_id"

// AuthRequired is a Fiber middleware that resolves the bearer token to an
// existing account and stores its id in the request context.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return apperr.Auth("Not authorized, no token")
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") || strings.TrimSpace(parts[1]) == "" {
			return apperr.Auth("Authorization header format must be 'Bearer <token>'")
		}

		user, err := authService.Authenticate(c.UserContext(), strings.TrimSpace(parts[1]))
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return err
		}

		c.Locals(userIDKey, user.ID)
		return c.Next()
	}
}

// UserID returns the id stored by AuthRequired, or "" outside it.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(userIDKey).(string)
	return id
}
