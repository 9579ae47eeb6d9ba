package api

import (
	"strings"

	domain "github.com/VinihAugs/task-api/domain/user"
	"github.com/VinihAugs/task-api/modules/auth"
	"github.com/gofiber/fiber/v2"
)

const (
	// UserContextKey is the key used to store the authenticated
	// identity in the Fiber context.
	UserContextKey = "user"
)

// AuthMiddleware creates a middleware that validates JWT tokens.
func AuthMiddleware(authAdapter auth.AuthPort) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(FailureResponse{
				Success: false,
				Error:   "Access token is required",
			})
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(FailureResponse{
				Success: false,
				Error:   "Invalid authorization header format. Use: Bearer <token>",
			})
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(FailureResponse{
				Success: false,
				Error:   "Access token is required",
			})
		}

		identity, err := authAdapter.ValidateToken(c.UserContext(), token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(FailureResponse{
				Success: false,
				Error:   "Invalid or expired token",
			})
		}

		c.Locals(UserContextKey, identity)
		return c.Next()
	}
}

// identityFrom retrieves the identity stored by AuthMiddleware.
func identityFrom(c *fiber.Ctx) *domain.Identity {
	identity, _ := c.Locals(UserContextKey).(*domain.Identity)
	return identity
}
