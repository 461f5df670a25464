package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// RequireRoles gates a route to the given roles. It reads the role local
// set by AttachJWTLocals, so it must run after that middleware.
func RequireRoles(allowed ...string) fiber.Handler {
	allowedSet := map[string]bool{}
	for _, r := range allowed {
		allowedSet[strings.ToLower(r)] = true
	}

	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		if role == "" {
			return fiber.ErrUnauthorized
		}
		if !allowedSet[role] {
			return fiber.NewError(fiber.StatusForbidden, "forbidden: insufficient role")
		}
		return c.Next()
	}
}
