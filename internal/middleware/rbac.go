package middleware

import (
	"github.com/gofiber/fiber/v2"

	"grievance-portal/internal/domain"
)

// RequireRole gates a route to exactly one portal role. Roles are disjoint:
// an admin does not implicitly pass a student gate.
func RequireRole(requiredRole domain.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetCurrentUser(c)
		if user == nil {
			return Unauthorized("User not found")
		}

		if !user.HasRole(requiredRole) {
			return Forbidden("Insufficient permissions for this operation")
		}

		return c.Next()
	}
}

func RequireAnyRole(roles ...domain.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetCurrentUser(c)
		if user == nil {
			return Unauthorized("User not found")
		}

		hasPermission := false
		for _, role := range roles {
			if user.HasRole(role) {
				hasPermission = true
				break
			}
		}

		if !hasPermission {
			return Forbidden("Insufficient permissions for this operation")
		}

		return c.Next()
	}
}

func GetCurrentUserRole(c *fiber.Ctx) domain.UserRole {
	user := GetCurrentUser(c)
	if user == nil {
		return ""
	}
	return user.Role
}
