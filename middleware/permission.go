package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medbook/clinic-app/db"
	"github.com/medbook/clinic-app/models"
	"github.com/medbook/clinic-app/utils"
)

// RequirePermission checks the user's role grants (resource, action).
// Grants are read from the DB so a role edit takes effect immediately.
func RequirePermission(resource string, action string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userID").(uint)
		if !ok {
			return utils.Fail(c, utils.Unauthorized("user not authenticated"))
		}

		var user models.User
		if err := db.DB.Preload("Role.Permissions").First(&user, userID).Error; err != nil {
			return utils.Fail(c, utils.Unauthorized("user not found"))
		}
		if !user.IsActive {
			return utils.Fail(c, utils.Forbidden("account is deactivated"))
		}

		for _, permission := range user.Role.Permissions {
			if permission.Resource == resource && permission.Action == action {
				return c.Next()
			}
		}
		return utils.Fail(c, utils.Forbidden("you don't have permission to perform this action"))
	}
}

// RequireRole restricts a route to a single role.
func RequireRole(roleName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return utils.Fail(c, utils.Unauthorized("user not authenticated"))
		}
		if role != roleName {
			return utils.Fail(c, utils.Forbidden("you don't have the required role to perform this action"))
		}
		return c.Next()
	}
}
