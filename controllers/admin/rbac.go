package admin

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medbook/clinic-app/db"
	"github.com/medbook/clinic-app/models"
	"github.com/medbook/clinic-app/utils"
)

// CreateRole creates a new role.
func CreateRole(c *fiber.Ctx) error {
	role := new(models.Role)
	if err := c.BodyParser(role); err != nil {
		return utils.Fail(c, utils.Validation("cannot parse JSON body"))
	}
	if role.Name == "" {
		return utils.Fail(c, utils.Validation("role name is required"))
	}

	var existing models.Role
	if db.DB.Where("name = ?", role.Name).First(&existing).RowsAffected > 0 {
		return utils.Fail(c, utils.Conflict("role with this name already exists"))
	}

	if err := db.DB.Create(&role).Error; err != nil {
		return utils.Fail(c, utils.Backend("failed to create role", err))
	}
	return c.Status(fiber.StatusCreated).JSON(role)
}

// GetRoles returns all roles with their permissions.
func GetRoles(c *fiber.Ctx) error {
	var roles []models.Role
	if err := db.DB.Preload("Permissions").Find(&roles).Error; err != nil {
		return utils.Fail(c, utils.Backend("failed to get roles", err))
	}
	return c.JSON(roles)
}

// CreatePermission creates a new permission.
func CreatePermission(c *fiber.Ctx) error {
	permission := new(models.Permission)
	if err := c.BodyParser(permission); err != nil {
		return utils.Fail(c, utils.Validation("cannot parse JSON body"))
	}
	if err := utils.Required(map[string]string{
		"name":     permission.Name,
		"resource": permission.Resource,
		"action":   permission.Action,
	}); err != nil {
		return utils.Fail(c, err)
	}

	var existing models.Permission
	if db.DB.Where("name = ?", permission.Name).First(&existing).RowsAffected > 0 {
		return utils.Fail(c, utils.Conflict("permission with this name already exists"))
	}

	if err := db.DB.Create(&permission).Error; err != nil {
		return utils.Fail(c, utils.Backend("failed to create permission", err))
	}
	return c.Status(fiber.StatusCreated).JSON(permission)
}

// GetPermissions returns all permissions.
func GetPermissions(c *fiber.Ctx) error {
	var permissions []models.Permission
	if err := db.DB.Find(&permissions).Error; err != nil {
		return utils.Fail(c, utils.Backend("failed to get permissions", err))
	}
	return c.JSON(permissions)
}

// AssignRoleToUser changes a user's role.
func AssignRoleToUser(c *fiber.Ctx) error {
	type AssignRoleInput struct {
		UserID uint `json:"user_id"`
		RoleID uint `json:"role_id"`
	}
	input := new(AssignRoleInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, utils.Validation("cannot parse JSON body"))
	}

	var user models.User
	if db.DB.First(&user, input.UserID).RowsAffected == 0 {
		return utils.Fail(c, utils.NotFound("user not found"))
	}
	var role models.Role
	if db.DB.First(&role, input.RoleID).RowsAffected == 0 {
		return utils.Fail(c, utils.NotFound("role not found"))
	}

	user.RoleID = input.RoleID
	if err := db.DB.Save(&user).Error; err != nil {
		return utils.Fail(c, utils.Backend("failed to assign role", err))
	}
	return c.JSON(fiber.Map{"message": "Role assigned successfully"})
}

// AssignPermissionToRole grants a permission to a role.
func AssignPermissionToRole(c *fiber.Ctx) error {
	type AssignPermissionInput struct {
		RoleID       uint `json:"role_id"`
		PermissionID uint `json:"permission_id"`
	}
	input := new(AssignPermissionInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, utils.Validation("cannot parse JSON body"))
	}

	var role models.Role
	if err := db.DB.Preload("Permissions").First(&role, input.RoleID).Error; err != nil {
		return utils.Fail(c, utils.NotFound("role not found"))
	}
	var permission models.Permission
	if err := db.DB.First(&permission, input.PermissionID).Error; err != nil {
		return utils.Fail(c, utils.NotFound("permission not found"))
	}

	for _, p := range role.Permissions {
		if p.ID == permission.ID {
			return utils.Fail(c, utils.Conflict("permission already assigned to role"))
		}
	}

	if err := db.DB.Model(&role).Association("Permissions").Append(&permission); err != nil {
		return utils.Fail(c, utils.Backend("failed to assign permission", err))
	}
	return c.JSON(fiber.Map{"message": "Permission assigned successfully"})
}
