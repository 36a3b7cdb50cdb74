package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medbook/clinic-app/controllers/admin"
	"github.com/medbook/clinic-app/middleware"
)

// SetupAdminRoutes configures all admin related routes
func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.Protected(), middleware.RequireRole("admin"))

	// User management
	adminGroup.Get("/users", middleware.RequirePermission("users", "read"), admin.GetUsers)
	adminGroup.Post("/doctors", middleware.RequirePermission("users", "create"), admin.CreateDoctor)
	adminGroup.Patch("/users/:id", middleware.RequirePermission("users", "update"), admin.UpdateUser)
	adminGroup.Patch("/users/:id/active", middleware.RequirePermission("users", "delete"), admin.SetUserActive)

	// Appointment oversight
	adminGroup.Get("/appointments", middleware.RequirePermission("appointments", "read"), admin.GetAppointments)
	adminGroup.Patch("/appointments/:id/cancel", middleware.RequirePermission("appointments", "update"), admin.CancelAppointment)

	// Reports
	adminGroup.Get("/reports", middleware.RequirePermission("reports", "read"), admin.GetReports)
}

// SetupRBACRoutes configures all RBAC related routes
func SetupRBACRoutes(app *fiber.App) {
	rbac := app.Group("/rbac", middleware.Protected())

	// Roles
	rbac.Post("/roles", middleware.RequireRole("admin"), admin.CreateRole)
	rbac.Get("/roles", middleware.RequireRole("admin"), admin.GetRoles)

	// Permissions
	rbac.Post("/permissions", middleware.RequireRole("admin"), admin.CreatePermission)
	rbac.Get("/permissions", middleware.RequireRole("admin"), admin.GetPermissions)

	// Assignments
	rbac.Post("/users/role", middleware.RequireRole("admin"), admin.AssignRoleToUser)
	rbac.Post("/roles/permission", middleware.RequireRole("admin"), admin.AssignPermissionToRole)
}
