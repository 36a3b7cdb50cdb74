package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medbook/clinic-app/controllers"
	"github.com/medbook/clinic-app/middleware"
)

// SetupAuthRoutes configures all authentication related routes
func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/auth")

	// Public routes
	auth.Post("/register", controllers.Register)
	auth.Post("/login", controllers.Login)
	auth.Post("/refresh", controllers.RefreshToken)
	auth.Post("/password/forgot", controllers.RequestPasswordReset)
	auth.Post("/password/reset", controllers.ResetPassword)

	// Protected routes
	auth.Get("/me", middleware.Protected(), controllers.Me)
	auth.Post("/logout", middleware.Protected(), controllers.Logout)
}
