package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medbook/clinic-app/controllers/doctor"
	"github.com/medbook/clinic-app/middleware"
)

// SetupDoctorRoutes configures all doctor related routes
func SetupDoctorRoutes(app *fiber.App) {
	doctorGroup := app.Group("/doctor", middleware.Protected(), middleware.RequireRole("doctor"))

	// Schedule
	doctorGroup.Get("/availability", middleware.RequirePermission("availability", "read"), doctor.GetAvailability)
	doctorGroup.Put("/availability", middleware.RequirePermission("availability", "update"), doctor.SetAvailability)
	doctorGroup.Delete("/availability/:id", middleware.RequirePermission("availability", "update"), doctor.DeleteAvailability)
	doctorGroup.Get("/agenda", doctor.GetDayAgenda)

	// Appointments
	doctorGroup.Get("/appointments/upcoming", middleware.RequirePermission("appointments", "read"), doctor.GetUpcomingAppointments)
	doctorGroup.Get("/appointments/history", middleware.RequirePermission("appointments", "read"), doctor.GetAppointmentHistory)
	doctorGroup.Patch("/appointments/:id/complete", middleware.RequirePermission("appointments", "update"), doctor.CompleteAppointment)
	doctorGroup.Patch("/appointments/:id/cancel", middleware.RequirePermission("appointments", "update"), doctor.CancelAppointment)
	doctorGroup.Patch("/appointments/:id/notes", middleware.RequirePermission("appointments", "update"), doctor.AddNotes)

	// Patient records
	doctorGroup.Get("/patients/:id/records", middleware.RequirePermission("records", "read"), doctor.GetPatientRecords)
	doctorGroup.Get("/records/:id", middleware.RequirePermission("records", "read"), doctor.ViewRecord)

	// Dashboard
	doctorGroup.Get("/dashboard", doctor.GetDashboard)
}
