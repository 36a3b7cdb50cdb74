package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medbook/clinic-app/controllers/patient"
	"github.com/medbook/clinic-app/middleware"
)

// SetupPatientRoutes configures all patient related routes
func SetupPatientRoutes(app *fiber.App) {
	patientGroup := app.Group("/patient", middleware.Protected())

	// Doctor discovery and slots
	patientGroup.Get("/doctors", patient.GetAllDoctors)
	patientGroup.Get("/doctors/:id", patient.GetDoctorDetails)
	patientGroup.Get("/specialities", patient.GetSpecialities)
	patientGroup.Get("/doctors/:id/slots", middleware.RequirePermission("availability", "read"), patient.GetAvailableSlots)

	// Appointments
	patientGroup.Post("/appointments", middleware.RequirePermission("appointments", "create"), patient.BookAppointment)
	patientGroup.Get("/appointments", middleware.RequirePermission("appointments", "read"), patient.GetMyAppointments)
	patientGroup.Patch("/appointments/:id/cancel", middleware.RequirePermission("appointments", "update"), patient.CancelAppointment)

	// Dependents
	patientGroup.Get("/dependents", patient.GetDependents)
	patientGroup.Post("/dependents", patient.CreateDependent)
	patientGroup.Patch("/dependents/:id", patient.UpdateDependent)
	patientGroup.Delete("/dependents/:id", patient.DeleteDependent)

	// Health records
	patientGroup.Post("/records", middleware.RequirePermission("records", "create"), patient.UploadRecord)
	patientGroup.Get("/records", middleware.RequirePermission("records", "read"), patient.GetMyRecords)
	patientGroup.Patch("/records/:id", middleware.RequirePermission("records", "create"), patient.UpdateRecord)
	patientGroup.Delete("/records/:id", middleware.RequirePermission("records", "delete"), patient.DeleteRecord)

	// Notifications
	patientGroup.Get("/notifications", patient.GetNotifications)
	patientGroup.Patch("/notifications/:id/read", patient.MarkNotificationRead)
	patientGroup.Patch("/notifications/read-all", patient.MarkAllNotificationsRead)

	// Assistant
	patientGroup.Post("/assistant/chat", patient.Chat)
	patientGroup.Post("/assistant/reset", patient.ResetChat)
}
