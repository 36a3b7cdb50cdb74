package doctor

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/medbook/clinic-app/db"
	"github.com/medbook/clinic-app/models"
)

// GetDashboard summarizes the doctor's load: totals by status and
// today's remaining appointments.
func GetDashboard(c *fiber.Ctx) error {
	doctorID := c.Locals("userID").(uint)

	var stats struct {
		TotalAppointments int64     `json:"total_appointments"`
		ScheduledCount    int64     `json:"scheduled_count"`
		CompletedCount    int64     `json:"completed_count"`
		CancelledCount    int64     `json:"cancelled_count"`
		TodayRemaining    int64     `json:"today_remaining"`
		LastUpdated       time.Time `json:"last_updated"`
	}

	countByStatus := func(status models.AppointmentStatus, out *int64) {
		db.DB.Model(&models.Appointment{}).
			Where("doctor_id = ? AND status = ?", doctorID, status).
			Count(out)
	}

	db.DB.Model(&models.Appointment{}).Where("doctor_id = ?", doctorID).
		Count(&stats.TotalAppointments)
	countByStatus(models.StatusScheduled, &stats.ScheduledCount)
	countByStatus(models.StatusCompleted, &stats.CompletedCount)
	countByStatus(models.StatusCancelled, &stats.CancelledCount)

	now := time.Now()
	endOfDay := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
	db.DB.Model(&models.Appointment{}).
		Where("doctor_id = ? AND status = ? AND start_time BETWEEN ? AND ?",
			doctorID, models.StatusScheduled, now, endOfDay).
		Count(&stats.TodayRemaining)

	stats.LastUpdated = now
	return c.JSON(stats)
}
