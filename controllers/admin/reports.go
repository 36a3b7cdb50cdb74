package admin

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/medbook/clinic-app/db"
	"github.com/medbook/clinic-app/models"
	"github.com/medbook/clinic-app/utils"
)

// GetReports aggregates clinic activity for the period given by
// ?from= and ?to= (YYYY-MM-DD, defaults to the last 30 days).
func GetReports(c *fiber.Ctx) error {
	loc := utils.ClinicLocation()
	now := time.Now().In(loc)

	from := now.AddDate(0, 0, -30)
	to := now
	if s := c.Query("from"); s != "" {
		if t, err := time.ParseInLocation("2006-01-02", s, loc); err == nil {
			from = t
		}
	}
	if s := c.Query("to"); s != "" {
		if t, err := time.ParseInLocation("2006-01-02", s, loc); err == nil {
			to = t.AddDate(0, 0, 1)
		}
	}
	if !from.Before(to) {
		return utils.Fail(c, utils.Validation("'from' must be before 'to'"))
	}

	countByStatus := func(status models.AppointmentStatus) int64 {
		var n int64
		db.DB.Model(&models.Appointment{}).
			Where("start_time >= ? AND start_time < ? AND status = ?", from, to, status).
			Count(&n)
		return n
	}

	byStatus := fiber.Map{
		string(models.StatusScheduled): countByStatus(models.StatusScheduled),
		string(models.StatusCompleted): countByStatus(models.StatusCompleted),
		string(models.StatusCancelled): countByStatus(models.StatusCancelled),
	}

	type specialityRow struct {
		Speciality string `json:"speciality"`
		Count      int64  `json:"count"`
	}
	var bySpeciality []specialityRow
	if err := db.DB.Model(&models.Appointment{}).
		Select("speciality, count(*) as count").
		Where("start_time >= ? AND start_time < ?", from, to).
		Group("speciality").Order("count desc").
		Scan(&bySpeciality).Error; err != nil {
		return utils.Fail(c, utils.Backend("failed to aggregate by speciality", err))
	}

	type dayRow struct {
		Day   string `json:"day"`
		Count int64  `json:"count"`
	}
	var perDay []dayRow
	if err := db.DB.Model(&models.Appointment{}).
		Select("to_char(start_time, 'YYYY-MM-DD') as day, count(*) as count").
		Where("start_time >= ? AND start_time < ?", from, to).
		Group("day").Order("day asc").
		Scan(&perDay).Error; err != nil {
		return utils.Fail(c, utils.Backend("failed to aggregate per day", err))
	}

	var activeDoctors int64
	db.DB.Model(&models.User{}).
		Joins("JOIN roles ON users.role_id = roles.id").
		Where("roles.name = ? AND users.is_active = ?", models.RoleDoctor, true).
		Count(&activeDoctors)

	var totalPatients int64
	db.DB.Model(&models.User{}).
		Joins("JOIN roles ON users.role_id = roles.id").
		Where("roles.name = ?", models.RolePatient).
		Count(&totalPatients)

	return c.JSON(fiber.Map{
		"from":             from.Format("2006-01-02"),
		"to":               to.AddDate(0, 0, -1).Format("2006-01-02"),
		"by_status":        byStatus,
		"by_speciality":    bySpeciality,
		"bookings_per_day": perDay,
		"active_doctors":   activeDoctors,
		"total_patients":   totalPatients,
	})
}
