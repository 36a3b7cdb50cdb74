package doctor

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/medbook/clinic-app/db"
	"github.com/medbook/clinic-app/models"
	"github.com/medbook/clinic-app/scheduling"
	"github.com/medbook/clinic-app/utils"
)

type availabilityInput struct {
	Day        string  `json:"day"` // weekday name or 3-letter abbreviation
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	BreakStart *string `json:"break_start"`
	BreakEnd   *string `json:"break_end"`
	IsActive   *bool   `json:"is_active"`
}

// GetAvailability returns the doctor's weekly working windows.
func GetAvailability(c *fiber.Ctx) error {
	doctorID := c.Locals("userID").(uint)

	var rows []models.Availability
	if err := db.DB.Where("doctor_id = ?", doctorID).Order("day asc").Find(&rows).Error; err != nil {
		return utils.Fail(c, utils.Backend("failed to fetch availability", err))
	}
	return c.JSON(rows)
}

// SetAvailability creates or replaces the window for one weekday. One
// row per weekday keeps the resolver's input unambiguous.
func SetAvailability(c *fiber.Ctx) error {
	doctorID := c.Locals("userID").(uint)

	input := new(availabilityInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, utils.Validation("cannot parse JSON body"))
	}
	if err := utils.Required(map[string]string{
		"day":        input.Day,
		"start_time": input.StartTime,
		"end_time":   input.EndTime,
	}); err != nil {
		return utils.Fail(c, err)
	}

	day, err := scheduling.ParseDayOfWeek(input.Day)
	if err != nil {
		return utils.Fail(c, utils.Validation(err.Error()))
	}
	if _, err := time.Parse("15:04", input.StartTime); err != nil {
		return utils.Fail(c, utils.Validation("invalid start_time, use HH:MM"))
	}
	if _, err := time.Parse("15:04", input.EndTime); err != nil {
		return utils.Fail(c, utils.Validation("invalid end_time, use HH:MM"))
	}

	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	var row models.Availability
	result := db.DB.Where("doctor_id = ? AND day = ?", doctorID, day).First(&row)
	row.DoctorID = doctorID
	row.Day = day
	row.StartTime = input.StartTime
	row.EndTime = input.EndTime
	row.BreakStart = input.BreakStart
	row.BreakEnd = input.BreakEnd
	row.IsActive = active

	if result.RowsAffected > 0 {
		err = db.DB.Save(&row).Error
	} else {
		err = db.DB.Create(&row).Error
	}
	if err != nil {
		return utils.Fail(c, utils.Backend("failed to save availability", err))
	}
	return c.JSON(row)
}

// DeleteAvailability removes one weekday's window.
func DeleteAvailability(c *fiber.Ctx) error {
	doctorID := c.Locals("userID").(uint)
	id := c.Params("id")

	var row models.Availability
	if err := db.DB.First(&row, id).Error; err != nil {
		return utils.Fail(c, utils.NotFound("availability not found"))
	}
	if row.DoctorID != doctorID {
		return utils.Fail(c, utils.Forbidden("not your availability"))
	}

	if err := db.DB.Delete(&row).Error; err != nil {
		return utils.Fail(c, utils.Backend("failed to delete availability", err))
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetDayAgenda returns the doctor's own slot grid for one date, with
// booked slots resolved against their appointments.
func GetDayAgenda(c *fiber.Ctx) error {
	doctorID := c.Locals("userID").(uint)

	loc := utils.ClinicLocation()
	date, err := time.ParseInLocation("2006-01-02", c.Query("date"), loc)
	if err != nil {
		return utils.Fail(c, utils.Validation("invalid date, use YYYY-MM-DD"))
	}

	var rows []models.Availability
	if err := db.DB.Where("doctor_id = ?", doctorID).Find(&rows).Error; err != nil {
		return utils.Fail(c, utils.Backend("failed to fetch availability", err))
	}
	booked, err := db.BookedIntervals(doctorID, date)
	if err != nil {
		return utils.Fail(c, utils.Backend("failed to fetch appointments", err))
	}

	grid, err := scheduling.Resolve(models.Windows(rows), scheduling.SlotPolicy{}, date, time.Now().In(loc), booked)
	if err != nil {
		return utils.Fail(c, utils.Backend("failed to compute agenda", err))
	}

	var appointments []models.Appointment
	dayEnd := date.Add(24 * time.Hour)
	db.DB.Preload("Patient").Preload("Dependent").
		Where("doctor_id = ? AND status = ? AND start_time >= ? AND start_time < ?",
			doctorID, models.StatusScheduled, date, dayEnd).
		Order("start_time asc").
		Find(&appointments)
	for i := range appointments {
		appointments[i].Patient.Sanitize()
	}

	return c.JSON(fiber.Map{
		"outcome":      grid.Outcome,
		"slots":        grid.Slots,
		"appointments": appointments,
	})
}
