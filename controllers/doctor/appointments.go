package doctor

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/medbook/clinic-app/db"
	"github.com/medbook/clinic-app/models"
	"github.com/medbook/clinic-app/redis"
	"github.com/medbook/clinic-app/utils"
)

// GetUpcomingAppointments lists the doctor's scheduled appointments in a
// date window selected by ?filter=today|tomorrow|week|month.
func GetUpcomingAppointments(c *fiber.Ctx) error {
	doctorID := c.Locals("userID").(uint)

	now := time.Now()
	startDate := now
	endDate := now.AddDate(0, 1, 0)

	switch c.Query("filter", "month") {
	case "today":
		startDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		endDate = startDate.Add(24 * time.Hour)
	case "tomorrow":
		tomorrow := now.AddDate(0, 0, 1)
		startDate = time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, now.Location())
		endDate = startDate.Add(24 * time.Hour)
	case "week":
		endDate = now.AddDate(0, 0, 7)
	}

	limit := 10
	if parsed := c.QueryInt("limit"); parsed > 0 {
		limit = parsed
	}

	var appointments []models.Appointment
	err := db.DB.Preload("Patient").Preload("Dependent").
		Where("doctor_id = ? AND status = ?", doctorID, models.StatusScheduled).
		Where("start_time >= ? AND start_time < ?", startDate, endDate).
		Order("start_time asc").
		Limit(limit).
		Find(&appointments).Error
	if err != nil {
		return utils.Fail(c, utils.Backend("failed to fetch appointments", err))
	}
	for i := range appointments {
		appointments[i].Patient.Sanitize()
	}

	return c.JSON(fiber.Map{
		"appointments": appointments,
		"count":        len(appointments),
	})
}

// GetAppointmentHistory pages through the doctor's past appointments.
func GetAppointmentHistory(c *fiber.Ctx) error {
	doctorID := c.Locals("userID").(uint)

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	query := db.DB.Preload("Patient").Preload("Dependent").
		Where("doctor_id = ?", doctorID).
		Where("status <> ? OR start_time < ?", models.StatusScheduled, time.Now())

	var count int64
	query.Model(&models.Appointment{}).Count(&count)

	var appointments []models.Appointment
	if err := query.Order("start_time desc").Limit(limit).Offset(offset).Find(&appointments).Error; err != nil {
		return utils.Fail(c, utils.Backend("failed to fetch appointments", err))
	}
	for i := range appointments {
		appointments[i].Patient.Sanitize()
	}

	return c.JSON(fiber.Map{
		"appointments": appointments,
		"total":        count,
		"page":         page,
		"limit":        limit,
	})
}

// CompleteAppointment marks a scheduled appointment completed, with
// optional visit notes.
func CompleteAppointment(c *fiber.Ctx) error {
	doctorID := c.Locals("userID").(uint)
	id := c.Params("id")

	type CompleteInput struct {
		Notes string `json:"notes"`
	}
	input := new(CompleteInput)
	c.BodyParser(input) // body optional

	var appointment models.Appointment
	if err := db.DB.Preload("Patient").First(&appointment, id).Error; err != nil {
		return utils.Fail(c, utils.NotFound("appointment not found"))
	}
	if appointment.DoctorID != doctorID {
		return utils.Fail(c, utils.Forbidden("not your appointment"))
	}

	if err := appointment.Transition(models.StatusCompleted); err != nil {
		return utils.Fail(c, utils.Conflict(err.Error()))
	}
	if input.Notes != "" {
		appointment.Notes = input.Notes
	}
	if err := db.DB.Save(&appointment).Error; err != nil {
		return utils.Fail(c, utils.Backend("failed to update appointment", err))
	}

	notify(appointment.PatientID, models.NotifyCompleted, "Appointment completed",
		fmt.Sprintf("Your appointment on %s has been marked completed.",
			appointment.StartTime.Format("2006-01-02 15:04")))

	return c.JSON(appointment)
}

// CancelAppointment lets the doctor cancel with a reason; the patient is
// notified and the slot opens up again.
func CancelAppointment(c *fiber.Ctx) error {
	doctorID := c.Locals("userID").(uint)
	id := c.Params("id")

	type CancelInput struct {
		Reason string `json:"reason"`
	}
	input := new(CancelInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, utils.Validation("cannot parse JSON body"))
	}
	if input.Reason == "" {
		return utils.Fail(c, utils.Validation("a cancellation reason is required"))
	}

	var appointment models.Appointment
	if err := db.DB.Preload("Patient").Preload("Doctor").First(&appointment, id).Error; err != nil {
		return utils.Fail(c, utils.NotFound("appointment not found"))
	}
	if appointment.DoctorID != doctorID {
		return utils.Fail(c, utils.Forbidden("not your appointment"))
	}

	if err := appointment.Cancel(doctorID, input.Reason, time.Now()); err != nil {
		return utils.Fail(c, utils.Conflict(err.Error()))
	}
	if err := db.DB.Save(&appointment).Error; err != nil {
		return utils.Fail(c, utils.Backend("failed to cancel appointment", err))
	}

	redis.InvalidateSlots(doctorID, utils.ClinicDate(appointment.StartTime))

	notify(appointment.PatientID, models.NotifyCancelled, "Appointment cancelled",
		fmt.Sprintf("Dr. %s cancelled your appointment on %s: %s",
			appointment.Doctor.LastName, appointment.StartTime.Format("2006-01-02 15:04"), input.Reason))
	utils.SendEmailAsync(appointment.Patient.Email, "Appointment Cancelled", fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your appointment on %s was cancelled by the doctor.</p>
		<p><strong>Reason:</strong> %s</p>
		<p>Please book a new slot at your convenience.</p>
	`, appointment.Patient.FullName(), appointment.StartTime.Format("2006-01-02 15:04"), input.Reason))

	return c.JSON(appointment)
}

// AddNotes appends or replaces the doctor's notes on an appointment.
func AddNotes(c *fiber.Ctx) error {
	doctorID := c.Locals("userID").(uint)
	id := c.Params("id")

	type NotesInput struct {
		Notes string `json:"notes"`
	}
	input := new(NotesInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, utils.Validation("cannot parse JSON body"))
	}

	var appointment models.Appointment
	if err := db.DB.First(&appointment, id).Error; err != nil {
		return utils.Fail(c, utils.NotFound("appointment not found"))
	}
	if appointment.DoctorID != doctorID {
		return utils.Fail(c, utils.Forbidden("not your appointment"))
	}

	if err := db.DB.Model(&appointment).Update("notes", input.Notes).Error; err != nil {
		return utils.Fail(c, utils.Backend("failed to update notes", err))
	}
	return c.JSON(appointment)
}

func notify(userID uint, kind models.NotificationType, title, message string) {
	notification := models.Notification{
		UserID:  userID,
		Type:    kind,
		Title:   title,
		Message: message,
	}
	if err := db.DB.Create(&notification).Error; err != nil {
		fmt.Println("failed to create notification:", err)
	}
}
