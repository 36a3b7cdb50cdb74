package admin

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/medbook/clinic-app/db"
	"github.com/medbook/clinic-app/models"
	"github.com/medbook/clinic-app/redis"
	"github.com/medbook/clinic-app/utils"
)

// GetAppointments lists appointments across the clinic, filterable by
// ?status=, ?doctor_id=, ?patient_id=, ?from=, ?to= (dates, YYYY-MM-DD).
func GetAppointments(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	query := db.DB.Preload("Doctor").Preload("Patient").Preload("Dependent")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if doctorID := c.Query("doctor_id"); doctorID != "" {
		query = query.Where("doctor_id = ?", doctorID)
	}
	if patientID := c.Query("patient_id"); patientID != "" {
		query = query.Where("patient_id = ?", patientID)
	}
	loc := utils.ClinicLocation()
	if from := c.Query("from"); from != "" {
		if t, err := time.ParseInLocation("2006-01-02", from, loc); err == nil {
			query = query.Where("start_time >= ?", t)
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.ParseInLocation("2006-01-02", to, loc); err == nil {
			query = query.Where("start_time < ?", t.AddDate(0, 0, 1))
		}
	}

	var total int64
	query.Model(&models.Appointment{}).Count(&total)

	var appointments []models.Appointment
	if err := query.Limit(limit).Offset(offset).Order("start_time desc").Find(&appointments).Error; err != nil {
		return utils.Fail(c, utils.Backend("failed to fetch appointments", err))
	}
	for i := range appointments {
		appointments[i].Doctor.Sanitize()
		appointments[i].Patient.Sanitize()
	}

	return c.JSON(fiber.Map{
		"appointments": appointments,
		"total":        total,
		"page":         page,
		"limit":        limit,
	})
}

// CancelAppointment cancels any scheduled appointment on behalf of the
// clinic and notifies both parties.
func CancelAppointment(c *fiber.Ctx) error {
	adminID := c.Locals("userID").(uint)
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

	var appt models.Appointment
	if err := db.DB.Preload("Doctor").Preload("Patient").First(&appt, id).Error; err != nil {
		return utils.Fail(c, utils.NotFound("appointment not found"))
	}

	if err := appt.Cancel(adminID, input.Reason, time.Now()); err != nil {
		return utils.Fail(c, utils.Conflict(err.Error()))
	}
	if err := db.DB.Save(&appt).Error; err != nil {
		return utils.Fail(c, utils.Backend("failed to cancel appointment", err))
	}

	redis.InvalidateSlots(appt.DoctorID, utils.ClinicDate(appt.StartTime))

	when := appt.StartTime.Format("Mon, 02 Jan 2006 at 03:04 PM")
	for _, n := range []models.Notification{
		{
			UserID:  appt.PatientID,
			Type:    models.NotifyCancelled,
			Title:   "Appointment Cancelled",
			Message: "Your appointment on " + when + " was cancelled by the clinic: " + input.Reason,
		},
		{
			UserID:  appt.DoctorID,
			Type:    models.NotifyCancelled,
			Title:   "Appointment Cancelled",
			Message: "Your appointment on " + when + " was cancelled by the clinic: " + input.Reason,
		},
	} {
		db.DB.Create(&n)
	}
	utils.SendEmailAsync(appt.Patient.Email, "Appointment Cancelled",
		"<p>Your appointment on "+when+" was cancelled by the clinic.</p><p>Reason: "+input.Reason+"</p>")

	appt.Doctor.Sanitize()
	appt.Patient.Sanitize()
	return c.JSON(appt)
}
