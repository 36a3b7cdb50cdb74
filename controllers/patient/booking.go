package patient

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/medbook/clinic-app/db"
	"github.com/medbook/clinic-app/models"
	"github.com/medbook/clinic-app/redis"
	"github.com/medbook/clinic-app/scheduling"
	"github.com/medbook/clinic-app/utils"
)

// BookAppointment books a slot for the patient (or one of their
// dependents). The requested start must be an offered, available slot;
// the insert itself runs under the per-doctor booking lock so a
// double-submit cannot create two appointments.
func BookAppointment(c *fiber.Ctx) error {
	patientID := c.Locals("userID").(uint)

	type BookingInput struct {
		DoctorID    uint   `json:"doctor_id"`
		DependentID *uint  `json:"dependent_id"`
		StartTime   string `json:"start_time"` // RFC 3339
		SlotMinutes int    `json:"slot_minutes"`
		Notes       string `json:"notes"`
	}

	input := new(BookingInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, utils.Validation("cannot parse JSON body"))
	}
	if input.DoctorID == 0 || input.StartTime == "" {
		return utils.Fail(c, utils.Validation("doctor_id and start_time are required"))
	}

	loc := utils.ClinicLocation()
	start, err := time.Parse(time.RFC3339, input.StartTime)
	if err != nil {
		return utils.Fail(c, utils.Validation("invalid start_time, use RFC 3339"))
	}
	start = start.In(loc)

	var doctor models.User
	if err := db.DB.Preload("Role").Preload("Availability").First(&doctor, input.DoctorID).Error; err != nil {
		return utils.Fail(c, utils.NotFound("doctor not found"))
	}
	if doctor.Role.Name != models.RoleDoctor || !doctor.IsActive {
		return utils.Fail(c, utils.NotFound("doctor not found"))
	}

	if input.DependentID != nil {
		var dependent models.Dependent
		if err := db.DB.First(&dependent, *input.DependentID).Error; err != nil {
			return utils.Fail(c, utils.NotFound("dependent not found"))
		}
		if dependent.PatientID != patientID {
			return utils.Fail(c, utils.Forbidden("dependent does not belong to you"))
		}
	}

	policy, perr := scheduling.PolicyForMinutes(input.SlotMinutes)
	if perr != nil {
		return utils.Fail(c, utils.Validation(perr.Error()))
	}

	// The requested start must match an offered, available slot. This
	// enforces working windows and lead time; the guard below enforces
	// exclusivity against concurrent bookings.
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	booked, err := db.BookedIntervals(input.DoctorID, day)
	if err != nil {
		return utils.Fail(c, utils.Backend("failed to fetch appointments", err))
	}
	grid, err := scheduling.Resolve(models.Windows(doctor.Availability), policy, day, time.Now().In(loc), booked)
	if err != nil {
		return utils.Fail(c, utils.Backend("failed to compute slots", err))
	}
	if grid.Outcome == scheduling.OutcomeNoAvailability {
		return utils.Fail(c, utils.Conflict("doctor has no configured availability on this day"))
	}

	var slot *scheduling.Slot
	for i := range grid.Slots {
		if grid.Slots[i].Start.Equal(start) {
			slot = &grid.Slots[i]
			break
		}
	}
	if slot == nil {
		return utils.Fail(c, utils.Validation("start_time does not match an offered slot"))
	}
	if !slot.Available {
		return utils.Fail(c, utils.Conflict("time slot is not available"))
	}

	appointment := models.Appointment{
		DoctorID:    input.DoctorID,
		PatientID:   patientID,
		DependentID: input.DependentID,
		Speciality:  doctor.Speciality,
		StartTime:   slot.Start,
		EndTime:     slot.End,
		Status:      models.StatusScheduled,
		Notes:       input.Notes,
	}

	if err := db.BookAppointment(c.Context(), &appointment); err != nil {
		if errors.Is(err, scheduling.ErrSlotTaken) {
			return utils.Fail(c, utils.Conflict("time slot was just booked by someone else"))
		}
		return utils.Fail(c, utils.Backend("failed to book appointment", err))
	}

	redis.InvalidateSlots(input.DoctorID, utils.ClinicDate(slot.Start))

	var patient models.User
	db.DB.First(&patient, patientID)
	notifyBooking(&appointment, &doctor, &patient)

	return c.Status(fiber.StatusCreated).JSON(appointment)
}

// CancelAppointment cancels one of the patient's own scheduled
// appointments and frees its slot.
func CancelAppointment(c *fiber.Ctx) error {
	patientID := c.Locals("userID").(uint)
	id := c.Params("id")

	type CancelInput struct {
		Reason string `json:"reason"`
	}
	input := new(CancelInput)
	c.BodyParser(input) // body optional

	var appointment models.Appointment
	if err := db.DB.Preload("Doctor").Preload("Patient").First(&appointment, id).Error; err != nil {
		return utils.Fail(c, utils.NotFound("appointment not found"))
	}
	if appointment.PatientID != patientID {
		return utils.Fail(c, utils.Forbidden("not your appointment"))
	}

	if err := appointment.Cancel(patientID, input.Reason, time.Now()); err != nil {
		return utils.Fail(c, utils.Conflict(err.Error()))
	}
	if err := db.DB.Save(&appointment).Error; err != nil {
		return utils.Fail(c, utils.Backend("failed to cancel appointment", err))
	}

	redis.InvalidateSlots(appointment.DoctorID, utils.ClinicDate(appointment.StartTime))

	createNotification(appointment.DoctorID, models.NotifyCancelled,
		"Appointment cancelled",
		fmt.Sprintf("%s cancelled the appointment on %s.",
			appointment.Patient.FullName(), appointment.StartTime.Format("2006-01-02 15:04")))
	utils.SendEmailAsync(appointment.Doctor.Email, "Appointment Cancelled", fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>The appointment with %s on %s has been cancelled by the patient.</p>
	`, appointment.Doctor.FullName(), appointment.Patient.FullName(),
		appointment.StartTime.Format("2006-01-02 15:04")))

	return c.JSON(appointment)
}

// GetMyAppointments lists the patient's appointments, upcoming by
// default, full history with ?filter=history.
func GetMyAppointments(c *fiber.Ctx) error {
	patientID := c.Locals("userID").(uint)

	query := db.DB.Preload("Doctor").Preload("Dependent").
		Where("patient_id = ?", patientID)

	switch c.Query("filter", "upcoming") {
	case "history":
		query = query.Where("start_time < ? OR status <> ?", time.Now(), models.StatusScheduled).
			Order("start_time desc")
	default:
		query = query.Where("start_time >= ? AND status = ?", time.Now(), models.StatusScheduled).
			Order("start_time asc")
	}

	var appointments []models.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		return utils.Fail(c, utils.Backend("failed to fetch appointments", err))
	}
	for i := range appointments {
		appointments[i].Doctor.Sanitize()
	}

	return c.JSON(fiber.Map{
		"appointments": appointments,
		"count":        len(appointments),
	})
}

func notifyBooking(appointment *models.Appointment, doctor, patient *models.User) {
	when := appointment.StartTime.Format("2006-01-02 15:04")

	createNotification(patient.ID, models.NotifyBooked,
		"Appointment booked",
		fmt.Sprintf("Your appointment with %s is scheduled for %s.", doctor.FullName(), when))
	createNotification(doctor.ID, models.NotifyBooked,
		"New appointment",
		fmt.Sprintf("%s booked an appointment for %s.", patient.FullName(), when))

	utils.SendEmailAsync(patient.Email, "Appointment Confirmation", fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your appointment has been booked.</p>
		<ul>
			<li><strong>Doctor:</strong> %s (%s)</li>
			<li><strong>Start:</strong> %s</li>
			<li><strong>End:</strong> %s</li>
		</ul>
	`, patient.FullName(), doctor.FullName(), doctor.Speciality,
		appointment.StartTime.Format("2006-01-02 15:04"),
		appointment.EndTime.Format("15:04")))

	utils.SendEmailAsync(doctor.Email, "New Appointment Scheduled", fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>A new appointment has been scheduled.</p>
		<ul>
			<li><strong>Patient:</strong> %s</li>
			<li><strong>Start:</strong> %s</li>
			<li><strong>End:</strong> %s</li>
		</ul>
	`, doctor.FullName(), patient.FullName(),
		appointment.StartTime.Format("2006-01-02 15:04"),
		appointment.EndTime.Format("15:04")))
}

func createNotification(userID uint, kind models.NotificationType, title, message string) {
	notification := models.Notification{
		UserID:  userID,
		Type:    kind,
		Title:   title,
		Message: message,
	}
	if err := db.DB.Create(&notification).Error; err != nil {
		// In-app notifications are best effort.
		fmt.Println("failed to create notification:", err)
	}
}
