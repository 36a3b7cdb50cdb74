package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/medbook/clinic-app/db"
	"github.com/medbook/clinic-app/models"
	"github.com/medbook/clinic-app/utils"
)

// StartCronJobs initializes and starts the cron scheduler for appointment
// reminders and auto-completion of elapsed visits.
func StartCronJobs() {
	c := cron.New()

	_, err := c.AddFunc("*/10 * * * *", sendAppointmentReminders)
	if err != nil {
		log.Fatalf("Failed to add reminder cron job: %v", err)
	}
	_, err = c.AddFunc("30 * * * *", completeElapsedAppointments)
	if err != nil {
		log.Fatalf("Failed to add auto-complete cron job: %v", err)
	}

	c.Start()
	log.Println("Cron job scheduler started")
}

// reminderTag marks a reminder notification with its appointment. The
// closing parenthesis keeps the tag for appointment 1 from matching
// inside the tag for appointment 10.
func reminderTag(id uint) string {
	return fmt.Sprintf("(#%d)", id)
}

// sendAppointmentReminders notifies patients about appointments starting
// within the next hour. A reminder notification row doubles as the
// sent-marker, so re-runs inside the window do not send twice.
func sendAppointmentReminders() {
	now := time.Now()
	startWindow := now.Add(50 * time.Minute)
	endWindow := now.Add(70 * time.Minute)

	var appointments []models.Appointment
	err := db.DB.Preload("Patient").Preload("Doctor").
		Where("status = ? AND start_time BETWEEN ? AND ?", models.StatusScheduled, startWindow, endWindow).
		Find(&appointments).Error
	if err != nil {
		log.Printf("Error fetching appointments for reminders: %v", err)
		return
	}

	for _, appointment := range appointments {
		var already int64
		db.DB.Model(&models.Notification{}).
			Where("user_id = ? AND type = ? AND message LIKE ?",
				appointment.PatientID, models.NotifyReminder, "%"+reminderTag(appointment.ID)+"%").
			Count(&already)
		if already > 0 {
			continue
		}

		when := appointment.StartTime.Format("03:04 PM")
		db.DB.Create(&models.Notification{
			UserID:  appointment.PatientID,
			Type:    models.NotifyReminder,
			Title:   "Appointment Reminder",
			Message: fmt.Sprintf("Your appointment %s with Dr. %s starts at %s.", reminderTag(appointment.ID), appointment.Doctor.FullName(), when),
		})

		if err := sendReminderEmail(&appointment); err != nil {
			log.Printf("Failed to send reminder for appointment %d: %v", appointment.ID, err)
			continue
		}
		log.Printf("Sent reminder for appointment %d to %s", appointment.ID, appointment.Patient.Email)
	}
}

// completeElapsedAppointments marks scheduled appointments whose end time
// passed more than a day ago as completed, so no-show doctors do not leave
// stale rows blocking history views.
func completeElapsedAppointments() {
	cutoff := time.Now().AddDate(0, 0, -1)

	var appointments []models.Appointment
	err := db.DB.
		Where("status = ? AND end_time < ?", models.StatusScheduled, cutoff).
		Find(&appointments).Error
	if err != nil {
		log.Printf("Error fetching elapsed appointments: %v", err)
		return
	}

	for _, appointment := range appointments {
		if err := appointment.Transition(models.StatusCompleted); err != nil {
			log.Printf("Cannot auto-complete appointment %d: %v", appointment.ID, err)
			continue
		}
		if err := db.DB.Save(&appointment).Error; err != nil {
			log.Printf("Failed to auto-complete appointment %d: %v", appointment.ID, err)
		}
	}
	if len(appointments) > 0 {
		log.Printf("Auto-completed %d elapsed appointments", len(appointments))
	}
}

func sendReminderEmail(appointment *models.Appointment) error {
	subject := "Reminder: Upcoming Appointment"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your upcoming appointment scheduled in one hour.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Doctor:</strong> Dr. %s (%s)</li>
			<li><strong>Start Time:</strong> %s</li>
			<li><strong>End Time:</strong> %s</li>
		</ul>
		<p>Please arrive on time. If you need to cancel, do so as soon as possible so the slot frees up for someone else.</p>
		<p>Best regards,</p>
		<p>Your Clinic Team</p>
	`, appointment.Patient.FullName(), appointment.Doctor.FullName(), appointment.Doctor.Speciality,
		appointment.StartTime.Format("2006-01-02 03:04 PM"),
		appointment.EndTime.Format("2006-01-02 03:04 PM"))

	return utils.SendEmail(appointment.Patient.Email, subject, body)
}
