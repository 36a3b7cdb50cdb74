package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/medbook/clinic-app/scheduling"
)

type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment keeps the booked window as a structured (StartTime, EndTime)
// interval. Appointments are never deleted; cancellation only flips the
// status and records who cancelled and when.
type Appointment struct {
	gorm.Model
	DoctorID    uint              `json:"doctor_id" gorm:"index"`
	Doctor      User              `json:"doctor,omitempty" gorm:"foreignKey:DoctorID"`
	PatientID   uint              `json:"patient_id" gorm:"index"`
	Patient     User              `json:"patient,omitempty" gorm:"foreignKey:PatientID"`
	DependentID *uint             `json:"dependent_id,omitempty"`
	Dependent   *Dependent        `json:"dependent,omitempty" gorm:"foreignKey:DependentID"`
	Speciality  string            `json:"speciality"`
	StartTime   time.Time         `json:"start_time" gorm:"index"`
	EndTime     time.Time         `json:"end_time"`
	Status      AppointmentStatus `json:"status"`
	Notes       string            `json:"notes"`
	CancelledBy *uint             `json:"cancelled_by,omitempty"`
	CancelledAt *time.Time        `json:"cancelled_at,omitempty"`
	CancelNote  string            `json:"cancel_note,omitempty"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	return nil
}

func (a *Appointment) Slot() scheduling.Interval {
	return scheduling.Interval{Start: a.StartTime, End: a.EndTime}
}

// Transition enforces the status machine: scheduled may complete or
// cancel, terminal states never move again.
func (a *Appointment) Transition(newStatus AppointmentStatus) error {
	switch a.Status {
	case StatusScheduled:
		if newStatus != StatusCompleted && newStatus != StatusCancelled {
			return fmt.Errorf("invalid transition from scheduled to %s", newStatus)
		}
	case StatusCompleted, StatusCancelled:
		return fmt.Errorf("no transitions allowed from %s", a.Status)
	default:
		return fmt.Errorf("unknown status %q", a.Status)
	}
	a.Status = newStatus
	return nil
}

// Cancel applies the cancelled transition and records the actor.
func (a *Appointment) Cancel(byUserID uint, note string, at time.Time) error {
	if err := a.Transition(StatusCancelled); err != nil {
		return err
	}
	a.CancelledBy = &byUserID
	a.CancelledAt = &at
	a.CancelNote = note
	return nil
}
