package db

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/medbook/clinic-app/models"
	"github.com/medbook/clinic-app/scheduling"
)

// bookingCalendar is the scheduling.Calendar view over one transaction.
type bookingCalendar struct {
	tx   *gorm.DB
	appt *models.Appointment
}

func (c bookingCalendar) Overlapping(doctorID uint, slot scheduling.Interval) (bool, error) {
	// Same blocking rule as BookedIntervals: only cancellation frees a
	// slot, a completed appointment still occupies its interval.
	var conflict models.Appointment
	err := c.tx.Raw(`
		SELECT id
		FROM appointments
		WHERE doctor_id = ? AND status <> ? AND deleted_at IS NULL
		  AND start_time < ? AND end_time > ?
		LIMIT 1
		FOR UPDATE
	`, doctorID, models.StatusCancelled, slot.End, slot.Start).
		Scan(&conflict).Error
	if err != nil {
		return false, err
	}
	return conflict.ID != 0, nil
}

func (c bookingCalendar) Reserve() error {
	return c.tx.Create(c.appt).Error
}

type calendarLocker struct {
	appt *models.Appointment
}

// Lock serializes bookings per doctor by holding the doctor's row for
// the duration of the transaction. Locking conflicting appointment rows
// alone is not enough: when the slot is free there is no row to lock and
// two inserts could both pass the check.
func (l calendarLocker) Lock(ctx context.Context, doctorID uint, fn func(scheduling.Calendar) error) error {
	return DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var locked struct{ ID uint }
		if err := tx.Raw(`SELECT id FROM users WHERE id = ? FOR UPDATE`, doctorID).
			Scan(&locked).Error; err != nil {
			return err
		}
		if locked.ID == 0 {
			return gorm.ErrRecordNotFound
		}
		return fn(bookingCalendar{tx: tx, appt: l.appt})
	})
}

// BookAppointment persists appt only if its slot is still free, as one
// atomic conditional write. Returns scheduling.ErrSlotTaken on conflict.
func BookAppointment(ctx context.Context, appt *models.Appointment) error {
	return scheduling.Book(ctx, calendarLocker{appt: appt}, appt.DoctorID, appt.Slot())
}

// BookedIntervals loads the non-cancelled intervals of a doctor's day,
// the input the slot resolver needs.
func BookedIntervals(doctorID uint, dayStart time.Time) ([]scheduling.Interval, error) {
	dayEnd := dayStart.Add(24 * time.Hour)

	var appts []models.Appointment
	err := DB.
		Where("doctor_id = ? AND status <> ? AND start_time >= ? AND start_time < ?",
			doctorID, models.StatusCancelled, dayStart, dayEnd).
		Order("start_time asc").
		Find(&appts).Error
	if err != nil {
		return nil, err
	}

	intervals := make([]scheduling.Interval, 0, len(appts))
	for i := range appts {
		intervals = append(intervals, appts[i].Slot())
	}
	return intervals, nil
}
