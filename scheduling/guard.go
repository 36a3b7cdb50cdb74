package scheduling

import (
	"context"
	"errors"
)

var ErrSlotTaken = errors.New("time slot is already booked")

// Calendar is the view of one doctor's schedule handed to Book while the
// doctor's calendar is locked.
type Calendar interface {
	// Overlapping reports whether any non-cancelled appointment for the
	// doctor overlaps slot.
	Overlapping(doctorID uint, slot Interval) (bool, error)
	// Reserve persists the pending booking. Only called when no overlap
	// was found.
	Reserve() error
}

// Locker serializes bookings per doctor. The SQL implementation holds a
// row lock on the doctor inside a transaction; tests use a mutex.
type Locker interface {
	Lock(ctx context.Context, doctorID uint, fn func(Calendar) error) error
}

// Book runs the conflict check and the insert as one critical section,
// so two concurrent submissions of the same slot cannot both succeed.
func Book(ctx context.Context, l Locker, doctorID uint, slot Interval) error {
	if err := slot.Validate(); err != nil {
		return err
	}
	return l.Lock(ctx, doctorID, func(cal Calendar) error {
		taken, err := cal.Overlapping(doctorID, slot)
		if err != nil {
			return err
		}
		if taken {
			return ErrSlotTaken
		}
		return cal.Reserve()
	})
}
