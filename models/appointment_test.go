package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointmentTransitions(t *testing.T) {
	cases := []struct {
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{StatusScheduled, StatusCompleted, true},
		{StatusScheduled, StatusCancelled, true},
		{StatusScheduled, StatusScheduled, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCompleted, StatusScheduled, false},
		{StatusCancelled, StatusCompleted, false},
		{StatusCancelled, StatusScheduled, false},
	}

	for _, tc := range cases {
		a := Appointment{Status: tc.from}
		err := a.Transition(tc.to)
		if tc.allowed {
			assert.NoError(t, err, "%s -> %s", tc.from, tc.to)
			assert.Equal(t, tc.to, a.Status)
		} else {
			assert.Error(t, err, "%s -> %s", tc.from, tc.to)
			assert.Equal(t, tc.from, a.Status, "failed transition must not change status")
		}
	}
}

func TestAppointmentCancelRecordsActor(t *testing.T) {
	a := Appointment{Status: StatusScheduled}
	at := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	require.NoError(t, a.Cancel(42, "patient request", at))

	assert.Equal(t, StatusCancelled, a.Status)
	require.NotNil(t, a.CancelledBy)
	assert.Equal(t, uint(42), *a.CancelledBy)
	require.NotNil(t, a.CancelledAt)
	assert.Equal(t, at, *a.CancelledAt)
	assert.Equal(t, "patient request", a.CancelNote)

	// A cancelled appointment cannot be cancelled again.
	assert.Error(t, a.Cancel(7, "again", at.Add(time.Hour)))
}

func TestAppointmentSlot(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	a := Appointment{StartTime: start, EndTime: start.Add(time.Hour)}
	slot := a.Slot()
	assert.Equal(t, start, slot.Start)
	assert.Equal(t, time.Hour, slot.Duration())
}
