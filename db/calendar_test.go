package db

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/medbook/clinic-app/models"
	"github.com/medbook/clinic-app/scheduling"
)

func mockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{})
	require.NoError(t, err)
	DB = gdb
	return mock
}

// A completed appointment still occupies its interval: the guard must
// refuse any overlap that is not cancelled, not just scheduled ones.
func TestBookingGuardBlocksAnyNonCancelledOverlap(t *testing.T) {
	mock := mockDB(t)

	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	appt := &models.Appointment{
		DoctorID:  7,
		PatientID: 3,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM users WHERE id = \$1 FOR UPDATE`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery(`FROM appointments`).
		WithArgs(7, string(models.StatusCancelled), appt.EndTime, appt.StartTime).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectRollback()

	err := BookAppointment(context.Background(), appt)
	assert.ErrorIs(t, err, scheduling.ErrSlotTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingGuardReservesFreeSlot(t *testing.T) {
	mock := mockDB(t)

	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	appt := &models.Appointment{
		DoctorID:  7,
		PatientID: 3,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM users WHERE id = \$1 FOR UPDATE`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery(`FROM appointments`).
		WithArgs(7, string(models.StatusCancelled), appt.EndTime, appt.StartTime).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "appointments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(101))
	mock.ExpectCommit()

	require.NoError(t, BookAppointment(context.Background(), appt))
	assert.NoError(t, mock.ExpectationsWereMet())
}
