package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClinicDateUsesClinicZone(t *testing.T) {
	// 20:00 UTC on March 10 is already March 11 in Kolkata.
	at := time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC)

	t.Setenv("CLINIC_TZ", "Asia/Kolkata")
	assert.Equal(t, "2025-03-11", ClinicDate(at))

	t.Setenv("CLINIC_TZ", "")
	assert.Equal(t, "2025-03-10", ClinicDate(at))
}

func TestClinicLocationFallsBackToUTC(t *testing.T) {
	t.Setenv("CLINIC_TZ", "Not/AZone")
	assert.Equal(t, time.UTC, ClinicLocation())
}
