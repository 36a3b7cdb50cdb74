package utils

import (
	"os"
	"time"
)

// ClinicDate renders t as the clinic-local calendar date. Slot cache
// keys and grid queries are keyed by this, so every invalidation path
// must go through it or server and clinic timezones drift apart.
func ClinicDate(t time.Time) string {
	return t.In(ClinicLocation()).Format("2006-01-02")
}

// ClinicLocation is the timezone slot dates are interpreted in, set via
// CLINIC_TZ (IANA name). Falls back to UTC.
func ClinicLocation() *time.Location {
	tz := os.Getenv("CLINIC_TZ")
	if tz == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}
