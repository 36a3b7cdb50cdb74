package models

import (
	"gorm.io/gorm"

	"github.com/medbook/clinic-app/scheduling"
)

// Availability is one weekday's working window for a doctor. Times use
// the 24h "HH:MM" clock.
type Availability struct {
	gorm.Model
	DoctorID   uint                 `json:"doctor_id" gorm:"index"`
	Doctor     User                 `json:"doctor,omitempty" gorm:"foreignKey:DoctorID"`
	Day        scheduling.DayOfWeek `json:"day"`
	StartTime  string               `json:"start_time"`
	EndTime    string               `json:"end_time"`
	BreakStart *string              `json:"break_start,omitempty"`
	BreakEnd   *string              `json:"break_end,omitempty"`
	IsActive   bool                 `json:"is_active" gorm:"default:true"`
}

func (a *Availability) Window() scheduling.DayWindow {
	w := scheduling.DayWindow{
		Day:    a.Day,
		Start:  a.StartTime,
		End:    a.EndTime,
		Active: a.IsActive,
	}
	if a.BreakStart != nil && a.BreakEnd != nil {
		w.BreakStart = *a.BreakStart
		w.BreakEnd = *a.BreakEnd
	}
	return w
}

// Windows converts a doctor's availability rows for the resolver.
func Windows(rows []Availability) []scheduling.DayWindow {
	windows := make([]scheduling.DayWindow, 0, len(rows))
	for i := range rows {
		windows = append(windows, rows[i].Window())
	}
	return windows
}
