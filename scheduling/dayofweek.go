package scheduling

import (
	"fmt"
	"strings"
	"time"
)

type DayOfWeek int

const (
	Sunday DayOfWeek = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var dayNames = [...]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

func (d DayOfWeek) String() string {
	if d < Sunday || d > Saturday {
		return fmt.Sprintf("DayOfWeek(%d)", int(d))
	}
	return dayNames[d]
}

func (d DayOfWeek) Valid() bool {
	return d >= Sunday && d <= Saturday
}

// ParseDayOfWeek accepts the canonical weekday name or its three-letter
// abbreviation, case-insensitive. Anything looser than that is rejected
// so that "Mon" and "Monday" can never silently miss each other.
func ParseDayOfWeek(s string) (DayOfWeek, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, full := range dayNames {
		lower := strings.ToLower(full)
		if name == lower || name == lower[:3] {
			return DayOfWeek(i), nil
		}
	}
	return 0, fmt.Errorf("invalid day of week: %q", s)
}

// FromWeekday maps the standard library weekday onto the canonical enum.
func FromWeekday(w time.Weekday) DayOfWeek {
	return DayOfWeek(int(w))
}
