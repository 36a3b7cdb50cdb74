package scheduling

import (
	"errors"
	"time"
)

var ErrInvalidSlot = errors.New("slot end must be after slot start")

// Interval is a half-open [Start, End) time window. Appointments that
// share only a boundary do not overlap.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

func (iv Interval) Validate() error {
	if !iv.End.After(iv.Start) {
		return ErrInvalidSlot
	}
	return nil
}
