package scheduling

import (
	"fmt"
	"time"
)

const (
	DefaultSlotLength = time.Hour
	DefaultLeadTime   = 30 * time.Minute

	clockLayout = "15:04"
)

// SlotPolicy controls how a working window is cut into bookable slots.
// It is passed in by the caller so that granularity and lead time are
// configuration, never per-endpoint constants.
type SlotPolicy struct {
	SlotLength time.Duration `json:"slot_length"`
	Buffer     time.Duration `json:"buffer"`    // gap kept between consecutive slots
	LeadTime   time.Duration `json:"lead_time"` // earliest bookable offset from now
}

// PolicyForMinutes maps the caller-facing slot length choice onto a
// policy. Zero means the default; anything but 30 or 60 is rejected
// rather than silently ignored.
func PolicyForMinutes(minutes int) (SlotPolicy, error) {
	switch minutes {
	case 0:
		return SlotPolicy{}, nil
	case 30, 60:
		return SlotPolicy{SlotLength: time.Duration(minutes) * time.Minute}, nil
	}
	return SlotPolicy{}, fmt.Errorf("unsupported slot length %d, choose 30 or 60 minutes", minutes)
}

func (p SlotPolicy) normalized() SlotPolicy {
	if p.SlotLength <= 0 {
		p.SlotLength = DefaultSlotLength
	}
	if p.LeadTime <= 0 {
		p.LeadTime = DefaultLeadTime
	}
	if p.Buffer < 0 {
		p.Buffer = 0
	}
	return p
}

// DayWindow is one weekday's configured working window. Start and End use
// the 24h "HH:MM" clock. Break times are optional; both must be set for
// the break to apply.
type DayWindow struct {
	Day        DayOfWeek
	Start      string
	End        string
	BreakStart string
	BreakEnd   string
	Active     bool
}

type Slot struct {
	Interval
	Available bool `json:"available"`
}

// Label renders the slot the way it is shown to patients.
func (s Slot) Label() string {
	return s.Start.Format("03:04 PM") + " - " + s.End.Format("03:04 PM")
}

type Outcome string

const (
	// OutcomeNoAvailability means the doctor has no active window for the
	// requested weekday. Distinct from a configured day with every slot
	// taken, which callers must report differently.
	OutcomeNoAvailability Outcome = "no_availability"
	OutcomeFullyBooked    Outcome = "fully_booked"
	OutcomeOpen           Outcome = "open"
)

type Grid struct {
	Outcome Outcome `json:"outcome"`
	Slots   []Slot  `json:"slots"`
}

// Resolve computes the slot grid for one doctor on one calendar date.
// booked holds the intervals of that doctor's non-cancelled appointments
// for the date; slots overlapping any of them, or starting before
// now+LeadTime, are kept in the grid but marked unavailable. Slots that
// fall into the configured break are not emitted at all.
func Resolve(windows []DayWindow, policy SlotPolicy, date time.Time, now time.Time, booked []Interval) (Grid, error) {
	policy = policy.normalized()

	day := FromWeekday(date.Weekday())
	var window *DayWindow
	for i := range windows {
		if windows[i].Day == day && windows[i].Active {
			window = &windows[i]
			break
		}
	}
	if window == nil {
		return Grid{Outcome: OutcomeNoAvailability}, nil
	}

	open, err := atClock(date, window.Start)
	if err != nil {
		return Grid{}, fmt.Errorf("invalid window start: %w", err)
	}
	close, err := atClock(date, window.End)
	if err != nil {
		return Grid{}, fmt.Errorf("invalid window end: %w", err)
	}
	if !close.After(open) {
		return Grid{}, fmt.Errorf("window end %s is not after start %s", window.End, window.Start)
	}

	var brk *Interval
	if window.BreakStart != "" && window.BreakEnd != "" {
		bs, err := atClock(date, window.BreakStart)
		if err != nil {
			return Grid{}, fmt.Errorf("invalid break start: %w", err)
		}
		be, err := atClock(date, window.BreakEnd)
		if err != nil {
			return Grid{}, fmt.Errorf("invalid break end: %w", err)
		}
		brk = &Interval{Start: bs, End: be}
	}

	earliest := now.Add(policy.LeadTime)
	step := policy.SlotLength + policy.Buffer

	grid := Grid{Outcome: OutcomeFullyBooked}
	for cur := open; !cur.Add(policy.SlotLength).After(close); cur = cur.Add(step) {
		slot := Slot{
			Interval:  Interval{Start: cur, End: cur.Add(policy.SlotLength)},
			Available: true,
		}
		if brk != nil && slot.Overlaps(*brk) {
			continue
		}
		if slot.Start.Before(earliest) {
			slot.Available = false
		}
		for _, b := range booked {
			if slot.Overlaps(b) {
				slot.Available = false
				break
			}
		}
		if slot.Available {
			grid.Outcome = OutcomeOpen
		}
		grid.Slots = append(grid.Slots, slot)
	}
	return grid, nil
}

func atClock(date time.Time, clock string) (time.Time, error) {
	t, err := time.Parse(clockLayout, clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}
