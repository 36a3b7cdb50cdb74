package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	// 2025-03-10 is a Monday, 2025-03-11 a Tuesday.
	monday  = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	tuesday = time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)
)

func weekdayWindows() []DayWindow {
	return []DayWindow{
		{Day: Monday, Start: "09:00", End: "17:00", Active: true},
		{Day: Wednesday, Start: "09:00", End: "17:00", Active: true},
		{Day: Friday, Start: "09:00", End: "17:00", Active: true},
	}
}

// dayBefore yields a "now" far enough in the past that the lead time
// cannot touch any slot on the target date.
func dayBefore(date time.Time) time.Time {
	return date.AddDate(0, 0, -1)
}

func TestResolveFullGridWhenUnbooked(t *testing.T) {
	grid, err := Resolve(weekdayWindows(), SlotPolicy{}, monday, dayBefore(monday), nil)
	require.NoError(t, err)

	assert.Equal(t, OutcomeOpen, grid.Outcome)
	require.Len(t, grid.Slots, 8) // hourly 09:00 .. 16:00 starts
	for i, slot := range grid.Slots {
		assert.True(t, slot.Available, "slot %d should be available", i)
		assert.Equal(t, time.Hour, slot.Duration())
	}
	assert.Equal(t, 9, grid.Slots[0].Start.Hour())
	assert.Equal(t, 16, grid.Slots[7].Start.Hour())
	assert.Equal(t, "09:00 AM - 10:00 AM", grid.Slots[0].Label())
}

func TestResolveOffDayReturnsNoAvailability(t *testing.T) {
	grid, err := Resolve(weekdayWindows(), SlotPolicy{}, tuesday, dayBefore(tuesday), nil)
	require.NoError(t, err)

	assert.Equal(t, OutcomeNoAvailability, grid.Outcome)
	assert.Empty(t, grid.Slots, "off-day must not yield a partial grid")
}

func TestResolveInactiveWindowIsNoAvailability(t *testing.T) {
	windows := []DayWindow{{Day: Monday, Start: "09:00", End: "17:00", Active: false}}
	grid, err := Resolve(windows, SlotPolicy{}, monday, dayBefore(monday), nil)
	require.NoError(t, err)
	assert.Equal(t, OutcomeNoAvailability, grid.Outcome)
}

func TestResolveSameDayLeadTime(t *testing.T) {
	windows := []DayWindow{{Day: Monday, Start: "09:00", End: "18:30", Active: true}}
	now := time.Date(2025, 3, 10, 16, 45, 0, 0, time.UTC)

	grid, err := Resolve(windows, SlotPolicy{SlotLength: 30 * time.Minute}, monday, now, nil)
	require.NoError(t, err)

	cutoff := now.Add(DefaultLeadTime) // 17:15
	for _, slot := range grid.Slots {
		if slot.Start.Before(cutoff) {
			assert.False(t, slot.Available, "slot %s starts inside the lead window", slot.Label())
		} else {
			assert.True(t, slot.Available, "slot %s is past the lead window", slot.Label())
		}
	}
	// The 17:30 slot in particular must survive the 16:45 query.
	last := grid.Slots[len(grid.Slots)-2]
	assert.Equal(t, 17, last.Start.Hour())
	assert.Equal(t, 30, last.Start.Minute())
	assert.True(t, last.Available)
}

func TestResolveMarksBookedSlots(t *testing.T) {
	booked := []Interval{{
		Start: time.Date(2025, 3, 10, 11, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
	}}

	grid, err := Resolve(weekdayWindows(), SlotPolicy{}, monday, dayBefore(monday), booked)
	require.NoError(t, err)

	assert.Equal(t, OutcomeOpen, grid.Outcome)
	for _, slot := range grid.Slots {
		if slot.Start.Hour() == 11 {
			assert.False(t, slot.Available)
		} else {
			assert.True(t, slot.Available)
		}
	}
}

// Cancelling one appointment must not change any other slot: callers drop
// the cancelled interval from booked and everything else stays as it was.
func TestResolveCancellationOnlyFreesItsOwnSlot(t *testing.T) {
	at := func(h int) Interval {
		return Interval{
			Start: time.Date(2025, 3, 10, h, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 3, 10, h+1, 0, 0, 0, time.UTC),
		}
	}

	before, err := Resolve(weekdayWindows(), SlotPolicy{}, monday, dayBefore(monday), []Interval{at(10), at(14)})
	require.NoError(t, err)
	after, err := Resolve(weekdayWindows(), SlotPolicy{}, monday, dayBefore(monday), []Interval{at(14)})
	require.NoError(t, err)

	require.Len(t, after.Slots, len(before.Slots))
	for i := range before.Slots {
		if before.Slots[i].Start.Hour() == 10 {
			assert.False(t, before.Slots[i].Available)
			assert.True(t, after.Slots[i].Available)
			continue
		}
		assert.Equal(t, before.Slots[i].Available, after.Slots[i].Available)
	}
}

func TestResolveFullyBookedIsDistinctFromNoAvailability(t *testing.T) {
	windows := []DayWindow{{Day: Monday, Start: "09:00", End: "11:00", Active: true}}
	booked := []Interval{{
		Start: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 3, 10, 11, 0, 0, 0, time.UTC),
	}}

	grid, err := Resolve(windows, SlotPolicy{}, monday, dayBefore(monday), booked)
	require.NoError(t, err)

	assert.Equal(t, OutcomeFullyBooked, grid.Outcome)
	require.Len(t, grid.Slots, 2)
	for _, slot := range grid.Slots {
		assert.False(t, slot.Available)
	}
}

func TestResolveSkipsBreakWindow(t *testing.T) {
	windows := []DayWindow{{
		Day: Monday, Start: "09:00", End: "13:00",
		BreakStart: "11:00", BreakEnd: "12:00", Active: true,
	}}

	grid, err := Resolve(windows, SlotPolicy{}, monday, dayBefore(monday), nil)
	require.NoError(t, err)

	require.Len(t, grid.Slots, 3)
	for _, slot := range grid.Slots {
		assert.NotEqual(t, 11, slot.Start.Hour())
	}
}

func TestResolveRejectsBadClock(t *testing.T) {
	windows := []DayWindow{{Day: Monday, Start: "9 AM", End: "17:00", Active: true}}
	_, err := Resolve(windows, SlotPolicy{}, monday, dayBefore(monday), nil)
	assert.Error(t, err)
}

func TestIntervalOverlapsIsHalfOpen(t *testing.T) {
	a := Interval{Start: monday.Add(9 * time.Hour), End: monday.Add(10 * time.Hour)}
	b := Interval{Start: monday.Add(10 * time.Hour), End: monday.Add(11 * time.Hour)}
	c := Interval{Start: monday.Add(9*time.Hour + 30*time.Minute), End: monday.Add(10*time.Hour + 30*time.Minute)}

	assert.False(t, a.Overlaps(b), "shared boundary is not an overlap")
	assert.False(t, b.Overlaps(a))
	assert.True(t, a.Overlaps(c))
	assert.True(t, c.Overlaps(b))
}

func TestPolicyForMinutes(t *testing.T) {
	policy, err := PolicyForMinutes(0)
	require.NoError(t, err)
	assert.Zero(t, policy.SlotLength, "zero means the default length")

	policy, err = PolicyForMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, policy.SlotLength)

	policy, err = PolicyForMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, policy.SlotLength)

	for _, bad := range []int{15, 45, 90, -30} {
		_, err := PolicyForMinutes(bad)
		assert.Error(t, err, "%d minutes", bad)
	}
}

func TestParseDayOfWeek(t *testing.T) {
	cases := map[string]DayOfWeek{
		"Monday":    Monday,
		"monday":    Monday,
		"MON":       Monday,
		" fri ":     Friday,
		"Sunday":    Sunday,
		"wednesday": Wednesday,
	}
	for in, want := range cases {
		got, err := ParseDayOfWeek(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "Monstrous", "M", "funday", "8"} {
		_, err := ParseDayOfWeek(in)
		assert.Error(t, err, in)
	}
}
