package scheduling

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryCalendar backs the guard with a mutex, the in-process equivalent
// of the SQL store's per-doctor row lock.
type memoryCalendar struct {
	mu      sync.Mutex
	booked  map[uint][]Interval
	pending Interval
}

func newMemoryCalendar() *memoryCalendar {
	return &memoryCalendar{booked: make(map[uint][]Interval)}
}

func (m *memoryCalendar) Lock(ctx context.Context, doctorID uint, fn func(Calendar) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(m)
}

func (m *memoryCalendar) Overlapping(doctorID uint, slot Interval) (bool, error) {
	m.pending = slot
	for _, iv := range m.booked[doctorID] {
		if iv.Overlaps(slot) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryCalendar) Reserve() error {
	m.booked[1] = append(m.booked[1], m.pending)
	return nil
}

func TestBookRejectsInvalidSlot(t *testing.T) {
	cal := newMemoryCalendar()
	now := time.Now()
	err := Book(context.Background(), cal, 1, Interval{Start: now, End: now})
	assert.ErrorIs(t, err, ErrInvalidSlot)
}

func TestBookRejectsOverlap(t *testing.T) {
	cal := newMemoryCalendar()
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	slot := Interval{Start: start, End: start.Add(time.Hour)}

	require.NoError(t, Book(context.Background(), cal, 1, slot))

	half := Interval{Start: start.Add(30 * time.Minute), End: start.Add(90 * time.Minute)}
	assert.ErrorIs(t, Book(context.Background(), cal, 1, half), ErrSlotTaken)

	next := Interval{Start: start.Add(time.Hour), End: start.Add(2 * time.Hour)}
	assert.NoError(t, Book(context.Background(), cal, 1, next), "adjacent slot must stay bookable")
}

// A double-submit of the same slot must end with exactly one appointment,
// no matter how the goroutines interleave.
func TestBookConcurrentDoubleSubmit(t *testing.T) {
	cal := newMemoryCalendar()
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	slot := Interval{Start: start, End: start.Add(time.Hour)}

	const submits = 16
	errs := make(chan error, submits)
	var wg sync.WaitGroup
	for i := 0; i < submits; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- Book(context.Background(), cal, 1, slot)
		}()
	}
	wg.Wait()
	close(errs)

	var ok, taken int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrSlotTaken):
			taken++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok, "exactly one submission may win the slot")
	assert.Equal(t, submits-1, taken)
	assert.Len(t, cal.booked[1], 1)
}
