package availability

import (
	"sort"
	"time"

	"github.com/Acefayad2/CRM-Portal/internal/config"
	"github.com/Acefayad2/CRM-Portal/pkg/calendar"
)

// Slot is a free interval on a teammate's day, derived on every query and
// never persisted.
type Slot struct {
	Start calendar.TimeOfDay
	End   calendar.TimeOfDay
}

func (s Slot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// BusyTime is one entry of the "busy times" panel shown next to the free
// slots. Time blocks keep their title hidden.
type BusyTime struct {
	Start     calendar.TimeOfDay
	End       calendar.TimeOfDay
	Title     string
	TimeBlock bool
}

// Calculator computes free slots within a fixed working window. Slots shorter
// than MinSlot are not offered.
type Calculator struct {
	WindowStart calendar.TimeOfDay
	WindowEnd   calendar.TimeOfDay
	MinSlot     time.Duration
}

// NewCalculator builds a Calculator from configuration.
func NewCalculator(cfg config.Availability) (*Calculator, error) {
	windowStart, err := calendar.ParseTimeOfDay(cfg.WindowStart)
	if err != nil {
		return nil, err
	}
	windowEnd, err := calendar.ParseTimeOfDay(cfg.WindowEnd)
	if err != nil {
		return nil, err
	}
	return &Calculator{
		WindowStart: windowStart,
		WindowEnd:   windowEnd,
		MinSlot:     time.Duration(cfg.MinSlotMinutes) * time.Minute,
	}, nil
}

// DefaultCalculator uses the standard 06:00-22:00 window with 30 minute slots.
func DefaultCalculator() *Calculator {
	return &Calculator{
		WindowStart: calendar.MustTimeOfDay("06:00"),
		WindowEnd:   calendar.MustTimeOfDay("22:00"),
		MinSlot:     30 * time.Minute,
	}
}

// busyIntervals filters the events that count as busy on the given date:
// visible events and time blocks. Events that are neither are private
// non-blocking entries and stay transparent, so teammates see that time as
// free.
func busyIntervals(events []calendar.Event, date string) []calendar.Event {
	busy := make([]calendar.Event, 0, len(events))
	for _, e := range events {
		if e.Date == date && (e.Visible || e.TimeBlock) {
			busy = append(busy, e)
		}
	}
	sort.Slice(busy, func(i, j int) bool {
		return busy[i].Start < busy[j].Start
	})
	return busy
}

// FreeSlots returns the open intervals of the working window on the given
// date, in chronological order. Overlapping busy intervals need no merging:
// the sweep keeps a monotone cursor and only ever moves it forward.
func (c *Calculator) FreeSlots(events []calendar.Event, date string) []Slot {
	busy := busyIntervals(events, date)

	slots := make([]Slot, 0, len(busy)+1)
	cursor := c.WindowStart
	for _, b := range busy {
		if cursor < b.Start {
			slots = append(slots, Slot{Start: cursor, End: minTime(b.Start, c.WindowEnd)})
		}
		cursor = maxTime(cursor, b.End)
	}
	if cursor < c.WindowEnd {
		slots = append(slots, Slot{Start: maxTime(cursor, c.WindowStart), End: c.WindowEnd})
	}

	filtered := slots[:0]
	for _, s := range slots {
		if s.End <= c.WindowStart || s.Start >= c.WindowEnd {
			continue
		}
		s.Start = maxTime(s.Start, c.WindowStart)
		s.End = minTime(s.End, c.WindowEnd)
		if s.Duration() >= c.MinSlot {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

// BusyTimes returns the busy entries a teammate is allowed to see, sorted by
// start time. Titles of time blocks are withheld.
func (c *Calculator) BusyTimes(events []calendar.Event, date string) []BusyTime {
	busy := busyIntervals(events, date)
	view := make([]BusyTime, 0, len(busy))
	for _, e := range busy {
		entry := BusyTime{
			Start:     e.Start,
			End:       e.End,
			TimeBlock: e.TimeBlock,
		}
		if e.Visible {
			entry.Title = e.Title
		}
		view = append(view, entry)
	}
	return view
}

func minTime(a, b calendar.TimeOfDay) calendar.TimeOfDay {
	if a < b {
		return a
	}
	return b
}

func maxTime(a, b calendar.TimeOfDay) calendar.TimeOfDay {
	if a > b {
		return a
	}
	return b
}
