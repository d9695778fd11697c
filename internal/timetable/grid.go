package timetable

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidGrid wraps every grid validation failure.
var ErrInvalidGrid = errors.New("invalid time grid")

// TimeOfDay is a wall-clock hour and minute in the grid's timezone.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// At builds a TimeOfDay, panicking on values outside 00:00..23:59.
func At(hour, minute int) TimeOfDay {
	t := TimeOfDay{Hour: hour, Minute: minute}
	if !t.valid() {
		panic(fmt.Sprintf("timetable: time of day out of range: %02d:%02d", hour, minute))
	}
	return t
}

// ParseTimeOfDay parses "HH:MM".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return TimeOfDay{}, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return TimeOfDay{}, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return TimeOfDay{}, fmt.Errorf("invalid minute in %q", s)
	}
	return TimeOfDay{Hour: h, Minute: m}, nil
}

func (t TimeOfDay) valid() bool {
	return t.Hour >= 0 && t.Hour <= 23 && t.Minute >= 0 && t.Minute <= 59
}

// Offset returns the distance from midnight.
func (t TimeOfDay) Offset() time.Duration {
	return time.Duration(t.Hour)*time.Hour + time.Duration(t.Minute)*time.Minute
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// On returns the instant at t on the calendar date of date, in date's location.
func (t TimeOfDay) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour, t.Minute, 0, 0, date.Location())
}

// wallOffset is the wall-clock distance from midnight, DST-insensitive.
func wallOffset(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SlotInterval is the half-open range [Start, End).
type SlotInterval struct {
	Start TimeOfDay
	End   TimeOfDay
}

func (s SlotInterval) contains(off time.Duration) bool {
	return s.Start.Offset() <= off && off < s.End.Offset()
}

func (s SlotInterval) overlaps(o SlotInterval) bool {
	return s.Start.Offset() < o.End.Offset() && o.Start.Offset() < s.End.Offset()
}

func (s SlotInterval) String() string {
	return s.Start.String() + "–" + s.End.String()
}

// Break is a named gap in the day, e.g. lunch.
type Break struct {
	Name     string
	Interval SlotInterval
}

// Grid holds the canonical slot boundaries, breaks and operating window of a day.
// It is immutable after NewGrid.
type Grid struct {
	loc    *time.Location
	open   SlotInterval
	slots  []SlotInterval
	breaks []Break
}

// NewGrid validates and builds a grid. Slots must be sorted, non-overlapping and
// inside the operating window; breaks must not overlap slots.
func NewGrid(loc *time.Location, open SlotInterval, slots []SlotInterval, breaks []Break) (*Grid, error) {
	if loc == nil {
		return nil, fmt.Errorf("%w: nil location", ErrInvalidGrid)
	}
	if err := checkInterval("operating window", open); err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return nil, fmt.Errorf("%w: no slots", ErrInvalidGrid)
	}

	for i, s := range slots {
		if err := checkInterval(fmt.Sprintf("slot %d", i), s); err != nil {
			return nil, err
		}
		if s.Start.Offset() < open.Start.Offset() || s.End.Offset() > open.End.Offset() {
			return nil, fmt.Errorf("%w: slot %d (%s) outside operating window %s", ErrInvalidGrid, i, s, open)
		}
		if i > 0 && s.Start.Offset() < slots[i-1].End.Offset() {
			return nil, fmt.Errorf("%w: slot %d (%s) overlaps or precedes slot %d (%s)", ErrInvalidGrid, i, s, i-1, slots[i-1])
		}
	}

	for _, b := range breaks {
		if err := checkInterval("break "+b.Name, b.Interval); err != nil {
			return nil, err
		}
		for i, s := range slots {
			if b.Interval.overlaps(s) {
				return nil, fmt.Errorf("%w: break %q (%s) overlaps slot %d (%s)", ErrInvalidGrid, b.Name, b.Interval, i, s)
			}
		}
	}

	return &Grid{
		loc:    loc,
		open:   open,
		slots:  append([]SlotInterval(nil), slots...),
		breaks: append([]Break(nil), breaks...),
	}, nil
}

func checkInterval(what string, s SlotInterval) error {
	if !s.Start.valid() || !s.End.valid() {
		return fmt.Errorf("%w: %s has out-of-range time", ErrInvalidGrid, what)
	}
	if s.Start.Offset() >= s.End.Offset() {
		return fmt.Errorf("%w: %s must start before it ends (%s)", ErrInvalidGrid, what, s)
	}
	return nil
}

// Location is the single timezone every instant is normalized to.
func (g *Grid) Location() *time.Location { return g.loc }

// Open is the operating window.
func (g *Grid) Open() SlotInterval { return g.open }

// SlotCount is the number of slots per day.
func (g *Grid) SlotCount() int { return len(g.slots) }

// Slot returns slot i; i must be in range.
func (g *Grid) Slot(i int) SlotInterval {
	g.mustSlot(i)
	return g.slots[i]
}

// Breaks returns a copy of the day's breaks in time order.
func (g *Grid) Breaks() []Break {
	return append([]Break(nil), g.breaks...)
}

func (g *Grid) mustSlot(i int) {
	if i < 0 || i >= len(g.slots) {
		panic(fmt.Sprintf("timetable: slot index %d out of range [0,%d)", i, len(g.slots)))
	}
}

// local converts now into the grid's zone. Naive comparisons against
// the machine's local time never happen.
func (g *Grid) local(now time.Time) time.Time {
	return now.In(g.loc)
}

// SlotAt returns the index of the slot containing now, or false when now falls
// into a gap or outside the day.
func (g *Grid) SlotAt(now time.Time) (int, bool) {
	off := wallOffset(g.local(now))
	for i, s := range g.slots {
		if s.contains(off) {
			return i, true
		}
	}
	return 0, false
}

// IsWithinOperatingHours is inclusive at both ends of the window.
func (g *Grid) IsWithinOperatingHours(now time.Time) bool {
	off := wallOffset(g.local(now))
	return g.open.Start.Offset() <= off && off <= g.open.End.Offset()
}

// IsOnBreak reports whether now falls inside any break window.
func (g *Grid) IsOnBreak(now time.Time) bool {
	_, ok := g.BreakAt(now)
	return ok
}

// BreakAt returns the break whose window contains now.
func (g *Grid) BreakAt(now time.Time) (Break, bool) {
	off := wallOffset(g.local(now))
	for _, b := range g.breaks {
		if b.Interval.contains(off) {
			return b, true
		}
	}
	return Break{}, false
}

// SlotStart is the instant slot i begins on the calendar date of date (in the grid's zone).
func (g *Grid) SlotStart(date time.Time, i int) time.Time {
	g.mustSlot(i)
	return g.slots[i].Start.On(g.local(date))
}
