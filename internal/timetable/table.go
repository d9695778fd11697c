package timetable

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidTableShape is returned when rows do not line up with the grid.
var ErrInvalidTableShape = errors.New("invalid table shape")

// Day is a Monday-first weekday index.
type Day int

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

const daysPerWeek = 7

var dayNames = [daysPerWeek]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func (d Day) String() string {
	if d < Monday || d > Sunday {
		return fmt.Sprintf("Day(%d)", int(d))
	}
	return dayNames[d]
}

// Short returns "Mon".."Sun".
func (d Day) Short() string {
	return d.String()[:3]
}

func (d Day) valid() bool { return d >= Monday && d <= Sunday }

// DayOf maps t's weekday (in t's own location) to a Monday-first Day.
func DayOf(t time.Time) Day {
	return Day((int(t.Weekday()) + 6) % daysPerWeek)
}

// ParseDay accepts full or three-letter English weekday names.
func ParseDay(s string) (Day, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range dayNames {
		n := strings.ToLower(name)
		if s == n || s == n[:3] {
			return Day(i), nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}

// Entry is one scheduled occupant of a slot. An empty Owner means none.
type Entry struct {
	Label    string
	Location string
	Owner    string
}

// HasOwner reports whether a faculty line should be shown.
func (e Entry) HasOwner() bool { return e.Owner != "" }

// WeeklyTable maps (day, slot) to an optional Entry. Read-only after construction.
type WeeklyTable struct {
	name   string
	grid   *Grid
	rows   [daysPerWeek][]*Entry
	closed [daysPerWeek]bool
}

// NewWeeklyTable checks that every day is present, that each row is aligned with
// the grid's slots, and that closed days carry no entries.
func NewWeeklyTable(name string, grid *Grid, rows map[Day][]*Entry, closed []Day) (*WeeklyTable, error) {
	if grid == nil {
		return nil, fmt.Errorf("%w: table %q has no grid", ErrInvalidTableShape, name)
	}
	t := &WeeklyTable{name: name, grid: grid}

	for d, row := range rows {
		if !d.valid() {
			return nil, fmt.Errorf("%w: table %q has unknown day %d", ErrInvalidTableShape, name, int(d))
		}
		if len(row) != grid.SlotCount() {
			return nil, fmt.Errorf("%w: table %q %s has %d entries, grid has %d slots",
				ErrInvalidTableShape, name, d, len(row), grid.SlotCount())
		}
		cp := make([]*Entry, len(row))
		for i, e := range row {
			if e != nil {
				v := *e
				cp[i] = &v
			}
		}
		t.rows[d] = cp
	}
	for d := Monday; d <= Sunday; d++ {
		if t.rows[d] == nil {
			return nil, fmt.Errorf("%w: table %q is missing %s", ErrInvalidTableShape, name, d)
		}
	}

	for _, d := range closed {
		if !d.valid() {
			return nil, fmt.Errorf("%w: table %q closes unknown day %d", ErrInvalidTableShape, name, int(d))
		}
		for i, e := range t.rows[d] {
			if e != nil {
				return nil, fmt.Errorf("%w: table %q closed day %s has entry %q at slot %d",
					ErrInvalidTableShape, name, d, e.Label, i)
			}
		}
		t.closed[d] = true
	}
	return t, nil
}

// Name is the group name the table was built for.
func (t *WeeklyTable) Name() string { return t.name }

// Grid is the slot grid the rows are aligned with.
func (t *WeeklyTable) Grid() *Grid { return t.grid }

// IsClosed reports whether the institution is closed all of day d.
func (t *WeeklyTable) IsClosed(d Day) bool {
	if !d.valid() {
		panic(fmt.Sprintf("timetable: day %d out of range", int(d)))
	}
	return t.closed[d]
}

// EntryAt returns the occupant of (day, slot). An out-of-range day or slot
// panics: that is a caller bug, not an empty slot.
func (t *WeeklyTable) EntryAt(d Day, slot int) (Entry, bool) {
	if !d.valid() {
		panic(fmt.Sprintf("timetable: day %d out of range", int(d)))
	}
	t.grid.mustSlot(slot)
	e := t.rows[d][slot]
	if e == nil {
		return Entry{}, false
	}
	return *e, true
}

// IsEmpty reports whether no day has any entry.
func (t *WeeklyTable) IsEmpty() bool {
	for _, row := range t.rows {
		for _, e := range row {
			if e != nil {
				return false
			}
		}
	}
	return true
}
