package timetable

import (
	"sort"
	"time"
)

// MomentKind tags a resolved Moment.
type MomentKind int

const (
	Closed MomentKind = iota
	OnBreak
	Active
	Idle
)

func (k MomentKind) String() string {
	switch k {
	case Closed:
		return "closed"
	case OnBreak:
		return "on_break"
	case Active:
		return "active"
	case Idle:
		return "idle"
	default:
		return "unknown"
	}
}

// Moment is what is happening at an instant. Entry, SlotIndex and Slot are set
// only for Active; Break only for OnBreak.
type Moment struct {
	Kind      MomentKind
	Entry     Entry
	SlotIndex int
	Slot      SlotInterval
	Break     Break
}

// CurrentState resolves now against the table. It is a pure function of its inputs.
//
// Breaks are detected by time window, not by an empty table cell: an empty slot
// outside any break resolves to Idle.
func CurrentState(t *WeeklyTable, now time.Time) Moment {
	g := t.grid
	local := g.local(now)

	if t.IsClosed(DayOf(local)) || !g.IsWithinOperatingHours(local) {
		return Moment{Kind: Closed}
	}
	if b, ok := g.BreakAt(local); ok {
		return Moment{Kind: OnBreak, Break: b}
	}
	idx, ok := g.SlotAt(local)
	if !ok {
		return Moment{Kind: Idle}
	}
	e, ok := t.EntryAt(DayOf(local), idx)
	if !ok {
		return Moment{Kind: Idle}
	}
	return Moment{Kind: Active, Entry: e, SlotIndex: idx, Slot: g.slots[idx]}
}

// Occurrence is a future slot start with its occupant.
type Occurrence struct {
	At        time.Time
	Day       Day
	SlotIndex int
	Slot      SlotInterval
	Entry     Entry
}

// NextOccurrence finds the first occupied slot whose start is strictly after now.
// A slot already in progress, or starting exactly at now, is never returned.
// The bool is false when the table has nothing in a whole week.
func NextOccurrence(t *WeeklyTable, now time.Time) (Occurrence, bool) {
	return nextOccurrence(t, now, nil)
}

// nextOccurrence visits exactly seven weekday rows, starting with today's.
// Today's slots at or before now are remembered as next week's and used only when
// the remaining six rows are empty. visit, if set, is called once per row.
func nextOccurrence(t *WeeklyTable, now time.Time, visit func(Day)) (Occurrence, bool) {
	g := t.grid
	local := g.local(now)
	base := startOfDay(local)

	var (
		wrapped    Occurrence
		hasWrapped bool
	)

	for shift := 0; shift < daysPerWeek; shift++ {
		date := base.AddDate(0, 0, shift)
		day := DayOf(date)
		if visit != nil {
			visit(day)
		}
		if t.closed[day] {
			continue
		}
		for i, slot := range g.slots {
			e := t.rows[day][i]
			if e == nil {
				continue
			}
			at := slot.Start.On(date)
			if shift == 0 && !at.After(local) {
				if !hasWrapped {
					wrapped = Occurrence{At: slot.Start.On(date.AddDate(0, 0, daysPerWeek)), Day: day, SlotIndex: i, Slot: slot, Entry: *e}
					hasWrapped = true
				}
				continue
			}
			return Occurrence{At: at, Day: day, SlotIndex: i, Slot: slot, Entry: *e}, true
		}
	}
	return wrapped, hasWrapped
}

// RowKind distinguishes slot rows from break rows in a day listing.
type RowKind int

const (
	SlotRow RowKind = iota
	BreakRow
)

// Row is one line of a day listing.
type Row struct {
	Kind      RowKind
	Interval  SlotInterval
	SlotIndex int
	Entry     *Entry
	BreakName string
}

// DaySchedule lists the day's slots with breaks interleaved in time order.
func DaySchedule(t *WeeklyTable, d Day) []Row {
	g := t.grid
	rows := make([]Row, 0, len(g.slots)+len(g.breaks))
	for i, s := range g.slots {
		e, ok := t.EntryAt(d, i)
		r := Row{Kind: SlotRow, Interval: s, SlotIndex: i}
		if ok {
			r.Entry = &e
		}
		rows = append(rows, r)
	}
	for _, b := range g.breaks {
		rows = append(rows, Row{Kind: BreakRow, Interval: b.Interval, SlotIndex: -1, BreakName: b.Name})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Interval.Start.Offset() < rows[j].Interval.Start.Offset()
	})
	return rows
}
