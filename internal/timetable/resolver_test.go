package timetable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentStateClosedOutsideHours(t *testing.T) {
	tbl := sampleTable(t)
	for d := Monday; d <= Saturday; d++ {
		for _, at := range []time.Time{onDay(d, 0, 0), onDay(d, 9, 29), onDay(d, 17, 31), onDay(d, 23, 59)} {
			assert.Equal(t, Closed, CurrentState(tbl, at).Kind, at.Format(time.RFC3339))
		}
	}
	assert.Equal(t, Closed, CurrentState(tbl, onDay(Monday, 17, 30).Add(time.Second)).Kind)
}

func TestCurrentStateClosedDay(t *testing.T) {
	tbl := sampleTable(t)
	for h := 0; h < 24; h++ {
		assert.Equal(t, Closed, CurrentState(tbl, onDay(Sunday, h, 15)).Kind)
	}
}

func TestCurrentStateBreakIsByTimeWindow(t *testing.T) {
	full := sampleTable(t)
	empty, err := NewWeeklyTable("empty", full.Grid(), emptyRows(full.Grid()), nil)
	require.NoError(t, err)

	for _, tbl := range []*WeeklyTable{full, empty} {
		for m := 0; m < 60; m++ {
			got := CurrentState(tbl, monday(13, 30).Add(time.Duration(m)*time.Minute))
			require.Equal(t, OnBreak, got.Kind)
			assert.Equal(t, "Lunch Break", got.Break.Name)
		}
	}

	// an empty cell outside the break is idle, not lunch
	assert.Equal(t, Idle, CurrentState(full, monday(10, 45)).Kind)
	assert.Equal(t, Idle, CurrentState(full, onDay(Saturday, 10, 0)).Kind)
}

func TestCurrentStateActiveAcrossWholeSlot(t *testing.T) {
	tbl := sampleTable(t)
	g := tbl.Grid()
	for d := Monday; d <= Sunday; d++ {
		for i := 0; i < g.SlotCount(); i++ {
			e, ok := tbl.EntryAt(d, i)
			if !ok {
				continue
			}
			start := g.SlotStart(onDay(d, 0, 0), i)
			end := g.Slot(i).End.On(start)
			for _, at := range []time.Time{start, start.Add(17 * time.Minute), end.Add(-time.Nanosecond)} {
				got := CurrentState(tbl, at)
				require.Equal(t, Active, got.Kind, at.Format(time.RFC3339))
				assert.Equal(t, e, got.Entry)
				assert.Equal(t, i, got.SlotIndex)
				assert.Equal(t, g.Slot(i), got.Slot)
			}
		}
	}
}

func TestCurrentStateIsPure(t *testing.T) {
	tbl := sampleTable(t)
	for _, at := range []time.Time{monday(9, 45), monday(13, 45), monday(11, 45), onDay(Sunday, 10, 0)} {
		assert.Equal(t, CurrentState(tbl, at), CurrentState(tbl, at))
	}
}

func TestNextOccurrenceBeforeFirstSlot(t *testing.T) {
	tbl := sampleTable(t)
	got, ok := NextOccurrence(tbl, monday(9, 0))
	require.True(t, ok)
	assert.Equal(t, monday(9, 30), got.At)
	assert.Equal(t, osRoom1, got.Entry)
	assert.Equal(t, Monday, got.Day)
	assert.Equal(t, 0, got.SlotIndex)
}

func TestNextOccurrenceSkipsCurrentSlot(t *testing.T) {
	tbl := sampleTable(t)
	now := monday(9, 45)

	cur := CurrentState(tbl, now)
	require.Equal(t, Active, cur.Kind)
	assert.Equal(t, osRoom1, cur.Entry)

	got, ok := NextOccurrence(tbl, now)
	require.True(t, ok)
	assert.Equal(t, monday(11, 30), got.At)
	assert.Equal(t, dmdw, got.Entry)
}

func TestNextOccurrenceAtExactSlotStart(t *testing.T) {
	tbl := sampleTable(t)
	got, ok := NextOccurrence(tbl, monday(9, 30))
	require.True(t, ok)
	assert.Equal(t, monday(11, 30), got.At)
}

func TestNextOccurrenceWrapsToNextDay(t *testing.T) {
	tbl := sampleTable(t)
	got, ok := NextOccurrence(tbl, monday(18, 0))
	require.True(t, ok)
	assert.Equal(t, onDay(Tuesday, 10, 30), got.At)
	assert.Equal(t, wtLab, got.Entry)
}

func TestNextOccurrenceWrapsAcrossWeek(t *testing.T) {
	tbl := sampleTable(t)
	got, ok := NextOccurrence(tbl, onDay(Tuesday, 12, 0))
	require.True(t, ok)
	assert.Equal(t, monday(9, 30).AddDate(0, 0, 7), got.At)
	assert.Equal(t, Monday, got.Day)
}

func TestNextOccurrenceSameWeekdayNextWeek(t *testing.T) {
	g := collegeGrid(t)
	rows := emptyRows(g)
	rows[Monday][0] = &osRoom1
	tbl, err := NewWeeklyTable("single", g, rows, nil)
	require.NoError(t, err)

	var visited []Day
	got, ok := nextOccurrence(tbl, monday(10, 0), func(d Day) { visited = append(visited, d) })
	require.True(t, ok)
	assert.Equal(t, monday(9, 30).AddDate(0, 0, 7), got.At)
	assert.Len(t, visited, 7)
}

func TestNextOccurrenceEmptyTableTerminates(t *testing.T) {
	g := collegeGrid(t)
	tbl, err := NewWeeklyTable("empty", g, emptyRows(g), []Day{Sunday})
	require.NoError(t, err)
	require.True(t, tbl.IsEmpty())

	visits := 0
	_, ok := nextOccurrence(tbl, onDay(Wednesday, 12, 0), func(Day) { visits++ })
	assert.False(t, ok)
	assert.Equal(t, 7, visits)
}

func TestNextOccurrenceIsStrictlyAfterNow(t *testing.T) {
	tbl := sampleTable(t)
	start := monday(0, 0)
	for now := start; now.Before(start.AddDate(0, 0, 7)); now = now.Add(7 * time.Minute) {
		got, ok := NextOccurrence(tbl, now)
		require.True(t, ok)
		require.True(t, got.At.After(now), "now=%s got=%s", now, got.At)
		e, present := tbl.EntryAt(got.Day, got.SlotIndex)
		require.True(t, present)
		require.Equal(t, e, got.Entry)
	}
}

func TestNextOccurrenceNormalizesInput(t *testing.T) {
	tbl := sampleTable(t)
	// Sunday 22:00 UTC is Monday 03:30 IST.
	now := time.Date(2025, time.August, 31, 22, 0, 0, 0, time.UTC)
	got, ok := NextOccurrence(tbl, now)
	require.True(t, ok)
	assert.True(t, got.At.Equal(monday(9, 30)))
}

func TestDayScheduleInterleavesBreaks(t *testing.T) {
	tbl := sampleTable(t)
	rows := DaySchedule(tbl, Monday)
	require.Len(t, rows, 8)

	assert.Equal(t, SlotRow, rows[0].Kind)
	require.NotNil(t, rows[0].Entry)
	assert.Equal(t, osRoom1, *rows[0].Entry)
	assert.Nil(t, rows[1].Entry)

	assert.Equal(t, BreakRow, rows[4].Kind)
	assert.Equal(t, "Lunch Break", rows[4].BreakName)
	assert.Equal(t, "13:30–14:30", rows[4].Interval.String())
	assert.Equal(t, 4, rows[5].SlotIndex)
}
