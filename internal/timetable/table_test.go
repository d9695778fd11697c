package timetable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWeeklyTableShape(t *testing.T) {
	g := collegeGrid(t)

	t.Run("short row", func(t *testing.T) {
		rows := emptyRows(g)
		rows[Wednesday] = rows[Wednesday][:3]
		_, err := NewWeeklyTable("g", g, rows, nil)
		require.ErrorIs(t, err, ErrInvalidTableShape)
		assert.Contains(t, err.Error(), "Wednesday")
	})

	t.Run("missing day", func(t *testing.T) {
		rows := emptyRows(g)
		delete(rows, Sunday)
		_, err := NewWeeklyTable("g", g, rows, []Day{Sunday})
		require.ErrorIs(t, err, ErrInvalidTableShape)
	})

	t.Run("closed day with entry", func(t *testing.T) {
		rows := emptyRows(g)
		rows[Sunday][2] = &osRoom1
		_, err := NewWeeklyTable("g", g, rows, []Day{Sunday})
		require.ErrorIs(t, err, ErrInvalidTableShape)
	})

	t.Run("unknown day", func(t *testing.T) {
		rows := emptyRows(g)
		rows[Day(9)] = make([]*Entry, g.SlotCount())
		_, err := NewWeeklyTable("g", g, rows, nil)
		require.ErrorIs(t, err, ErrInvalidTableShape)
	})
}

func TestWeeklyTableCopiesRows(t *testing.T) {
	g := collegeGrid(t)
	rows := emptyRows(g)
	e := Entry{Label: "OS", Location: "Room1"}
	rows[Monday][0] = &e
	tbl, err := NewWeeklyTable("g", g, rows, nil)
	require.NoError(t, err)

	e.Label = "changed"
	rows[Monday][1] = &e

	got, ok := tbl.EntryAt(Monday, 0)
	require.True(t, ok)
	assert.Equal(t, "OS", got.Label)
	_, ok = tbl.EntryAt(Monday, 1)
	assert.False(t, ok)
}

func TestEntryAtBounds(t *testing.T) {
	tbl := sampleTable(t)

	got, ok := tbl.EntryAt(Monday, 0)
	require.True(t, ok)
	assert.Equal(t, osRoom1, got)

	_, ok = tbl.EntryAt(Saturday, 3)
	assert.False(t, ok)

	assert.Panics(t, func() { tbl.EntryAt(Monday, 7) })
	assert.Panics(t, func() { tbl.EntryAt(Monday, -1) })
	assert.Panics(t, func() { tbl.EntryAt(Day(7), 0) })
}

func TestDayOfIsMondayFirst(t *testing.T) {
	assert.Equal(t, Monday, DayOf(monday(12, 0)))
	assert.Equal(t, Sunday, DayOf(onDay(Sunday, 12, 0)))
	// 20:00 UTC on Sunday is already Monday in IST.
	sundayUTC := time.Date(2025, time.August, 31, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, Sunday, DayOf(sundayUTC))
	assert.Equal(t, Monday, DayOf(sundayUTC.In(ist)))
}

func TestParseDay(t *testing.T) {
	d, err := ParseDay("Thursday")
	require.NoError(t, err)
	assert.Equal(t, Thursday, d)
	d, err = ParseDay("sat")
	require.NoError(t, err)
	assert.Equal(t, Saturday, d)
	_, err = ParseDay("funday")
	assert.Error(t, err)
	assert.Equal(t, "Wed", Wednesday.Short())
}
