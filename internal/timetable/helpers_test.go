package timetable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var ist = time.FixedZone("IST", 5*3600+30*60)

// collegeGrid mirrors the bundled timetable: seven 1-hour slots, lunch 13:30–14:30.
func collegeGrid(t *testing.T) *Grid {
	t.Helper()
	g, err := NewGrid(ist,
		SlotInterval{At(9, 30), At(17, 30)},
		[]SlotInterval{
			{At(9, 30), At(10, 30)},
			{At(10, 30), At(11, 30)},
			{At(11, 30), At(12, 30)},
			{At(12, 30), At(13, 30)},
			{At(14, 30), At(15, 30)},
			{At(15, 30), At(16, 30)},
			{At(16, 30), At(17, 30)},
		},
		[]Break{{Name: "Lunch Break", Interval: SlotInterval{At(13, 30), At(14, 30)}}},
	)
	require.NoError(t, err)
	return g
}

func emptyRows(g *Grid) map[Day][]*Entry {
	rows := make(map[Day][]*Entry, daysPerWeek)
	for d := Monday; d <= Sunday; d++ {
		rows[d] = make([]*Entry, g.SlotCount())
	}
	return rows
}

var (
	osRoom1 = Entry{Label: "OS", Location: "Room1"}
	dmdw    = Entry{Label: "DMDW", Location: "BS-102", Owner: "Dr. Bichitrananda Behera (CSE)"}
	wtLab   = Entry{Label: "WT LAB", Location: "BS-104"}
)

// sampleTable: Monday slot 0 OS, slot 2 DMDW, slot 4 DMDW; Tuesday slot 1 WT LAB;
// Saturday empty but open; Sunday closed.
func sampleTable(t *testing.T) *WeeklyTable {
	t.Helper()
	g := collegeGrid(t)
	rows := emptyRows(g)
	rows[Monday][0] = &osRoom1
	rows[Monday][2] = &dmdw
	rows[Monday][4] = &dmdw
	rows[Tuesday][1] = &wtLab
	tbl, err := NewWeeklyTable("Group-7", g, rows, []Day{Sunday})
	require.NoError(t, err)
	return tbl
}

// 2025-09-01 is a Monday.
func monday(h, m int) time.Time {
	return time.Date(2025, time.September, 1, h, m, 0, 0, ist)
}

func onDay(d Day, h, m int) time.Time {
	return monday(h, m).AddDate(0, 0, int(d))
}
