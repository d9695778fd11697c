package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatEntry(t *testing.T) {
	assert.Equal(t, "OS @ Room1", FormatEntry(osRoom1))
	assert.Equal(t, "DMDW @ BS-102\nFaculty: Dr. Bichitrananda Behera (CSE)", FormatEntry(dmdw))
}

func TestFormatDay(t *testing.T) {
	tbl := sampleTable(t)
	got := FormatDay(DaySchedule(tbl, Tuesday))
	want := "09:30–10:30: —\n" +
		"10:30–11:30: WT LAB @ BS-104\n" +
		"11:30–12:30: —\n" +
		"12:30–13:30: —\n" +
		"13:30–14:30: Lunch Break\n" +
		"14:30–15:30: —\n" +
		"15:30–16:30: —\n" +
		"16:30–17:30: —"
	assert.Equal(t, want, got)
}
