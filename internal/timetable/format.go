package timetable

import (
	"strings"
)

// FormatEntry renders "{label} @ {location}" with an optional faculty line.
func FormatEntry(e Entry) string {
	s := e.Label + " @ " + e.Location
	if e.HasOwner() {
		s += "\nFaculty: " + e.Owner
	}
	return s
}

// FormatReminder is the text of a fired reminder.
func FormatReminder(slotLabel string, e Entry) string {
	return "⏰ Reminder (" + slotLabel + "): " + FormatEntry(e)
}

// FormatDay renders a day listing, one line per row.
func FormatDay(rows []Row) string {
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		label := r.Interval.String()
		switch {
		case r.Kind == BreakRow:
			lines = append(lines, label+": "+r.BreakName)
		case r.Entry != nil:
			lines = append(lines, label+": "+FormatEntry(*r.Entry))
		default:
			lines = append(lines, label+": —")
		}
	}
	return strings.Join(lines, "\n")
}
