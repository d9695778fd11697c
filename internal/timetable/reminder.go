package timetable

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultLeadTime is how long before a slot start a reminder fires.
const DefaultLeadTime = 10 * time.Minute

// Recipient is an opaque chat target plus the user that asked for reminders.
type Recipient struct {
	UserID int64
	ChatID int64
}

// ReminderJob describes a one-shot notification. It is not persisted.
type ReminderJob struct {
	ID        uuid.UUID
	FireAt    time.Time
	SlotStart time.Time
	Day       Day
	SlotIndex int
	Recipient Recipient
	Entry     Entry
	SlotLabel string
}

// DedupKey identifies the reminder for one user, calendar date and slot.
func (j ReminderJob) DedupKey() string {
	return fmt.Sprintf("%d:%s:%d", j.Recipient.UserID, j.SlotStart.Format("2006-01-02"), j.SlotIndex)
}

// Text is the message delivered when the job fires.
func (j ReminderJob) Text() string {
	return FormatReminder(j.SlotLabel, j.Entry)
}

// RemindersForToday derives one job per occupied slot of today that has not
// started yet and whose fire time (slot start minus lead) is still in the future.
// Slots that are too close are skipped silently. A negative lead panics.
func RemindersForToday(t *WeeklyTable, now time.Time, lead time.Duration, to Recipient) []ReminderJob {
	if lead < 0 {
		panic(fmt.Sprintf("timetable: negative reminder lead time %s", lead))
	}
	g := t.grid
	local := g.local(now)
	day := DayOf(local)
	if t.closed[day] {
		return nil
	}

	var jobs []ReminderJob
	for i, slot := range g.slots {
		start := slot.Start.On(local)
		if !start.After(local) {
			continue
		}
		e, ok := t.EntryAt(day, i)
		if !ok {
			continue
		}
		fireAt := start.Add(-lead)
		if !fireAt.After(local) {
			continue
		}
		jobs = append(jobs, ReminderJob{
			ID:        uuid.New(),
			FireAt:    fireAt,
			SlotStart: start,
			Day:       day,
			SlotIndex: i,
			Recipient: to,
			Entry:     e,
			SlotLabel: slot.Start.String(),
		})
	}
	return jobs
}
