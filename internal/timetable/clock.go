package timetable

import "time"

// Clock is the single source of "now".
type Clock interface {
	Now() time.Time
}

// ZoneClock reads the wall clock and normalizes it to one fixed zone.
type ZoneClock struct {
	Loc *time.Location
}

// Now returns the current time in c.Loc.
func (c ZoneClock) Now() time.Time { return time.Now().In(c.Loc) }

// FixedClock always returns the same instant.
type FixedClock time.Time

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time { return time.Time(c) }
