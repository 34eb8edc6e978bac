package entry

import (
	"time"

	"tableflip.dev/thoughts/pkg/timeutil"
)

// Check marks the routine done on day. The streak grows when the previous
// completion was exactly one recurrence period earlier and restarts at one
// otherwise. Checking the same day twice is a no-op and reports false.
func (r *Routine) Check(day time.Time) bool {
	key := DayKey(day)
	if r.LastCompleted == key {
		return false
	}
	previous := DayKey(r.Recurrence.Step(timeutil.StartOfDay(day), -1))
	if r.LastCompleted == previous {
		r.Streak++
	} else {
		r.Streak = 1
	}
	r.LastCompleted = key
	return true
}

// Due reports whether the routine falls on day, counting periods from the
// day it was created.
func (r *Routine) Due(created, day time.Time) bool {
	start := timeutil.StartOfDay(created)
	day = timeutil.StartOfDay(day)
	if day.Before(start) {
		return false
	}
	for t, n := start, 0; !t.After(day); n++ {
		if t.Equal(day) {
			return true
		}
		t = r.Recurrence.Step(start, n+1)
	}
	return false
}
