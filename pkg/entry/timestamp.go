package entry

import (
	"time"

	"tableflip.dev/thoughts/pkg/timeutil"
)

func ParseTime(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

func FormatTime(v time.Time) string {
	return v.UTC().Format(time.RFC3339Nano)
}

// DayKey is the local calendar day of t, used to group items by date.
func DayKey(t time.Time) string {
	return t.Local().Format(timeutil.LayoutDay)
}

// ParseDay reads a day key back into local midnight.
func ParseDay(key string) (time.Time, error) {
	return time.ParseInLocation(timeutil.LayoutDay, key, time.Local)
}

func SameDay(a, b time.Time) bool {
	return DayKey(a) == DayKey(b)
}

func SameMonth(a, b time.Time) bool {
	a, b = a.Local(), b.Local()
	return a.Month() == b.Month() && a.Year() == b.Year()
}
