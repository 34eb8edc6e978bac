package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// LayoutDay is the calendar day key used for grouping.
	LayoutDay = "2006-01-02"
	// LayoutClock is the 24 hour clock layout stored on routines.
	LayoutClock = "15:04"

	Format12h = "12h"
	Format24h = "24h"
)

type clock struct {
	hour   int
	minute int
}

func (c clock) on(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), c.hour, c.minute, 0, 0, day.Location())
}

var (
	meridiemPattern = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?([ap])m?$`)
	twentyFour      = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
	bareHour        = regexp.MustCompile(`^(\d{1,2})$`)
	rangePattern    = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?([ap]m)?-(\d{1,2})(?::(\d{2}))?([ap]m)?$`)
)

// meridiemClock converts a 12 hour reading to a clock.
func meridiemClock(hour, minute int, meridiem string) (clock, bool) {
	if hour < 1 || hour > 12 || minute < 0 || minute > 59 {
		return clock{}, false
	}
	switch meridiem {
	case "p":
		if hour != 12 {
			hour += 12
		}
	case "a":
		if hour == 12 {
			hour = 0
		}
	default:
		return clock{}, false
	}
	return clock{hour: hour, minute: minute}, true
}

func plainClock(hour, minute int) (clock, bool) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return clock{}, false
	}
	return clock{hour: hour, minute: minute}, true
}

func atoi(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}
	return n
}

// parseClockWord reads a single word as a clock time. Bare hours are only
// accepted when bare is set (after "at"); 1 through 7 read as afternoon.
func parseClockWord(word string, bare bool) (clock, bool) {
	word = strings.ReplaceAll(word, ".", "")
	switch word {
	case "noon", "midday":
		return clock{hour: 12}, true
	case "midnight":
		return clock{}, true
	}
	if m := meridiemPattern.FindStringSubmatch(word); m != nil {
		return meridiemClock(atoi(m[1]), atoi(m[2]), m[3])
	}
	if m := twentyFour.FindStringSubmatch(word); m != nil {
		return plainClock(atoi(m[1]), atoi(m[2]))
	}
	if bare {
		if m := bareHour.FindStringSubmatch(word); m != nil {
			h := atoi(m[1])
			if h >= 1 && h <= 7 {
				h += 12
			}
			return plainClock(h, 0)
		}
	}
	return clock{}, false
}

// parseClockRange reads "2-4pm", "9am-5pm" or "14:00-15:30".
func parseClockRange(word string) (clock, clock, bool) {
	m := rangePattern.FindStringSubmatch(strings.ReplaceAll(word, ".", ""))
	if m == nil {
		return clock{}, clock{}, false
	}
	h1, m1, mer1 := atoi(m[1]), atoi(m[2]), strings.TrimSuffix(m[3], "m")
	h2, m2, mer2 := atoi(m[4]), atoi(m[5]), strings.TrimSuffix(m[6], "m")

	if mer1 == "" && mer2 == "" {
		// Both sides need minutes to tell a range from "1-2".
		if m[2] == "" || m[5] == "" {
			return clock{}, clock{}, false
		}
		start, ok1 := plainClock(h1, m1)
		end, ok2 := plainClock(h2, m2)
		return start, end, ok1 && ok2
	}

	end, ok := meridiemClock(h2, m2, orMeridiem(mer2, mer1))
	if !ok {
		return clock{}, clock{}, false
	}
	if mer1 != "" {
		start, ok := meridiemClock(h1, m1, mer1)
		return start, end, ok
	}
	start, ok := meridiemClock(h1, m1, mer2)
	if ok && (start.hour > end.hour || (start.hour == end.hour && start.minute > end.minute)) {
		start, ok = meridiemClock(h1, m1, "a")
	}
	return start, end, ok
}

func orMeridiem(m, fallback string) string {
	if m != "" {
		return m
	}
	return fallback
}

// FormatClock renders the clock part of t as "2:30 pm" or "14:30".
func FormatClock(t time.Time, format string) string {
	if format == Format24h {
		return t.Format(LayoutClock)
	}
	return t.Format("3:04 pm")
}

// FormatClockString renders an "HH:mm" value using FormatClock.
func FormatClockString(hhmm, format string) string {
	t, err := time.Parse(LayoutClock, hhmm)
	if err != nil {
		return hhmm
	}
	return FormatClock(t, format)
}

// ValidClockFormat reports whether format names a supported clock style.
func ValidClockFormat(format string) error {
	switch format {
	case Format12h, Format24h:
		return nil
	}
	return fmt.Errorf("timeutil: unknown time format %q (use %s or %s)", format, Format12h, Format24h)
}
