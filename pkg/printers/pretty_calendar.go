package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/thoughts/pkg/entry"
)

// Calendar prints one line per day of the month containing on, listing what
// is scheduled that day. Unscheduled open todos follow under "Open".
func (pp *PrettyPrint) Calendar(on, today time.Time, items ...*entry.Item) {
	then := time.Date(on.Year(), on.Month(), 1, 1, 0, 0, 0, time.Local)
	pp.PrintMonthLong(then, today, items...)
}

const width = len("11 12 13 14 15 16 17") // an example week

// PrintMonth prints a month grid with the days that have items written on
// them in bold.
func (pp *PrettyPrint) PrintMonth(then time.Time, items ...*entry.Item) {
	days := DaysIn(then)

	count := make([]int, days)

	for _, it := range items {
		if entry.SameMonth(it.CreatedAt.Local(), then) {
			count[it.CreatedAt.Local().Day()-1]++
		}
	}

	pp.PrintMonthCount(then, count)
}

func (pp *PrettyPrint) PrintMonthCount(then time.Time, count []int) {
	d := StartDay(then)
	w := pp.out()

	tf := color.New(color.FgWhite, color.Italic)

	m := then.Month().String()
	mid := (width - len(m)) / 2
	_, _ = tf.Fprintf(w, "%s%s%s\n", strings.Repeat(" ", mid), m, strings.Repeat(" ", width-mid-len(m)))

	days := DaysIn(then)

	// Pad out the start of the month.
	_, _ = fmt.Fprint(w, strings.Repeat("   ", int(d)))

	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)

	for i := 0; i < days; i++ {
		if i < len(count) && count[i] > 0 {
			_, _ = l2.Fprintf(w, "%2d ", i+1)
		} else {
			_, _ = l1.Fprintf(w, "%2d ", i+1)
		}

		d++
		if d > time.Saturday {
			d = time.Sunday
			_, _ = fmt.Fprint(w, "\n")
		}
	}
	_, _ = fmt.Fprint(w, "\n\n")
}

func (pp *PrettyPrint) PrintMonthLong(then, today time.Time, items ...*entry.Item) {
	w := pp.out()
	p := color.New()
	b := color.New(color.Bold)
	i := color.New(color.Italic)
	s := color.New(color.Underline)
	bs := color.New(color.Underline, color.Bold)

	byDay := map[int][]*entry.Item{}
	var open []*entry.Item
	for _, it := range items {
		at, ok := it.Scheduled()
		if !ok {
			if isTodo(it) && !it.Completed() && !it.Cancelled() {
				open = append(open, it)
			}
			continue
		}
		if entry.SameMonth(at.Local(), then) {
			byDay[at.Local().Day()] = append(byDay[at.Local().Day()], it)
		}
	}

	d := StartDay(then)
	for day := 1; day <= DaysIn(then); day++ {
		isToday := entry.SameDay(today, time.Date(then.Year(), then.Month(), day, 0, 0, 0, 0, time.Local))
		printer := p
		switch {
		case d == time.Sunday && isToday:
			printer = bs
		case d == time.Sunday:
			printer = s
		case isToday:
			printer = b
		}
		_, _ = printer.Fprintf(w, "%2d %s", day, d.String()[0:1])

		scheduled := byDay[day]
		if len(scheduled) == 0 {
			_, _ = p.Fprint(w, "\n")
		}
		for n, it := range scheduled {
			if n > 0 {
				_, _ = p.Fprint(w, "    ")
			}
			_, _ = p.Fprintf(w, "  %s\n", pp.Format(it))
		}

		d++
		if d > time.Saturday {
			d = time.Sunday
		}
	}

	if len(open) > 0 {
		_, _ = i.Fprintf(w, "\nOpen\n")
		for _, it := range open {
			_, _ = p.Fprintf(w, "%s\n", pp.Format(it))
		}
	}
}

func isTodo(it *entry.Item) bool {
	_, ok := it.Todo()
	return ok
}

func NextMonth(then time.Time) time.Time {
	return time.Date(then.Local().Year(), then.Local().Month()+1, 1, 1, 0, 0, 0, then.Location())
}

func DaysIn(then time.Time) int {
	return time.Date(then.Year(), then.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func StartDay(then time.Time) time.Weekday {
	return time.Date(then.Year(), then.Month(), 1, 1, 0, 0, 0, time.UTC).Weekday()
}
