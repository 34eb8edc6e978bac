package printers

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/thoughts/pkg/entry"
	"tableflip.dev/thoughts/pkg/glyph"
	"tableflip.dev/thoughts/pkg/tags"
	"tableflip.dev/thoughts/pkg/timeutil"
)

type PrettyPrint struct {
	ShowID     bool
	TimeFormat string
	// Out defaults to color.Output.
	Out io.Writer
}

var (
	spacing = strings.Repeat(" ", len("01HMZ3R8T4J6K9WQY2V5C7D1EX  "))
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " item")
	default:
		_, _ = c.Fprintln(pp.out(), " items")
	}
}

// Items prints items in order, indented by their depth.
func (pp *PrettyPrint) Items(items ...*entry.Item) {
	if len(items) == 0 {
		pp.none()
		return
	}
	for _, it := range items {
		pp.Item(it, it.DepthLevel)
	}
	pp.NewLine()
}

// Tree prints each root followed by its descendants. lookup resolves child
// ids; children it cannot resolve are skipped.
func (pp *PrettyPrint) Tree(lookup map[string]*entry.Item, roots ...*entry.Item) {
	if len(roots) == 0 {
		pp.none()
		return
	}
	seen := map[string]bool{}
	var walk func(it *entry.Item, depth int)
	walk = func(it *entry.Item, depth int) {
		if seen[it.ID] {
			return
		}
		seen[it.ID] = true
		pp.Item(it, depth)
		for _, cid := range it.ChildIDs() {
			if child, ok := lookup[cid]; ok {
				walk(child, depth+1)
			}
		}
	}
	for _, r := range roots {
		walk(r, 0)
	}
	pp.NewLine()
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = f.Fprint(pp.out(), spacing)
	}
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

// Item prints a single item at the given indentation.
func (pp *PrettyPrint) Item(it *entry.Item, depth int) {
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	t := color.New()
	switch {
	case it.Cancelled():
		t = color.New(color.Faint, color.CrossedOut)
	case it.Completed():
		t = color.New(color.Faint)
	}

	if pp.ShowID {
		_, _ = y.Fprint(pp.out(), it.ID)
		if pad := len(spacing) - len(it.ID); pad > 0 {
			_, _ = y.Fprint(pp.out(), strings.Repeat(" ", pad))
		}
	}
	_, _ = t.Fprintf(pp.out(), "%s%s\n", strings.Repeat("  ", depth), pp.Format(it))
}

// Format renders an item as one line without indentation or color.
func (pp *PrettyPrint) Format(it *entry.Item) string {
	parts := []string{Symbol(it)}
	if when := pp.When(it); when != "" {
		parts = append(parts, when)
	}
	content := it.Content
	if strings.TrimSpace(content) == "" {
		content = "<empty>"
	}
	parts = append(parts, content)
	if len(it.Tags) > 0 {
		parts = append(parts, tags.Format(it.Tags))
	}
	switch b := it.Body.(type) {
	case *entry.Todo:
		if b.Deadline != nil {
			parts = append(parts, "(due "+pp.Stamp(*b.Deadline, true)+")")
		}
	case *entry.Routine:
		detail := b.Recurrence.String()
		if b.Streak > 0 {
			detail = fmt.Sprintf("%s, streak %d", detail, b.Streak)
		}
		parts = append(parts, "("+detail+")")
	}
	return strings.Join(parts, " ")
}

// Symbol is the display glyph of an item; completed todos get a check.
func Symbol(it *entry.Item) string {
	if it.Kind() == glyph.Todo && it.Completed() {
		return glyph.CompletedSymbol
	}
	return it.Kind().Symbol()
}

// When renders the clock part of a scheduled item, or "" when it has none.
func (pp *PrettyPrint) When(it *entry.Item) string {
	switch b := it.Body.(type) {
	case *entry.Todo:
		if b.ScheduledTime != nil && b.HasTime {
			return timeutil.FormatClock(b.ScheduledTime.Local(), pp.TimeFormat)
		}
	case *entry.Event:
		if !b.HasTime {
			return ""
		}
		start := timeutil.FormatClock(b.StartTime.Local(), pp.TimeFormat)
		if b.EndTime.After(b.StartTime) {
			return start + "-" + timeutil.FormatClock(b.EndTime.Local(), pp.TimeFormat)
		}
		return start
	case *entry.Routine:
		if b.HasTime && b.ScheduledTime != "" {
			return timeutil.FormatClockString(b.ScheduledTime, pp.TimeFormat)
		}
	}
	return ""
}

// Stamp renders a date, with the clock when withClock is set.
func (pp *PrettyPrint) Stamp(t time.Time, withClock bool) string {
	day := t.Local().Format("Mon Jan 2")
	if !withClock {
		return day
	}
	return day + " " + timeutil.FormatClock(t.Local(), pp.TimeFormat)
}
