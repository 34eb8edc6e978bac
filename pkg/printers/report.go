package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/thoughts/pkg/app"
	"tableflip.dev/thoughts/pkg/entry"
)

// Report prints a completed-items report, one section per day.
func (pp *PrettyPrint) Report(result app.ReportResult, label string) {
	w := pp.out()
	since := result.Since.Local().Format("2006-01-02 15:04")
	until := result.Until.Local().Format("2006-01-02 15:04")
	_, _ = fmt.Fprintf(w, "Report · last %s (%s → %s)\n", label, since, until)

	if result.Total == 0 {
		_, _ = fmt.Fprintln(w, "  No completed items found in this window.")
		_, _ = fmt.Fprintln(w)
		return
	}

	bold := color.New(color.Bold)
	for _, section := range result.Sections {
		title := section.Day
		if day, err := entry.ParseDay(section.Day); err == nil {
			title = day.Format("Monday, January 2, 2006")
		}
		_, _ = bold.Fprintf(w, "\n%s\n", title)
		included := make(map[string]*entry.Item, len(section.Items))
		for _, item := range section.Items {
			included[item.Item.ID] = item.Item
		}
		for _, item := range section.Items {
			indent := strings.Repeat("  ", depthWithin(item.Item, included))
			line := fmt.Sprintf("  %s%s", indent, pp.Format(item.Item))
			if item.Completed {
				line = fmt.Sprintf("%s  (completed %s)", line, pp.Stamp(item.CompletedAt, true))
			}
			_, _ = fmt.Fprintln(w, line)
		}
	}

	_, _ = fmt.Fprintln(w)
}

// depthWithin counts the ancestors of it that are also in included.
func depthWithin(it *entry.Item, included map[string]*entry.Item) int {
	depth := 0
	visited := make(map[string]bool)
	for parentID := it.ParentID; parentID != ""; {
		if visited[parentID] {
			break
		}
		visited[parentID] = true
		parent, ok := included[parentID]
		if !ok {
			break
		}
		depth++
		parentID = parent.ParentID
	}
	return depth
}

// Review prints open todos carried over from earlier days.
func (pp *PrettyPrint) Review(candidates []app.ReviewCandidate) {
	w := pp.out()
	if len(candidates) == 0 {
		_, _ = fmt.Fprintln(w, "Nothing waiting from earlier days.")
		return
	}

	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.Wrap = true
	tbl.MaxColWidth = 60
	if pp.ShowID {
		tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Waiting"), bold.Sprint("Item"), bold.Sprint("Under"))
	} else {
		tbl.AddRow(bold.Sprint("Waiting"), bold.Sprint("Item"), bold.Sprint("Under"))
	}
	for _, c := range candidates {
		waiting := fmt.Sprintf("%dd", c.WaitingDays)
		under := ""
		if c.Parent != nil {
			under = faint.Sprint(c.Parent.Content)
		}
		if pp.ShowID {
			tbl.AddRow(c.Item.ID, waiting, pp.Format(c.Item), under)
		} else {
			tbl.AddRow(waiting, pp.Format(c.Item), under)
		}
	}
	_, _ = fmt.Fprintln(w, tbl)
}
