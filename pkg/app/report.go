package app

import (
	"context"
	"time"

	"tableflip.dev/thoughts/pkg/entry"
)

// ReportItem is an item in a report. Ancestors of completed items are
// included for context with Completed false.
type ReportItem struct {
	Item        *entry.Item
	Completed   bool
	CompletedAt time.Time
}

// ReportSection groups report items by the day they were completed.
type ReportSection struct {
	Day   string
	Items []ReportItem
}

// ReportResult encapsulates a completed-items report for a time window.
type ReportResult struct {
	Since    time.Time
	Until    time.Time
	Sections []ReportSection
	Total    int
}

// Report returns items completed between the provided bounds, grouped by the
// day of completion in chronological order.
func (s *Service) Report(ctx context.Context, since, until time.Time) (ReportResult, error) {
	if err := s.ready(ctx); err != nil {
		return ReportResult{}, err
	}
	if since.After(until) {
		since, until = until, since
	}

	completed := s.journal.CompletedBetween(since, until)
	if len(completed) == 0 {
		return ReportResult{Since: since, Until: until}, nil
	}

	var sections []ReportSection
	seen := map[string]map[string]bool{}
	for _, it := range completed {
		day := entry.DayKey(*it.CompletedAt)
		if n := len(sections); n == 0 || sections[n-1].Day != day {
			sections = append(sections, ReportSection{Day: day})
			seen[day] = map[string]bool{}
		}
		sec := &sections[len(sections)-1]

		// Ancestors first so the section reads top-down.
		for _, a := range s.ancestors(it) {
			if seen[day][a.ID] {
				continue
			}
			seen[day][a.ID] = true
			sec.Items = append(sec.Items, ReportItem{Item: a})
		}
		if seen[day][it.ID] {
			// Already listed as an ancestor of an earlier item.
			for i := range sec.Items {
				if sec.Items[i].Item.ID == it.ID {
					sec.Items[i].Completed = true
					sec.Items[i].CompletedAt = *it.CompletedAt
				}
			}
			continue
		}
		seen[day][it.ID] = true
		sec.Items = append(sec.Items, ReportItem{Item: it, Completed: true, CompletedAt: *it.CompletedAt})
	}

	return ReportResult{
		Since:    since,
		Until:    until,
		Sections: sections,
		Total:    len(completed),
	}, nil
}

// ancestors returns the parents of it, outermost first.
func (s *Service) ancestors(it *entry.Item) []*entry.Item {
	var chain []*entry.Item
	visited := map[string]bool{}
	for parentID := it.ParentID; parentID != "" && !visited[parentID]; {
		visited[parentID] = true
		parent, err := s.journal.Get(parentID)
		if err != nil {
			break
		}
		chain = append([]*entry.Item{parent}, chain...)
		parentID = parent.ParentID
	}
	return chain
}
