package journal

import (
	"sort"
	"strings"
	"time"

	"tableflip.dev/thoughts/pkg/entry"
	"tableflip.dev/thoughts/pkg/glyph"
	"tableflip.dev/thoughts/pkg/timeutil"
)

// ByCreatedDate groups items by the day they were written.
func (j *Journal) ByCreatedDate() map[string][]*entry.Item {
	j.mu.RLock()
	defer j.mu.RUnlock()
	out := map[string][]*entry.Item{}
	for _, it := range j.items {
		out[it.CreatedDate] = append(out[it.CreatedDate], it.Clone())
	}
	return out
}

// ByScheduledDate groups scheduled todos and events by the day they happen.
// Routines and notes are left out.
func (j *Journal) ByScheduledDate() map[string][]*entry.Item {
	j.mu.RLock()
	defer j.mu.RUnlock()
	out := map[string][]*entry.Item{}
	for _, it := range j.items {
		if key, ok := scheduledKey(it); ok {
			out[key] = append(out[key], it.Clone())
		}
	}
	return out
}

// AllDatesWithItems lists every day that has an item written or scheduled on
// it, ascending and without repeats.
func (j *Journal) AllDatesWithItems() []string {
	j.mu.RLock()
	defer j.mu.RUnlock()
	seen := map[string]bool{}
	for _, it := range j.items {
		seen[it.CreatedDate] = true
		if key, ok := scheduledKey(it); ok {
			seen[key] = true
		}
	}
	dates := make([]string, 0, len(seen))
	for d := range seen {
		if d != "" {
			dates = append(dates, d)
		}
	}
	sort.Strings(dates)
	return dates
}

func scheduledKey(it *entry.Item) (string, bool) {
	switch it.Kind() {
	case glyph.Todo, glyph.Event:
		if at, ok := it.Scheduled(); ok {
			return entry.DayKey(at), true
		}
	}
	return "", false
}

// Search returns the top level items whose content, or the content of any
// descendant, contains query. Matching ignores case. A query starting with #
// matches tags instead.
func (j *Journal) Search(query string) []*entry.Item {
	j.mu.RLock()
	defer j.mu.RUnlock()

	query = strings.ToLower(strings.TrimSpace(query))
	var out []*entry.Item
	for _, it := range j.items {
		if it.ParentID != "" {
			continue
		}
		if j.matches(it, query, map[string]bool{}) {
			out = append(out, it.Clone())
		}
	}
	return out
}

func (j *Journal) matches(it *entry.Item, query string, seen map[string]bool) bool {
	if query == "" {
		return true
	}
	if seen[it.ID] {
		return false
	}
	seen[it.ID] = true
	if tag := strings.TrimPrefix(query, "#"); tag != query {
		for _, t := range it.Tags {
			if strings.ToLower(t) == tag {
				return true
			}
		}
	} else if strings.Contains(strings.ToLower(it.Content), query) {
		return true
	}
	for _, cid := range it.ChildIDs() {
		if i, ok := j.index[cid]; ok && j.matches(j.items[i], query, seen) {
			return true
		}
	}
	return false
}

// ReviewItem is an open todo carried over from an earlier day.
type ReviewItem struct {
	Item        *entry.Item
	WaitingDays int
}

// Review lists todos written before today that are neither completed nor
// cancelled, longest waiting first.
func (j *Journal) Review(now time.Time) []ReviewItem {
	j.mu.RLock()
	defer j.mu.RUnlock()

	today := timeutil.StartOfDay(now.Local())
	todayKey := entry.DayKey(today)
	var out []ReviewItem
	for _, it := range j.items {
		if it.Kind() != glyph.Todo || it.Completed() || it.Cancelled() || it.CreatedDate >= todayKey {
			continue
		}
		created, err := entry.ParseDay(it.CreatedDate)
		if err != nil {
			continue
		}
		out = append(out, ReviewItem{Item: it.Clone(), WaitingDays: daysBetween(created, today)})
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].WaitingDays > out[b].WaitingDays })
	return out
}

// daysBetween counts calendar days, ignoring daylight saving shifts.
func daysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}

// CompletedBetween returns items completed in [since, until), oldest first.
func (j *Journal) CompletedBetween(since, until time.Time) []*entry.Item {
	j.mu.RLock()
	defer j.mu.RUnlock()
	var out []*entry.Item
	for _, it := range j.items {
		if it.CompletedAt == nil || it.CompletedAt.Before(since) || !it.CompletedAt.Before(until) {
			continue
		}
		out = append(out, it.Clone())
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].CompletedAt.Before(*out[b].CompletedAt) })
	return out
}
