package journal

import (
	"errors"
	"fmt"
	"math/rand"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"tableflip.dev/thoughts/pkg/entry"
	"tableflip.dev/thoughts/pkg/glyph"
	"tableflip.dev/thoughts/pkg/timeutil"
)

var today = time.Date(2024, time.January, 1, 9, 0, 0, 0, time.Local)

type recorder struct {
	mu    sync.Mutex
	saves int
	last  []*entry.Item
	fail  error
	logs  []string
}

func (r *recorder) persist(items []*entry.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return r.fail
	}
	r.saves++
	r.last = items
	return nil
}

func (r *recorder) logf(format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, fmt.Sprintf(format, args...))
}

func newJournal(t *testing.T) (*Journal, *recorder) {
	t.Helper()
	rec := &recorder{}
	counter := 0
	j := New(Options{
		Now: func() time.Time { return today },
		NewID: func() string {
			counter++
			return fmt.Sprintf("id-%d", counter)
		},
		Persist: rec.persist,
		Logf:    rec.logf,
	})
	return j, rec
}

func build(kind glyph.Kind, id, content, parent string) *entry.Item {
	return entry.Build(kind, content, nil, nil, entry.Context{ID: id, Now: today, ParentID: parent})
}

func at(day, hour, minute int) time.Time {
	return time.Date(2024, time.January, day, hour, minute, 0, 0, time.Local)
}

func event(id string, start, end time.Time) *entry.Item {
	return entry.Build(glyph.Event, "meeting", nil, &timeutil.Result{Start: start, HasTime: true, End: &end}, entry.Context{ID: id, Now: today})
}

func scheduledTodo(id string, when time.Time, hasTime bool) *entry.Item {
	return entry.Build(glyph.Todo, "buy milk", []string{"errand"}, &timeutil.Result{Start: when, HasTime: hasTime}, entry.Context{ID: id, Now: today})
}

func mustInsert(t *testing.T, j *Journal, it *entry.Item) *entry.Item {
	t.Helper()
	stored, err := j.Insert(it)
	if err != nil {
		t.Fatalf("insert %s: %v", it.ID, err)
	}
	return stored
}

func mustGet(t *testing.T, j *Journal, id string) *entry.Item {
	t.Helper()
	it, err := j.Get(id)
	if err != nil {
		t.Fatalf("get %s: %v", id, err)
	}
	return it
}

// checkLinks verifies that parent links and child lists agree everywhere.
func checkLinks(t *testing.T, j *Journal) {
	t.Helper()
	items := j.Items()
	byID := map[string]*entry.Item{}
	for _, it := range items {
		byID[it.ID] = it
	}
	listed := map[string]string{}
	for _, it := range items {
		for _, cid := range it.ChildIDs() {
			if prev, dup := listed[cid]; dup {
				t.Fatalf("%s listed under %s and %s", cid, prev, it.ID)
			}
			listed[cid] = it.ID
			c := byID[cid]
			if c == nil {
				t.Fatalf("%s lists missing child %s", it.ID, cid)
			}
			if c.ParentID != it.ID {
				t.Fatalf("%s lists %s whose parent is %q", it.ID, cid, c.ParentID)
			}
		}
	}
	for _, it := range items {
		if it.DepthLevel > entry.MaxDepth(it.Kind()) {
			t.Fatalf("%s (%s) at depth %d", it.ID, it.Kind(), it.DepthLevel)
		}
		if it.ParentID == "" {
			if it.DepthLevel != 0 || it.ParentType != "" {
				t.Fatalf("top level %s has depth %d type %q", it.ID, it.DepthLevel, it.ParentType)
			}
			continue
		}
		p := byID[it.ParentID]
		if p == nil {
			t.Fatalf("%s has missing parent %s", it.ID, it.ParentID)
		}
		if listed[it.ID] != p.ID {
			t.Fatalf("%s not in the child list of %s", it.ID, p.ID)
		}
		if it.DepthLevel != p.DepthLevel+1 {
			t.Fatalf("%s depth %d under %s depth %d", it.ID, it.DepthLevel, p.ID, p.DepthLevel)
		}
		if it.ParentType != p.Kind().String() {
			t.Fatalf("%s parent type %q, want %q", it.ID, it.ParentType, p.Kind())
		}
	}
}

func TestInsertLinksParent(t *testing.T) {
	j, rec := newJournal(t)
	mustInsert(t, j, build(glyph.Note, "n", "project", ""))
	child := mustInsert(t, j, build(glyph.Todo, "c", "first step", "n"))

	if child.ParentType != "note" || child.DepthLevel != 1 {
		t.Fatalf("unexpected link %q depth %d", child.ParentType, child.DepthLevel)
	}
	parent := mustGet(t, j, "n")
	if !reflect.DeepEqual(parent.ChildIDs(), []string{"c"}) {
		t.Fatalf("unexpected children %v", parent.ChildIDs())
	}
	if rec.saves != 2 {
		t.Fatalf("expected one save per insert, got %d", rec.saves)
	}
	checkLinks(t, j)
}

func TestInsertClimbsToAncestorWithRoom(t *testing.T) {
	j, _ := newJournal(t)
	mustInsert(t, j, build(glyph.Note, "n", "project", ""))
	mustInsert(t, j, build(glyph.Todo, "t", "task", "n"))

	// A todo may not sit at depth 2, so it lands beside its requested parent.
	sub := mustInsert(t, j, build(glyph.Todo, "sub", "subtask", "t"))
	if sub.ParentID != "n" || sub.DepthLevel != 1 {
		t.Fatalf("expected todo under n at depth 1, got %q depth %d", sub.ParentID, sub.DepthLevel)
	}
	// A note may.
	detail := mustInsert(t, j, build(glyph.Note, "d", "detail", "t"))
	if detail.ParentID != "t" || detail.DepthLevel != 2 || detail.ParentType != "todo" {
		t.Fatalf("expected note under t at depth 2, got %+v", detail)
	}
	// Nothing may sit at depth 3.
	deep := mustInsert(t, j, build(glyph.Note, "deep", "deeper", "d"))
	if deep.ParentID != "t" || deep.DepthLevel != 2 {
		t.Fatalf("expected note under t, got %q depth %d", deep.ParentID, deep.DepthLevel)
	}
	if got := mustGet(t, j, "t").ChildIDs(); !reflect.DeepEqual(got, []string{"d", "deep"}) {
		t.Fatalf("unexpected children of t: %v", got)
	}
	checkLinks(t, j)
}

func TestInsertUnknownParent(t *testing.T) {
	j, rec := newJournal(t)
	it := mustInsert(t, j, build(glyph.Todo, "orphan", "lost", "nope"))
	if it.ParentID != "" || it.ParentType != "" || it.DepthLevel != 0 {
		t.Fatalf("expected top level item, got %+v", it)
	}
	if len(rec.logs) != 1 || !strings.Contains(rec.logs[0], "nope") {
		t.Fatalf("expected a log line about the parent, got %v", rec.logs)
	}

	mustInsert(t, j, event("ev", at(2, 13, 0), at(2, 15, 0)))
	it = mustInsert(t, j, build(glyph.Note, "under-event", "x", "ev"))
	if it.ParentID != "" {
		t.Fatalf("events cannot hold items, got parent %q", it.ParentID)
	}
	checkLinks(t, j)
}

func TestInsertDuplicateID(t *testing.T) {
	j, _ := newJournal(t)
	mustInsert(t, j, build(glyph.Note, "a", "one", ""))
	if _, err := j.Insert(build(glyph.Note, "a", "two", "")); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	it := mustInsert(t, j, build(glyph.Note, "", "no id", ""))
	if it.ID == "" {
		t.Fatalf("expected an id to be assigned")
	}
}

func TestLinksHoldAcrossInsertsAndUpdates(t *testing.T) {
	j, _ := newJournal(t)
	rng := rand.New(rand.NewSource(7))
	kinds := []glyph.Kind{glyph.Note, glyph.Todo, glyph.Event, glyph.Routine}
	var ids []string

	for i := 0; i < 200; i++ {
		if len(ids) > 0 && rng.Intn(3) == 0 {
			id := ids[rng.Intn(len(ids))]
			if _, err := j.Update(id, func(it *entry.Item) {
				it.Content = fmt.Sprintf("edit %d", i)
				it.Tags = append(it.Tags, "x")
			}); err != nil {
				t.Fatalf("update %s: %v", id, err)
			}
		} else {
			parent := ""
			if len(ids) > 0 && rng.Intn(4) != 0 {
				parent = ids[rng.Intn(len(ids))]
			}
			id := fmt.Sprintf("r%d", i)
			mustInsert(t, j, build(kinds[rng.Intn(len(kinds))], id, "item", parent))
			ids = append(ids, id)
		}
		checkLinks(t, j)
	}
}

func TestToggleCompleteIsItsOwnInverse(t *testing.T) {
	j, _ := newJournal(t)
	mustInsert(t, j, scheduledTodo("t", at(2, 14, 0), true))
	before := mustGet(t, j, "t")

	done, err := j.ToggleComplete("t")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if done.CompletedAt == nil || !done.CompletedAt.Equal(today) {
		t.Fatalf("expected completion at now, got %v", done.CompletedAt)
	}
	undone, err := j.ToggleComplete("t")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if undone.CompletedAt != nil {
		t.Fatalf("expected completion cleared")
	}
	undone.UpdatedAt = before.UpdatedAt
	if !reflect.DeepEqual(before, undone) {
		t.Fatalf("toggle twice changed more than updatedAt:\n%+v\n%+v", before, undone)
	}
}

func TestToggleCompleteRejectsOtherKinds(t *testing.T) {
	j, rec := newJournal(t)
	mustInsert(t, j, build(glyph.Note, "n", "idea", ""))
	saves := rec.saves
	if _, err := j.ToggleComplete("n"); !errors.Is(err, ErrNotTodo) {
		t.Fatalf("expected ErrNotTodo, got %v", err)
	}
	if mustGet(t, j, "n").CompletedAt != nil || rec.saves != saves {
		t.Fatalf("state changed on rejected toggle")
	}
	if _, err := j.ToggleComplete("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestToggleCancel(t *testing.T) {
	j, _ := newJournal(t)
	mustInsert(t, j, build(glyph.Todo, "t", "maybe", ""))
	it, err := j.ToggleCancel("t")
	if err != nil || it.CancelledAt == nil {
		t.Fatalf("expected cancelled todo, got %+v %v", it, err)
	}
	it, _ = j.ToggleCancel("t")
	if it.CancelledAt != nil {
		t.Fatalf("expected cancel cleared")
	}
}

func TestInsertWithEventSplit(t *testing.T) {
	j, rec := newJournal(t)
	original := event("ev", at(2, 13, 0), at(2, 15, 0))
	ev, _ := original.Event()
	ev.SplitStartID = "earlier"
	mustInsert(t, j, original)
	saves := rec.saves

	splits, err := j.InsertWithEventSplit(scheduledTodo("todo", at(2, 14, 0), true))
	if err != nil {
		t.Fatalf("split insert: %v", err)
	}
	if rec.saves != saves+1 {
		t.Fatalf("expected a single save, got %d", rec.saves-saves)
	}
	if len(splits) != 1 || splits[0].OriginalID != "ev" {
		t.Fatalf("unexpected splits %+v", splits)
	}
	if _, err := j.Get("ev"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected the original event to be gone, got %v", err)
	}

	before, _ := mustGet(t, j, splits[0].Before.ID).Event()
	after, _ := mustGet(t, j, splits[0].After.ID).Event()
	if !before.StartTime.Equal(at(2, 13, 0)) || !before.EndTime.Equal(at(2, 14, 0)) {
		t.Fatalf("unexpected first half %v-%v", before.StartTime, before.EndTime)
	}
	if !after.StartTime.Equal(at(2, 14, 0)) || !after.EndTime.Equal(at(2, 15, 0)) {
		t.Fatalf("unexpected second half %v-%v", after.StartTime, after.EndTime)
	}
	if !before.EndTime.Equal(after.StartTime) {
		t.Fatalf("halves must meet")
	}
	if before.SplitEndID != "todo" || after.SplitStartID != "todo" {
		t.Fatalf("halves must point at the todo: %q %q", before.SplitEndID, after.SplitStartID)
	}
	if before.SplitStartID != "earlier" || after.SplitEndID != "" {
		t.Fatalf("outer links must carry over: %q %q", before.SplitStartID, after.SplitEndID)
	}
	if splits[0].Before.ID == splits[0].After.ID || splits[0].Before.Content != "meeting" {
		t.Fatalf("expected two distinct copies of the event")
	}

	events := 0
	for _, it := range j.Items() {
		if it.Kind() == glyph.Event {
			events++
		}
	}
	if events != 2 {
		t.Fatalf("expected 2 events, got %d", events)
	}
	if _, err := j.Get("todo"); err != nil {
		t.Fatalf("todo not inserted: %v", err)
	}
}

func TestEventSplitBoundaries(t *testing.T) {
	for _, when := range []time.Time{at(2, 13, 0), at(2, 15, 0), at(2, 12, 0)} {
		j, _ := newJournal(t)
		mustInsert(t, j, event("ev", at(2, 13, 0), at(2, 15, 0)))
		splits, err := j.InsertWithEventSplit(scheduledTodo("todo", when, true))
		if err != nil {
			t.Fatalf("insert: %v", err)
		}
		if len(splits) != 0 {
			t.Fatalf("%v: expected no split, got %d", when, len(splits))
		}
		if _, err := j.Get("ev"); err != nil {
			t.Fatalf("original event should remain: %v", err)
		}
	}
}

func TestEventSplitNeedsClockTime(t *testing.T) {
	j, _ := newJournal(t)
	mustInsert(t, j, entry.Build(glyph.Event, "conference", nil,
		&timeutil.Result{Start: at(1, 0, 0), End: timePtr(at(3, 0, 0))}, entry.Context{ID: "ev", Now: today}))
	splits, err := j.InsertWithEventSplit(scheduledTodo("todo", at(2, 0, 0), false))
	if err != nil || len(splits) != 0 {
		t.Fatalf("expected no split for a date only todo, got %d %v", len(splits), err)
	}
	if _, err := j.InsertWithEventSplit(build(glyph.Note, "n", "x", "")); !errors.Is(err, ErrNotTodo) {
		t.Fatalf("expected ErrNotTodo, got %v", err)
	}
}

func TestEventSplitKeepsParentList(t *testing.T) {
	j, _ := newJournal(t)
	mustInsert(t, j, build(glyph.Note, "day", "offsite", ""))
	ev := event("ev", at(2, 9, 0), at(2, 17, 0))
	ev.ParentID = "day"
	mustInsert(t, j, ev)
	mustInsert(t, j, build(glyph.Note, "after", "dinner", "day"))

	splits, err := j.InsertWithEventSplit(scheduledTodo("todo", at(2, 12, 0), true))
	if err != nil {
		t.Fatalf("split insert: %v", err)
	}
	want := []string{splits[0].Before.ID, splits[0].After.ID, "after"}
	if got := mustGet(t, j, "day").ChildIDs(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	checkLinks(t, j)
}

func TestEventSplitMultipleEvents(t *testing.T) {
	j, _ := newJournal(t)
	mustInsert(t, j, event("a", at(2, 13, 0), at(2, 15, 0)))
	mustInsert(t, j, event("b", at(2, 10, 0), at(2, 18, 0)))
	splits, err := j.InsertWithEventSplit(scheduledTodo("todo", at(2, 14, 0), true))
	if err != nil || len(splits) != 2 {
		t.Fatalf("expected two splits, got %d %v", len(splits), err)
	}
	if j.Len() != 5 {
		t.Fatalf("expected 4 halves and a todo, got %d items", j.Len())
	}
}

func TestPersistFailureRollsBack(t *testing.T) {
	j, rec := newJournal(t)
	mustInsert(t, j, event("ev", at(2, 13, 0), at(2, 15, 0)))
	rec.fail = errors.New("disk full")

	if _, err := j.InsertWithEventSplit(scheduledTodo("todo", at(2, 14, 0), true)); err == nil {
		t.Fatalf("expected persist error")
	}
	if j.Len() != 1 {
		t.Fatalf("expected rollback to 1 item, got %d", j.Len())
	}
	if _, err := j.Get("ev"); err != nil {
		t.Fatalf("original event should be restored: %v", err)
	}
	if _, err := j.Update("ev", func(it *entry.Item) { it.Content = "changed" }); err == nil {
		t.Fatalf("expected persist error")
	}
	if mustGet(t, j, "ev").Content != "meeting" {
		t.Fatalf("update was not rolled back")
	}
}

func TestUpdate(t *testing.T) {
	j, _ := newJournal(t)
	mustInsert(t, j, build(glyph.Note, "n", "project", ""))
	mustInsert(t, j, event("ev", at(2, 13, 0), at(2, 15, 0)))

	later := today.Add(time.Hour)
	j.now = func() time.Time { return later }
	it, err := j.Update("n", func(it *entry.Item) { it.Content = "renamed" })
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if it.Content != "renamed" || !it.UpdatedAt.Equal(later) {
		t.Fatalf("unexpected update result %+v", it)
	}

	structural := []func(*entry.Item){
		func(it *entry.Item) { it.ID = "other" },
		func(it *entry.Item) { it.ParentID = "ev" },
		func(it *entry.Item) { it.SetChildIDs([]string{"ev"}) },
		func(it *entry.Item) { it.CreatedAt = it.CreatedAt.Add(time.Hour) },
		func(it *entry.Item) { it.Body = &entry.Todo{} },
	}
	for i, fn := range structural {
		if _, err := j.Update("n", fn); !errors.Is(err, ErrStructural) {
			t.Fatalf("case %d: expected ErrStructural, got %v", i, err)
		}
	}
	if mustGet(t, j, "n").Content != "renamed" {
		t.Fatalf("rejected update changed state")
	}

	_, err = j.Update("ev", func(it *entry.Item) {
		ev, _ := it.Event()
		ev.EndTime = ev.StartTime.Add(-time.Minute)
	})
	if !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("expected ErrInvalidInterval, got %v", err)
	}
	if _, err := j.Update("missing", func(*entry.Item) {}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeletePromotesChildrenAndClearsReferences(t *testing.T) {
	j, _ := newJournal(t)
	mustInsert(t, j, build(glyph.Note, "root", "root", ""))
	mustInsert(t, j, build(glyph.Note, "mid", "mid", "root"))
	mustInsert(t, j, build(glyph.Note, "leaf1", "leaf", "mid"))
	mustInsert(t, j, build(glyph.Note, "leaf2", "leaf", "mid"))
	mustInsert(t, j, build(glyph.Note, "sibling", "sibling", "root"))
	mustInsert(t, j, event("ev", at(2, 13, 0), at(2, 15, 0)))
	if _, err := j.Update("ev", func(it *entry.Item) {
		ev, _ := it.Event()
		ev.EmbeddedItems = []string{"mid"}
		ev.SplitEndID = "mid"
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	if err := j.Delete("mid"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := mustGet(t, j, "root").ChildIDs(); !reflect.DeepEqual(got, []string{"leaf1", "leaf2", "sibling"}) {
		t.Fatalf("unexpected children of root: %v", got)
	}
	if leaf := mustGet(t, j, "leaf1"); leaf.DepthLevel != 1 || leaf.ParentID != "root" {
		t.Fatalf("leaf not promoted: %+v", leaf)
	}
	ev, _ := mustGet(t, j, "ev").Event()
	if ev.SplitEndID != "" || len(ev.EmbeddedItems) != 0 {
		t.Fatalf("references to the deleted item remain: %+v", ev)
	}
	checkLinks(t, j)

	if err := j.Delete("root"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	for _, id := range []string{"leaf1", "leaf2", "sibling"} {
		if it := mustGet(t, j, id); it.ParentID != "" || it.DepthLevel != 0 {
			t.Fatalf("%s should be top level, got %+v", id, it)
		}
	}
	checkLinks(t, j)

	if err := j.Delete("root"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDateViews(t *testing.T) {
	j, _ := newJournal(t)
	mustInsert(t, j, scheduledTodo("t1", at(5, 14, 0), true))
	mustInsert(t, j, event("e1", at(3, 9, 0), at(3, 10, 0)))
	mustInsert(t, j, build(glyph.Note, "n1", "idea", ""))
	mustInsert(t, j, entry.Build(glyph.Routine, "run", nil, &timeutil.Result{Start: at(9, 7, 0), HasTime: true}, entry.Context{ID: "r1", Now: today}))
	old := build(glyph.Todo, "t0", "old", "")
	old.CreatedAt = at(1, 9, 0).AddDate(0, 0, -10)
	old.CreatedDate = entry.DayKey(old.CreatedAt)
	mustInsert(t, j, old)

	created := j.ByCreatedDate()
	if len(created["2024-01-01"]) != 4 || len(created["2023-12-22"]) != 1 {
		t.Fatalf("unexpected created groups %v", keys(created))
	}

	scheduled := j.ByScheduledDate()
	if len(scheduled) != 2 || scheduled["2024-01-05"][0].ID != "t1" || scheduled["2024-01-03"][0].ID != "e1" {
		t.Fatalf("unexpected scheduled groups %v", keys(scheduled))
	}

	dates := j.AllDatesWithItems()
	want := []string{"2023-12-22", "2024-01-01", "2024-01-03", "2024-01-05"}
	if !reflect.DeepEqual(dates, want) {
		t.Fatalf("expected %v, got %v", want, dates)
	}
	for i := 1; i < len(dates); i++ {
		if dates[i-1] >= dates[i] {
			t.Fatalf("dates not strictly ascending: %v", dates)
		}
	}
}

func keys(m map[string][]*entry.Item) []string {
	var out []string
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestSearchIsRecursive(t *testing.T) {
	j, _ := newJournal(t)
	mustInsert(t, j, build(glyph.Note, "trip", "Plan trip", ""))
	mustInsert(t, j, build(glyph.Note, "flights", "book Flights", "trip"))
	mustInsert(t, j, build(glyph.Todo, "milk", "buy milk", ""))
	tagged := entry.Build(glyph.Todo, "call", []string{"Work"}, nil, entry.Context{ID: "call", Now: today})
	mustInsert(t, j, tagged)

	got := j.Search("flights")
	if len(got) != 1 || got[0].ID != "trip" {
		t.Fatalf("expected the parent of the match, got %v", got)
	}
	if got := j.Search("MILK"); len(got) != 1 || got[0].ID != "milk" {
		t.Fatalf("expected case insensitive match, got %v", got)
	}
	if got := j.Search("#work"); len(got) != 1 || got[0].ID != "call" {
		t.Fatalf("expected tag match, got %v", got)
	}
	if got := j.Search(""); len(got) != 3 {
		t.Fatalf("expected every top level item, got %d", len(got))
	}
}

func TestReview(t *testing.T) {
	j, _ := newJournal(t)
	for i, days := range []int{2, 5, 0} {
		it := build(glyph.Todo, fmt.Sprintf("t%d", i), "task", "")
		it.CreatedAt = today.AddDate(0, 0, -days)
		it.CreatedDate = entry.DayKey(it.CreatedAt)
		mustInsert(t, j, it)
	}
	done := build(glyph.Todo, "done", "task", "")
	done.CreatedAt = today.AddDate(0, 0, -3)
	done.CreatedDate = entry.DayKey(done.CreatedAt)
	mustInsert(t, j, done)
	if _, err := j.ToggleComplete("done"); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	review := j.Review(today)
	if len(review) != 2 {
		t.Fatalf("expected 2 todos to review, got %d", len(review))
	}
	if review[0].Item.ID != "t1" || review[0].WaitingDays != 5 || review[1].WaitingDays != 2 {
		t.Fatalf("unexpected review order %+v %+v", review[0], review[1])
	}
}

func TestCheckRoutine(t *testing.T) {
	j, rec := newJournal(t)
	mustInsert(t, j, entry.Build(glyph.Routine, "stretch", nil, nil, entry.Context{ID: "r", Now: today}))

	it, err := j.CheckRoutine("r")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	r, _ := it.Routine()
	if r.Streak != 1 || r.LastCompleted != "2024-01-01" {
		t.Fatalf("unexpected routine %+v", r)
	}
	saves := rec.saves
	if _, err := j.CheckRoutine("r"); err != nil || rec.saves != saves {
		t.Fatalf("second check on the same day should not save")
	}

	j.now = func() time.Time { return today.AddDate(0, 0, 1) }
	it, _ = j.CheckRoutine("r")
	r, _ = it.Routine()
	if r.Streak != 2 {
		t.Fatalf("expected streak 2, got %d", r.Streak)
	}

	mustInsert(t, j, build(glyph.Todo, "t", "x", ""))
	if _, err := j.CheckRoutine("t"); !errors.Is(err, ErrNotRoutine) {
		t.Fatalf("expected ErrNotRoutine, got %v", err)
	}
}

func TestChildren(t *testing.T) {
	j, _ := newJournal(t)
	mustInsert(t, j, build(glyph.Todo, "p", "parent", ""))
	mustInsert(t, j, build(glyph.Note, "a", "a", "p"))
	mustInsert(t, j, build(glyph.Note, "b", "b", "p"))
	kids, err := j.Children("p")
	if err != nil || len(kids) != 2 || kids[0].ID != "a" || kids[1].ID != "b" {
		t.Fatalf("unexpected children %v %v", kids, err)
	}
}

func timePtr(t time.Time) *time.Time { return &t }
