package journal

import (
	"fmt"
	"time"

	"tableflip.dev/thoughts/pkg/entry"
	"tableflip.dev/thoughts/pkg/glyph"
)

// Split records one event that was cut in two by a scheduled todo.
type Split struct {
	OriginalID string
	Before     *entry.Item
	After      *entry.Item
}

// Insert adds item. When item.ParentID names a note or todo the item is
// appended to that parent's child list at the parent's depth plus one. If that
// is deeper than the item's kind allows, the nearest ancestor with room is
// used instead. Any other parent is dropped and the item goes in at the top
// level.
func (j *Journal) Insert(item *entry.Item) (*entry.Item, error) {
	if item == nil {
		return nil, fmt.Errorf("journal: nil item")
	}
	j.mu.Lock()
	defer j.mu.Unlock()

	t := j.begin()
	it, err := j.prepare(t, item)
	if err != nil {
		return nil, err
	}
	j.link(t, it)
	t.add(it)
	if err := j.commit(t); err != nil {
		return nil, err
	}
	return it.Clone(), nil
}

// InsertWithEventSplit inserts a todo. When the todo has a clock time that
// falls strictly inside an event, the event is replaced by two events that
// meet at the todo's time. The splits and the insert are one change.
func (j *Journal) InsertWithEventSplit(todo *entry.Item) ([]Split, error) {
	if todo == nil {
		return nil, fmt.Errorf("journal: nil item")
	}
	body, ok := todo.Todo()
	if !ok {
		return nil, fmt.Errorf("%w: %s is a %s", ErrNotTodo, todo.ID, todo.Kind())
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	t := j.begin()
	it, err := j.prepare(t, todo)
	if err != nil {
		return nil, err
	}

	var splits []Split
	if body.HasTime && body.ScheduledTime != nil {
		at := *body.ScheduledTime
		for _, candidate := range t.items {
			ev, ok := candidate.Event()
			if !ok || !ev.StartTime.Before(at) || !at.Before(ev.EndTime) {
				continue
			}
			splits = append(splits, Split{OriginalID: candidate.ID})
		}
		for i := range splits {
			splits[i].Before, splits[i].After = j.split(t, splits[i].OriginalID, it.ID, at)
		}
	}

	j.link(t, it)
	t.add(it)
	if err := j.commit(t); err != nil {
		return nil, err
	}
	for i := range splits {
		splits[i].Before = splits[i].Before.Clone()
		splits[i].After = splits[i].After.Clone()
	}
	return splits, nil
}

// split replaces the event id with two halves meeting at at.
func (j *Journal) split(t *txn, id, todoID string, at time.Time) (*entry.Item, *entry.Item) {
	orig := t.get(id)

	before := orig.Clone()
	before.ID = j.newID()
	before.CreatedAt, before.UpdatedAt = t.now, t.now
	before.CreatedDate = entry.DayKey(t.now)
	b, _ := before.Event()
	b.EndTime = at
	b.SplitEndID = todoID

	after := orig.Clone()
	after.ID = j.newID()
	after.CreatedAt, after.UpdatedAt = t.now, t.now
	after.CreatedDate = entry.DayKey(t.now)
	a, _ := after.Event()
	a.StartTime = at
	a.SplitStartID = todoID

	if parent := t.get(orig.ParentID); parent != nil {
		p := t.edit(parent.ID)
		kids := make([]string, 0, len(p.ChildIDs())+1)
		for _, cid := range p.ChildIDs() {
			if cid == id {
				kids = append(kids, before.ID, after.ID)
				continue
			}
			kids = append(kids, cid)
		}
		p.SetChildIDs(kids)
	}
	t.replace(id, before, after)
	t.forget(id)
	return before, after
}

// prepare copies item, fills in a missing id and checks it is new.
func (j *Journal) prepare(t *txn, item *entry.Item) (*entry.Item, error) {
	it := item.Clone()
	if it.ID == "" {
		it.ID = j.newID()
	}
	if t.get(it.ID) != nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateID, it.ID)
	}
	if it.CreatedAt.IsZero() {
		it.CreatedAt = t.now
	}
	if it.CreatedDate == "" {
		it.CreatedDate = entry.DayKey(it.CreatedAt)
	}
	if it.UpdatedAt.IsZero() {
		it.UpdatedAt = it.CreatedAt
	}
	if it.Body == nil {
		it.Body = &entry.Note{SubItems: []string{}, LinkPreviews: []string{}}
	}
	// A new item starts without children; links are only made from the
	// child's side.
	it.SetChildIDs([]string{})
	return it, nil
}

// link attaches it to its requested parent, or to the nearest ancestor with
// room for it, and sets depth and parent type.
func (j *Journal) link(t *txn, it *entry.Item) {
	requested := it.ParentID
	it.ParentID, it.ParentType, it.DepthLevel = "", "", 0
	if requested == "" {
		return
	}

	parent := t.get(requested)
	switch {
	case parent == nil:
		j.logf("parent %s of %s not found; adding it at the top level", requested, it.ID)
		return
	case !parent.Kind().Nestable():
		j.logf("parent %s of %s is a %s and cannot hold items; adding it at the top level", requested, it.ID, parent.Kind())
		return
	}

	host := ancestorFor(t.get, requested, it.Kind())
	if host == nil {
		return
	}
	h := t.edit(host.ID)
	h.SetChildIDs(append(append([]string{}, h.ChildIDs()...), it.ID))
	it.ParentID = h.ID
	it.ParentType = h.Kind().String()
	it.DepthLevel = h.DepthLevel + 1
}

// ancestorFor walks up from id and returns the first note or todo whose
// children may be of kind.
func ancestorFor(get func(string) *entry.Item, id string, kind glyph.Kind) *entry.Item {
	seen := map[string]bool{}
	for a := get(id); a != nil && !seen[a.ID]; a = get(a.ParentID) {
		seen[a.ID] = true
		if a.Kind().Nestable() && a.DepthLevel+1 <= entry.MaxDepth(kind) {
			return a
		}
	}
	return nil
}
