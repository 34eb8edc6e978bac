package journal

import (
	"fmt"
	"time"

	"tableflip.dev/thoughts/pkg/entry"
	"tableflip.dev/thoughts/pkg/glyph"
)

// Update applies fn to a copy of the item and stores the result. fn may change
// content, tags, dates and kind specific fields; changing the id, kind,
// parent link, child list or creation time fails with ErrStructural.
func (j *Journal) Update(id string, fn func(*entry.Item)) (*entry.Item, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	t := j.begin()
	cur := t.get(id)
	if cur == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	next := cur.Clone()
	fn(next)
	if err := validateUpdate(cur, next); err != nil {
		return nil, err
	}
	if ev, ok := next.Event(); ok {
		ev.IsAllDay = !ev.HasTime
	}
	next.UpdatedAt = t.now
	t.replace(id, next)
	if err := j.commit(t); err != nil {
		return nil, err
	}
	return next.Clone(), nil
}

func validateUpdate(cur, next *entry.Item) error {
	switch {
	case next.ID != cur.ID:
		return fmt.Errorf("%w: id", ErrStructural)
	case next.Kind() != cur.Kind():
		return fmt.Errorf("%w: kind", ErrStructural)
	case next.ParentID != cur.ParentID || next.ParentType != cur.ParentType || next.DepthLevel != cur.DepthLevel:
		return fmt.Errorf("%w: parent link", ErrStructural)
	case !sameIDs(next.ChildIDs(), cur.ChildIDs()):
		return fmt.Errorf("%w: children", ErrStructural)
	case !next.CreatedAt.Equal(cur.CreatedAt) || next.CreatedDate != cur.CreatedDate:
		return fmt.Errorf("%w: creation time", ErrStructural)
	}
	if ev, ok := next.Event(); ok && ev.EndTime.Before(ev.StartTime) {
		return fmt.Errorf("%w: %s ends %s, starts %s", ErrInvalidInterval, next.ID,
			ev.EndTime.Format("2006-01-02 15:04"), ev.StartTime.Format("2006-01-02 15:04"))
	}
	return nil
}

// Delete removes the item. Its children move up to its parent (or the top
// level) and every other reference to it is cleared.
func (j *Journal) Delete(id string) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	t := j.begin()
	it := t.get(id)
	if it == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	kids := append([]string(nil), it.ChildIDs()...)

	depth := 0
	parentID, parentType := "", ""
	if parent := t.get(it.ParentID); parent != nil {
		p := t.edit(parent.ID)
		promoted := make([]string, 0, len(p.ChildIDs())+len(kids))
		for _, cid := range p.ChildIDs() {
			if cid == id {
				promoted = append(promoted, kids...)
				continue
			}
			promoted = append(promoted, cid)
		}
		p.SetChildIDs(promoted)
		depth = p.DepthLevel + 1
		parentID, parentType = p.ID, p.Kind().String()
	}
	for _, cid := range kids {
		if t.get(cid) == nil {
			continue
		}
		c := t.edit(cid)
		c.ParentID, c.ParentType = parentID, parentType
		t.setDepth(cid, depth)
	}

	t.replace(id)
	t.forget(id)
	return j.commit(t)
}

// ToggleComplete flips a todo between open and completed.
func (j *Journal) ToggleComplete(id string) (*entry.Item, error) {
	return j.toggleTodo(id, func(it *entry.Item, now time.Time) {
		if it.CompletedAt != nil {
			it.CompletedAt = nil
			return
		}
		it.CompletedAt = &now
	})
}

// ToggleCancel flips a todo between open and cancelled.
func (j *Journal) ToggleCancel(id string) (*entry.Item, error) {
	return j.toggleTodo(id, func(it *entry.Item, now time.Time) {
		if it.CancelledAt != nil {
			it.CancelledAt = nil
			return
		}
		it.CancelledAt = &now
	})
}

func (j *Journal) toggleTodo(id string, flip func(*entry.Item, time.Time)) (*entry.Item, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	t := j.begin()
	cur := t.get(id)
	if cur == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if cur.Kind() != glyph.Todo {
		return nil, fmt.Errorf("%w: %s is a %s", ErrNotTodo, id, cur.Kind())
	}
	it := t.edit(id)
	flip(it, t.now)
	if err := j.commit(t); err != nil {
		return nil, err
	}
	return it.Clone(), nil
}

// CheckRoutine marks a routine done today and updates its streak. Checking
// twice on the same day changes nothing.
func (j *Journal) CheckRoutine(id string) (*entry.Item, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	t := j.begin()
	cur := t.get(id)
	if cur == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	r, ok := cur.Routine()
	if !ok {
		return nil, fmt.Errorf("%w: %s is a %s", ErrNotRoutine, id, cur.Kind())
	}
	probe := *r
	if !probe.Check(t.now) {
		return cur.Clone(), nil
	}
	it := t.edit(id)
	routine, _ := it.Routine()
	routine.Check(t.now)
	if err := j.commit(t); err != nil {
		return nil, err
	}
	return it.Clone(), nil
}

func sameIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
