package journal

import (
	"fmt"

	"tableflip.dev/thoughts/pkg/entry"
)

// Load replaces the snapshot with items, repairing whatever would break the
// parent and depth rules: duplicate or missing ids, links to missing or
// childless parents, cycles, stale child lists and depths. It returns a
// description of each repair. Load does not call the persist hook.
func (j *Journal) Load(items []*entry.Item) []string {
	order, repairs := repair(items)

	j.mu.Lock()
	defer j.mu.Unlock()
	j.items = order
	j.index = indexOf(order)
	j.logRepairs(repairs)
	return repairs
}

// Replace is Load followed by the persist hook. The previous snapshot is kept
// when persisting fails.
func (j *Journal) Replace(items []*entry.Item) ([]string, error) {
	order, repairs := repair(items)

	j.mu.Lock()
	defer j.mu.Unlock()
	t := &txn{items: order, index: indexOf(order), now: j.now()}
	if err := j.commit(t); err != nil {
		return nil, err
	}
	j.logRepairs(repairs)
	return repairs, nil
}

func (j *Journal) logRepairs(repairs []string) {
	for _, r := range repairs {
		j.logf("load: %s", r)
	}
}

func indexOf(items []*entry.Item) map[string]int {
	index := make(map[string]int, len(items))
	for i, it := range items {
		index[it.ID] = i
	}
	return index
}

// repair copies items into a consistent snapshot.
func repair(items []*entry.Item) ([]*entry.Item, []string) {
	var repairs []string
	note := func(format string, args ...interface{}) {
		repairs = append(repairs, fmt.Sprintf(format, args...))
	}

	byID := make(map[string]*entry.Item, len(items))
	order := make([]*entry.Item, 0, len(items))
	for _, raw := range items {
		if raw == nil || raw.ID == "" {
			note("dropped an item without an id")
			continue
		}
		if byID[raw.ID] != nil {
			note("dropped duplicate of %s", raw.ID)
			continue
		}
		it := raw.Clone()
		if it.Body == nil {
			it.Body = &entry.Note{SubItems: []string{}, LinkPreviews: []string{}}
		}
		if it.CreatedDate == "" {
			it.CreatedDate = entry.DayKey(it.CreatedAt)
		}
		if ev, ok := it.Event(); ok && ev.EndTime.Before(ev.StartTime) {
			note("%s ended before it started; end moved to start", it.ID)
			ev.EndTime = ev.StartTime
		}
		byID[it.ID] = it
		order = append(order, it)
	}
	get := func(id string) *entry.Item {
		if id == "" {
			return nil
		}
		return byID[id]
	}

	// Parent links.
	for _, it := range order {
		if it.ParentID == "" {
			it.ParentType = ""
			continue
		}
		parent := get(it.ParentID)
		switch {
		case parent == nil:
			note("%s pointed at missing parent %s", it.ID, it.ParentID)
			it.ParentID = ""
		case !parent.Kind().Nestable():
			note("%s pointed at %s, a %s", it.ID, it.ParentID, parent.Kind())
			it.ParentID = ""
		case createsCycle(get, it.ID, it.ParentID):
			note("%s was part of a parent cycle", it.ID)
			it.ParentID = ""
		}
		it.ParentType = ""
		if p := get(it.ParentID); p != nil {
			it.ParentType = p.Kind().String()
		}
	}

	// Child lists follow parent links, keeping the stored order first.
	children := map[string][]string{}
	listed := map[string]bool{}
	for _, it := range order {
		for _, cid := range it.ChildIDs() {
			c := get(cid)
			if c == nil || c.ParentID != it.ID || listed[cid] {
				note("removed %s from the children of %s", cid, it.ID)
				continue
			}
			listed[cid] = true
			children[it.ID] = append(children[it.ID], cid)
		}
	}
	for _, it := range order {
		if it.ParentID != "" && !listed[it.ID] {
			note("added %s to the children of %s", it.ID, it.ParentID)
			children[it.ParentID] = append(children[it.ParentID], it.ID)
		}
	}
	for _, it := range order {
		kids := children[it.ID]
		if kids == nil {
			kids = []string{}
		}
		it.SetChildIDs(kids)
	}

	// Depths from the roots down. Items deeper than their kind allows move
	// up to the nearest ancestor with room once the pass is done.
	type move struct{ id, from string }
	var moves []move
	var place func(id string, depth int)
	place = func(id string, depth int) {
		it := byID[id]
		if it.DepthLevel != depth {
			note("%s depth %d corrected to %d", id, it.DepthLevel, depth)
			it.DepthLevel = depth
		}
		keep := make([]string, 0, len(it.ChildIDs()))
		for _, cid := range it.ChildIDs() {
			if depth+1 > entry.MaxDepth(byID[cid].Kind()) {
				moves = append(moves, move{id: cid, from: id})
				continue
			}
			keep = append(keep, cid)
		}
		it.SetChildIDs(keep)
		for _, cid := range keep {
			place(cid, depth+1)
		}
	}
	for _, it := range order {
		if it.ParentID == "" {
			place(it.ID, 0)
		}
	}
	for len(moves) > 0 {
		m := moves[0]
		moves = moves[1:]
		c := byID[m.id]
		host := ancestorFor(get, byID[m.from].ParentID, c.Kind())
		if host == nil {
			note("%s moved to the top level", m.id)
			c.ParentID, c.ParentType = "", ""
			place(m.id, 0)
			continue
		}
		note("%s moved under %s", m.id, host.ID)
		host.SetChildIDs(append(host.ChildIDs(), m.id))
		c.ParentID, c.ParentType = host.ID, host.Kind().String()
		place(m.id, host.DepthLevel+1)
	}

	return order, repairs
}

// createsCycle reports whether following parents up from parentID reaches
// childID.
func createsCycle(get func(string) *entry.Item, childID, parentID string) bool {
	seen := map[string]bool{}
	for current := parentID; current != ""; {
		if current == childID {
			return true
		}
		if seen[current] {
			return false
		}
		seen[current] = true
		next := get(current)
		if next == nil {
			break
		}
		current = next.ParentID
	}
	return false
}
