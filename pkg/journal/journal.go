// Package journal owns the set of items and enforces the relationships
// between them: parent and child links, nesting depth and event splits.
package journal

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"tableflip.dev/thoughts/pkg/entry"
	"tableflip.dev/thoughts/pkg/ids"
)

var (
	ErrNotFound        = errors.New("journal: item not found")
	ErrNotTodo         = errors.New("journal: item is not a todo")
	ErrNotRoutine      = errors.New("journal: item is not a routine")
	ErrStructural      = errors.New("journal: structural fields cannot be changed")
	ErrInvalidInterval = errors.New("journal: event ends before it starts")
	ErrDuplicateID     = errors.New("journal: duplicate item id")
)

// Options configures a Journal. Every field is optional.
type Options struct {
	// Now is the clock used for timestamps.
	Now func() time.Time
	// NewID mints ids for items created by the journal itself.
	NewID func() string
	// Persist is called with the new snapshot after every change. The
	// snapshot must not be modified. When Persist fails the change is
	// rolled back.
	Persist func(items []*entry.Item) error
	// Logf reports recoverable problems. Defaults to stderr.
	Logf func(format string, args ...interface{})
}

// Journal is the item store. Every change builds a new snapshot and swaps it
// in as one step, so readers never see half of an operation.
type Journal struct {
	mu    sync.RWMutex
	items []*entry.Item
	index map[string]int

	now     func() time.Time
	newID   func() string
	persist func([]*entry.Item) error
	logf    func(string, ...interface{})
}

func New(opts Options) *Journal {
	j := &Journal{
		index:   map[string]int{},
		now:     opts.Now,
		newID:   opts.NewID,
		persist: opts.Persist,
		logf:    opts.Logf,
	}
	if j.now == nil {
		j.now = time.Now
	}
	if j.newID == nil {
		j.newID = ids.New
	}
	if j.logf == nil {
		j.logf = func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, "journal: "+format+"\n", args...)
		}
	}
	return j
}

// Len is the number of items.
func (j *Journal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return len(j.items)
}

// Get returns a copy of the item with id.
func (j *Journal) Get(id string) (*entry.Item, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	i, ok := j.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return j.items[i].Clone(), nil
}

// Items returns copies of every item in insertion order.
func (j *Journal) Items() []*entry.Item {
	j.mu.RLock()
	defer j.mu.RUnlock()
	out := make([]*entry.Item, 0, len(j.items))
	for _, it := range j.items {
		out = append(out, it.Clone())
	}
	return out
}

// Children returns copies of the direct children of id in list order.
func (j *Journal) Children(id string) ([]*entry.Item, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	i, ok := j.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	kids := j.items[i].ChildIDs()
	out := make([]*entry.Item, 0, len(kids))
	for _, cid := range kids {
		if ci, ok := j.index[cid]; ok {
			out = append(out, j.items[ci].Clone())
		}
	}
	return out, nil
}

// txn is a copy-on-write view of the snapshot. Items are cloned the first
// time they are edited; untouched items stay shared with the old snapshot.
type txn struct {
	items []*entry.Item
	index map[string]int
	owned map[string]bool
	now   time.Time
}

// begin must be called with j.mu held for writing.
func (j *Journal) begin() *txn {
	items := make([]*entry.Item, len(j.items))
	copy(items, j.items)
	t := &txn{items: items, owned: map[string]bool{}, now: j.now()}
	t.reindex()
	return t
}

func (t *txn) reindex() {
	t.index = indexOf(t.items)
}

func (t *txn) get(id string) *entry.Item {
	if id == "" {
		return nil
	}
	if i, ok := t.index[id]; ok {
		return t.items[i]
	}
	return nil
}

// edit returns a private, writable copy of id with updatedAt refreshed.
func (t *txn) edit(id string) *entry.Item {
	i, ok := t.index[id]
	if !ok {
		return nil
	}
	if !t.owned[id] {
		t.items[i] = t.items[i].Clone()
		t.owned[id] = true
	}
	t.items[i].UpdatedAt = t.now
	return t.items[i]
}

func (t *txn) add(it *entry.Item) {
	t.index[it.ID] = len(t.items)
	t.items = append(t.items, it)
	t.owned[it.ID] = true
}

// replace swaps id for zero or more items at the same position.
func (t *txn) replace(id string, with ...*entry.Item) {
	i, ok := t.index[id]
	if !ok {
		return
	}
	next := make([]*entry.Item, 0, len(t.items)-1+len(with))
	next = append(next, t.items[:i]...)
	next = append(next, with...)
	next = append(next, t.items[i+1:]...)
	t.items = next
	delete(t.owned, id)
	for _, w := range with {
		t.owned[w.ID] = true
	}
	t.reindex()
}

// forget clears references to id held by any item.
func (t *txn) forget(id string) {
	for _, it := range t.items {
		if it.ID != id && it.Refers(id) {
			t.edit(it.ID).Forget(id)
		}
	}
}

// setDepth assigns depth to id and recomputes its subtree.
func (t *txn) setDepth(id string, depth int) {
	it := t.get(id)
	if it == nil {
		return
	}
	if it.DepthLevel != depth {
		it = t.edit(id)
		it.DepthLevel = depth
	}
	for _, cid := range it.ChildIDs() {
		t.setDepth(cid, depth+1)
	}
}

// commit swaps in the transaction's snapshot and persists it. It must be
// called with j.mu held for writing.
func (j *Journal) commit(t *txn) error {
	prevItems, prevIndex := j.items, j.index
	j.items, j.index = t.items, t.index
	if j.persist == nil {
		return nil
	}
	if err := j.persist(j.items); err != nil {
		j.items, j.index = prevItems, prevIndex
		return fmt.Errorf("journal: persist: %w", err)
	}
	return nil
}
