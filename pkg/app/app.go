package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"tableflip.dev/thoughts/pkg/capture"
	"tableflip.dev/thoughts/pkg/entry"
	"tableflip.dev/thoughts/pkg/glyph"
	"tableflip.dev/thoughts/pkg/ids"
	"tableflip.dev/thoughts/pkg/journal"
	"tableflip.dev/thoughts/pkg/store"
	"tableflip.dev/thoughts/pkg/tags"
	"tableflip.dev/thoughts/pkg/timeutil"
)

var (
	ErrEmptyInput       = errors.New("app: nothing to add")
	ErrNotSchedulable   = errors.New("app: notes cannot be scheduled")
	ErrNoPersistence    = errors.New("app: no persistence configured")
	errServiceNotOpened = errors.New("app: service not opened")
)

// Options configures Open. Every field is optional.
type Options struct {
	Now   func() time.Time
	NewID func() string
	Logf  func(format string, args ...interface{})
}

// Service provides high-level operations on items. It wraps the journal and
// its persistence so the CLI and tests share one code path.
type Service struct {
	Persistence store.Persistence

	now      func() time.Time
	newID    func() string
	resolver *timeutil.Resolver
	journal  *journal.Journal
}

// Open loads the stored snapshot into a fresh journal. Every later change is
// written back through p before the call that made it returns.
func Open(ctx context.Context, p store.Persistence, opts Options) (*Service, error) {
	if p == nil {
		return nil, ErrNoPersistence
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	newID := opts.NewID
	if newID == nil {
		newID = ids.New
	}
	s := &Service{
		Persistence: p,
		now:         now,
		newID:       newID,
		resolver:    &timeutil.Resolver{Now: now},
	}
	s.journal = journal.New(journal.Options{
		Now:   now,
		NewID: newID,
		Logf:  opts.Logf,
		Persist: func(items []*entry.Item) error {
			return p.Save(context.Background(), items)
		},
	})
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload replaces the in-memory snapshot with what is stored.
func (s *Service) Reload(ctx context.Context) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	items, err := s.Persistence.Load(ctx)
	if err != nil {
		return err
	}
	s.journal.Load(items)
	return nil
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	return s.Persistence.Watch(ctx)
}

func (s *Service) ready(ctx context.Context) error {
	if s == nil || s.journal == nil {
		return errServiceNotOpened
	}
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}

// AddItem interprets one line of text and stores the item it describes. A
// todo with a clock time splits any event it falls inside.
func (s *Service) AddItem(ctx context.Context, text, parentID string, depth int) (string, error) {
	if err := s.ready(ctx); err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyInput
	}
	p := capture.ParseWith(s.resolver, text)
	if strings.TrimSpace(p.Content) == "" && len(p.Tags) == 0 {
		return "", ErrEmptyInput
	}
	if depth < p.Depth {
		depth = p.Depth
	}
	it := entry.Build(p.Kind, p.Content, p.Tags, p.Temporal, entry.Context{
		Now:        s.now(),
		ParentID:   parentID,
		DepthLevel: depth,
	})
	return s.insert(it)
}

func (s *Service) insert(it *entry.Item) (string, error) {
	it.ID = s.newID()
	if it.Kind() == glyph.Todo {
		if _, err := s.journal.InsertWithEventSplit(it); err != nil {
			return "", err
		}
		return it.ID, nil
	}
	stored, err := s.journal.Insert(it)
	if err != nil {
		return "", err
	}
	return stored.ID, nil
}

// Capture adds every line of block. Indented lines become children of the
// closest preceding line one level up.
func (s *Service) Capture(ctx context.Context, block string) ([]string, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	lines := capture.Lines(block)
	if len(lines) == 0 {
		return nil, ErrEmptyInput
	}
	var (
		added []string
		stack []string // stack[d] is the last item placed at depth d
	)
	for _, line := range lines {
		parent := ""
		if line.Depth > 0 && line.Depth-1 < len(stack) {
			parent = stack[line.Depth-1]
		}
		id, err := s.AddItem(ctx, line.Text, parent, 0)
		if errors.Is(err, ErrEmptyInput) {
			continue
		}
		if err != nil {
			return added, err
		}
		added = append(added, id)

		it, err := s.journal.Get(id)
		if err != nil {
			return added, err
		}
		if it.DepthLevel < len(stack) {
			stack = stack[:it.DepthLevel]
		}
		stack = append(stack, id)
	}
	return added, nil
}

// Get returns a copy of the item with the given id.
func (s *Service) Get(ctx context.Context, id string) (*entry.Item, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	return s.journal.Get(id)
}

// Items returns copies of every item in stored order.
func (s *Service) Items(ctx context.Context) ([]*entry.Item, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	return s.journal.Items(), nil
}

// Children returns copies of the children of id in order.
func (s *Service) Children(ctx context.Context, id string) ([]*entry.Item, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	return s.journal.Children(id)
}

// UpdateItem applies fn to a copy of the item. Structural fields must be left
// alone.
func (s *Service) UpdateItem(ctx context.Context, id string, fn func(*entry.Item)) (*entry.Item, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	return s.journal.Update(id, fn)
}

// Edit replaces the text of an item, re-reading its tags.
func (s *Service) Edit(ctx context.Context, id, text string) (*entry.Item, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	found, content := tags.Extract(text)
	if strings.TrimSpace(content) == "" && len(found) == 0 {
		return nil, ErrEmptyInput
	}
	return s.journal.Update(id, func(it *entry.Item) {
		it.Content = content
		it.Tags = found
	})
}

// DeleteItem removes an item. Its children move up to its parent.
func (s *Service) DeleteItem(ctx context.Context, id string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	return s.journal.Delete(id)
}

// ToggleTodoComplete flips a todo between open and completed.
func (s *Service) ToggleTodoComplete(ctx context.Context, id string) (*entry.Item, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	return s.journal.ToggleComplete(id)
}

// Cancel flips a todo between open and cancelled.
func (s *Service) Cancel(ctx context.Context, id string) (*entry.Item, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	return s.journal.ToggleCancel(id)
}

// CheckRoutine records today's check-off of a routine.
func (s *Service) CheckRoutine(ctx context.Context, id string) (*entry.Item, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	return s.journal.CheckRoutine(id)
}

// Reschedule moves an item to the date and time named by phrase. The phrase
// must name a date or time; otherwise the item is left unchanged and the
// error wraps timeutil.ErrUnparsable.
func (s *Service) Reschedule(ctx context.Context, id, phrase string) (*entry.Item, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	res, err := s.resolver.ParseSchedule(phrase)
	if err != nil {
		return nil, err
	}
	cur, err := s.journal.Get(id)
	if err != nil {
		return nil, err
	}
	if cur.Kind() == glyph.Note {
		return nil, fmt.Errorf("%w: %s", ErrNotSchedulable, id)
	}
	return s.journal.Update(id, func(it *entry.Item) {
		switch b := it.Body.(type) {
		case *entry.Todo:
			start := res.Start
			b.ScheduledTime = &start
			b.HasTime = res.HasTime
		case *entry.Event:
			length := b.EndTime.Sub(b.StartTime)
			b.StartTime = res.Start
			b.EndTime = res.Start.Add(length)
			if res.End != nil && !res.End.Before(res.Start) {
				b.EndTime = *res.End
			}
			b.HasTime = res.HasTime
			b.IsAllDay = !res.HasTime
		case *entry.Routine:
			b.HasTime = res.HasTime
			b.ScheduledTime = ""
			if res.HasTime {
				b.ScheduledTime = res.Start.Format(timeutil.LayoutClock)
			}
		}
	})
}

// ItemsByDate groups items by the day they were written.
func (s *Service) ItemsByDate(ctx context.Context) (map[string][]*entry.Item, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	return s.journal.ByCreatedDate(), nil
}

// ScheduledItemsByDate groups todos and events by the day they happen.
func (s *Service) ScheduledItemsByDate(ctx context.Context) (map[string][]*entry.Item, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	return s.journal.ByScheduledDate(), nil
}

// AllDatesWithItems lists every day with a written or scheduled item.
func (s *Service) AllDatesWithItems(ctx context.Context) ([]string, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	return s.journal.AllDatesWithItems(), nil
}

// Day collects what belongs on one calendar day.
type Day struct {
	Key       string
	Written   []*entry.Item
	Scheduled []*entry.Item
	Routines  []*entry.Item
}

// DayView returns the items written on, scheduled for and due on day.
func (s *Service) DayView(ctx context.Context, day time.Time) (Day, error) {
	if err := s.ready(ctx); err != nil {
		return Day{}, err
	}
	key := entry.DayKey(day)
	view := Day{
		Key:       key,
		Written:   s.journal.ByCreatedDate()[key],
		Scheduled: s.journal.ByScheduledDate()[key],
	}
	for _, it := range s.journal.Items() {
		if r, ok := it.Routine(); ok && r.Due(it.CreatedAt, day) {
			view.Routines = append(view.Routines, it)
		}
	}
	sort.SliceStable(view.Scheduled, func(a, b int) bool {
		ta, _ := view.Scheduled[a].Scheduled()
		tb, _ := view.Scheduled[b].Scheduled()
		return ta.Before(tb)
	})
	return view, nil
}

// Search returns top-level items whose text, tags or descendants match query.
func (s *Service) Search(ctx context.Context, query string) ([]*entry.Item, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	return s.journal.Search(query), nil
}

// Import replaces every stored item with items after repairing them.
func (s *Service) Import(ctx context.Context, items []*entry.Item) ([]string, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	return s.journal.Replace(items)
}
