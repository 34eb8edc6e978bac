package entry

import (
	"time"

	"tableflip.dev/thoughts/pkg/glyph"
	"tableflip.dev/thoughts/pkg/timeutil"
)

// MaxHistoryActions bounds an undo history. Nothing records history yet.
const MaxHistoryActions = 20

// MaxDepth is the deepest nesting level an item of kind k may sit at.
func MaxDepth(k glyph.Kind) int {
	if k == glyph.Note {
		return 2
	}
	return 1
}

// Item is the record shared by every kind. The kind specific fields live in
// Body.
type Item struct {
	ID          string
	Content     string
	Tags        []string
	CreatedAt   time.Time
	CreatedDate string
	UpdatedAt   time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time
	ParentID    string
	ParentType  string
	DepthLevel  int

	Body Body
}

// Body is implemented by *Todo, *Event, *Routine and *Note only.
type Body interface {
	Kind() glyph.Kind
	clone() Body
}

type Todo struct {
	ScheduledTime    *time.Time
	HasTime          bool
	Deadline         *time.Time
	Subtasks         []string
	EmbeddedItems    []string
	CompletionLinkID string
}

type Event struct {
	StartTime     time.Time
	EndTime       time.Time
	HasTime       bool
	IsAllDay      bool
	SplitStartID  string
	SplitEndID    string
	EmbeddedItems []string
}

type Routine struct {
	Recurrence    timeutil.Recurrence
	ScheduledTime string // HH:mm, empty when no clock time was given
	HasTime       bool
	Streak        int
	LastCompleted string // yyyy-MM-dd
	EmbeddedItems []string
}

type Note struct {
	SubItems     []string
	LinkPreviews []string
	OrderIndex   int
}

func (*Todo) Kind() glyph.Kind    { return glyph.Todo }
func (*Event) Kind() glyph.Kind   { return glyph.Event }
func (*Routine) Kind() glyph.Kind { return glyph.Routine }
func (*Note) Kind() glyph.Kind    { return glyph.Note }

func (t *Todo) clone() Body {
	cp := *t
	cp.ScheduledTime = cloneTime(t.ScheduledTime)
	cp.Deadline = cloneTime(t.Deadline)
	cp.Subtasks = cloneStrings(t.Subtasks)
	cp.EmbeddedItems = cloneStrings(t.EmbeddedItems)
	return &cp
}

func (e *Event) clone() Body {
	cp := *e
	cp.EmbeddedItems = cloneStrings(e.EmbeddedItems)
	return &cp
}

func (r *Routine) clone() Body {
	cp := *r
	cp.EmbeddedItems = cloneStrings(r.EmbeddedItems)
	return &cp
}

func (n *Note) clone() Body {
	cp := *n
	cp.SubItems = cloneStrings(n.SubItems)
	cp.LinkPreviews = cloneStrings(n.LinkPreviews)
	return &cp
}

// Kind reports the item kind. Items without a body are notes.
func (i *Item) Kind() glyph.Kind {
	if i.Body == nil {
		return glyph.Note
	}
	return i.Body.Kind()
}

func (i *Item) Todo() (*Todo, bool) {
	t, ok := i.Body.(*Todo)
	return t, ok
}

func (i *Item) Event() (*Event, bool) {
	e, ok := i.Body.(*Event)
	return e, ok
}

func (i *Item) Routine() (*Routine, bool) {
	r, ok := i.Body.(*Routine)
	return r, ok
}

func (i *Item) Note() (*Note, bool) {
	n, ok := i.Body.(*Note)
	return n, ok
}

// Clone returns a deep copy.
func (i *Item) Clone() *Item {
	if i == nil {
		return nil
	}
	cp := *i
	cp.Tags = cloneStrings(i.Tags)
	cp.CompletedAt = cloneTime(i.CompletedAt)
	cp.CancelledAt = cloneTime(i.CancelledAt)
	if i.Body != nil {
		cp.Body = i.Body.clone()
	}
	return &cp
}

// ChildIDs returns the ordered child list of a todo or note.
func (i *Item) ChildIDs() []string {
	switch b := i.Body.(type) {
	case *Todo:
		return b.Subtasks
	case *Note:
		return b.SubItems
	}
	return nil
}

// SetChildIDs replaces the child list. It reports false for kinds that cannot
// hold children.
func (i *Item) SetChildIDs(ids []string) bool {
	switch b := i.Body.(type) {
	case *Todo:
		b.Subtasks = ids
	case *Note:
		b.SubItems = ids
	default:
		return false
	}
	return true
}

// EmbeddedIDs returns the embedded item list of todos, events and routines.
func (i *Item) EmbeddedIDs() []string {
	switch b := i.Body.(type) {
	case *Todo:
		return b.EmbeddedItems
	case *Event:
		return b.EmbeddedItems
	case *Routine:
		return b.EmbeddedItems
	}
	return nil
}

func (i *Item) setEmbeddedIDs(ids []string) {
	switch b := i.Body.(type) {
	case *Todo:
		b.EmbeddedItems = ids
	case *Event:
		b.EmbeddedItems = ids
	case *Routine:
		b.EmbeddedItems = ids
	}
}

// Forget clears every reference this item holds to id outside its child
// list: embedded items, split links and completion links. It reports whether
// anything changed.
func (i *Item) Forget(id string) bool {
	changed := false
	if embedded := i.EmbeddedIDs(); contains(embedded, id) {
		i.setEmbeddedIDs(Without(embedded, id))
		changed = true
	}
	switch b := i.Body.(type) {
	case *Todo:
		if b.CompletionLinkID == id {
			b.CompletionLinkID = ""
			changed = true
		}
	case *Event:
		if b.SplitStartID == id {
			b.SplitStartID = ""
			changed = true
		}
		if b.SplitEndID == id {
			b.SplitEndID = ""
			changed = true
		}
	}
	return changed
}

// Refers reports whether Forget(id) would change anything.
func (i *Item) Refers(id string) bool {
	if contains(i.EmbeddedIDs(), id) {
		return true
	}
	switch b := i.Body.(type) {
	case *Todo:
		return b.CompletionLinkID == id
	case *Event:
		return b.SplitStartID == id || b.SplitEndID == id
	}
	return false
}

func (i *Item) Completed() bool { return i.CompletedAt != nil }
func (i *Item) Cancelled() bool { return i.CancelledAt != nil }

// Scheduled returns the instant a todo is scheduled for or an event starts.
func (i *Item) Scheduled() (time.Time, bool) {
	switch b := i.Body.(type) {
	case *Todo:
		if b.ScheduledTime != nil {
			return *b.ScheduledTime, true
		}
	case *Event:
		return b.StartTime, true
	}
	return time.Time{}, false
}

// HasTime reports whether the item carries a clock time.
func (i *Item) HasTime() bool {
	switch b := i.Body.(type) {
	case *Todo:
		return b.HasTime
	case *Event:
		return b.HasTime
	case *Routine:
		return b.HasTime
	}
	return false
}

// Without returns ids minus every occurrence of id, as a new slice.
func Without(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append(make([]string, 0, len(in)), in...)
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	cp := *t
	return &cp
}
