package entry

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"tableflip.dev/thoughts/pkg/glyph"
	"tableflip.dev/thoughts/pkg/timeutil"
)

// record is the flat, tagged form an item takes on disk and in exports.
type record struct {
	Type        glyph.Kind `json:"type" yaml:"type"`
	ID          string     `json:"id" yaml:"id"`
	Content     string     `json:"content" yaml:"content"`
	Tags        []string   `json:"tags" yaml:"tags,flow"`
	CreatedAt   time.Time  `json:"createdAt" yaml:"createdAt"`
	CreatedDate string     `json:"createdDate" yaml:"createdDate"`
	UpdatedAt   time.Time  `json:"updatedAt" yaml:"updatedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty" yaml:"completedAt,omitempty"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty" yaml:"cancelledAt,omitempty"`
	ParentID    string     `json:"parentId,omitempty" yaml:"parentId,omitempty"`
	ParentType  string     `json:"parentType,omitempty" yaml:"parentType,omitempty"`
	DepthLevel  int        `json:"depthLevel" yaml:"depthLevel"`

	// todo and routine; RFC 3339 for todos, HH:mm for routines
	ScheduledTime string   `json:"scheduledTime,omitempty" yaml:"scheduledTime,omitempty"`
	HasTime       bool     `json:"hasTime,omitempty" yaml:"hasTime,omitempty"`
	EmbeddedItems []string `json:"embeddedItems,omitempty" yaml:"embeddedItems,flow,omitempty"`

	// todo
	Deadline         *time.Time `json:"deadline,omitempty" yaml:"deadline,omitempty"`
	Subtasks         []string   `json:"subtasks,omitempty" yaml:"subtasks,flow,omitempty"`
	CompletionLinkID string     `json:"completionLinkId,omitempty" yaml:"completionLinkId,omitempty"`

	// event
	StartTime    *time.Time `json:"startTime,omitempty" yaml:"startTime,omitempty"`
	EndTime      *time.Time `json:"endTime,omitempty" yaml:"endTime,omitempty"`
	IsAllDay     bool       `json:"isAllDay,omitempty" yaml:"isAllDay,omitempty"`
	SplitStartID string     `json:"splitStartId,omitempty" yaml:"splitStartId,omitempty"`
	SplitEndID   string     `json:"splitEndId,omitempty" yaml:"splitEndId,omitempty"`

	// routine
	RecurrencePattern *timeutil.Recurrence `json:"recurrencePattern,omitempty" yaml:"recurrencePattern,omitempty"`
	Streak            int                  `json:"streak,omitempty" yaml:"streak,omitempty"`
	LastCompleted     string               `json:"lastCompleted,omitempty" yaml:"lastCompleted,omitempty"`

	// note
	SubItems     []string `json:"subItems,omitempty" yaml:"subItems,flow,omitempty"`
	LinkPreviews []string `json:"linkPreviews,omitempty" yaml:"linkPreviews,flow,omitempty"`
	OrderIndex   int      `json:"orderIndex,omitempty" yaml:"orderIndex,omitempty"`
}

func (i Item) toRecord() record {
	r := record{
		Type:        i.Kind(),
		ID:          i.ID,
		Content:     i.Content,
		Tags:        i.Tags,
		CreatedAt:   i.CreatedAt,
		CreatedDate: i.CreatedDate,
		UpdatedAt:   i.UpdatedAt,
		CompletedAt: i.CompletedAt,
		CancelledAt: i.CancelledAt,
		ParentID:    i.ParentID,
		ParentType:  i.ParentType,
		DepthLevel:  i.DepthLevel,
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}
	switch b := i.Body.(type) {
	case *Todo:
		if b.ScheduledTime != nil {
			r.ScheduledTime = b.ScheduledTime.Format(time.RFC3339Nano)
		}
		r.HasTime = b.HasTime
		r.Deadline = b.Deadline
		r.Subtasks = b.Subtasks
		r.EmbeddedItems = b.EmbeddedItems
		r.CompletionLinkID = b.CompletionLinkID
	case *Event:
		start, end := b.StartTime, b.EndTime
		r.StartTime, r.EndTime = &start, &end
		r.HasTime = b.HasTime
		r.IsAllDay = b.IsAllDay
		r.SplitStartID = b.SplitStartID
		r.SplitEndID = b.SplitEndID
		r.EmbeddedItems = b.EmbeddedItems
	case *Routine:
		rec := b.Recurrence
		r.RecurrencePattern = &rec
		r.ScheduledTime = b.ScheduledTime
		r.HasTime = b.HasTime
		r.Streak = b.Streak
		r.LastCompleted = b.LastCompleted
		r.EmbeddedItems = b.EmbeddedItems
	case *Note:
		r.SubItems = b.SubItems
		r.LinkPreviews = b.LinkPreviews
		r.OrderIndex = b.OrderIndex
	}
	return r
}

func (r record) toItem() (*Item, error) {
	item := &Item{
		ID:          r.ID,
		Content:     r.Content,
		Tags:        orEmpty(r.Tags),
		CreatedAt:   r.CreatedAt,
		CreatedDate: r.CreatedDate,
		UpdatedAt:   r.UpdatedAt,
		CompletedAt: r.CompletedAt,
		CancelledAt: r.CancelledAt,
		ParentID:    r.ParentID,
		ParentType:  r.ParentType,
		DepthLevel:  r.DepthLevel,
	}
	if item.CreatedDate == "" && !item.CreatedAt.IsZero() {
		item.CreatedDate = DayKey(item.CreatedAt)
	}

	switch r.Type {
	case glyph.Todo:
		todo := &Todo{
			HasTime:          r.HasTime,
			Deadline:         r.Deadline,
			Subtasks:         orEmpty(r.Subtasks),
			EmbeddedItems:    orEmpty(r.EmbeddedItems),
			CompletionLinkID: r.CompletionLinkID,
		}
		if r.ScheduledTime != "" {
			t, err := time.Parse(time.RFC3339Nano, r.ScheduledTime)
			if err != nil {
				return nil, fmt.Errorf("entry %s: scheduledTime: %w", r.ID, err)
			}
			todo.ScheduledTime = &t
		}
		item.Body = todo
	case glyph.Event:
		event := &Event{
			HasTime:       r.HasTime,
			IsAllDay:      r.IsAllDay,
			SplitStartID:  r.SplitStartID,
			SplitEndID:    r.SplitEndID,
			EmbeddedItems: orEmpty(r.EmbeddedItems),
		}
		if r.StartTime != nil {
			event.StartTime = *r.StartTime
		}
		event.EndTime = event.StartTime
		if r.EndTime != nil {
			event.EndTime = *r.EndTime
		}
		item.Body = event
	case glyph.Routine:
		routine := &Routine{
			Recurrence:    timeutil.DefaultRecurrence(),
			ScheduledTime: r.ScheduledTime,
			HasTime:       r.HasTime,
			Streak:        r.Streak,
			LastCompleted: r.LastCompleted,
			EmbeddedItems: orEmpty(r.EmbeddedItems),
		}
		if r.RecurrencePattern != nil {
			routine.Recurrence = *r.RecurrencePattern
		}
		item.Body = routine
	default:
		item.Body = &Note{
			SubItems:     orEmpty(r.SubItems),
			LinkPreviews: orEmpty(r.LinkPreviews),
			OrderIndex:   r.OrderIndex,
		}
	}
	return item, nil
}

func (i Item) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.toRecord())
}

func (i *Item) UnmarshalJSON(b []byte) error {
	var r record
	if err := json.Unmarshal(b, &r); err != nil {
		return err
	}
	item, err := r.toItem()
	if err != nil {
		return err
	}
	*i = *item
	return nil
}

func (i Item) MarshalYAML() (interface{}, error) {
	return i.toRecord(), nil
}

func (i *Item) UnmarshalYAML(value *yaml.Node) error {
	var r record
	if err := value.Decode(&r); err != nil {
		return err
	}
	item, err := r.toItem()
	if err != nil {
		return err
	}
	*i = *item
	return nil
}

func orEmpty(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
