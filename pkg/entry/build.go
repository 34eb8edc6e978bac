package entry

import (
	"time"

	"tableflip.dev/thoughts/pkg/glyph"
	"tableflip.dev/thoughts/pkg/timeutil"
)

// Context carries what Build needs beyond the parsed text.
type Context struct {
	ID         string
	Now        time.Time
	ParentID   string
	ParentType string
	DepthLevel int
}

// Build assembles a fresh item of the given kind. It does not consult any
// other item; parent linkage is settled when the item is inserted.
func Build(kind glyph.Kind, content string, tags []string, res *timeutil.Result, ctx Context) *Item {
	now := ctx.Now
	if now.IsZero() {
		now = time.Now()
	}
	if tags == nil {
		tags = []string{}
	}

	item := &Item{
		ID:          ctx.ID,
		Content:     content,
		Tags:        cloneStrings(tags),
		CreatedAt:   now,
		CreatedDate: DayKey(now),
		UpdatedAt:   now,
		ParentID:    ctx.ParentID,
		ParentType:  ctx.ParentType,
		DepthLevel:  ClampDepth(kind, ctx.DepthLevel),
	}

	switch kind {
	case glyph.Todo:
		todo := &Todo{Subtasks: []string{}, EmbeddedItems: []string{}}
		if res.Scheduled() {
			start := res.Start
			todo.ScheduledTime = &start
			todo.HasTime = res.HasTime
		}
		if res != nil {
			todo.Deadline = cloneTime(res.Deadline)
		}
		item.Body = todo

	case glyph.Event:
		event := &Event{StartTime: timeutil.StartOfDay(now), EmbeddedItems: []string{}}
		if res.Scheduled() {
			event.StartTime = res.Start
			event.HasTime = res.HasTime
		}
		event.EndTime = event.StartTime
		if res != nil && res.End != nil && !res.End.Before(event.StartTime) {
			event.EndTime = *res.End
		}
		event.IsAllDay = !event.HasTime
		item.Body = event

	case glyph.Routine:
		routine := &Routine{Recurrence: timeutil.DefaultRecurrence(), EmbeddedItems: []string{}}
		if res != nil && res.Recurrence != nil {
			routine.Recurrence = *res.Recurrence
		}
		if res.Scheduled() && res.HasTime {
			routine.ScheduledTime = res.Start.Format(timeutil.LayoutClock)
			routine.HasTime = true
		}
		item.Body = routine

	default:
		item.Body = &Note{SubItems: []string{}, LinkPreviews: []string{}}
	}
	return item
}

// ClampDepth bounds depth to the range allowed for kind.
func ClampDepth(kind glyph.Kind, depth int) int {
	if depth < 0 {
		return 0
	}
	if limit := MaxDepth(kind); depth > limit {
		return limit
	}
	return depth
}
