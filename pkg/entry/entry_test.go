package entry

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"tableflip.dev/thoughts/pkg/glyph"
	"tableflip.dev/thoughts/pkg/timeutil"
)

var now = time.Date(2024, time.January, 1, 9, 0, 0, 0, time.Local)

func TestBuildTodo(t *testing.T) {
	start := time.Date(2024, time.January, 2, 14, 0, 0, 0, time.Local)
	res := &timeutil.Result{Start: start, HasTime: true}
	item := Build(glyph.Todo, "buy milk", []string{"errand"}, res, Context{ID: "a", Now: now})

	todo, ok := item.Todo()
	if !ok {
		t.Fatalf("expected todo body, got %T", item.Body)
	}
	if todo.ScheduledTime == nil || !todo.ScheduledTime.Equal(start) || !todo.HasTime {
		t.Fatalf("unexpected schedule %+v", todo)
	}
	if item.CreatedDate != "2024-01-01" {
		t.Fatalf("unexpected created date %q", item.CreatedDate)
	}
	if !item.UpdatedAt.Equal(now) || !item.CreatedAt.Equal(now) {
		t.Fatalf("expected timestamps at now")
	}
	if item.Completed() || item.Cancelled() {
		t.Fatalf("new todo should be open")
	}
}

func TestBuildUnscheduledTodo(t *testing.T) {
	item := Build(glyph.Todo, "someday", nil, nil, Context{ID: "a", Now: now})
	todo, _ := item.Todo()
	if todo.ScheduledTime != nil || todo.HasTime {
		t.Fatalf("expected unscheduled todo, got %+v", todo)
	}
	if item.Tags == nil {
		t.Fatalf("expected empty tag set, got nil")
	}
	if _, ok := item.Scheduled(); ok {
		t.Fatalf("expected no scheduled instant")
	}
}

func TestBuildEventDefaults(t *testing.T) {
	item := Build(glyph.Event, "holiday", nil, nil, Context{ID: "e", Now: now})
	event, ok := item.Event()
	if !ok {
		t.Fatalf("expected event body, got %T", item.Body)
	}
	day := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local)
	if !event.StartTime.Equal(day) || !event.EndTime.Equal(day) {
		t.Fatalf("expected all day event on creation day, got %v-%v", event.StartTime, event.EndTime)
	}
	if !event.IsAllDay || event.HasTime {
		t.Fatalf("expected all day event")
	}

	start := time.Date(2024, time.January, 2, 13, 0, 0, 0, time.Local)
	end := start.Add(2 * time.Hour)
	item = Build(glyph.Event, "meeting", nil, &timeutil.Result{Start: start, HasTime: true, End: &end}, Context{ID: "e2", Now: now})
	event, _ = item.Event()
	if !event.StartTime.Equal(start) || !event.EndTime.Equal(end) || event.IsAllDay {
		t.Fatalf("unexpected event %+v", event)
	}
}

func TestBuildRoutine(t *testing.T) {
	start := time.Date(2024, time.January, 1, 7, 30, 0, 0, time.Local)
	weekly := timeutil.Recurrence{Frequency: timeutil.Weekly, Interval: 2}
	item := Build(glyph.Routine, "run", nil, &timeutil.Result{Start: start, HasTime: true, Recurrence: &weekly}, Context{ID: "r", Now: now})
	routine, ok := item.Routine()
	if !ok {
		t.Fatalf("expected routine body")
	}
	if routine.ScheduledTime != "07:30" || routine.Recurrence != weekly || routine.Streak != 0 {
		t.Fatalf("unexpected routine %+v", routine)
	}

	item = Build(glyph.Routine, "stretch", nil, &timeutil.Result{Start: start}, Context{ID: "r2", Now: now})
	routine, _ = item.Routine()
	if routine.ScheduledTime != "" || routine.Recurrence != timeutil.DefaultRecurrence() {
		t.Fatalf("unexpected routine %+v", routine)
	}
}

func TestBuildClampsDepth(t *testing.T) {
	tests := []struct {
		kind  glyph.Kind
		depth int
		want  int
	}{
		{glyph.Note, 5, 2},
		{glyph.Note, 2, 2},
		{glyph.Todo, 2, 1},
		{glyph.Event, 3, 1},
		{glyph.Routine, -1, 0},
	}
	for _, tc := range tests {
		item := Build(tc.kind, "x", nil, nil, Context{ID: "x", Now: now, DepthLevel: tc.depth})
		if item.DepthLevel != tc.want {
			t.Errorf("%s depth %d: got %d, want %d", tc.kind, tc.depth, item.DepthLevel, tc.want)
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	item := Build(glyph.Note, "parent", []string{"a"}, nil, Context{ID: "n", Now: now})
	item.SetChildIDs([]string{"c1"})

	cp := item.Clone()
	cp.Tags[0] = "b"
	cp.SetChildIDs(append(cp.ChildIDs(), "c2"))
	cp.ChildIDs()[0] = "changed"

	if item.Tags[0] != "a" {
		t.Fatalf("tags shared with clone")
	}
	if !reflect.DeepEqual(item.ChildIDs(), []string{"c1"}) {
		t.Fatalf("children shared with clone: %v", item.ChildIDs())
	}
}

func TestForget(t *testing.T) {
	item := Build(glyph.Event, "split", nil, nil, Context{ID: "e", Now: now})
	event, _ := item.Event()
	event.SplitEndID = "gone"
	event.EmbeddedItems = []string{"keep", "gone"}

	if !item.Forget("gone") {
		t.Fatalf("expected a change")
	}
	if event.SplitEndID != "" || !reflect.DeepEqual(event.EmbeddedItems, []string{"keep"}) {
		t.Fatalf("unexpected event after forget %+v", event)
	}
	if item.Forget("gone") {
		t.Fatalf("second forget should be a no-op")
	}
}

func TestRoutineCheck(t *testing.T) {
	r := &Routine{Recurrence: timeutil.DefaultRecurrence()}
	day := time.Date(2024, time.January, 1, 8, 0, 0, 0, time.Local)

	if !r.Check(day) || r.Streak != 1 {
		t.Fatalf("expected streak 1, got %d", r.Streak)
	}
	if r.Check(day.Add(time.Hour)) {
		t.Fatalf("same day check should be a no-op")
	}
	r.Check(day.AddDate(0, 0, 1))
	if r.Streak != 2 {
		t.Fatalf("expected streak 2, got %d", r.Streak)
	}
	r.Check(day.AddDate(0, 0, 5))
	if r.Streak != 1 || r.LastCompleted != "2024-01-06" {
		t.Fatalf("expected streak to restart, got %+v", r)
	}
}

func TestRoutineDue(t *testing.T) {
	r := &Routine{Recurrence: timeutil.Recurrence{Frequency: timeutil.Weekly, Interval: 1}}
	created := time.Date(2024, time.January, 1, 8, 0, 0, 0, time.Local)
	if !r.Due(created, created.AddDate(0, 0, 14)) {
		t.Fatalf("expected due two weeks later")
	}
	if r.Due(created, created.AddDate(0, 0, 3)) {
		t.Fatalf("expected not due mid week")
	}
	if r.Due(created, created.AddDate(0, 0, -7)) {
		t.Fatalf("expected not due before creation")
	}
}

func codecFixtures() []*Item {
	start := time.Date(2024, time.January, 2, 14, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	weekly := timeutil.Recurrence{Frequency: timeutil.Weekly, Interval: 1}
	ctx := Context{Now: now.UTC()}

	todo := Build(glyph.Todo, "buy milk", []string{"errand"}, &timeutil.Result{Start: start, HasTime: true}, withID(ctx, "t"))
	todo.SetChildIDs([]string{"t2"})
	event := Build(glyph.Event, "meeting", nil, &timeutil.Result{Start: start, HasTime: true, End: &end}, withID(ctx, "e"))
	ev, _ := event.Event()
	ev.SplitEndID = "t"
	routine := Build(glyph.Routine, "run", nil, &timeutil.Result{Start: start, HasTime: true, Recurrence: &weekly}, withID(ctx, "r"))
	note := Build(glyph.Note, "idea", nil, nil, withID(ctx, "n"))
	note.ParentID, note.ParentType, note.DepthLevel = "n0", "note", 1
	return []*Item{todo, event, routine, note}
}

func withID(ctx Context, id string) Context {
	ctx.ID = id
	return ctx
}

func TestJSONRecord(t *testing.T) {
	for _, item := range codecFixtures() {
		b, err := json.Marshal(item)
		if err != nil {
			t.Fatalf("marshal %s: %v", item.ID, err)
		}
		var fields map[string]interface{}
		if err := json.Unmarshal(b, &fields); err != nil {
			t.Fatalf("unmarshal fields: %v", err)
		}
		if fields["type"] != item.Kind().String() {
			t.Fatalf("expected type %s, got %v", item.Kind(), fields["type"])
		}

		var back Item
		if err := json.Unmarshal(b, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", item.ID, err)
		}
		if back.Kind() != item.Kind() || back.ID != item.ID || back.ParentID != item.ParentID {
			t.Fatalf("unexpected decoded item %+v", back)
		}
		if s1, ok1 := item.Scheduled(); ok1 {
			s2, ok2 := back.Scheduled()
			if !ok2 || !s1.Equal(s2) {
				t.Fatalf("%s: scheduled %v became %v", item.ID, s1, s2)
			}
		}
		if !reflect.DeepEqual(back.ChildIDs(), item.ChildIDs()) {
			t.Fatalf("%s: children %v became %v", item.ID, item.ChildIDs(), back.ChildIDs())
		}
	}
}

func TestYAMLRecord(t *testing.T) {
	items := codecFixtures()
	b, err := yaml.Marshal(items)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back []*Item
	if err := yaml.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, b)
	}
	if len(back) != len(items) {
		t.Fatalf("expected %d items, got %d", len(items), len(back))
	}
	ev, ok := back[1].Event()
	if !ok || ev.SplitEndID != "t" {
		t.Fatalf("unexpected event %+v", back[1].Body)
	}
	r, ok := back[2].Routine()
	if !ok || r.Recurrence.Frequency != timeutil.Weekly || r.ScheduledTime != "14:00" {
		t.Fatalf("unexpected routine %+v", back[2].Body)
	}
}

func TestUnmarshalUnknownType(t *testing.T) {
	var item Item
	if err := json.Unmarshal([]byte(`{"type":"reminder","id":"x"}`), &item); err == nil {
		t.Fatalf("expected error for unknown type")
	}
}

func TestDayKey(t *testing.T) {
	late := time.Date(2024, time.January, 1, 23, 59, 0, 0, time.Local)
	if DayKey(late) != "2024-01-01" {
		t.Fatalf("unexpected key %s", DayKey(late))
	}
	day, err := ParseDay("2024-01-01")
	if err != nil || !SameDay(day, late) {
		t.Fatalf("expected same day, got %v %v", day, err)
	}
	if !SameMonth(day, late.AddDate(0, 0, 10)) {
		t.Fatalf("expected same month")
	}
}
