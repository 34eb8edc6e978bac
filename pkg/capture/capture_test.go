package capture

import (
	"reflect"
	"testing"
	"time"

	"tableflip.dev/thoughts/pkg/glyph"
)

var now = time.Date(2024, time.January, 1, 9, 0, 0, 0, time.Local)

func TestParseTodo(t *testing.T) {
	p := Parse("t tomorrow 2pm buy milk #errand", now)
	if p.Kind != glyph.Todo {
		t.Fatalf("expected todo, got %s", p.Kind)
	}
	if p.Content != "buy milk" {
		t.Fatalf("unexpected content %q", p.Content)
	}
	if !reflect.DeepEqual(p.Tags, []string{"errand"}) {
		t.Fatalf("unexpected tags %v", p.Tags)
	}
	want := time.Date(2024, time.January, 2, 14, 0, 0, 0, time.Local)
	if p.Temporal == nil || !p.Temporal.Start.Equal(want) || !p.Temporal.HasTime {
		t.Fatalf("unexpected temporal %+v", p.Temporal)
	}
}

func TestParseNoteKeepsText(t *testing.T) {
	p := Parse("n meet bob tomorrow at 2pm #people", now)
	if p.Kind != glyph.Note {
		t.Fatalf("expected note, got %s", p.Kind)
	}
	if p.Temporal != nil {
		t.Fatalf("notes are not resolved, got %+v", p.Temporal)
	}
	if p.Content != "meet bob tomorrow at 2pm" {
		t.Fatalf("unexpected content %q", p.Content)
	}

	p = Parse("just a thought", now)
	if p.Kind != glyph.Note || p.Content != "just a thought" {
		t.Fatalf("unexpected parse %+v", p)
	}
}

func TestParseGlyphs(t *testing.T) {
	tests := map[string]glyph.Kind{
		"↹ standup 9am": glyph.Event,
		"□ write docs":  glyph.Todo,
		"☑ done thing":  glyph.Todo,
		"↻ stretch":     glyph.Routine,
		"↝ idea":        glyph.Note,
		"* idea":        glyph.Note,
		"e standup":     glyph.Event,
		"r water daily": glyph.Routine,
	}
	for in, want := range tests {
		if got := Parse(in, now).Kind; got != want {
			t.Errorf("%q: got %s, want %s", in, got, want)
		}
	}
}

func TestParseDepth(t *testing.T) {
	tests := []struct {
		in    string
		depth int
	}{
		{"\tn child", 1},
		{"n \tchild", 1},
		{"\t\tn grandchild", 2},
		{"n \t\t\tdeep", 2},
		{"\t\tt subtask", 1},
		{"t \t\tsubtask", 1},
		{"e meeting", 0},
	}
	for _, tc := range tests {
		if got := Parse(tc.in, now).Depth; got != tc.depth {
			t.Errorf("%q: got depth %d, want %d", tc.in, got, tc.depth)
		}
	}
}

func TestParseKeepsTextWhenOnlyTemporal(t *testing.T) {
	p := Parse("t tomorrow", now)
	if p.Temporal == nil {
		t.Fatalf("expected temporal")
	}
	if p.Content != "tomorrow" {
		t.Fatalf("expected the phrase as content, got %q", p.Content)
	}
}

func TestLines(t *testing.T) {
	block := "□ plan trip\n\t↝ book flights\n\n\t\t↝ compare prices\r\nt \tcall airline\nplain note\n"
	want := []Line{
		{Depth: 0, Text: "t plan trip"},
		{Depth: 1, Text: "n book flights"},
		{Depth: 2, Text: "n compare prices"},
		{Depth: 1, Text: "t call airline"},
		{Depth: 0, Text: "plain note"},
	}
	if got := Lines(block); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected lines:\n got %+v\nwant %+v", got, want)
	}
}

func TestToParserFormat(t *testing.T) {
	got := ToParserFormat("↹ meeting\n\t□ task\n\n☑ done")
	want := "e meeting\nt \ttask\nt done"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if ToVisualFormat(glyph.Todo, 1, "task") != "\t□ task" {
		t.Fatalf("unexpected visual form %q", ToVisualFormat(glyph.Todo, 1, "task"))
	}
}
