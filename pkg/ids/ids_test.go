package ids

import (
	"testing"
	"time"
)

func TestGeneratorMonotonic(t *testing.T) {
	fixed := time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)
	g := NewGenerator()
	g.Now = func() time.Time { return fixed }

	prev := g.New()
	seen := map[string]bool{prev: true}
	for i := 0; i < 100; i++ {
		id := g.New()
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		if id <= prev {
			t.Fatalf("expected %s > %s", id, prev)
		}
		seen[id] = true
		prev = id
	}
}

func TestTime(t *testing.T) {
	fixed := time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)
	g := NewGenerator()
	g.Now = func() time.Time { return fixed }

	got, ok := Time(g.New())
	if !ok {
		t.Fatalf("expected id to parse")
	}
	if !got.Equal(fixed) {
		t.Fatalf("expected %v, got %v", fixed, got)
	}
	if _, ok := Time("not-an-id"); ok {
		t.Fatalf("expected invalid id to fail")
	}
}

func TestPackageNew(t *testing.T) {
	if a, b := New(), New(); a == b || len(a) != 26 {
		t.Fatalf("unexpected ids %q %q", a, b)
	}
}
