package commands

import (
	"testing"
)

func TestCommandsRegistered(t *testing.T) {
	root := New()
	want := []string{
		"add", "capture", "get", "dates", "calendar", "complete", "cancel",
		"check", "edit", "reschedule", "delete", "review", "report", "search",
		"key", "info", "export", "import", "watch", "version", "completion",
	}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd == root {
			t.Errorf("command %q not registered: %v", name, err)
		}
	}
}

func TestAliases(t *testing.T) {
	root := New()
	for alias, name := range map[string]string{
		"done": "complete",
		"move": "reschedule",
		"rm":   "delete",
		"cal":  "calendar",
		"find": "search",
	} {
		cmd, _, err := root.Find([]string{alias})
		if err != nil {
			t.Fatalf("%s: %v", alias, err)
		}
		if cmd.Name() != name {
			t.Errorf("%s resolved to %q, want %q", alias, cmd.Name(), name)
		}
	}
}

func TestArgValidation(t *testing.T) {
	root := New()
	tests := map[string][]string{
		"add":        {},
		"complete":   {},
		"edit":       {"01ABC"},
		"reschedule": {"01ABC"},
		"search":     {},
		"get":        {"todo", "extra"},
	}
	for name, args := range tests {
		cmd, _, err := root.Find([]string{name})
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if err := cmd.Args(cmd, args); err == nil {
			t.Errorf("%s %v: expected an argument error", name, args)
		}
	}
}
