package glyph

import "fmt"

var kindNames = map[Kind]string{
	Note:    "note",
	Todo:    "todo",
	Event:   "event",
	Routine: "routine",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind converts a kind name back to a Kind.
func ParseKind(raw string) (Kind, error) {
	for k, name := range kindNames {
		if name == raw {
			return k, nil
		}
	}
	return Note, fmt.Errorf("glyph: unknown kind %q", raw)
}

func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("glyph: unknown kind %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Nestable reports whether items of this kind may hold children.
func (k Kind) Nestable() bool {
	return k == Note || k == Todo
}
