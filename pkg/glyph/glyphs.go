// Package glyph maps the prefix letters and display symbols of captured lines
// onto item kinds.
package glyph

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind is the discriminant of an item.
type Kind int

const (
	Note Kind = iota
	Todo
	Event
	Routine
)

// Glyph ties an input prefix to the symbol used when the item is displayed.
type Glyph struct {
	Key     string
	Symbol  string
	Meaning string
	Kind    Kind
	// Alias glyphs are accepted on input but never produced on output.
	Alias bool
}

// CompletedSymbol replaces the todo symbol once a todo is completed.
const CompletedSymbol = "☑"

func DefaultGlyphs() []Glyph {
	g := make([]Glyph, 0, 7)

	g = append(g, Glyph{
		Key:     "t",
		Symbol:  "□",
		Meaning: "todo",
		Kind:    Todo,
	}, Glyph{
		Key:     "t",
		Symbol:  CompletedSymbol,
		Meaning: "todo completed",
		Kind:    Todo,
		Alias:   true,
	}, Glyph{
		Key:     "e",
		Symbol:  "↹",
		Meaning: "event",
		Kind:    Event,
	}, Glyph{
		Key:     "r",
		Symbol:  "↻",
		Meaning: "routine",
		Kind:    Routine,
	}, Glyph{
		Key:     "n",
		Symbol:  "↝",
		Meaning: "note",
		Kind:    Note,
	}, Glyph{
		Key:     "*",
		Symbol:  "↝",
		Meaning: "note",
		Kind:    Note,
		Alias:   true,
	})

	return g
}

func (g Glyph) String() string {
	return g.Symbol
}

// Lookup finds the glyph for a prefix letter or a display symbol. Canonical
// glyphs win over aliases.
func Lookup(token string) (Glyph, bool) {
	var alias *Glyph
	for _, g := range DefaultGlyphs() {
		if g.Key != token && g.Symbol != token {
			continue
		}
		if !g.Alias {
			return g, true
		}
		if alias == nil {
			a := g
			alias = &a
		}
	}
	if alias != nil {
		return *alias, true
	}
	return Glyph{}, false
}

// Classify returns the kind for a single token. Anything unrecognized is a note.
func Classify(token string) Kind {
	if g, ok := Lookup(token); ok {
		return g.Kind
	}
	return Note
}

// Prefix splits a recognized prefix or symbol from the front of line. When the
// first token is not recognized the line is a note and rest is line unchanged.
// Tabs directly after the prefix are left in rest.
func Prefix(line string) (kind Kind, rest string, ok bool) {
	trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
	end := strings.IndexFunc(trimmed, unicode.IsSpace)
	token := trimmed
	if end >= 0 {
		token = trimmed[:end]
	}
	g, found := Lookup(token)
	if !found || token == "" {
		return Note, line, false
	}
	rest = strings.TrimLeft(trimmed[len(token):], " ")
	return g.Kind, rest, true
}

// PrefixToSymbol returns the display symbol for an input prefix.
func PrefixToSymbol(prefix string) (string, bool) {
	for _, g := range DefaultGlyphs() {
		if g.Key == prefix {
			return g.Symbol, true
		}
	}
	return "", false
}

// SymbolToPrefix returns the canonical input prefix for a display symbol.
func SymbolToPrefix(symbol string) (string, bool) {
	if utf8.RuneCountInString(symbol) != 1 {
		return "", false
	}
	g, ok := Lookup(symbol)
	if !ok || g.Symbol != symbol {
		return "", false
	}
	return g.Kind.Prefix(), true
}

// Symbol is the canonical display symbol of the kind.
func (k Kind) Symbol() string {
	for _, g := range DefaultGlyphs() {
		if g.Kind == k && !g.Alias {
			return g.Symbol
		}
	}
	return ""
}

// Prefix is the canonical input prefix of the kind.
func (k Kind) Prefix() string {
	for _, g := range DefaultGlyphs() {
		if g.Kind == k && !g.Alias {
			return g.Key
		}
	}
	return ""
}
