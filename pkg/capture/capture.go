// Package capture turns raw journal lines into parsed, classified pieces ready
// for the item builder.
package capture

import (
	"strings"
	"time"

	"tableflip.dev/thoughts/pkg/entry"
	"tableflip.dev/thoughts/pkg/glyph"
	"tableflip.dev/thoughts/pkg/tags"
	"tableflip.dev/thoughts/pkg/timeutil"
)

// MaxIndent is the most tabs a line may be indented by.
const MaxIndent = 2

// Parsed is one interpreted line.
type Parsed struct {
	Kind     glyph.Kind
	Content  string
	Tags     []string
	Temporal *timeutil.Result
	Depth    int
}

// Parse interprets a single line relative to now.
func Parse(line string, now time.Time) Parsed {
	return ParseWith(&timeutil.Resolver{Now: func() time.Time { return now }}, line)
}

// ParseWith interprets a single line using r for temporal phrases. Lines may
// be written as "[tabs][prefix] text" or "[prefix] [tabs]text".
func ParseWith(r *timeutil.Resolver, line string) Parsed {
	depth, rest := leadingTabs(strings.TrimRight(line, "\r\n"))
	kind, rest, _ := glyph.Prefix(rest)
	inner, rest := leadingTabs(rest)
	depth += inner
	if depth > MaxIndent {
		depth = MaxIndent
	}

	found, text := tags.Extract(rest)
	p := Parsed{
		Kind:    kind,
		Content: text,
		Tags:    found,
		Depth:   entry.ClampDepth(kind, depth),
	}
	if kind == glyph.Note {
		return p
	}
	if res := r.Resolve(text); res != nil {
		p.Temporal = res
		if res.Remainder != "" {
			p.Content = res.Remainder
		}
	}
	return p
}

// Line is one non-blank line of a multi-line capture in parser form.
type Line struct {
	Depth int
	Text  string
}

// Lines splits a block into lines, accepting both the visual form
// ("\t□ task") and the parser form ("t \ttask"). Text keeps the prefix but
// not the indentation.
func Lines(block string) []Line {
	var out []Line
	for _, raw := range strings.Split(block, "\n") {
		raw = strings.TrimRight(raw, "\r")
		if strings.TrimSpace(raw) == "" {
			continue
		}
		depth, rest := leadingTabs(raw)
		kind, body, ok := glyph.Prefix(rest)
		inner, body := leadingTabs(body)
		depth += inner
		text := body
		if ok {
			text = kind.Prefix() + " " + body
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		out = append(out, Line{Depth: depth, Text: text})
	}
	return out
}

// ToParserFormat rewrites a visual block ("\t□ task") into parser form
// ("t \ttask"), dropping blank lines.
func ToParserFormat(block string) string {
	lines := Lines(block)
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		kind, body, ok := glyph.Prefix(l.Text)
		if !ok {
			out = append(out, strings.Repeat("\t", l.Depth)+l.Text)
			continue
		}
		out = append(out, kind.Prefix()+" "+strings.Repeat("\t", l.Depth)+body)
	}
	return strings.Join(out, "\n")
}

// ToVisualFormat renders text of the given kind the way it is displayed:
// indentation, glyph, then content.
func ToVisualFormat(kind glyph.Kind, depth int, content string) string {
	return strings.Repeat("\t", depth) + kind.Symbol() + " " + content
}

func leadingTabs(s string) (int, string) {
	n := 0
	for n < len(s) && s[n] == '\t' {
		n++
	}
	return n, s[n:]
}
