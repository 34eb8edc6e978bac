// Package key provides CLI helpers to display the input prefixes and glyphs.
package key

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/thoughts/pkg/glyph"
)

// Key prints a legend of input prefixes and the glyphs they display as.
type Key struct{}

// Do renders the canonical glyphs, then the accepted aliases.
func (k *Key) Do(ctx context.Context) error {
	_, _ = fmt.Fprintln(color.Output, "")

	var canonical, aliases []glyph.Glyph
	for _, g := range glyph.DefaultGlyphs() {
		if g.Alias {
			aliases = append(aliases, g)
		} else {
			canonical = append(canonical, g)
		}
	}

	k.Key(ctx, canonical, false)
	_, _ = fmt.Fprintln(color.Output, "")
	k.Key(ctx, aliases, true)

	_, _ = fmt.Fprintln(color.Output, "")
	return nil
}

// Key renders a glyph table; when alias is true, the aliases header is used.
func (k *Key) Key(_ context.Context, glyfs []glyph.Glyph, alias bool) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	if alias {
		tbl.AddRow(bold.Sprint("Also"), bold.Sprint("Prefix"), bold.Sprint("Meaning"))
	} else {
		tbl.AddRow(bold.Sprint("Glyph"), bold.Sprint("Prefix"), bold.Sprint("Meaning"))
	}
	for _, v := range glyfs {
		tbl.AddRow(v.Symbol, v.Key, v.Meaning)
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(color.Output, tbl)
}
