package info

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/thoughts/pkg/app"
	"tableflip.dev/thoughts/pkg/glyph"
	"tableflip.dev/thoughts/pkg/store"
)

type Info struct {
	Config  store.Config
	Service *app.Service
}

func (n *Info) Do(ctx context.Context) error {
	w := color.Output

	if override := os.Getenv("THOUGHTS_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(w, "THOUGHTS_CONFIG_PATH found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(w, "THOUGHTS_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintln(w, "Config.path:", n.Config.BasePath())
	_, _ = fmt.Fprintln(w, "Config.time_format:", n.Config.TimeFormat())

	if n.Service == nil {
		return errors.New("failed to open the journal")
	}

	items, err := n.Service.Items(ctx)
	if err != nil {
		return err
	}
	counts := map[glyph.Kind]int{}
	for _, it := range items {
		counts[it.Kind()]++
	}
	dates, err := n.Service.AllDatesWithItems(ctx)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "Items: %d\n", len(items))
	for _, k := range []glyph.Kind{glyph.Todo, glyph.Event, glyph.Routine, glyph.Note} {
		_, _ = fmt.Fprintf(w, "  %s %s: %d\n", k.Symbol(), k, counts[k])
	}
	if len(dates) == 0 {
		_, _ = fmt.Fprintln(w, "Dates: none")
		return nil
	}
	_, _ = fmt.Fprintf(w, "Dates: %d (%s to %s)\n", len(dates), dates[0], dates[len(dates)-1])
	return nil
}
