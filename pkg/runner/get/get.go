// Package get provides the runner logic for listing items by day.
package get

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/thoughts/pkg/app"
	"tableflip.dev/thoughts/pkg/entry"
	"tableflip.dev/thoughts/pkg/glyph"
	"tableflip.dev/thoughts/pkg/printers"
)

const layoutUS = "Monday, January 2, 2006"

// Get prints what was written on, and what is scheduled for, a day.
type Get struct {
	Day time.Time
	// Kind limits output to one kind when set.
	Kind *glyph.Kind
	// All prints every day that has items instead of Day.
	All  bool
	JSON bool

	Service *app.Service
	Printer *printers.PrettyPrint
}

func (n *Get) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not get, no service")
	}
	pp := n.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{}
	}

	days := []time.Time{n.Day}
	if n.All {
		keys, err := n.Service.AllDatesWithItems(ctx)
		if err != nil {
			return err
		}
		days = days[:0]
		for _, k := range keys {
			d, err := entry.ParseDay(k)
			if err != nil {
				continue
			}
			days = append(days, d)
		}
	}

	all, err := n.Service.Items(ctx)
	if err != nil {
		return err
	}
	lookup := make(map[string]*entry.Item, len(all))
	for _, it := range all {
		lookup[it.ID] = it
	}

	var views []app.Day
	for _, d := range days {
		view, err := n.Service.DayView(ctx, d)
		if err != nil {
			return err
		}
		view.Written = n.filtered(view.Written)
		view.Scheduled = n.filtered(view.Scheduled)
		view.Routines = n.filtered(view.Routines)
		views = append(views, view)
	}
	if n.JSON {
		return printers.JSON(views)
	}

	pp.NewLine()
	for i, view := range views {
		pp.Title(days[i].Format(layoutUS))
		pp.NewLine()

		pp.TitleWithCount("Written", len(view.Written))
		pp.Tree(lookup, roots(view.Written)...)

		if len(view.Scheduled) > 0 {
			pp.TitleWithCount("Scheduled", len(view.Scheduled))
			pp.Items(flat(view.Scheduled)...)
		}
		if len(view.Routines) > 0 {
			pp.TitleWithCount("Routines", len(view.Routines))
			pp.Items(flat(view.Routines)...)
		}
	}
	return nil
}

func (n *Get) filtered(items []*entry.Item) []*entry.Item {
	if n.Kind == nil {
		return items
	}
	out := make([]*entry.Item, 0, len(items))
	for _, it := range items {
		if it.Kind() == *n.Kind {
			out = append(out, it)
		}
	}
	return out
}

// roots keeps the items whose parent is not also in items.
func roots(items []*entry.Item) []*entry.Item {
	in := make(map[string]bool, len(items))
	for _, it := range items {
		in[it.ID] = true
	}
	out := make([]*entry.Item, 0, len(items))
	for _, it := range items {
		if !in[it.ParentID] {
			out = append(out, it)
		}
	}
	return out
}

// flat returns copies of items at depth zero so they print unindented.
func flat(items []*entry.Item) []*entry.Item {
	out := make([]*entry.Item, 0, len(items))
	for _, it := range items {
		cp := it.Clone()
		cp.DepthLevel = 0
		out = append(out, cp)
	}
	return out
}

// Dates lists every day that has items.
type Dates struct {
	JSON bool

	Service *app.Service
}

func (n *Dates) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not list dates, no service")
	}
	keys, err := n.Service.AllDatesWithItems(ctx)
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(keys)
	}
	written, err := n.Service.ItemsByDate(ctx)
	if err != nil {
		return err
	}
	scheduled, err := n.Service.ScheduledItemsByDate(ctx)
	if err != nil {
		return err
	}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Date"), bold.Sprint("Written"), bold.Sprint("Scheduled"))
	for _, k := range keys {
		tbl.AddRow(k, len(written[k]), len(scheduled[k]))
	}
	tbl.RightAlign(1)
	tbl.RightAlign(2)
	_, _ = fmt.Fprintln(color.Output, tbl)
	return nil
}
