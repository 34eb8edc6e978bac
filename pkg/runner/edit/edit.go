// Package edit provides the runner logic for changing or removing items.
package edit

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/thoughts/pkg/app"
	"tableflip.dev/thoughts/pkg/entry"
	"tableflip.dev/thoughts/pkg/printers"
	"tableflip.dev/thoughts/pkg/timeutil"
)

// Edit replaces the text of an item.
type Edit struct {
	ID   string
	Text string
	JSON bool

	Service *app.Service
	Printer *printers.PrettyPrint
}

func (n *Edit) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not edit, no service")
	}
	it, err := n.Service.Edit(ctx, n.ID, n.Text)
	if err != nil {
		return err
	}
	return show(n.Printer, n.JSON, it)
}

// Reschedule moves an item to a new date and time.
type Reschedule struct {
	ID     string
	Phrase string
	JSON   bool

	Service *app.Service
	Printer *printers.PrettyPrint
}

// unparsableHint is shown when a reschedule phrase names no date or time.
const unparsableHint = `try phrases like "tomorrow 2pm", "friday at 3:30pm", "next monday", "in 3 days" or "2024-03-09 14:00"`

func (n *Reschedule) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not reschedule, no service")
	}
	it, err := n.Service.Reschedule(ctx, n.ID, n.Phrase)
	if errors.Is(err, timeutil.ErrUnparsable) {
		return fmt.Errorf("%w; %s", err, unparsableHint)
	}
	if err != nil {
		return err
	}
	return show(n.Printer, n.JSON, it)
}

// Delete removes an item. Its children move up a level.
type Delete struct {
	ID   string
	JSON bool

	Service *app.Service
}

func (n *Delete) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not delete, no service")
	}
	if err := n.Service.DeleteItem(ctx, n.ID); err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(map[string]string{"deleted": n.ID})
	}
	_, _ = fmt.Fprintf(color.Output, "deleted %s\n", n.ID)
	return nil
}

func show(pp *printers.PrettyPrint, asJSON bool, it *entry.Item) error {
	if asJSON {
		return printers.JSON(it)
	}
	if pp == nil {
		pp = &printers.PrettyPrint{ShowID: true}
	}
	pp.NewLine()
	pp.Item(it, 0)
	pp.NewLine()
	return nil
}
