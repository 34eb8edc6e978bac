// Package add provides the runner logic for capturing new items.
package add

import (
	"context"
	"errors"

	"tableflip.dev/thoughts/pkg/app"
	"tableflip.dev/thoughts/pkg/printers"
)

// Add interprets one line of text and stores it.
type Add struct {
	Text     string
	ParentID string
	Depth    int
	JSON     bool

	Service *app.Service
	Printer *printers.PrettyPrint
}

// Do stores the item and prints it back.
func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not add, no service")
	}
	id, err := n.Service.AddItem(ctx, n.Text, n.ParentID, n.Depth)
	if err != nil {
		return err
	}
	return show(ctx, n.Service, n.Printer, n.JSON, id)
}

// Capture stores a block of lines, nesting indented lines under the line
// above them.
type Capture struct {
	Block string
	JSON  bool

	Service *app.Service
	Printer *printers.PrettyPrint
}

// Do stores every line of the block. Lines added before a failure are still
// printed.
func (n *Capture) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not capture, no service")
	}
	added, err := n.Service.Capture(ctx, n.Block)
	if len(added) == 0 {
		return err
	}
	if showErr := show(ctx, n.Service, n.Printer, n.JSON, added...); showErr != nil {
		return showErr
	}
	return err
}

func show(ctx context.Context, svc *app.Service, pp *printers.PrettyPrint, asJSON bool, ids ...string) error {
	if pp == nil {
		pp = &printers.PrettyPrint{}
	}
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	items, err := svc.Items(ctx)
	if err != nil {
		return err
	}
	added := items[:0]
	for _, it := range items {
		if wanted[it.ID] {
			added = append(added, it)
		}
	}
	if asJSON {
		return printers.JSON(added)
	}
	pp.TitleWithCount("Added", len(added))
	pp.Items(added...)
	return nil
}
