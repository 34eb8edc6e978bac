// Package complete provides the runner logic for changing the state of an
// item: completing or cancelling todos and checking off routines.
package complete

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/thoughts/pkg/app"
	"tableflip.dev/thoughts/pkg/entry"
	"tableflip.dev/thoughts/pkg/printers"
)

// Action selects the state change.
type Action int

const (
	Toggle Action = iota
	Cancel
	Check
)

func (a Action) String() string {
	switch a {
	case Toggle:
		return "complete"
	case Cancel:
		return "cancel"
	case Check:
		return "check"
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// Complete applies Action to the item with ID.
type Complete struct {
	ID     string
	Action Action
	JSON   bool

	Service *app.Service
	Printer *printers.PrettyPrint
}

// Do executes the state change and prints the item.
func (n *Complete) Do(ctx context.Context) error {
	if n.Service == nil {
		return fmt.Errorf("can not %s, no service", n.Action)
	}

	var (
		it  *entry.Item
		err error
	)
	switch n.Action {
	case Toggle:
		it, err = n.Service.ToggleTodoComplete(ctx, n.ID)
	case Cancel:
		it, err = n.Service.Cancel(ctx, n.ID)
	case Check:
		it, err = n.Service.CheckRoutine(ctx, n.ID)
	default:
		err = errors.New("unknown action")
	}
	if err != nil {
		return err
	}

	if n.JSON {
		return printers.JSON(it)
	}
	pp := n.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{ShowID: true}
	}
	pp.NewLine()
	pp.Item(it, 0)
	pp.NewLine()
	return nil
}
