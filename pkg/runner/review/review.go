// Package review provides the runner logic for looking back: open todos from
// earlier days and completed work over a window.
package review

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/thoughts/pkg/app"
	"tableflip.dev/thoughts/pkg/printers"
	"tableflip.dev/thoughts/pkg/timeutil"
)

// Review lists open todos carried over from earlier days.
type Review struct {
	JSON bool

	Service *app.Service
	Printer *printers.PrettyPrint
}

func (n *Review) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not review, no service")
	}
	candidates, err := n.Service.Review(ctx)
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(candidates)
	}
	pp := n.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{}
	}
	pp.Review(candidates)
	return nil
}

// Report lists items completed within the last Window, for example "3d" or
// "1w2d".
type Report struct {
	Window string
	Now    time.Time
	JSON   bool

	Service *app.Service
	Printer *printers.PrettyPrint
}

func (n *Report) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not report, no service")
	}
	duration, label, err := timeutil.ParseWindow(n.Window)
	if err != nil {
		return err
	}
	until := n.Now
	if until.IsZero() {
		until = time.Now()
	}
	result, err := n.Service.Report(ctx, until.Add(-duration), until)
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(result)
	}
	pp := n.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{}
	}
	pp.Report(result, label)
	return nil
}
