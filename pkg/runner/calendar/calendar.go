// Package calendar provides the runner logic for month views.
package calendar

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/thoughts/pkg/app"
	"tableflip.dev/thoughts/pkg/printers"
)

// Calendar prints a month with its scheduled items, or with Year a grid of
// every month in the year marking the days items were written.
type Calendar struct {
	Month time.Time
	Today time.Time
	Year  bool

	Service *app.Service
	Printer *printers.PrettyPrint
}

func (n *Calendar) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not show calendar, no service")
	}
	pp := n.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{}
	}
	items, err := n.Service.Items(ctx)
	if err != nil {
		return err
	}

	if n.Year {
		month := time.Date(n.Month.Year(), time.January, 1, 1, 0, 0, 0, time.Local)
		for i := 0; i < 12; i++ {
			pp.PrintMonth(month, items...)
			month = printers.NextMonth(month)
		}
		return nil
	}

	pp.Title(n.Month.Format("January 2006"))
	pp.Calendar(n.Month, n.Today, items...)
	pp.NewLine()
	return nil
}
