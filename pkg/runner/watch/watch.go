// Package watch provides the runner logic for following the journal as it
// changes on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"tableflip.dev/thoughts/pkg/app"
	"tableflip.dev/thoughts/pkg/runner/get"
)

// Watch prints the day view and prints it again every time the stored
// journal changes, until ctx is cancelled.
type Watch struct {
	Day func() time.Time

	Service *app.Service
	Render  func(ctx context.Context, day time.Time) error
}

func (n *Watch) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not watch, no service")
	}
	day := n.Day
	if day == nil {
		day = time.Now
	}
	render := n.Render
	if render == nil {
		render = func(ctx context.Context, d time.Time) error {
			g := get.Get{Day: d, Service: n.Service}
			return g.Do(ctx)
		}
	}

	events, err := n.Service.Watch(ctx)
	if err != nil {
		return err
	}
	if err := render(ctx, day()); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := n.Service.Reload(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "watch: reload after %s: %v\n", ev.Type, err)
				continue
			}
			if err := render(ctx, day()); err != nil {
				return err
			}
		}
	}
}
