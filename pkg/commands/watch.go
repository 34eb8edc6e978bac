package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tableflip.dev/thoughts/pkg/commands/options"
	"tableflip.dev/thoughts/pkg/runner/get"
	"tableflip.dev/thoughts/pkg/runner/watch"
)

func addWatch(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Show today and redraw whenever the journal changes.",
		Example: `
thoughts watch
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			s, err := open(ctx, io.ShowID)
			if err != nil {
				return err
			}
			redraw := isatty.IsTerminal(os.Stdout.Fd())
			r := watch.Watch{
				Day:     time.Now,
				Service: s.Service,
				Render: func(ctx context.Context, day time.Time) error {
					if redraw {
						fmt.Fprint(os.Stdout, "\033[H\033[2J")
					}
					g := get.Get{Day: day, Service: s.Service, Printer: s.Printer}
					return g.Do(ctx)
				},
			}
			return r.Do(ctx)
		},
	}

	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
