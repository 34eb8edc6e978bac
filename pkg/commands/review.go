package commands

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/thoughts/pkg/commands/options"
	"tableflip.dev/thoughts/pkg/runner/review"
	"tableflip.dev/thoughts/pkg/timeutil"
)

func addReview(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "review",
		Short: "List open todos carried over from earlier days.",
		Example: `
thoughts review -k
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := open(cmd.Context(), io.ShowID)
			if err != nil {
				return oo.HandleError(err)
			}
			r := review.Review{
				JSON:    oo.JSON,
				Service: s.Service,
				Printer: s.Printer,
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addReport(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	window := timeutil.DefaultWindow

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show what was completed recently, grouped by day.",
		Example: `
thoughts report
thoughts report --last 3d
thoughts report --last 2w --json
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := open(cmd.Context(), false)
			if err != nil {
				return oo.HandleError(err)
			}
			r := review.Report{
				Window:  window,
				Now:     time.Now(),
				JSON:    oo.JSON,
				Service: s.Service,
				Printer: s.Printer,
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&window, "last", timeutil.DefaultWindow,
		"How far back to look, for example 3d, 1w or 1w2d.")
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
