package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/thoughts/pkg/commands/options"
	"tableflip.dev/thoughts/pkg/runner/complete"
)

func addComplete(topLevel *cobra.Command) {
	topLevel.AddCommand(completeCommand(complete.Toggle, &cobra.Command{
		Use:     "complete <id>",
		Aliases: []string{"completed", "done"},
		Short:   "Mark a todo done, or open again if it already is.",
		Example: `
thoughts complete <item id>
`,
	}))
}

func addCancel(topLevel *cobra.Command) {
	topLevel.AddCommand(completeCommand(complete.Cancel, &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel a todo or event.",
		Example: `
thoughts cancel <item id>
`,
	}))
}

func addCheck(topLevel *cobra.Command) {
	topLevel.AddCommand(completeCommand(complete.Check, &cobra.Command{
		Use:   "check <id>",
		Short: "Check off a routine for its current period.",
		Example: `
thoughts check <routine id>
`,
	}))
}

func completeCommand(action complete.Action, cmd *cobra.Command) *cobra.Command {
	io := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd.Args = func(_ *cobra.Command, args []string) error {
		_, err := io.TakeID(args)
		return err
	}
	cmd.ValidArgsFunction = completeIDs
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		cmd.SilenceUsage = true
		s, err := open(cmd.Context(), true)
		if err != nil {
			return oo.HandleError(err)
		}
		r := complete.Complete{
			ID:      io.ID,
			Action:  action,
			JSON:    oo.JSON,
			Service: s.Service,
			Printer: s.Printer,
		}
		return oo.HandleError(r.Do(cmd.Context()))
	}

	options.AddOutputArg(cmd, oo)
	return cmd
}
