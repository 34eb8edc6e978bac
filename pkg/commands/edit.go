package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/thoughts/pkg/commands/options"
	"tableflip.dev/thoughts/pkg/runner/edit"
)

func addEdit(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	oo := &options.OutputOptions{}
	text := ""

	cmd := &cobra.Command{
		Use:   "edit <id> <text>",
		Short: "Replace the text of an item.",
		Long: options.Wrap80("The new text is read for #tags again. The kind, " +
			"schedule and nesting of the item do not change."),
		Example: `
thoughts edit <item id> "buy oat milk #errand"
`,
		Args: func(_ *cobra.Command, args []string) error {
			rest, err := io.TakeID(args)
			if err != nil {
				return err
			}
			if len(rest) == 0 {
				return errors.New("requires the new text")
			}
			text = strings.Join(rest, " ")
			return nil
		},
		ValidArgsFunction: completeIDs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := open(cmd.Context(), true)
			if err != nil {
				return oo.HandleError(err)
			}
			r := edit.Edit{
				ID:      io.ID,
				Text:    text,
				JSON:    oo.JSON,
				Service: s.Service,
				Printer: s.Printer,
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addReschedule(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	oo := &options.OutputOptions{}
	phrase := ""

	cmd := &cobra.Command{
		Use:     "reschedule <id> <when>",
		Aliases: []string{"move"},
		Short:   "Move a todo, event or routine to a new date or time.",
		Example: `
thoughts reschedule <item id> "tomorrow 2pm"
thoughts reschedule <item id> next monday
`,
		Args: func(_ *cobra.Command, args []string) error {
			rest, err := io.TakeID(args)
			if err != nil {
				return err
			}
			if len(rest) == 0 {
				return errors.New("requires a date or time")
			}
			phrase = strings.Join(rest, " ")
			return nil
		},
		ValidArgsFunction: completeIDs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := open(cmd.Context(), true)
			if err != nil {
				return oo.HandleError(err)
			}
			r := edit.Reschedule{
				ID:      io.ID,
				Phrase:  phrase,
				JSON:    oo.JSON,
				Service: s.Service,
				Printer: s.Printer,
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addDelete(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an item. Its children move up a level.",
		Example: `
thoughts delete <item id>
`,
		Args: func(_ *cobra.Command, args []string) error {
			_, err := io.TakeID(args)
			return err
		},
		ValidArgsFunction: completeIDs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := open(cmd.Context(), false)
			if err != nil {
				return oo.HandleError(err)
			}
			r := edit.Delete{
				ID:      io.ID,
				JSON:    oo.JSON,
				Service: s.Service,
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
