package commands

import (
	"errors"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/thoughts/pkg/commands/options"
	"tableflip.dev/thoughts/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	ao := &options.AddOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a todo, event, routine or note.",
		Long: options.Wrap80("The first token picks the kind: a glyph or prefix " +
			"(see `thoughts key`) or a leading verb for a todo. Dates, times, " +
			"durations and recurrences in the text are resolved and removed " +
			"from the content; #tags are extracted."),
		Example: `
thoughts add "t buy milk tomorrow 5pm #errand"
thoughts add "meet Sam friday 2pm-3pm"
thoughts add "r stretch every day at 7am"
thoughts add --parent 01HV... "n call notes"
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires the text to add")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := open(cmd.Context(), true)
			if err != nil {
				return oo.HandleError(err)
			}
			r := add.Add{
				Text:     strings.Join(args, " "),
				ParentID: ao.ParentID,
				Depth:    ao.Depth,
				JSON:     oo.JSON,
				Service:  s.Service,
				Printer:  s.Printer,
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddAddArgs(cmd, ao)
	options.AddOutputArg(cmd, oo)
	_ = cmd.RegisterFlagCompletionFunc("parent", completeIDs)

	topLevel.AddCommand(cmd)
}

func addCapture(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "capture [block]",
		Short: "Add a block of lines, nesting by leading tabs.",
		Long: options.Wrap80("Each non-empty line becomes an item. A line " +
			"indented one tab deeper than the line before is nested under it. " +
			"The block is read from stdin when no argument is given."),
		Example: `
printf 'n project\n\tt write plan\n' | thoughts capture
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			block := strings.Join(args, " ")
			if len(args) == 0 {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return oo.HandleError(err)
				}
				block = string(b)
			}
			s, err := open(cmd.Context(), true)
			if err != nil {
				return oo.HandleError(err)
			}
			r := add.Capture{
				Block:   block,
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
