package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/thoughts/pkg/runner/transfer"
)

func addExport(topLevel *cobra.Command) {
	format := transfer.FormatJSON

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every item to stdout.",
		Example: `
thoughts export > backup.json
thoughts export --format yaml
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := open(cmd.Context(), false)
			if err != nil {
				return err
			}
			r := transfer.Export{
				Format:  format,
				Out:     cmd.OutOrStdout(),
				Service: s.Service,
			}
			return r.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&format, "format", transfer.FormatJSON,
		fmt.Sprintf("Output format. One of '%s' or '%s'.", transfer.FormatJSON, transfer.FormatYAML))

	topLevel.AddCommand(cmd)
}

func addImport(topLevel *cobra.Command) {
	format := ""

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Replace the journal with items from a file or stdin.",
		Long: "Items are checked the same way as on load: broken parent links " +
			"and cycles are repaired and reported.",
		Example: `
thoughts import backup.json
thoughts export | thoughts import --format json
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := open(cmd.Context(), false)
			if err != nil {
				return err
			}
			r := transfer.Import{
				Format:  format,
				Service: s.Service,
			}
			if len(args) == 1 {
				r.Path = args[0]
			} else {
				r.In = cmd.InOrStdin()
			}
			return r.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&format, "format", "",
		"Input format, 'json' or 'yaml'. Taken from the file extension when unset.")

	topLevel.AddCommand(cmd)
}
