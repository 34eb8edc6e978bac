package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/thoughts/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show the config in use and a summary of the journal.",
		Example: `
thoughts info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			r := info.Info{}
			s, err := open(cmd.Context(), false)
			if err != nil {
				fmt.Fprintf(os.Stderr, "info: %v\n", err)
			} else {
				r.Config = s.Config
				r.Service = s.Service
			}
			return r.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
