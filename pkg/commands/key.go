package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/thoughts/pkg/runner/key"
)

func addKey(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Show the glyphs and prefixes that pick an item's kind.",
		Example: `
thoughts key
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			k := key.Key{}
			return k.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
