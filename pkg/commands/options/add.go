package options

import (
	"github.com/spf13/cobra"
)

// AddOptions
type AddOptions struct {
	ParentID string
	Depth    int
}

func AddAddArgs(cmd *cobra.Command, o *AddOptions) {
	cmd.Flags().StringVarP(&o.ParentID, "parent", "p", "",
		"Nest the item under the note or todo with this id.")
	cmd.Flags().IntVar(&o.Depth, "depth", 0,
		"Requested nesting depth; clamped to what the kind allows.")
}
