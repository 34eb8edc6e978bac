package options

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

// IDOptions
type IDOptions struct {
	ShowID bool
	ID     string
}

func AddShowIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().BoolVarP(&o.ShowID, "show-id", "k", false,
		"Show the ID of each item.")
}

// TakeID consumes the first argument as the item id and returns the rest.
func (o *IDOptions) TakeID(args []string) ([]string, error) {
	if len(args) < 1 || strings.TrimSpace(args[0]) == "" {
		return nil, errors.New("requires an item id")
	}
	o.ID = args[0]
	return args[1:], nil
}
