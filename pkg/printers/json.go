package printers

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
)

// JSON writes v to color.Output as indented JSON.
func JSON(v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(color.Output, string(b))
	return err
}
