package options

import (
	"time"

	"github.com/spf13/cobra"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
	layoutMonth    = "2006-1"
)

// OnOptions
type OnOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a date, example: --on="2020-2-28" or --on="2/28".`)
}

// GetOn returns the requested day, or now when none was given.
func (o *OnOptions) GetOn(now time.Time) (time.Time, error) {
	if o.OnString == "" {
		return now, nil
	}
	t, err := time.ParseInLocation(layoutISO, o.OnString, time.Local)
	if err == nil {
		return t, nil
	}
	t, err = time.ParseInLocation(layoutMonth, o.OnString, time.Local)
	if err == nil {
		return t, nil
	}
	// Let the year be the same.
	t, err = time.ParseInLocation(layoutISOShort, o.OnString, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	return t.AddDate(now.Year(), 0, 0), nil
}
