package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/thoughts/pkg/commands/options"
	"tableflip.dev/thoughts/pkg/glyph"
	"tableflip.dev/thoughts/pkg/runner/calendar"
	"tableflip.dev/thoughts/pkg/runner/get"
)

func addGet(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	io := &options.IDOptions{}
	oo := &options.OutputOptions{}
	all := false
	var kind *glyph.Kind

	long := strings.Builder{}
	long.WriteString("Get the items written on, scheduled for, or repeating on a day.\n\n")
	long.WriteString("Kinds:\n")
	validArgs := make([]string, 0, 4)
	for _, k := range []glyph.Kind{glyph.Todo, glyph.Event, glyph.Routine, glyph.Note} {
		long.WriteString(fmt.Sprintf("%s: %s\n", k.Symbol(), k))
		validArgs = append(validArgs, k.String())
	}

	cmd := &cobra.Command{
		Use:   "get [kind]",
		Short: "Show a day.",
		Long:  long.String(),
		Example: `
thoughts get
thoughts get todo --on 2024-3-9
thoughts get --all -k
`,
		ValidArgs: validArgs,
		Args: func(_ *cobra.Command, args []string) error {
			switch len(args) {
			case 0:
				kind = nil
				return nil
			case 1:
				k, err := glyph.ParseKind(strings.TrimSuffix(args[0], "s"))
				if err != nil {
					return err
				}
				kind = &k
				return nil
			}
			return errors.New("too many arguments, expected at most a kind")
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			day, err := on.GetOn(time.Now())
			if err != nil {
				return oo.HandleError(err)
			}
			s, err := open(cmd.Context(), io.ShowID)
			if err != nil {
				return oo.HandleError(err)
			}
			r := get.Get{
				Day:     day,
				Kind:    kind,
				All:     all,
				JSON:    oo.JSON,
				Service: s.Service,
				Printer: s.Printer,
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)
	cmd.Flags().BoolVar(&all, "all", false, "Show every day that has items.")

	topLevel.AddCommand(cmd)
}

func addDates(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "dates",
		Short: "List the days that have items.",
		Example: `
thoughts dates
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := open(cmd.Context(), false)
			if err != nil {
				return oo.HandleError(err)
			}
			r := get.Dates{JSON: oo.JSON, Service: s.Service}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addCalendar(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	year := false

	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Show a month of scheduled items.",
		Example: `
thoughts calendar
thoughts calendar --on 2024-5
thoughts calendar --year
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			now := time.Now()
			month, err := on.GetOn(now)
			if err != nil {
				return err
			}
			s, err := open(cmd.Context(), false)
			if err != nil {
				return err
			}
			r := calendar.Calendar{
				Month:   month,
				Today:   now,
				Year:    year,
				Service: s.Service,
				Printer: s.Printer,
			}
			return r.Do(cmd.Context())
		},
	}

	options.AddOnArgs(cmd, on)
	cmd.Flags().BoolVar(&year, "year", false, "Show a count per day for the whole year.")

	topLevel.AddCommand(cmd)
}
