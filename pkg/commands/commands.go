package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/thoughts/pkg/app"
	"tableflip.dev/thoughts/pkg/commands/options"
	"tableflip.dev/thoughts/pkg/printers"
	"tableflip.dev/thoughts/pkg/store"
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "thoughts",
		Short: options.Wrap80("Capture todos, events, routines and notes from plain text, and keep them reconciled by day."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addAdd(topLevel)
	addCapture(topLevel)
	addGet(topLevel)
	addDates(topLevel)
	addCalendar(topLevel)
	addComplete(topLevel)
	addCancel(topLevel)
	addCheck(topLevel)
	addEdit(topLevel)
	addReschedule(topLevel)
	addDelete(topLevel)
	addReview(topLevel)
	addReport(topLevel)
	addSearch(topLevel)
	addKey(topLevel)
	addInfo(topLevel)
	addExport(topLevel)
	addImport(topLevel)
	addWatch(topLevel)
	addVersion(topLevel)
	addCompletion(topLevel)
}

// session is what every journal command needs: the loaded config, a service
// over the stored snapshot, and a printer honouring the configured clock.
type session struct {
	Config  store.Config
	Service *app.Service
	Printer *printers.PrettyPrint
}

func open(ctx context.Context, showID bool) (*session, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, err
	}
	svc, err := app.Open(ctx, p, app.Options{
		Logf: func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		},
	})
	if err != nil {
		return nil, err
	}
	return &session{
		Config:  cfg,
		Service: svc,
		Printer: &printers.PrettyPrint{ShowID: showID, TimeFormat: cfg.TimeFormat()},
	}, nil
}

// completeIDs offers stored item ids with their content as the description.
func completeIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := open(ctx, false)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	items, err := s.Service.Items(ctx)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID+"\t"+it.Content)
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
