package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/gardencal/pkg/commands/options"
	"tableflip.dev/gardencal/pkg/runner/report"
	"tableflip.dev/gardencal/pkg/timeutil"
)

func addReport(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	var last string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Display recently added or edited entries grouped by period",
		Long: `Report lists custom plants and tasks changed within the specified time window.

Examples:
  gardencal report
  gardencal report --last 3d
  gardencal report --last 1mo`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			duration, label, err := timeutil.ParseWindow(last)
			if err != nil {
				return output.HandleError(err)
			}
			until := time.Now()
			return withSession(cmd, func(ctx context.Context, s *session) error {
				r := report.Report{
					Since:   until.Add(-duration),
					Until:   until,
					Label:   label,
					ShowID:  io.ShowID,
					JSON:    output.JSON,
					Service: s.app,
				}
				return r.Do(ctx)
			})
		},
	}

	cmd.Flags().StringVar(&last, "last", timeutil.DefaultWindow, "time window to include (for example 3d, 1w, 1mo)")
	options.AddShowIDArgs(cmd, io)
	topLevel.AddCommand(cmd)
}
