package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"tableflip.dev/gardencal/pkg/commands/options"
	"tableflip.dev/gardencal/pkg/runner/watch"
)

func addWatch(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	lang := ""
	search := ""

	cmd := &cobra.Command{
		Use:   "watch [period]",
		Short: "Reprint the calendar whenever another gardencal changes the store",
		Example: `
gardencal watch may
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt)
			defer stop()
			return withSessionContext(ctx, cmd, func(ctx context.Context, s *session) error {
				cal := calendarRunner(s, io.ShowID, lang)
				cal.Search = search
				if len(args) == 1 {
					cal.Period = args[0]
					s.app.SetActivePeriod(args[0])
				}
				r := watch.Watch{
					Service: s.app,
					Log:     s.log,
					Print: func(ctx context.Context) error {
						if !output.JSON {
							fmt.Print("\033[H\033[2J")
						}
						return cal.Do(ctx)
					},
				}
				return r.Do(ctx)
			})
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "", "Label language; defaults to the saved language preference.")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Only show items whose label, in any language, contains this text.")
	options.AddShowIDArgs(cmd, io)
	topLevel.AddCommand(cmd)
}
