package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/gardencal/pkg/commands/options"
	"tableflip.dev/gardencal/pkg/runner/calendar"
)

func addCalendar(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	lang := ""
	search := ""

	cmd := &cobra.Command{
		Use:     "calendar [period]",
		Aliases: []string{"cal", "show"},
		Short:   "Print the calendar with catalog items, custom entries and selections",
		Example: `
gardencal calendar
gardencal calendar may
gardencal calendar early_june --lang et
gardencal calendar --search tomat
`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return periodCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				r := calendarRunner(s, io.ShowID, lang)
				r.Search = search
				if len(args) == 1 {
					r.Period = args[0]
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

func calendarRunner(s *session, showID bool, lang string) *calendar.Calendar {
	if lang == "" {
		lang = s.prefs.Language()
	}
	return &calendar.Calendar{
		Lang:    lang,
		ShowID:  showID,
		JSON:    output.JSON,
		Service: s.app,
		Tracker: s.tracker,
	}
}
