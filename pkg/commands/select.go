package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/gardencal/pkg/entry"
	"tableflip.dev/gardencal/pkg/runner/selection"
)

func addSelect(topLevel *cobra.Command) {
	var (
		off   bool
		all   bool
		value bool
		lang  string
	)

	cmd := &cobra.Command{
		Use:   "select PERIOD CATEGORY [LABEL...]",
		Short: "Tick or untick calendar items",
		Example: `
gardencal select may greenhouse Tomatoes Cucumbers
gardencal select may greenhouse Tomatoes --off
gardencal select april garden_tasks --all
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return fmt.Errorf("requires a period and a category")
			}
			if !all && len(args) < 3 {
				return fmt.Errorf("requires at least one label, or --all")
			}
			return nil
		},
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			switch len(args) {
			case 0:
				return periodCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
			case 1:
				return categoryCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				if lang == "" {
					lang = s.prefs.Language()
				}
				r := selection.Select{
					Period:   args[0],
					Category: entry.Category(args[1]),
					Labels:   args[2:],
					Value:    value,
					All:      all,
					Off:      off,
					Lang:     lang,
					JSON:     output.JSON,
					Service:  s.app,
					Tracker:  s.tracker,
				}
				return r.Do(ctx)
			})
		},
	}

	cmd.Flags().BoolVar(&off, "off", false, "Untick instead of tick.")
	cmd.Flags().BoolVar(&all, "all", false, "Apply to every item in the category.")
	cmd.Flags().BoolVar(&value, "value", false, "Store labels as plain values instead of items.")
	cmd.Flags().StringVar(&lang, "lang", "", "Language the labels are given in.")
	topLevel.AddCommand(cmd)
}
