package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/gardencal/pkg/runner/prefs"
)

func addPrefs(topLevel *cobra.Command) {
	r := prefs.Prefs{}

	cmd := &cobra.Command{
		Use:     "prefs",
		Aliases: []string{"preferences"},
		Short:   "Show or change units and language",
		Example: `
gardencal prefs
gardencal prefs --temp F --precip in
gardencal prefs --lang et
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				r.JSON = output.JSON
				r.Preferences = s.prefs
				return r.Do(ctx)
			})
		},
	}

	cmd.Flags().StringVar(&r.Temperature, "temp", "", "Temperature unit: C or F.")
	cmd.Flags().StringVar(&r.Precipitation, "precip", "", "Precipitation unit: mm or in.")
	cmd.Flags().StringVar(&r.Language, "lang", "", "Label language, for example en or et.")
	topLevel.AddCommand(cmd)
}
