package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/gardencal/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	grid := false

	cmd := &cobra.Command{
		Use:     "info",
		Aliases: []string{"doctor"},
		Short:   "Details about where data is stored, and a projection check.",
		Example: `
gardencal info
gardencal doctor --grid
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				i := info.Info{
					Config:   s.cfg,
					Store:    s.store,
					Service:  s.app,
					Tracker:  s.tracker,
					Resolver: s.resolver,
					Journal:  s.journal,
					Grid:     grid,
				}
				return i.Do(ctx)
			})
		},
	}

	cmd.Flags().BoolVar(&grid, "grid", false, "Also load the climate grid.")
	topLevel.AddCommand(cmd)
}
