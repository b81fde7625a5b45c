package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/gardencal/pkg/calendar"
	"tableflip.dev/gardencal/pkg/runner/key"
	"tableflip.dev/gardencal/pkg/store"
)

func addKey(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Print the category icons and period names",
		Example: `
gardencal key
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			k := key.Key{Periods: calendar.DefaultCatalog().Periods}
			if cfg, err := store.LoadConfig(); err == nil {
				if c, err := calendar.OpenCatalog(cfg.Catalog); err == nil {
					k.Periods = c.Periods
				}
			}
			err := k.Do(context.Background())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
