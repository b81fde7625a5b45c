package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/gardencal/pkg/climate"
	"tableflip.dev/gardencal/pkg/commands/options"
	"tableflip.dev/gardencal/pkg/runner/zone"
)

func addZone(topLevel *cobra.Command) {
	zo := &options.ZoneOptions{}

	cmd := &cobra.Command{
		Use:     "zone",
		Aliases: []string{"climate"},
		Short:   "Resolve the Köppen climate zone for a location",
		Example: `
gardencal zone --lat 59.437 --lon 24.7536 --name Tallinn
gardencal zone
gardencal zone --lat "59.437 24.7536"
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := zone.Zone{JSON: output.JSON, Name: zo.Name}
			if zo.Lat != "" || zo.Lon != "" {
				var err error
				if zo.Lon == "" {
					r.Lat, r.Lon, err = climate.ParsePair(zo.Lat)
				} else {
					if r.Lat, err = climate.ParseCoordinate(zo.Lat); err == nil {
						r.Lon, err = climate.ParseCoordinate(zo.Lon)
					}
				}
				if err != nil {
					return output.HandleError(err)
				}
				r.Coords = true
			}
			return withSession(cmd, func(ctx context.Context, s *session) error {
				r.Prefs = s.prefs
				r.Resolver = s.resolver
				return r.Do(ctx)
			})
		},
	}

	options.AddZoneArgs(cmd, zo)
	addZoneOverride(cmd)
	addZoneClear(cmd)
	topLevel.AddCommand(cmd)
}

func addZoneOverride(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "override CODE",
		Short: "Use CODE instead of the resolved zone",
		Example: `
gardencal zone override Dfb
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				r := zone.Override{
					Code:     args[0],
					JSON:     output.JSON,
					Resolver: s.resolver,
				}
				return r.Do(ctx)
			})
		},
	}

	parent.AddCommand(cmd)
}

func addZoneClear(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Drop the override and resolve the saved location again",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				r := zone.Clear{
					JSON:     output.JSON,
					Prefs:    s.prefs,
					Resolver: s.resolver,
					Log:      s.log,
				}
				return r.Do(ctx)
			})
		},
	}

	parent.AddCommand(cmd)
}
