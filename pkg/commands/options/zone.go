package options

import (
	"github.com/spf13/cobra"
)

// ZoneOptions
type ZoneOptions struct {
	Lat  string
	Lon  string
	Name string
}

func AddZoneArgs(cmd *cobra.Command, o *ZoneOptions) {
	cmd.Flags().StringVar(&o.Lat, "lat", "",
		"Latitude in decimal degrees. Omit to use the last saved location.")
	cmd.Flags().StringVar(&o.Lon, "lon", "",
		"Longitude in decimal degrees.")
	cmd.Flags().StringVar(&o.Name, "name", "",
		"Optional name saved with the location.")
}
