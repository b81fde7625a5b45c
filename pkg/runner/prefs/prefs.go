// Package prefs shows and changes display preferences.
package prefs

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/gardencal/pkg/prefs"
	"tableflip.dev/gardencal/pkg/printers"
)

// Prefs applies any non-empty setting and prints the result.
type Prefs struct {
	Temperature   string
	Precipitation string
	Language      string
	JSON          bool
	Preferences   *prefs.Preferences
}

func (n *Prefs) Do(ctx context.Context) error {
	if n.Preferences == nil {
		return errors.New("can not read preferences, no store")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if n.Temperature != "" {
		if err := n.Preferences.SetTemperatureUnit(n.Temperature); err != nil {
			return err
		}
	}
	if n.Precipitation != "" {
		if err := n.Preferences.SetPrecipitationUnit(n.Precipitation); err != nil {
			return err
		}
	}
	if n.Language != "" {
		if err := n.Preferences.SetLanguage(n.Language); err != nil {
			return err
		}
	}

	snap := n.Preferences.Load()
	if n.JSON {
		return (&printers.PrettyPrint{}).JSON(snap)
	}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Preference"), bold.Sprint("Value"))
	tbl.AddRow("temperature", snap.TemperatureUnit)
	tbl.AddRow("precipitation", snap.PrecipitationUnit)
	tbl.AddRow("language", snap.Language)
	if loc := snap.LastLocation; loc != nil {
		tbl.AddRow("location", describe(*loc))
	} else {
		tbl.AddRow("location", "none")
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
	return nil
}

func describe(loc prefs.Location) string {
	if loc.Type == prefs.LocationQuery {
		return fmt.Sprintf("%q", loc.Query)
	}
	s := fmt.Sprintf("%.4f, %.4f", float64(loc.Lat), float64(loc.Lon))
	if loc.Name != "" {
		s = loc.Name + " (" + s + ")"
	}
	return s
}
