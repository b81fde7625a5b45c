// Package zone resolves and overrides the Köppen climate zone.
package zone

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/gardencal/pkg/climate"
	"tableflip.dev/gardencal/pkg/logging"
	"tableflip.dev/gardencal/pkg/prefs"
	"tableflip.dev/gardencal/pkg/printers"
)

// ErrNoLocation is returned when no coordinates were given or saved.
var ErrNoLocation = errors.New("no location saved, pass --lat and --lon")

// Zone resolves the climate zone for a location. When Coords is set the
// location is saved first; otherwise the last saved location is used.
type Zone struct {
	Coords   bool
	Lat      float64
	Lon      float64
	Name     string
	JSON     bool
	Prefs    *prefs.Preferences
	Resolver *climate.Resolver
}

func (n *Zone) Do(ctx context.Context) error {
	if n.Resolver == nil || n.Prefs == nil {
		return errors.New("can not resolve zone, no resolver")
	}
	lat, lon := n.Lat, n.Lon
	if n.Coords {
		if err := n.Prefs.SaveLocation(prefs.Coords(lat, lon, n.Name)); err != nil {
			return err
		}
	} else {
		var ok bool
		if lat, lon, ok = n.Prefs.LastCoordinates(); !ok {
			if _, override := n.Resolver.Override(); !override {
				return ErrNoLocation
			}
		}
	}

	if _, override := n.Resolver.Override(); !override {
		if err := <-n.Resolver.Start(ctx); err != nil {
			return fmt.Errorf("loading climate grid: %w", err)
		}
	}
	m, err := n.Resolver.ResolveErr(lat, lon)
	if err != nil {
		return err
	}
	return show(m, n.JSON)
}

// Override stores a manual climate code.
type Override struct {
	Code     string
	JSON     bool
	Resolver *climate.Resolver
}

func (n *Override) Do(ctx context.Context) error {
	if n.Resolver == nil {
		return errors.New("can not override zone, no resolver")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := n.Resolver.SetOverride(n.Code); err != nil {
		return err
	}
	m, _ := n.Resolver.Resolve(0, 0)
	return show(m, n.JSON)
}

// Clear drops the override and resolves the saved location again, loading
// the grid when there is one. A grid that cannot be loaded leaves the zone
// unknown but the override is still removed.
type Clear struct {
	JSON     bool
	Prefs    *prefs.Preferences
	Resolver *climate.Resolver
	Log      logging.Logger
}

func (n *Clear) Do(ctx context.Context) error {
	if n.Resolver == nil {
		return errors.New("can not clear zone, no resolver")
	}
	m, ok, err := n.Resolver.ClearOverride()
	if err != nil {
		return err
	}
	if !ok && n.Prefs != nil && !n.Resolver.Loaded() {
		if _, _, saved := n.Prefs.LastCoordinates(); saved {
			if _, err := n.Resolver.Load(ctx); err != nil {
				logging.OrNoop(n.Log).Warn("climate grid unavailable", "err", err)
				return cleared(n.JSON, "override cleared, zone unavailable")
			}
			lat, lon, _ := n.Prefs.LastCoordinates()
			m, ok = n.Resolver.Resolve(lat, lon)
		}
	}
	if !ok {
		return cleared(n.JSON, "override cleared, no saved location to resolve")
	}
	return show(m, n.JSON)
}

func cleared(asJSON bool, msg string) error {
	if asJSON {
		return (&printers.PrettyPrint{}).JSON(map[string]any{"cleared": true})
	}
	fmt.Println(msg)
	return nil
}

func show(m climate.Match, asJSON bool) error {
	pp := printers.PrettyPrint{}
	if asJSON {
		return pp.JSON(m)
	}
	pp.Zone(m)
	return nil
}
