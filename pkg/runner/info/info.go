// Package info reports where data lives and checks the projection.
package info

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"tableflip.dev/gardencal/pkg/app"
	"tableflip.dev/gardencal/pkg/calendar"
	"tableflip.dev/gardencal/pkg/climate"
	"tableflip.dev/gardencal/pkg/journal"
	"tableflip.dev/gardencal/pkg/selection"
	"tableflip.dev/gardencal/pkg/store"
)

type Info struct {
	Config   *store.FileConfig
	Store    store.Store
	Service  *app.Service
	Tracker  *selection.Tracker
	Resolver *climate.Resolver
	Journal  *journal.Journal
	// Grid also loads the climate grid and reports its size.
	Grid bool
}

func (n *Info) Do(ctx context.Context) error {
	if override := os.Getenv("GARDENCAL_CONFIG_PATH"); override != "" {
		fmt.Println("GARDENCAL_CONFIG_PATH found on env, using ", override)
	} else {
		fmt.Println("GARDENCAL_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	fmt.Println("Config.driver: ", n.Config.Driver())
	fmt.Println("Config.path: ", n.Config.BasePath())
	fmt.Println("Config.namespace: ", n.Config.Namespace())
	fmt.Println("Config.grid: ", n.Config.Grid)
	if n.Config.Catalog != "" {
		fmt.Println("Config.catalog: ", n.Config.Catalog)
	}

	if n.Store == nil || n.Service == nil {
		return errors.New("failed to open the store")
	}

	fmt.Printf("Keys:\n")
	keys := n.Store.Keys(ctx)
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %s\n", k)
	}
	if len(keys) == 0 {
		fmt.Printf("  %s\n", "no keys")
	}

	snap := n.Service.List(ctx)
	fmt.Printf("Custom entries: %d plants, %d tasks\n", len(snap.Plants), len(snap.Tasks))
	if n.Tracker != nil {
		fmt.Printf("Selected items: %d\n", n.Tracker.Record().Count())
	}
	if n.Journal != nil {
		if u, err := n.Journal.Usage(); err == nil {
			fmt.Printf("Journal: %d entries, %d bytes (%d in images)\n", u.EntryCount, u.TotalSize, u.ImageSize)
		}
	}

	if n.Resolver != nil {
		if code, ok := n.Resolver.Override(); ok {
			fmt.Printf("Climate override: %s\n", code)
		}
		if n.Grid {
			g, err := n.Resolver.Load(ctx)
			if err != nil {
				fmt.Printf("Climate grid: %v\n", err)
			} else {
				fmt.Printf("Climate grid: %d cells\n", g.Len())
			}
		}
	}

	if err := calendar.Check(n.Service.Projection(), snap); err != nil {
		fmt.Printf("Projection: inconsistent\n%v\n", err)
		return errors.New("projection does not match the stored entries")
	}
	fmt.Printf("Projection: ok (%d periods)\n", len(n.Service.Periods()))
	return nil
}
