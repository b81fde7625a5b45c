// Package entries runs the custom plant and task commands.
package entries

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/gardencal/pkg/app"
	"tableflip.dev/gardencal/pkg/entry"
	"tableflip.dev/gardencal/pkg/printers"
)

type Add struct {
	Kind    entry.Kind
	Input   entry.Input
	JSON    bool
	Service *app.Service
}

func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not add, no service")
	}
	e, err := n.Service.Add(ctx, n.Kind, n.Input)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{}
	if n.JSON {
		return pp.JSON(e)
	}
	pp.Entry("added", e)
	return nil
}

type Edit struct {
	Kind    entry.Kind
	ID      string
	Patch   entry.Patch
	JSON    bool
	Service *app.Service
}

func (n *Edit) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not edit, no service")
	}
	e, err := n.Service.Update(ctx, n.Kind, n.ID, n.Patch)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{}
	if n.JSON {
		return pp.JSON(e)
	}
	pp.Entry("updated", e)
	return nil
}

type Remove struct {
	Kind    entry.Kind
	IDs     []string
	JSON    bool
	Service *app.Service
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not remove, no service")
	}
	removed := make([]string, 0, len(n.IDs))
	var errs []error
	for _, id := range n.IDs {
		found, err := n.Service.Delete(ctx, n.Kind, id)
		if err != nil {
			return err
		}
		if !found {
			errs = append(errs, fmt.Errorf("%s %q: %w", n.Kind, id, entry.ErrNotFound))
			continue
		}
		removed = append(removed, id)
	}
	pp := printers.PrettyPrint{}
	if n.JSON {
		if err := pp.JSON(map[string][]string{"removed": removed}); err != nil {
			return err
		}
	} else {
		for _, id := range removed {
			fmt.Printf("removed %s %s\n", n.Kind, id)
		}
	}
	return errors.Join(errs...)
}

// List prints custom entries, optionally limited to one kind and period.
type List struct {
	Kind    entry.Kind
	Period  string
	ShowID  bool
	JSON    bool
	Service *app.Service
}

func (n *List) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not list, no service")
	}
	snap := n.Service.List(ctx)
	snap.Plants = n.filtered(snap.Plants)
	snap.Tasks = n.filtered(snap.Tasks)
	if n.Kind == entry.KindPlant {
		snap.Tasks = []*entry.Entry{}
	}
	if n.Kind == entry.KindTask {
		snap.Plants = []*entry.Entry{}
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	if n.JSON {
		return pp.JSON(snap)
	}
	pp.NewLine()
	if n.Kind != entry.KindTask {
		pp.TitleWithCount("Custom plants", len(snap.Plants))
		pp.Entries(snap.Plants...)
	}
	if n.Kind != entry.KindPlant {
		pp.TitleWithCount("Custom tasks", len(snap.Tasks))
		pp.Entries(snap.Tasks...)
	}
	return nil
}

func (n *List) filtered(all []*entry.Entry) []*entry.Entry {
	if n.Period == "" {
		return all
	}
	c := make([]*entry.Entry, 0, len(all))
	for _, e := range all {
		if e.InPeriod(n.Period) {
			c = append(c, e)
		}
	}
	return c
}

// Get prints one entry looked up by id among plants and tasks.
type Get struct {
	ID      string
	JSON    bool
	Service *app.Service
}

func (n *Get) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not get, no service")
	}
	e, err := n.Service.Find(ctx, n.ID)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: true}
	if n.JSON {
		return pp.JSON(e)
	}
	pp.NewLine()
	pp.Entries(e)
	return nil
}
