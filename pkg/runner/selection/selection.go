// Package selection toggles calendar items on and off.
package selection

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/gardencal/pkg/app"
	"tableflip.dev/gardencal/pkg/entry"
	"tableflip.dev/gardencal/pkg/printers"
	sel "tableflip.dev/gardencal/pkg/selection"
)

type Select struct {
	Period   string
	Category entry.Category
	// Labels are matched against the projection in the base language or in
	// Lang. Unmatched labels are stored as bare objects.
	Labels []string
	// Value stores the labels as primitive values instead of objects.
	Value bool
	// All toggles every item of the bucket and ignores Labels.
	All     bool
	Off     bool
	Lang    string
	JSON    bool
	Service *app.Service
	Tracker *sel.Tracker
}

func (n *Select) Do(ctx context.Context) error {
	if n.Tracker == nil {
		return errors.New("can not select, no tracker")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	items, err := n.items()
	if err != nil {
		return err
	}
	if err := n.Tracker.ToggleAll(n.Period, n.Category, items, !n.Off); err != nil {
		return err
	}

	selected := n.Tracker.Selected(n.Period, n.Category)
	pp := printers.PrettyPrint{}
	if n.JSON {
		return pp.JSON(map[string]any{
			"period":   n.Period,
			"category": n.Category,
			"selected": selected,
		})
	}
	verb := "selected"
	if n.Off {
		verb = "cleared"
	}
	for _, it := range items {
		fmt.Printf("%s %s in %s / %s\n", verb, it, n.Period, n.Category.Title())
	}
	fmt.Printf("%d selected in %s / %s\n", len(selected), n.Period, n.Category.Title())
	return nil
}

func (n *Select) items() ([]sel.Item, error) {
	var bucket []sel.Item
	if n.Service != nil {
		for _, d := range n.Service.Items(n.Period, n.Category) {
			bucket = append(bucket, sel.FromDisplay(d))
		}
	}
	if n.All {
		if len(bucket) == 0 {
			return nil, fmt.Errorf("nothing to select in %s / %s", n.Period, n.Category)
		}
		return bucket, nil
	}
	if len(n.Labels) == 0 {
		return nil, errors.New("no labels given")
	}

	out := make([]sel.Item, 0, len(n.Labels))
	for _, label := range n.Labels {
		if n.Value {
			out = append(out, sel.Value(label))
			continue
		}
		out = append(out, n.match(bucket, label))
	}
	return out, nil
}

func (n *Select) match(bucket []sel.Item, label string) sel.Item {
	for _, it := range bucket {
		if it.Label == label {
			return it
		}
		if n.Lang != "" && it.Alt[n.Lang] == label {
			return it
		}
	}
	return sel.Object(label, nil)
}
