// Package calendar prints the calendar projection with selection marks.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/gardencal/pkg/app"
	cal "tableflip.dev/gardencal/pkg/calendar"
	"tableflip.dev/gardencal/pkg/entry"
	"tableflip.dev/gardencal/pkg/printers"
	"tableflip.dev/gardencal/pkg/selection"
)

type Calendar struct {
	// Period limits output to one period; empty prints all of them.
	Period string
	// Search keeps only items whose label in any language contains it.
	Search string

	Lang    string
	ShowID  bool
	JSON    bool
	Service *app.Service
	Tracker *selection.Tracker
	Out     io.Writer
}

func (n *Calendar) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not print calendar, no service")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	idx := n.Service.Projection()
	if n.Search != "" {
		idx = idx.Filter(n.Search, n.Lang)
	}
	periods := n.Service.Periods()
	if n.Period != "" {
		if _, ok := idx[n.Period]; !ok {
			return fmt.Errorf("unknown period %q", n.Period)
		}
		periods = []string{n.Period}
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Lang: n.Lang, Out: n.Out}
	if n.JSON {
		out := make(cal.Index, len(periods))
		for _, p := range periods {
			out[p] = idx[p]
		}
		return pp.JSON(out)
	}

	pp.NewLine()
	for _, p := range periods {
		pp.Period(p, idx, n.selected(p))
	}
	return nil
}

func (n *Calendar) selected(period string) printers.Selected {
	if n.Tracker == nil {
		return nil
	}
	return func(category entry.Category, item cal.DisplayItem) bool {
		return n.Tracker.IsSelected(period, category, selection.FromDisplay(item))
	}
}
