// Package key provides CLI helpers to display the category legend.
package key

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/gardencal/pkg/calendar"
	"tableflip.dev/gardencal/pkg/entry"
)

// Key prints the category icons and the known periods.
type Key struct {
	Periods []string
}

// Do renders the category and period keys to stdout.
func (k *Key) Do(ctx context.Context) error {
	_, _ = fmt.Fprintln(color.Output, "")
	k.Categories(ctx, entry.DisplayOrder())
	_, _ = fmt.Fprintln(color.Output, "")
	if len(k.Periods) > 0 {
		k.PeriodKey(ctx, k.Periods)
		_, _ = fmt.Fprintln(color.Output, "")
	}
	return nil
}

// Categories renders the category table.
func (k *Key) Categories(_ context.Context, cats []entry.Category) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Icon"), bold.Sprint("Category"), bold.Sprint("Key"), bold.Sprint("Holds"))
	for _, c := range cats {
		holds := "catalog and custom plants"
		switch {
		case c == entry.CustomPlants:
			holds = "custom plants without a category"
		case c == entry.CustomTasks:
			holds = "custom tasks"
		case !c.IsPlantCategory():
			holds = "catalog items"
		}
		tbl.AddRow(c.Icon(), c.Title(), string(c), holds)
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(color.Output, tbl)
}

// PeriodKey renders the period names accepted by --period.
func (k *Key) PeriodKey(_ context.Context, periods []string) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Period"), bold.Sprint("Key"))
	for _, p := range periods {
		tbl.AddRow(calendar.PeriodTitle(p), p)
	}

	_, _ = fmt.Fprintln(color.Output, tbl)
}
