package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/gardencal/pkg/calendar"
	"tableflip.dev/gardencal/pkg/climate"
	"tableflip.dev/gardencal/pkg/entry"
)

// Selected reports whether an item of a category is ticked.
type Selected func(category entry.Category, item calendar.DisplayItem) bool

// Period prints one period of the projection, category by category, with a
// check box per item. Empty catalog categories are skipped; the custom
// buckets are always shown.
func (pp *PrettyPrint) Period(name string, idx calendar.Index, selected Selected) {
	pp.Title(calendar.PeriodTitle(name))

	heading := color.New(color.Bold)
	custom := color.New(color.FgHiGreen)
	faint := color.New(color.Faint)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	for _, cat := range idx.Categories(name) {
		items := idx.Items(name, cat)
		if len(items) == 0 && cat != entry.CustomPlants && cat != entry.CustomTasks {
			continue
		}
		_, _ = heading.Fprintf(pp.out(), "%s %s\n", cat.Icon(), cat.Title())
		if len(items) == 0 {
			pp.None()
			continue
		}
		for _, it := range items {
			box := "[ ]"
			if selected != nil && selected(cat, it) {
				box = "[x]"
			}
			if pp.ShowID {
				id := it.CustomID
				_, _ = y.Fprint(pp.out(), id+strings.Repeat(" ", max(1, len(spacing)-len(id))))
			}
			label := it.Text(pp.Lang)
			if it.Custom {
				_, _ = fmt.Fprintf(pp.out(), "  %s ", box)
				_, _ = custom.Fprintln(pp.out(), label)
			} else {
				_, _ = fmt.Fprintf(pp.out(), "  %s %s\n", box, label)
			}
			if it.Description != "" {
				indent := "      "
				for _, line := range strings.Split(wordwrap.String(it.Description, DescriptionWidth), "\n") {
					_, _ = faint.Fprintln(pp.out(), indent+line)
				}
			}
		}
		pp.NewLine()
	}
}

// Zone prints a climate resolution.
func (pp *PrettyPrint) Zone(m climate.Match) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	_, _ = fmt.Fprint(pp.out(), "Climate zone: ")
	_, _ = bold.Fprint(pp.out(), m.Code)
	_, _ = faint.Fprintf(pp.out(), "  %s\n", m.Info)
}
