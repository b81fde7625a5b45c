package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/gardencal/pkg/entry"
)

// EntryOptions holds the fields of a custom plant or task.
type EntryOptions struct {
	Name        string
	Description string
	Category    string
	Periods     []string
}

func AddEntryArgs(cmd *cobra.Command, o *EntryOptions, kind entry.Kind) {
	cmd.Flags().StringVarP(&o.Name, "name", "n", "",
		"Name shown in the calendar.")
	cmd.Flags().StringVarP(&o.Description, "description", "d", "",
		"Optional note shown under the name.")
	cmd.Flags().StringSliceVarP(&o.Periods, "period", "p", nil,
		"Period the entry belongs to, repeatable (april, may, early_june).")
	if kind == entry.KindPlant {
		cmd.Flags().StringVarP(&o.Category, "category", "c", "",
			"Plant category: direct_sowing, seedling_start, transplanting, greenhouse or custom_plants.")
	} else {
		cmd.Flags().StringVarP(&o.Category, "category", "c", "",
			"Free-form task category. Tasks always show under custom tasks.")
	}
}

// Input converts the flags into a new entry.
func (o *EntryOptions) Input() entry.Input {
	return entry.Input{
		Name:        o.Name,
		Description: o.Description,
		Category:    o.Category,
		Periods:     o.Periods,
	}
}

// Patch converts only the flags that were set on cmd.
func (o *EntryOptions) Patch(cmd *cobra.Command) entry.Patch {
	var p entry.Patch
	f := cmd.Flags()
	if f.Changed("name") {
		p.Name = &o.Name
	}
	if f.Changed("description") {
		p.Description = &o.Description
	}
	if f.Changed("category") {
		p.Category = &o.Category
	}
	if f.Changed("period") {
		p.Periods = append([]string{}, o.Periods...)
	}
	return p
}
