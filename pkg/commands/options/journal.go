package options

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/gardencal/pkg/journal"
)

// JournalOptions holds the fields of a journal entry.
type JournalOptions struct {
	Date     string
	Type     string
	Plants   []string
	Notes    string
	Location string
	Weight   string
	Quantity string
	Unit     string
	Quality  int
}

func AddJournalArgs(cmd *cobra.Command, o *JournalOptions) {
	cmd.Flags().StringVar(&o.Date, "date", "",
		"Day of the entry as YYYY-MM-DD; defaults to today.")
	cmd.Flags().StringVarP(&o.Type, "type", "t", "",
		"Entry type: planting, care, harvest, observation or maintenance.")
	cmd.Flags().StringSliceVarP(&o.Plants, "plant", "p", nil,
		"Plant the entry is about, repeatable or comma separated.")
	cmd.Flags().StringVarP(&o.Notes, "notes", "m", "",
		"Free text notes.")
	cmd.Flags().StringVarP(&o.Location, "location", "l", "",
		"Where in the garden, e.g. \"bed 3\".")
	cmd.Flags().StringVar(&o.Weight, "weight", "",
		"Harvest weight, e.g. 2kg.")
	cmd.Flags().StringVar(&o.Quantity, "quantity", "",
		"Harvest quantity.")
	cmd.Flags().StringVar(&o.Unit, "unit", "",
		"Unit of --quantity.")
	cmd.Flags().IntVar(&o.Quality, "quality", 0,
		"Harvest quality from 1 to 5.")
}

// metrics holds the harvest flags that were set on cmd.
func (o *JournalOptions) metrics(cmd *cobra.Command) map[string]any {
	m := map[string]any{}
	f := cmd.Flags()
	for name, v := range map[string]string{"weight": o.Weight, "quantity": o.Quantity, "unit": o.Unit} {
		if f.Changed(name) {
			m[name] = strings.TrimSpace(v)
		}
	}
	if f.Changed("quality") {
		m["quality"] = o.Quality
	}
	return m
}

// Input converts the flags into a new journal entry.
func (o *JournalOptions) Input(cmd *cobra.Command) journal.Input {
	return journal.Input{
		Date:     o.Date,
		Type:     o.Type,
		Plants:   o.Plants,
		Notes:    o.Notes,
		Location: o.Location,
		Metrics:  o.metrics(cmd),
	}
}

// Patch converts only the flags that were set on cmd.
func (o *JournalOptions) Patch(cmd *cobra.Command) journal.Patch {
	var p journal.Patch
	f := cmd.Flags()
	if f.Changed("date") {
		p.Date = &o.Date
	}
	if f.Changed("type") {
		p.Type = &o.Type
	}
	if f.Changed("plant") {
		p.Plants = append([]string{}, o.Plants...)
	}
	if f.Changed("notes") {
		p.Notes = &o.Notes
	}
	if f.Changed("location") {
		p.Location = &o.Location
	}
	p.Metrics = o.metrics(cmd)
	return p
}

// JournalFilterOptions narrows journal ls.
type JournalFilterOptions struct {
	Type   string
	Plant  string
	Search string
	From   string
	To     string
}

func AddJournalFilterArgs(cmd *cobra.Command, o *JournalFilterOptions) {
	cmd.Flags().StringVarP(&o.Type, "type", "t", "", "Only entries of this type.")
	cmd.Flags().StringVarP(&o.Plant, "plant", "p", "", "Only entries about this plant.")
	cmd.Flags().StringVarP(&o.Search, "search", "s", "", "Only entries whose notes, location or plants contain this text.")
	cmd.Flags().StringVar(&o.From, "from", "", "Earliest date, YYYY-MM-DD.")
	cmd.Flags().StringVar(&o.To, "to", "", "Latest date, YYYY-MM-DD.")
}
