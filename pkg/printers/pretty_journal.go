package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/gardencal/pkg/journal"
)

// JournalEntries prints journal entries as a table, one row per entry.
func (pp *PrettyPrint) JournalEntries(entries ...*journal.Entry) {
	if len(entries) == 0 {
		pp.None()
		return
	}
	bold := color.New(color.Bold)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	header := []interface{}{bold.Sprint("Date"), bold.Sprint("Type"), bold.Sprint("Plants"), bold.Sprint("Notes")}
	if pp.ShowID {
		header = append([]interface{}{bold.Sprint("ID")}, header...)
	}
	tbl.AddRow(header...)
	for _, e := range entries {
		row := []interface{}{
			e.Date,
			e.Type.Icon() + " " + e.Type.Title(),
			strings.Join(e.Plants, ", "),
			wordwrap.String(e.Notes, DescriptionWidth),
		}
		if pp.ShowID {
			row = append([]interface{}{y.Sprint(e.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// JournalEntry prints one journal entry after a mutation.
func (pp *PrettyPrint) JournalEntry(verb string, e *journal.Entry) {
	f := color.New(color.Faint)
	_, _ = f.Fprintf(pp.out(), "%s journal entry ", verb)
	_, _ = fmt.Fprintf(pp.out(), "%s %s", e.Date, e.Type.Title())
	_, _ = f.Fprintf(pp.out(), " (%s)\n", e.ID)
}

// JournalDetail prints every field of a journal entry.
func (pp *PrettyPrint) JournalDetail(e *journal.Entry) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	field := func(name, value string) {
		if value == "" {
			return
		}
		_, _ = faint.Fprintf(pp.out(), "%-10s", name)
		_, _ = fmt.Fprintln(pp.out(), value)
	}

	_, _ = bold.Fprintf(pp.out(), "%s %s  %s\n", e.Type.Icon(), e.Type.Title(), e.Date)
	field("id", e.ID)
	field("plants", strings.Join(e.Plants, ", "))
	field("location", e.Location)
	if e.Type == journal.Harvest {
		field("weight", e.Metric("weight"))
		if q := e.Metric("quantity"); q != "" {
			field("quantity", strings.TrimSpace(q+" "+e.Metric("unit")))
		}
		if q := qualityStars(e.Metric("quality")); q != "" {
			field("quality", q)
		}
	}
	if e.Weather != nil {
		icon, text := e.Weather.Describe()
		field("weather", fmt.Sprintf("%s %s, %.1f°C, %.1f mm", icon, text, e.Weather.Temperature, e.Weather.Precipitation))
	}
	if len(e.Images) > 0 {
		field("images", fmt.Sprint(len(e.Images)))
	}
	if e.Notes != "" {
		pp.NewLine()
		for _, line := range strings.Split(wordwrap.String(e.Notes, DescriptionWidth+20), "\n") {
			_, _ = fmt.Fprintln(pp.out(), "  "+line)
		}
	}
	pp.NewLine()
}

func qualityStars(raw string) string {
	var n int
	if _, err := fmt.Sscanf(raw, "%d", &n); err != nil || n <= 0 {
		return ""
	}
	n = min(n, 5)
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}
