package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/mattn/go-isatty"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/gardencal/pkg/entry"
)

// DescriptionWidth is the column descriptions are wrapped at.
const DescriptionWidth = 48

type PrettyPrint struct {
	ShowID bool
	// Lang picks the catalog label language; empty means the base language.
	Lang string
	Out  io.Writer
}

var (
	spacing = strings.Repeat(" ", len("plant-0192f1a2  "))
)

// Configure turns color off unless f is a terminal.
func Configure(f *os.File) {
	fd := f.Fd()
	color.NoColor = !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " entry")
	default:
		_, _ = c.Fprintln(pp.out(), " entries")
	}
}

// None prints the placeholder for an empty list.
func (pp *PrettyPrint) None() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

// Entries prints custom entries as a table.
func (pp *PrettyPrint) Entries(entries ...*entry.Entry) {
	if len(entries) == 0 {
		pp.None()
		return
	}
	bold := color.New(color.Bold)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	header := []interface{}{bold.Sprint("Name"), bold.Sprint("Category"), bold.Sprint("Periods"), bold.Sprint("Description")}
	if pp.ShowID {
		header = append([]interface{}{bold.Sprint("ID")}, header...)
	}
	tbl.AddRow(header...)
	for _, e := range entries {
		cat := e.EffectiveCategory()
		row := []interface{}{
			e.Name,
			cat.Icon() + " " + cat.Title(),
			strings.Join(e.Periods, ", "),
			wordwrap.String(e.Description, DescriptionWidth),
		}
		if pp.ShowID {
			row = append([]interface{}{y.Sprint(e.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Entry prints one entry after a mutation.
func (pp *PrettyPrint) Entry(verb string, e *entry.Entry) {
	f := color.New(color.Faint)
	_, _ = f.Fprintf(pp.out(), "%s %s ", verb, e.Kind)
	_, _ = fmt.Fprintf(pp.out(), "%s", e.Name)
	_, _ = f.Fprintf(pp.out(), " (%s)\n", e.ID)
}

// JSON writes v as indented JSON.
func (pp *PrettyPrint) JSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(pp.out(), string(b))
	return err
}
