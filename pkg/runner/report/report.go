// Package report lists recently added or edited custom entries.
package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/gardencal/pkg/app"
	"tableflip.dev/gardencal/pkg/calendar"
	"tableflip.dev/gardencal/pkg/printers"
)

type Report struct {
	Since   time.Time
	Until   time.Time
	Label   string
	ShowID  bool
	JSON    bool
	Service *app.Service
}

func (n *Report) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not report, no service")
	}
	result, err := n.Service.Report(ctx, n.Since, n.Until)
	if err != nil {
		return err
	}
	if n.JSON {
		return (&printers.PrettyPrint{}).JSON(result)
	}

	since := result.Since.Local().Format("2006-01-02 15:04")
	until := result.Until.Local().Format("2006-01-02 15:04")
	fmt.Printf("Report · last %s (%s → %s)\n", n.Label, since, until)

	if result.Total == 0 {
		fmt.Println("  No entries changed in this window.")
		fmt.Println()
		return nil
	}

	faint := color.New(color.Faint)
	for _, section := range result.Sections {
		fmt.Printf("\n%s\n", calendar.PeriodTitle(section.Period))
		for _, item := range section.Entries {
			verb := "edited"
			if item.New {
				verb = "added"
			}
			line := fmt.Sprintf("  %s %s", item.Category.Icon(), item.Entry.Name)
			if n.ShowID {
				line += " " + faint.Sprint(item.Entry.ID)
			}
			fmt.Print(line)
			_, _ = faint.Printf("  (%s %s)\n", verb, item.ChangedAt.Local().Format("2006-01-02 15:04"))
		}
	}
	fmt.Println()
	return nil
}
