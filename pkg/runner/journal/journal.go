// Package journal runs the garden journal commands.
package journal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"tableflip.dev/gardencal/pkg/backup"
	"tableflip.dev/gardencal/pkg/entry"
	"tableflip.dev/gardencal/pkg/journal"
	"tableflip.dev/gardencal/pkg/printers"
)

var errNoJournal = errors.New("can not run, no journal")

type Add struct {
	Input   journal.Input
	JSON    bool
	Journal *journal.Journal
	Out     io.Writer
}

func (n *Add) Do(ctx context.Context) error {
	if n.Journal == nil {
		return errNoJournal
	}
	e, err := n.Journal.Add(ctx, n.Input)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: n.Out}
	if n.JSON {
		return pp.JSON(e)
	}
	pp.JournalEntry("added", e)
	return nil
}

type Edit struct {
	ID      string
	Patch   journal.Patch
	JSON    bool
	Journal *journal.Journal
	Out     io.Writer
}

func (n *Edit) Do(ctx context.Context) error {
	if n.Journal == nil {
		return errNoJournal
	}
	e, err := n.Journal.Update(ctx, n.ID, n.Patch)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: n.Out}
	if n.JSON {
		return pp.JSON(e)
	}
	pp.JournalEntry("updated", e)
	return nil
}

type Remove struct {
	IDs     []string
	JSON    bool
	Journal *journal.Journal
	Out     io.Writer
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Journal == nil {
		return errNoJournal
	}
	removed := make([]string, 0, len(n.IDs))
	var errs []error
	for _, id := range n.IDs {
		found, err := n.Journal.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !found {
			errs = append(errs, fmt.Errorf("journal entry %q: %w", id, entry.ErrNotFound))
			continue
		}
		removed = append(removed, id)
	}
	pp := printers.PrettyPrint{Out: n.Out}
	if n.JSON {
		if err := pp.JSON(map[string][]string{"removed": removed}); err != nil {
			return err
		}
	} else {
		for _, id := range removed {
			_, _ = fmt.Fprintf(out(n.Out), "removed journal entry %s\n", id)
		}
	}
	return errors.Join(errs...)
}

type List struct {
	Filter  journal.Filter
	ShowID  bool
	JSON    bool
	Journal *journal.Journal
	Out     io.Writer
}

func (n *List) Do(ctx context.Context) error {
	if n.Journal == nil {
		return errNoJournal
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	entries := n.Journal.List(n.Filter)
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	if n.JSON {
		return pp.JSON(entries)
	}
	pp.TitleWithCount("Journal", len(entries))
	pp.JournalEntries(entries...)
	return nil
}

type Get struct {
	IDs     []string
	JSON    bool
	Journal *journal.Journal
	Out     io.Writer
}

func (n *Get) Do(ctx context.Context) error {
	if n.Journal == nil {
		return errNoJournal
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	found := make([]*journal.Entry, 0, len(n.IDs))
	var errs []error
	for _, id := range n.IDs {
		e, err := n.Journal.Get(id)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		found = append(found, e)
	}
	pp := printers.PrettyPrint{Out: n.Out}
	if n.JSON {
		if err := pp.JSON(found); err != nil {
			return err
		}
	} else {
		for _, e := range found {
			pp.JournalDetail(e)
		}
	}
	return errors.Join(errs...)
}

type Export struct {
	Target        backup.Target
	IncludeImages bool
	Journal       *journal.Journal
}

func (n *Export) Do(ctx context.Context) error {
	if n.Journal == nil || n.Target == nil {
		return errors.New("can not export, no journal or target")
	}
	data, err := n.Journal.Export(ctx, n.IncludeImages)
	if err != nil {
		return err
	}
	if err := n.Target.Write(ctx, data); err != nil {
		return fmt.Errorf("writing %s: %w", n.Target, err)
	}
	return nil
}

type Import struct {
	Source  backup.Target
	Replace bool
	JSON    bool
	Journal *journal.Journal
	Out     io.Writer
}

func (n *Import) Do(ctx context.Context) error {
	if n.Journal == nil || n.Source == nil {
		return errors.New("can not import, no journal or source")
	}
	data, err := n.Source.Read(ctx)
	if err != nil {
		return fmt.Errorf("reading %s: %w", n.Source, err)
	}
	res, err := n.Journal.Import(ctx, data, n.Replace)
	if err != nil {
		return err
	}
	if n.JSON {
		return (&printers.PrettyPrint{Out: n.Out}).JSON(res)
	}
	verb := "merged"
	if n.Replace {
		verb = "replaced"
	}
	_, _ = fmt.Fprintf(out(n.Out), "%s journal from %s: %d new, %d updated, %d entries stored\n",
		verb, n.Source, res.Inserted, res.Updated, res.Total)
	return nil
}

// Usage prints how much space the journal takes.
type Usage struct {
	JSON    bool
	Journal *journal.Journal
	Out     io.Writer
}

func (n *Usage) Do(ctx context.Context) error {
	if n.Journal == nil {
		return errNoJournal
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	u, err := n.Journal.Usage()
	if err != nil {
		return err
	}
	if n.JSON {
		return (&printers.PrettyPrint{Out: n.Out}).JSON(u)
	}
	_, _ = fmt.Fprintf(out(n.Out), "%d entries, %s total (%s text, %s images)\n",
		u.EntryCount, kb(u.TotalSize), kb(u.TextSize), kb(u.ImageSize))
	return nil
}

func kb(n int) string {
	return fmt.Sprintf("%.1f KB", float64(n)/1024)
}

func out(w io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return os.Stdout
}
