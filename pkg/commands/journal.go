package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/gardencal/pkg/app"
	"tableflip.dev/gardencal/pkg/backup"
	"tableflip.dev/gardencal/pkg/commands/options"
	"tableflip.dev/gardencal/pkg/journal"
	jr "tableflip.dev/gardencal/pkg/runner/journal"
)

func addJournal(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "journal",
		Aliases: []string{"j", "log"},
		Short:   "Keep a garden journal of plantings, care and harvests",
		Example: `
gardencal journal add --type planting --plant potato "first row in bed 2"
gardencal journal add --type harvest --plant tomato --quantity 12 --unit pcs --quality 4
gardencal journal ls --type harvest --from 2025-07-01
gardencal journal export --no-images
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addJournalAdd(cmd)
	addJournalEdit(cmd)
	addJournalRemove(cmd)
	addJournalList(cmd)
	addJournalGet(cmd)
	addJournalExport(cmd)
	addJournalImport(cmd)
	addJournalUsage(cmd)
	topLevel.AddCommand(cmd)
}

func registerJournalTypeCompletion(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("type", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return journalTypeCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
	})
}

func addJournalAdd(parent *cobra.Command) {
	jo := &options.JournalOptions{}

	cmd := &cobra.Command{
		Use:   "add [notes...]",
		Short: "Add a journal entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 && !cmd.Flags().Changed("notes") {
				jo.Notes = strings.Join(args, " ")
			}
			in := jo.Input(cmd)
			return withSession(cmd, func(ctx context.Context, s *session) error {
				r := jr.Add{
					Input:   in,
					JSON:    output.JSON,
					Journal: s.journal,
				}
				return r.Do(ctx)
			})
		},
	}

	options.AddJournalArgs(cmd, jo)
	registerJournalTypeCompletion(cmd)
	parent.AddCommand(cmd)
}

func addJournalEdit(parent *cobra.Command) {
	jo := &options.JournalOptions{}

	cmd := &cobra.Command{
		Use:     "edit ID",
		Aliases: []string{"update"},
		Short:   "Change fields of a journal entry; unset flags are kept",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := jo.Patch(cmd)
			return withSession(cmd, func(ctx context.Context, s *session) error {
				r := jr.Edit{
					ID:      args[0],
					Patch:   patch,
					JSON:    output.JSON,
					Journal: s.journal,
				}
				return r.Do(ctx)
			})
		},
	}

	options.AddJournalArgs(cmd, jo)
	registerJournalTypeCompletion(cmd)
	parent.AddCommand(cmd)
}

func addJournalRemove(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "rm ID...",
		Aliases: []string{"delete", "remove"},
		Short:   "Delete journal entries",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				r := jr.Remove{
					IDs:     args,
					JSON:    output.JSON,
					Journal: s.journal,
				}
				return r.Do(ctx)
			})
		},
	}

	parent.AddCommand(cmd)
}

func addJournalList(parent *cobra.Command) {
	io := &options.IDOptions{}
	fo := &options.JournalFilterOptions{}

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List journal entries, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := journalFilter(fo)
			if err != nil {
				return output.HandleError(err)
			}
			return withSession(cmd, func(ctx context.Context, s *session) error {
				r := jr.List{
					Filter:  filter,
					ShowID:  io.ShowID,
					JSON:    output.JSON,
					Journal: s.journal,
				}
				return r.Do(ctx)
			})
		},
	}

	options.AddJournalFilterArgs(cmd, fo)
	options.AddShowIDArgs(cmd, io)
	registerJournalTypeCompletion(cmd)
	parent.AddCommand(cmd)
}

func journalFilter(fo *options.JournalFilterOptions) (journal.Filter, error) {
	f := journal.Filter{Plant: fo.Plant, Search: fo.Search, From: fo.From, To: fo.To}
	if fo.Type != "" {
		t, err := journal.ParseType(fo.Type)
		if err != nil {
			return f, err
		}
		f.Type = t
	}
	for _, d := range []string{fo.From, fo.To} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(journal.DateLayout, d); err != nil {
			return f, fmt.Errorf("%q is not a YYYY-MM-DD date", d)
		}
	}
	return f, nil
}

func addJournalGet(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "get ID...",
		Short: "Show journal entries in full",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				r := jr.Get{
					IDs:     args,
					JSON:    output.JSON,
					Journal: s.journal,
				}
				return r.Do(ctx)
			})
		},
	}

	parent.AddCommand(cmd)
}

func addJournalExport(parent *cobra.Command) {
	to := &options.TransferOptions{}
	noImages := false

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the journal as a JSON array",
		Long: options.Wrap80(`Without --out the export is written to the current directory as
garden_journal_<date>_with_images.json, or _no_images.json with --no-images.`),
		Example: `
gardencal journal export
gardencal journal export --no-images --out -
gardencal journal export --out s3://my-bucket/gardencal/journal.json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				uri := to.Target
				if uri == "" {
					uri = journal.ExportName(time.Now(), !noImages)
				}
				target, err := backup.Open(ctx, uri, s.cfg.S3)
				if err != nil {
					return err
				}
				r := jr.Export{
					Target:        target,
					IncludeImages: !noImages,
					Journal:       s.journal,
				}
				return r.Do(ctx)
			})
		},
	}

	cmd.Flags().StringVarP(&to.Target, "out", "o", "",
		"Where to write the export: a file, s3://bucket/key or - for stdout.")
	cmd.Flags().BoolVar(&noImages, "no-images", false, "Leave photos out of the export.")
	parent.AddCommand(cmd)
}

func addJournalImport(parent *cobra.Command) {
	to := &options.TransferOptions{}

	cmd := &cobra.Command{
		Use:   "import SOURCE",
		Short: "Read a journal exported by gardencal or the browser calendar",
		Long: options.Wrap80(`Import merges by default: entries with a known id are overwritten and
the rest are added. With --replace the stored journal is dropped first.
SOURCE is a file, s3://bucket/key or - for stdin.`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := app.ParseImportMode(to.Mode)
			if err != nil {
				return output.HandleError(err)
			}
			replace := to.Replace || mode == app.ImportReplace
			return withSession(cmd, func(ctx context.Context, s *session) error {
				source, err := backup.Open(ctx, args[0], s.cfg.S3)
				if err != nil {
					return err
				}
				r := jr.Import{
					Source:  source,
					Replace: replace,
					JSON:    output.JSON,
					Journal: s.journal,
				}
				return r.Do(ctx)
			})
		},
	}

	options.AddImportArgs(cmd, to)
	parent.AddCommand(cmd)
}

func addJournalUsage(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "usage",
		Aliases: []string{"stats"},
		Short:   "Show how much space the journal and its photos take",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				r := jr.Usage{
					JSON:    output.JSON,
					Journal: s.journal,
				}
				return r.Do(ctx)
			})
		},
	}

	parent.AddCommand(cmd)
}
