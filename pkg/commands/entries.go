package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/gardencal/pkg/commands/options"
	"tableflip.dev/gardencal/pkg/entry"
	"tableflip.dev/gardencal/pkg/runner/entries"
)

func addPlant(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "plant",
		Aliases: []string{"plants"},
		Short:   "Manage custom plants",
		Example: `
gardencal plant add --name "Purple kale" --category greenhouse --period april --period may
gardencal plant edit plant-0192f1a2-... --period may
gardencal plant rm plant-0192f1a2-...
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addEntryCommands(cmd, entry.KindPlant)
	topLevel.AddCommand(cmd)
}

func addTask(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks"},
		Short:   "Manage custom tasks",
		Example: `
gardencal task add --name "Turn the compost" --period may
gardencal task rm task-0192f1a2-...
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addEntryCommands(cmd, entry.KindTask)
	topLevel.AddCommand(cmd)
}

func addEntryCommands(parent *cobra.Command, kind entry.Kind) {
	addEntryAdd(parent, kind)
	addEntryEdit(parent, kind)
	addEntryRemove(parent, kind)
	addEntryList(parent, kind)
}

func addEntryAdd(parent *cobra.Command, kind entry.Kind) {
	eo := &options.EntryOptions{}

	cmd := &cobra.Command{
		Use:   "add [name...]",
		Short: fmt.Sprintf("Add a custom %s", kind),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 && !cmd.Flags().Changed("name") {
				eo.Name = strings.Join(args, " ")
			}
			return withSession(cmd, func(ctx context.Context, s *session) error {
				r := entries.Add{
					Kind:    kind,
					Input:   eo.Input(),
					JSON:    output.JSON,
					Service: s.app,
				}
				return r.Do(ctx)
			})
		},
	}

	options.AddEntryArgs(cmd, eo, kind)
	registerPeriodCompletion(cmd, "period")
	if kind == entry.KindPlant {
		_ = cmd.RegisterFlagCompletionFunc("category", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return categoryCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
		})
	}
	parent.AddCommand(cmd)
}

func addEntryEdit(parent *cobra.Command, kind entry.Kind) {
	eo := &options.EntryOptions{}

	cmd := &cobra.Command{
		Use:     "edit ID",
		Aliases: []string{"update"},
		Short:   fmt.Sprintf("Change fields of a custom %s; unset flags are kept", kind),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := eo.Patch(cmd)
			return withSession(cmd, func(ctx context.Context, s *session) error {
				r := entries.Edit{
					Kind:    kind,
					ID:      args[0],
					Patch:   patch,
					JSON:    output.JSON,
					Service: s.app,
				}
				return r.Do(ctx)
			})
		},
	}

	options.AddEntryArgs(cmd, eo, kind)
	registerPeriodCompletion(cmd, "period")
	parent.AddCommand(cmd)
}

func addEntryRemove(parent *cobra.Command, kind entry.Kind) {
	cmd := &cobra.Command{
		Use:     "rm ID...",
		Aliases: []string{"delete", "remove"},
		Short:   fmt.Sprintf("Delete custom %ss", kind),
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				r := entries.Remove{
					Kind:    kind,
					IDs:     args,
					JSON:    output.JSON,
					Service: s.app,
				}
				return r.Do(ctx)
			})
		},
	}

	parent.AddCommand(cmd)
}

func addEntryList(parent *cobra.Command, kind entry.Kind) {
	io := &options.IDOptions{}
	period := ""

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   fmt.Sprintf("List custom %ss", kind),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				r := entries.List{
					Kind:    kind,
					Period:  period,
					ShowID:  io.ShowID,
					JSON:    output.JSON,
					Service: s.app,
				}
				return r.Do(ctx)
			})
		},
	}

	cmd.Flags().StringVarP(&period, "period", "p", "", "Only list entries in this period.")
	registerPeriodCompletion(cmd, "period")
	options.AddShowIDArgs(cmd, io)
	parent.AddCommand(cmd)
}

func addList(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	period := ""

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every custom plant and task",
		Example: `
gardencal list
gardencal list --period may -k
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				r := entries.List{
					Period:  period,
					ShowID:  io.ShowID,
					JSON:    output.JSON,
					Service: s.app,
				}
				return r.Do(ctx)
			})
		},
	}

	cmd.Flags().StringVarP(&period, "period", "p", "", "Only list entries in this period.")
	registerPeriodCompletion(cmd, "period")
	options.AddShowIDArgs(cmd, io)
	topLevel.AddCommand(cmd)
}

func addGet(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "get ID",
		Short: "Show one custom plant or task",
		Example: `
gardencal get plant-0192f1a2-...
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				r := entries.Get{
					ID:      args[0],
					JSON:    output.JSON,
					Service: s.app,
				}
				return r.Do(ctx)
			})
		},
	}

	topLevel.AddCommand(cmd)
}
