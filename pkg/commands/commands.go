package commands

import (
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/gardencal/pkg/commands/options"
	"tableflip.dev/gardencal/pkg/printers"
)

var (
	output    = &options.OutputOptions{}
	ephemeral bool
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "gardencal",
		Short: options.Wrap80("A seasonal gardening calendar with custom plants, tasks and climate zones."),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			printers.Configure(os.Stdout)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	options.AddOutputArg(cmd, output)
	cmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false,
		"Use an in-memory store that is discarded on exit.")

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addCalendar(topLevel)
	addPlant(topLevel)
	addTask(topLevel)
	addList(topLevel)
	addGet(topLevel)
	addSelect(topLevel)
	addJournal(topLevel)
	addZone(topLevel)
	addPrefs(topLevel)
	addExport(topLevel)
	addImport(topLevel)
	addReport(topLevel)
	addWatch(topLevel)
	addKey(topLevel)
	addInfo(topLevel)
	addCompletions(topLevel)
	addUpgrade(topLevel)
	addVersion(topLevel)
}
