package commands

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/gardencal/pkg/entry"
	"tableflip.dev/gardencal/pkg/journal"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(gardencal completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(gardencal completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

func periodCompletions(toComplete string) []string {
	s, err := openSession(context.Background())
	if err != nil {
		return nil
	}
	defer s.Close()
	var ps []string
	for _, p := range s.app.Periods() {
		if strings.HasPrefix(p, toComplete) {
			ps = append(ps, p)
		}
	}
	return ps
}

func categoryCompletions(toComplete string) []string {
	var cs []string
	for _, c := range entry.DisplayOrder() {
		if strings.HasPrefix(string(c), toComplete) {
			cs = append(cs, string(c))
		}
	}
	return cs
}

func journalTypeCompletions(toComplete string) []string {
	var ts []string
	for _, t := range journal.Types() {
		if strings.HasPrefix(string(t), toComplete) {
			ts = append(ts, string(t))
		}
	}
	return ts
}

func registerPeriodCompletion(cmd *cobra.Command, flagName string) {
	_ = cmd.RegisterFlagCompletionFunc(flagName, func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return periodCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
	})
}
