package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	goversion "go.hein.dev/go-version"
)

// Set with -ldflags "-X tableflip.dev/gardencal/pkg/commands.version=..."
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func addVersion(topLevel *cobra.Command) {
	shortened := false
	format := "yaml"
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Get gardencal version.",
		Example: `
gardencal version
gardencal version --json
`,
		Args: cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			if output.JSON {
				format = "json"
			}
			resp := goversion.FuncWithOutput(shortened, version, commit, date, format)
			fmt.Print(resp)
		},
	}

	cmd.Flags().BoolVarP(&shortened, "short", "s", false, "Print just the version number.")
	cmd.Flags().StringVarP(&format, "output", "o", "yaml", "Output format. One of 'yaml' or 'json'.")

	topLevel.AddCommand(cmd)
}
