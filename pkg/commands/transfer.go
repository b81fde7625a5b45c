package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/gardencal/pkg/app"
	"tableflip.dev/gardencal/pkg/backup"
	"tableflip.dev/gardencal/pkg/commands/options"
	"tableflip.dev/gardencal/pkg/runner/transfer"
)

func addExport(topLevel *cobra.Command) {
	to := &options.TransferOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write custom plants and tasks as JSON",
		Example: `
gardencal export > garden.json
gardencal export --out ~/backups/garden.json
gardencal export --out s3://my-bucket/gardencal/garden.json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				target, err := backup.Open(ctx, to.Target, s.cfg.S3)
				if err != nil {
					return err
				}
				r := transfer.Export{
					Target:  target,
					Service: s.app,
				}
				return r.Do(ctx)
			})
		},
	}

	options.AddExportArgs(cmd, to)
	topLevel.AddCommand(cmd)
}

func addImport(topLevel *cobra.Command) {
	to := &options.TransferOptions{}

	cmd := &cobra.Command{
		Use:   "import SOURCE",
		Short: "Read custom plants and tasks exported by gardencal or the browser calendar",
		Long: options.Wrap80(`Import merges by default: entries with a known id are overwritten and
the rest are added. With --replace every stored entry is dropped first.
SOURCE is a file, s3://bucket/key or - for stdin.`),
		Example: `
gardencal import garden.json
gardencal import --replace s3://my-bucket/gardencal/garden.json
cat garden.json | gardencal import -
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := app.ParseImportMode(to.Mode)
			if err != nil {
				return output.HandleError(err)
			}
			if to.Replace {
				mode = app.ImportReplace
			}
			return withSession(cmd, func(ctx context.Context, s *session) error {
				source, err := backup.Open(ctx, args[0], s.cfg.S3)
				if err != nil {
					return err
				}
				r := transfer.Import{
					Source:  source,
					Mode:    mode,
					JSON:    output.JSON,
					Service: s.app,
				}
				return r.Do(ctx)
			})
		},
	}

	options.AddImportArgs(cmd, to)
	topLevel.AddCommand(cmd)
}
