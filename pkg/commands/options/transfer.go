package options

import (
	"github.com/spf13/cobra"
)

// TransferOptions
type TransferOptions struct {
	Target  string
	Mode    string
	Replace bool
}

func AddExportArgs(cmd *cobra.Command, o *TransferOptions) {
	cmd.Flags().StringVarP(&o.Target, "out", "o", "-",
		"Where to write the export: a file, s3://bucket/key or - for stdout.")
}

func AddImportArgs(cmd *cobra.Command, o *TransferOptions) {
	cmd.Flags().StringVar(&o.Mode, "mode", "merge",
		"How to combine with stored entries: merge or replace.")
	cmd.Flags().BoolVar(&o.Replace, "replace", false,
		"Shorthand for --mode replace.")
}
