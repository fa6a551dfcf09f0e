package main

import (
	"github.com/spf13/cobra"
)

func newRowsCmd(opts *options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "rows",
		Short: "Print the report rows",
		Args:  cobra.NoArgs,
		PreRunE: func(_ *cobra.Command, _ []string) error {
			return validateFormat(format)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := opts.generate(cmd)
			if err != nil {
				return err
			}
			return writeReport(cmd.OutOrStdout(), report, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "output format: table, json or yaml")
	return cmd
}
