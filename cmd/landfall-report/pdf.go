package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/hurricane-landfall-service/internal/adapter/pdf"
)

func newPDFCmd(opts *options) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "pdf",
		Short: "Write the report as a PDF document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := opts.generate(cmd)
			if err != nil {
				return err
			}
			doc, err := pdf.NewRenderer("Hurricane Landfall Report").Render(report)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, doc, 0o644); err != nil { //nolint:gosec // report is not sensitive
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d storms to %s\n", len(report.Rows), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "HurricaneReport.pdf", "output file")
	return cmd
}
