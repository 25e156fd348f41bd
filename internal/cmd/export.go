package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/gridflow/internal/export"
	"github.com/piwi3910/gridflow/internal/measure"
)

// exporters maps --format values to snapshot writers.
var exporters = map[string]func(string, export.Snapshot) error{
	"pdf":    export.ExportPDF,
	"labels": export.ExportLabels,
	"xlsx":   export.ExportXLSX,
	"dxf":    export.ExportDXF,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a layout snapshot to PDF, labels, XLSX or DXF",
	Example: `
# Settled PDF of the demo catalog
gridctl export --format pdf --out layout.pdf

# Frame spreadsheet of the estimated layout
gridctl export --format xlsx --out frames.xlsx --settle=false
  `,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		write, ok := exporters[strings.ToLower(format)]
		if !ok {
			return fmt.Errorf("unknown export format %q (want pdf, labels, xlsx or dxf)", format)
		}
		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			return fmt.Errorf("--out is required")
		}

		run, err := buildLayout(cmd)
		if err != nil {
			return err
		}
		if settle, _ := cmd.Flags().GetBool("settle"); settle {
			if _, err := measure.Settle(run.layout, run.catalog.ItemAt, measure.New(run.settings.SizeCategory)); err != nil {
				return fmt.Errorf("failed to settle layout: %w", err)
			}
		}

		snap := export.NewSnapshot(run.layout, run.catalog, run.viewport)
		if err := write(out, snap); err != nil {
			return err
		}
		slog.Info("Exported layout", "format", format, "path", out, "items", len(snap.Records))
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	addLayoutFlags(exportCmd)
	exportCmd.Flags().StringP("format", "f", "pdf", "Output format: pdf, labels, xlsx or dxf")
	exportCmd.Flags().StringP("out", "o", "", "Output file")
	exportCmd.Flags().Bool("settle", true, "Apply measured heights before exporting")
}
