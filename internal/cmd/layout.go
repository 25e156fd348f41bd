package cmd

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/piwi3910/gridflow/internal/engine"
	"github.com/piwi3910/gridflow/internal/importer"
	"github.com/piwi3910/gridflow/internal/model"
	"github.com/piwi3910/gridflow/internal/project"
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Print the estimated frames of a catalog",
	Long: `Build a layout at the given container width and print its geometry and
the frame of every item. Heights are the estimates; run settle to apply
measured heights.`,
	Example: `
# Demo catalog at 640pt, two columns
gridctl layout --width 640

# Imported catalog with four-sided insets
gridctl layout --catalog items.xlsx --inset-mode edges
  `,
	RunE: func(cmd *cobra.Command, args []string) error {
		run, err := buildLayout(cmd)
		if err != nil {
			return err
		}
		printGeometry(cmd, run)

		headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
		cellStyle := lipgloss.NewStyle().Padding(0, 1)
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return cellStyle
			}).
			Headers("Index", "Path", "Column", "X", "Y", "Width", "Height", "Title")
		for _, rec := range run.layout.Records() {
			item, _ := run.catalog.Item(rec.Path)
			t.Row(
				fmt.Sprint(rec.Index),
				fmt.Sprintf("%d.%d", rec.Path.Group, rec.Path.Item),
				fmt.Sprint(rec.Column),
				formatPoints(rec.Frame.X),
				formatPoints(rec.Frame.Y),
				formatPoints(rec.Frame.Width),
				formatPoints(rec.Frame.Height),
				item.Title,
			)
		}
		fmt.Fprintln(cmd.OutOrStdout(), t.String())
		return nil
	},
}

func init() {
	addLayoutFlags(layoutCmd)
}

// addLayoutFlags registers the flags shared by every command that builds a layout.
func addLayoutFlags(cmd *cobra.Command) {
	cmd.Flags().Float64P("width", "w", 0, "Container width in points (default: config window width)")
	cmd.Flags().String("catalog", "", "Catalog file (.gridcat, .json, .csv, .xlsx); the demo catalog when empty")
	cmd.Flags().String("size-category", "", "Text size category: "+strings.Join(model.SizeCategoryNames(), ", "))
	cmd.Flags().String("inset-mode", "", "Inset mode: legacy or edges")
	cmd.Flags().Float64("estimated-height", 0, "Estimated row height for unmeasured items")
}

// layoutRun is a catalog laid out against a fixed viewport.
type layoutRun struct {
	catalog  model.Catalog
	layout   *engine.Layout
	viewport model.Viewport
	settings model.LayoutSettings
}

// buildLayout resolves config, flags and catalog into a prepared layout.
func buildLayout(cmd *cobra.Command) (layoutRun, error) {
	cfg, err := project.LoadAppConfig(configPath(cmd))
	if err != nil {
		return layoutRun{}, err
	}

	settings := model.DefaultLayoutSettings()
	cfg.ApplyToSettings(&settings)

	if name, _ := cmd.Flags().GetString("size-category"); name != "" {
		category, ok := model.ParseSizeCategory(name)
		if !ok {
			return layoutRun{}, fmt.Errorf("unknown size category %q", name)
		}
		settings.SizeCategory = category
	}
	if name, _ := cmd.Flags().GetString("inset-mode"); name != "" {
		mode, ok := model.ParseInsetMode(name)
		if !ok {
			return layoutRun{}, fmt.Errorf("unknown inset mode %q", name)
		}
		settings.InsetMode = mode
	}
	if h, _ := cmd.Flags().GetFloat64("estimated-height"); h > 0 {
		settings.EstimatedRowHeight = h
	}

	width, _ := cmd.Flags().GetFloat64("width")
	if width <= 0 {
		width = cfg.WindowWidth
	}

	catalogFile, _ := cmd.Flags().GetString("catalog")
	catalog, err := loadCatalog(catalogFile)
	if err != nil {
		return layoutRun{}, err
	}

	viewport := model.Viewport{
		Width:            width,
		Insets:           cfg.ContentInsets,
		MinimumCellWidth: settings.SizeCategory.MinimumCellWidth(),
	}
	l := engine.New(catalog, func() model.Viewport { return viewport },
		engine.WithSettings(settings),
		engine.WithEstimator(catalog.Estimate),
		engine.WithLogger(slog.Default()),
	)
	l.Prepare()

	return layoutRun{catalog: catalog, layout: l, viewport: viewport, settings: settings}, nil
}

// loadCatalog reads a saved catalog or imports a spreadsheet. An empty path
// yields the demo catalog.
func loadCatalog(path string) (model.Catalog, error) {
	if path == "" {
		return model.DemoCatalog(), nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case project.CatalogExt, ".json":
		return project.LoadCatalog(path)
	}

	result := importer.Import(path)
	for _, w := range result.Warnings {
		slog.Warn("Import warning", "path", path, "warning", w)
	}
	if result.ItemCount() == 0 {
		if len(result.Errors) > 0 {
			return model.Catalog{}, fmt.Errorf("failed to import %s: %s", path, strings.Join(result.Errors, "; "))
		}
		return model.Catalog{}, fmt.Errorf("failed to import %s: no items", path)
	}
	for _, e := range result.Errors {
		slog.Warn("Skipped row", "path", path, "error", e)
	}
	return result.Catalog, nil
}

func printGeometry(cmd *cobra.Command, run layoutRun) {
	g := run.layout.Geometry()
	size := run.layout.ContentSize()
	fmt.Fprintf(cmd.OutOrStdout(),
		"items=%d columns=%d column_width=%s cell_width=%s content=%sx%s size_category=%s inset_mode=%s generation=%d\n",
		run.layout.Len(), g.Columns, formatPoints(g.ColumnWidth), formatPoints(g.CellWidth),
		formatPoints(size.Width), formatPoints(size.Height),
		run.settings.SizeCategory, run.settings.InsetMode, run.layout.Generation())
}

// formatPoints prints whole points without a fraction.
func formatPoints(v float64) string {
	return strings.TrimSuffix(fmt.Sprintf("%.1f", v), ".0")
}
