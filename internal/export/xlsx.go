package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	layoutSheet  = "Layout"
	summarySheet = "Summary"
)

var layoutHeaders = []interface{}{
	"Index", "Group", "Item", "Title", "Subtitle", "Column", "X", "Y", "Width", "Height", "Generation",
}

// ExportXLSX writes one row per card to a "Layout" sheet and the geometry
// and per-column totals to a "Summary" sheet.
func ExportXLSX(path string, snap Snapshot) error {
	if err := snap.validate(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), layoutSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := setRow(f, layoutSheet, 1, layoutHeaders); err != nil {
		return err
	}

	for i, rec := range snap.Records {
		item := snap.Item(rec)
		row := []interface{}{
			rec.Index, snap.GroupTitle(rec), rec.Path.Item, item.Title, item.Subtitle, rec.Column,
			rec.Frame.X, rec.Frame.Y, rec.Frame.Width, rec.Frame.Height, uint64(rec.Generation),
		}
		if err := setRow(f, layoutSheet, i+2, row); err != nil {
			return err
		}
	}

	if err := f.SetPanes(layoutSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header row: %w", err)
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to add summary sheet: %w", err)
	}
	summary := [][]interface{}{
		{"Catalog", catalogTitle(snap)},
		{"Items", len(snap.Records)},
		{"Viewport Width", snap.Viewport.Width},
		{"Columns", snap.Geometry.Columns},
		{"Column Width", snap.Geometry.ColumnWidth},
		{"Cell Width", snap.Geometry.CellWidth},
		{"Content Height", snap.ContentSize.Height},
		{"Inset Mode", snap.Settings.InsetMode.String()},
		{"Size Category", snap.Settings.SizeCategory.String()},
		{},
		{"Column", "Items", "Bottom"},
	}
	for _, st := range snap.Columns() {
		summary = append(summary, []interface{}{st.Column, st.Items, st.Bottom})
	}
	for i, row := range summary {
		if len(row) == 0 {
			continue
		}
		if err := setRow(f, summarySheet, i+1, row); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to create cell reference: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}
