package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/gridflow/internal/model"
)

// cardColor represents an RGB color for a card.
type cardColor struct {
	R, G, B int
}

// columnColors mirrors the color scheme used by the grid view widget.
var columnColors = []cardColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

func colorForColumn(column int) cardColor {
	if column < 0 {
		column = 0
	}
	return columnColors[column%len(columnColors)]
}

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	footerHeight = 8.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF renders the snapshot as a scaled diagram split across as many
// pages as the content height needs, followed by a summary page.
func ExportPDF(path string, snap Snapshot) error {
	if err := snap.validate(); err != nil {
		return err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	sourceWidth := snap.Viewport.Width
	if sourceWidth <= 0 {
		sourceWidth = snap.ContentSize.Width
	}
	if sourceWidth <= 0 {
		return fmt.Errorf("cannot export a layout with zero width")
	}

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - footerHeight
	scale := drawWidth / sourceWidth
	slice := drawHeight / scale
	pages := pageCount(snap.ContentSize.Height, slice)
	// Core fonts are cp1252; titles may carry accents.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for p := 0; p < pages; p++ {
		pdf.AddPage()
		window := model.NewRect(0, float64(p)*slice, sourceWidth, slice)
		renderLayoutPage(pdf, snap, window, scale, p+1, pages, tr)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, snap, pages, tr)

	return pdf.OutputFileAndClose(path)
}

// pageCount returns how many slices of the given height cover content.
func pageCount(contentHeight, slice float64) int {
	if contentHeight <= 0 || slice <= 0 {
		return 1
	}
	return int(math.Ceil(contentHeight / slice))
}

// renderLayoutPage draws the part of the layout inside window on the current page.
func renderLayoutPage(pdf *fpdf.Fpdf, snap Snapshot, window model.Rect, scale float64, page, pages int, tr func(string) string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%s (page %d of %d)", tr(catalogTitle(snap)), page, pages)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Columns: %d | Cell width: %.0f pt | Showing y %.0f to %.0f of %.0f pt",
		snap.Geometry.Columns, snap.Geometry.CellWidth, window.MinY(), math.Min(window.MaxY(), snap.ContentSize.Height), snap.ContentSize.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	offsetX := marginLeft
	offsetY := drawAreaTop
	canvasW := window.Width * scale
	canvasH := window.Height * scale

	pdf.SetDrawColor(160, 160, 160)
	pdf.SetLineWidth(0.2)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "D")

	pdf.ClipRect(offsetX, offsetY, canvasW, canvasH, false)
	for _, rec := range snap.Records {
		if !rec.Frame.Intersects(window) {
			continue
		}
		x := offsetX + (rec.Frame.X-window.X)*scale
		y := offsetY + (rec.Frame.Y-window.Y)*scale
		item := snap.Item(rec)
		item.Title, item.Subtitle = tr(item.Title), tr(item.Subtitle)
		drawCard(pdf, item, rec, x, y, rec.Frame.Width*scale, rec.Frame.Height*scale)
	}
	pdf.ClipEnd()

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by GridFlow", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// drawCard renders one card rectangle with its index and title.
func drawCard(pdf *fpdf.Fpdf, item model.Item, rec model.ItemRecord, x, y, w, h float64) {
	col := colorForColumn(rec.Column)
	pdf.SetFillColor(col.R, col.G, col.B)
	pdf.SetDrawColor(30, 30, 30)
	pdf.SetLineWidth(0.3)
	pdf.Rect(x, y, w, h, "FD")

	if w < 12 || h < 8 {
		return
	}

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", labelFontSize(w, h))
	pdf.SetXY(x+1, y+1)
	pdf.CellFormat(w-2, 4, fmt.Sprintf("#%d", rec.Index), "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", labelFontSize(w, h))
	pdf.SetXY(x+1, y+5)
	pdf.CellFormat(w-2, 4, truncate(pdf, item.Title, w-2), "", 0, "L", false, 0, "")

	if item.Subtitle != "" && h > 16 {
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetXY(x+1, y+9)
		pdf.CellFormat(w-2, 3, truncate(pdf, item.Subtitle, w-2), "", 0, "L", false, 0, "")
	}

	if h > 22 {
		pdf.SetFont("Helvetica", "", 6)
		pdf.SetTextColor(60, 60, 60)
		pdf.SetXY(x+1, y+h-4)
		pdf.CellFormat(w-2, 3, fmt.Sprintf("%.0f x %.0f", rec.Frame.Width, rec.Frame.Height), "", 0, "R", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
}

// renderSummaryPage draws the final summary page with layout statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, snap Snapshot, pages int, tr func(string) string) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Layout Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	insets := snap.Viewport.Insets
	summaryItems := []struct {
		label string
		value string
	}{
		{"Catalog", tr(catalogTitle(snap))},
		{"Items", fmt.Sprintf("%d", len(snap.Records))},
		{"Groups", fmt.Sprintf("%d", snap.Catalog.GroupCount())},
		{"Viewport Width", fmt.Sprintf("%.0f pt", snap.Viewport.Width)},
		{"Columns", fmt.Sprintf("%d", snap.Geometry.Columns)},
		{"Column Width", fmt.Sprintf("%.1f pt", snap.Geometry.ColumnWidth)},
		{"Cell Width", fmt.Sprintf("%.0f pt", snap.Geometry.CellWidth)},
		{"Content Height", fmt.Sprintf("%.0f pt", snap.ContentSize.Height)},
		{"Insets (l, t, r, b)", fmt.Sprintf("%.0f, %.0f, %.0f, %.0f", insets.Left, insets.Top, insets.Right, insets.Bottom)},
		{"Inset Mode", snap.Settings.InsetMode.String()},
		{"Size Category", snap.Settings.SizeCategory.String()},
		{"Diagram Pages", fmt.Sprintf("%d", pages)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(80, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Column Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{25, 30, 45, 60}
	headers := []string{"Column", "Items", "Bottom (pt)", "Share of Height"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, st := range snap.Columns() {
		if y > pageHeight-marginBottom-10 {
			break
		}
		share := 0.0
		if snap.ContentSize.Height > 0 {
			share = st.Bottom / snap.ContentSize.Height * 100
		}
		rowData := []string{
			fmt.Sprintf("%d", st.Column),
			fmt.Sprintf("%d", st.Items),
			fmt.Sprintf("%.0f", st.Bottom),
			fmt.Sprintf("%.1f%%", share),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		xPos = marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by GridFlow", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func catalogTitle(snap Snapshot) string {
	if snap.Catalog.Name == "" {
		return "Untitled catalog"
	}
	return snap.Catalog.Name
}

// truncate shortens s with an ellipsis until it fits in width at the current
// font. s must already be in the single-byte font encoding.
func truncate(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > width {
		s = s[:len(s)-1]
	}
	return s + "..."
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
