package engine

import (
	"math"

	"github.com/piwi3910/gridflow/internal/model"
)

// Geometry is the column arrangement derived from a viewport.
// It is a pure function of its inputs and must be recomputed whenever the
// container width may have changed.
type Geometry struct {
	Columns     int
	ColumnWidth float64 // horizontal stride between column origins
	CellWidth   float64 // width given to each cell, one gutter unit narrower than the stride
}

// IsDegenerate reports whether no items can be placed.
func (g Geometry) IsDegenerate() bool {
	return g.Columns <= 0
}

// ComputeGeometry derives the column count and widths for a viewport.
//
//	columns     = max(1, floor(W / M)) when W > 0, else 0
//	columnWidth = (W - left - right) / columns
//	cellWidth   = floor((W - (columns - 1)) / columns - 1)
//
// In InsetModeEdges the cell width is taken from the inset content width
// instead of the full container width.
func ComputeGeometry(v model.Viewport, mode model.InsetMode) Geometry {
	if v.Width <= 0 {
		return Geometry{}
	}

	columns := 1
	if v.MinimumCellWidth > 0 {
		columns = int(math.Floor(v.Width / v.MinimumCellWidth))
	}
	if columns < 1 {
		columns = 1
	}

	n := float64(columns)
	cellBasis := v.Width
	if mode == model.InsetModeEdges {
		cellBasis = v.ContentWidth()
	}

	return Geometry{
		Columns:     columns,
		ColumnWidth: (v.Width - v.Insets.Horizontal()) / n,
		CellWidth:   math.Max(0, math.Floor((cellBasis-(n-1))/n-1)),
	}
}
