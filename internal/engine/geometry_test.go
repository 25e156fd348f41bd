package engine

import (
	"testing"

	"github.com/piwi3910/gridflow/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestComputeGeometry_TwoColumns(t *testing.T) {
	g := ComputeGeometry(model.Viewport{Width: 640, MinimumCellWidth: 320}, model.InsetModeLegacy)

	assert.Equal(t, 2, g.Columns)
	assert.Equal(t, 320.0, g.ColumnWidth)
	// floor((640 - 1) / 2 - 1) = floor(318.5)
	assert.Equal(t, 318.0, g.CellWidth)
	assert.False(t, g.IsDegenerate())
}

func TestComputeGeometry_NarrowerThanMinimumStillGetsOneColumn(t *testing.T) {
	g := ComputeGeometry(model.Viewport{Width: 100, MinimumCellWidth: 320}, model.InsetModeLegacy)

	assert.Equal(t, 1, g.Columns)
	assert.Equal(t, 100.0, g.ColumnWidth)
	assert.Equal(t, 99.0, g.CellWidth)
}

func TestComputeGeometry_ZeroWidthIsDegenerate(t *testing.T) {
	for _, w := range []float64{0, -50} {
		g := ComputeGeometry(model.Viewport{Width: w, MinimumCellWidth: 320}, model.InsetModeLegacy)
		assert.True(t, g.IsDegenerate(), "width %v", w)
		assert.Equal(t, Geometry{}, g)
	}
}

func TestComputeGeometry_MissingMinimumWidthMeansOneColumn(t *testing.T) {
	g := ComputeGeometry(model.Viewport{Width: 800}, model.InsetModeLegacy)
	assert.Equal(t, 1, g.Columns)
}

func TestComputeGeometry_AccessibilityCategoriesReduceColumns(t *testing.T) {
	width := 1280.0
	standard := ComputeGeometry(model.Viewport{
		Width:            width,
		MinimumCellWidth: model.SizeCategoryLarge.MinimumCellWidth(),
	}, model.InsetModeLegacy)
	huge := ComputeGeometry(model.Viewport{
		Width:            width,
		MinimumCellWidth: model.SizeCategoryAccessibilityExtraExtraExtraLarge.MinimumCellWidth(),
	}, model.InsetModeLegacy)

	assert.Equal(t, 4, standard.Columns)
	assert.Equal(t, 2, huge.Columns)
}

func TestComputeGeometry_InsetsNarrowColumnStride(t *testing.T) {
	v := model.Viewport{
		Width:            640,
		MinimumCellWidth: 320,
		Insets:           model.Insets{Left: 10, Right: 10},
	}

	legacy := ComputeGeometry(v, model.InsetModeLegacy)
	assert.Equal(t, 310.0, legacy.ColumnWidth)
	assert.Equal(t, 318.0, legacy.CellWidth, "legacy cell width ignores insets")

	edges := ComputeGeometry(v, model.InsetModeEdges)
	assert.Equal(t, 310.0, edges.ColumnWidth)
	// floor((620 - 1) / 2 - 1) = floor(308.5)
	assert.Equal(t, 308.0, edges.CellWidth)
}
