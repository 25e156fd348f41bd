package engine

import (
	"fmt"
	"math"

	"github.com/piwi3910/gridflow/internal/model"
)

// NeedsCorrection reports whether measuring item index at height would change
// its frame. A height equal to the current one with a width that already
// matches the current cell width needs nothing.
func (l *Layout) NeedsCorrection(index int, height float64) bool {
	if l.state != StateBuilt || index < 0 || index >= len(l.records) {
		return false
	}
	v := l.currentViewport()
	g := ComputeGeometry(v, l.settings.InsetMode)
	if g.IsDegenerate() {
		return false
	}
	frame := l.records[index].Frame
	return frame.Height != height || frame.Width != l.itemWidth(g, v.Insets)
}

// ApplyCorrection records that the item at index, as laid out by build gen,
// actually needs the given height.
//
// Only the corrected item and the items below it in the same column move;
// every other column keeps its frames. The content height is recomputed from
// the trailing row (the last `columns` items), which holds the bottom item of
// every column because columns are assigned round-robin. The returned
// ContentSizeDelta is old height minus new height and must be applied by the
// host together with the refresh.
//
// Corrections must arrive in index order for a given column. A degenerate
// viewport makes this a no-op. A gen other than the current build is
// rejected with ErrStaleGeneration before anything is mutated.
func (l *Layout) ApplyCorrection(gen model.Generation, index int, height float64) (model.InvalidationRequest, error) {
	v := l.currentViewport()
	g := ComputeGeometry(v, l.settings.InsetMode)
	if g.IsDegenerate() {
		return model.InvalidationRequest{Generation: l.generation}, nil
	}

	if l.state != StateBuilt || gen != l.generation {
		l.logger.Warn("Rejected stale height correction",
			"index", index,
			"generation", gen,
			"current_generation", l.generation,
			"state", l.state,
		)
		return model.InvalidationRequest{}, fmt.Errorf("correction for item %d (generation %d, current %d): %w",
			index, gen, l.generation, ErrStaleGeneration)
	}
	if index < 0 || index >= len(l.records) {
		return model.InvalidationRequest{}, fmt.Errorf("correction for item %d of %d: %w",
			index, len(l.records), ErrIndexOutOfRange)
	}
	if math.IsNaN(height) || math.IsInf(height, 0) || height < 0 {
		return model.InvalidationRequest{}, fmt.Errorf("correction for item %d: %w: %v", index, ErrInvalidHeight, height)
	}

	target := &l.records[index]
	delta := height - target.Frame.Height
	target.Frame.Height = height
	target.Frame.Width = l.itemWidth(g, v.Insets)

	refresh := []int{index}

	// Items of one column sit exactly `columns` indices apart.
	stride := l.geometry.Columns
	for i := index + stride; i < len(l.records); i += stride {
		l.records[i].Frame.Y += delta
		refresh = append(refresh, i)
	}

	oldHeight := l.contentHeight
	l.contentHeight = l.trailingRowMaxY() + l.insets.Bottom

	l.logger.Debug("Applied height correction",
		"index", index,
		"column", target.Column,
		"delta", delta,
		"refreshed", len(refresh),
		"content_height", l.contentHeight,
	)

	return model.InvalidationRequest{
		ItemsToRefresh:   refresh,
		ContentSizeDelta: oldHeight - l.contentHeight,
		Generation:       l.generation,
	}, nil
}

// trailingRowMaxY returns the lowest frame bottom among the last row of items:
// all items while the grid has fewer items than columns, otherwise the last
// `columns` items.
func (l *Layout) trailingRowMaxY() float64 {
	start := 0
	if n := len(l.records); n >= l.geometry.Columns {
		start = n - l.geometry.Columns
	}
	maxY := l.insets.Top
	for _, rec := range l.records[start:] {
		maxY = math.Max(maxY, rec.Frame.MaxY())
	}
	return maxY
}
