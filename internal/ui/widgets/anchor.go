package widgets

import (
	"math"

	"github.com/piwi3910/gridflow/internal/engine"
	"github.com/piwi3910/gridflow/internal/model"
)

// Anchor remembers which item sat at the top of the scroll viewport so the
// same item can be brought back into view after a rebuild.
type Anchor struct {
	Index int
	Delta float64 // scroll offset minus the item's frame origin
	Valid bool
}

// CaptureAnchor finds the item at the top-left of the viewport at offsetY.
// When the exact point falls in a gap, the lowest index intersecting the top
// edge is used.
func CaptureAnchor(l *engine.Layout, offsetY, width float64) Anchor {
	if l.State() != engine.StateBuilt || l.Len() == 0 {
		return Anchor{}
	}

	index, ok := l.IndexAt(model.Point{X: 0, Y: offsetY})
	if !ok {
		strip := model.NewRect(0, offsetY, math.Max(width, 1), 1)
		hits := l.ItemsIntersecting(strip)
		if len(hits) == 0 {
			return Anchor{}
		}
		index = hits[0]
	}

	frame, err := l.Frame(index)
	if err != nil {
		return Anchor{}
	}
	return Anchor{Index: index, Delta: offsetY - frame.Y, Valid: true}
}

// Restore returns the scroll offset that puts the anchored item back where it
// was, clamped to the scrollable range for a viewport of the given height.
func (a Anchor) Restore(l *engine.Layout, viewportHeight float64) float64 {
	if !a.Valid {
		return 0
	}
	frame, err := l.Frame(a.Index)
	if err != nil {
		return 0
	}
	maxOffset := math.Max(0, l.ContentSize().Height-viewportHeight)
	return math.Min(math.Max(frame.Y+a.Delta, 0), maxOffset)
}
