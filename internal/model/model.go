package model

import "math"

// Point is a position in content coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a width/height pair.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect is an axis-aligned rectangle in content coordinates (y grows downwards).
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, Width: w, Height: h}
}

func (r Rect) MinX() float64 { return r.X }
func (r Rect) MinY() float64 { return r.Y }
func (r Rect) MaxX() float64 { return r.X + r.Width }
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Intersects reports whether the two rectangles overlap with a non-zero area.
// Empty rectangles never intersect anything.
func (r Rect) Intersects(o Rect) bool {
	if r.IsEmpty() || o.IsEmpty() {
		return false
	}
	return r.X < o.MaxX() && o.X < r.MaxX() &&
		r.Y < o.MaxY() && o.Y < r.MaxY()
}

// Contains reports whether p lies inside the rectangle. The max edges are exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.MaxX() && p.Y >= r.Y && p.Y < r.MaxY()
}

// InsetBy shrinks the rectangle by dx on the left and right and by dy on the
// top and bottom.
func (r Rect) InsetBy(dx, dy float64) Rect {
	return Rect{
		X:      r.X + dx,
		Y:      r.Y + dy,
		Width:  r.Width - 2*dx,
		Height: r.Height - 2*dy,
	}
}

// Insets are the content insets of the scroll container.
type Insets struct {
	Left   float64 `json:"left" toml:"left"`
	Top    float64 `json:"top" toml:"top"`
	Right  float64 `json:"right" toml:"right"`
	Bottom float64 `json:"bottom" toml:"bottom"`
}

// Horizontal returns left + right.
func (i Insets) Horizontal() float64 {
	return i.Left + i.Right
}

// Viewport is everything the layout reads from its container at query time.
type Viewport struct {
	Width            float64 `json:"width"`
	Insets           Insets  `json:"insets"`
	MinimumCellWidth float64 `json:"minimum_cell_width"`
}

// ContentWidth returns the container width minus horizontal insets, never negative.
func (v Viewport) ContentWidth() float64 {
	return math.Max(0, v.Width-v.Insets.Horizontal())
}

// IndexPath addresses an item relative to its group.
type IndexPath struct {
	Group int `json:"group"`
	Item  int `json:"item"`
}

// Generation identifies one layout build. Zero means "never built".
type Generation uint64

// ItemRecord is the positioned state of one item within a build.
type ItemRecord struct {
	Index      int        `json:"index"`  // flattened, 0-based, contiguous
	Path       IndexPath  `json:"path"`   // group-relative address
	Column     int        `json:"column"` // fixed for the lifetime of the build
	Frame      Rect       `json:"frame"`
	Generation Generation `json:"generation"`
}

// InvalidationRequest tells the host what to redraw after a layout mutation.
type InvalidationRequest struct {
	BoundsChanged    bool       `json:"bounds_changed"`
	ItemsToRefresh   []int      `json:"items_to_refresh"`   // ascending, unique
	ContentSizeDelta float64    `json:"content_size_delta"` // old height - new height
	Generation       Generation `json:"generation"`
}

// IsEmpty reports whether the request asks for nothing.
func (r InvalidationRequest) IsEmpty() bool {
	return !r.BoundsChanged && len(r.ItemsToRefresh) == 0 && r.ContentSizeDelta == 0
}

// InsetMode selects how content insets are applied to item frames.
type InsetMode string

const (
	// InsetModeLegacy insets every frame by (left, top) on both sides and
	// derives the cell width from the full container width.
	InsetModeLegacy InsetMode = "legacy"
	// InsetModeEdges offsets the grid by the four content insets and derives
	// the cell width from the inset content width.
	InsetModeEdges InsetMode = "edges"
)

func (m InsetMode) String() string {
	if m == InsetModeEdges {
		return string(InsetModeEdges)
	}
	return string(InsetModeLegacy)
}

// ParseInsetMode returns the inset mode for s, defaulting to legacy.
func ParseInsetMode(s string) (InsetMode, bool) {
	switch InsetMode(s) {
	case InsetModeEdges:
		return InsetModeEdges, true
	case InsetModeLegacy, "":
		return InsetModeLegacy, true
	default:
		return InsetModeLegacy, false
	}
}

// DefaultEstimatedRowHeight is used for items with no height hint.
const DefaultEstimatedRowHeight = 500.0

// LayoutSettings configures a grid layout.
type LayoutSettings struct {
	EstimatedRowHeight float64      `json:"estimated_row_height"`
	InsetMode          InsetMode    `json:"inset_mode"`
	SizeCategory       SizeCategory `json:"size_category"`
}

func DefaultLayoutSettings() LayoutSettings {
	return LayoutSettings{
		EstimatedRowHeight: DefaultEstimatedRowHeight,
		InsetMode:          InsetModeLegacy,
		SizeCategory:       SizeCategoryLarge,
	}
}
