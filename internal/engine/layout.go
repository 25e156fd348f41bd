package engine

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/piwi3910/gridflow/internal/model"
)

// DataSource enumerates the items to lay out. Groups are flattened in order
// into one contiguous index space.
type DataSource interface {
	GroupCount() int
	ItemCount(group int) int
}

// Estimator returns a height hint for an item. Returning false, or a negative
// or non-finite hint, falls back to the configured estimated row height.
// Zero is a valid hint.
type Estimator func(path model.IndexPath) (float64, bool)

// ViewportFunc reports the container geometry. It is read on every build and
// every correction, never cached across a bounds change.
type ViewportFunc func() model.Viewport

// State is the layout's lifecycle state.
type State int

const (
	StateEmpty State = iota // no records; the next positional query builds
	StateBuilt              // records are valid for the current generation
)

func (s State) String() string {
	if s == StateBuilt {
		return "built"
	}
	return "empty"
}

// Option configures a Layout.
type Option func(*Layout)

// WithSettings sets the layout settings.
func WithSettings(settings model.LayoutSettings) Option {
	return func(l *Layout) {
		l.settings = settings
	}
}

// WithEstimator sets the per-item height hint.
func WithEstimator(estimate Estimator) Option {
	return func(l *Layout) {
		l.estimate = estimate
	}
}

// WithLogger sets the logger used for build and correction events.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Layout) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// Layout is a self-sizing, multi-column grid layout.
//
// Items are dealt to columns round-robin by index (item i goes to column
// i mod columns) regardless of how tall each column already is, so columns can
// end up visibly uneven when estimates vary. Once an item's real height is
// known, ApplyCorrection moves only the items below it in the same column.
//
// A Layout is not safe for concurrent use. Measurement results produced on
// other goroutines must be handed back to the goroutine that owns the layout.
type Layout struct {
	source   DataSource
	viewport ViewportFunc
	estimate Estimator
	settings model.LayoutSettings
	logger   *slog.Logger

	state         State
	records       []model.ItemRecord
	contentHeight float64
	generation    model.Generation

	// Snapshot of the inputs of the current build.
	geometry Geometry
	insets   model.Insets
}

// New creates an empty layout over source. viewport is consulted whenever the
// layout needs the container width, insets or minimum cell width.
func New(source DataSource, viewport ViewportFunc, opts ...Option) *Layout {
	l := &Layout{
		source:   source,
		viewport: viewport,
		settings: model.DefaultLayoutSettings(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Settings returns the layout settings.
func (l *Layout) Settings() model.LayoutSettings {
	return l.settings
}

// State returns the lifecycle state.
func (l *Layout) State() State {
	return l.state
}

// Generation returns the id of the current build, or of the last build if the
// layout has since been invalidated. Zero means nothing was ever built.
func (l *Layout) Generation() model.Generation {
	return l.generation
}

// Len returns the number of records in the current build.
func (l *Layout) Len() int {
	return len(l.records)
}

// Geometry recomputes the geometry from the current viewport.
func (l *Layout) Geometry() Geometry {
	return ComputeGeometry(l.currentViewport(), l.settings.InsetMode)
}

func (l *Layout) currentViewport() model.Viewport {
	if l.viewport == nil {
		return model.Viewport{}
	}
	return l.viewport()
}

// itemWidth is the width every frame gets: the cell width, narrowed by the
// per-frame inset in legacy mode.
func (l *Layout) itemWidth(g Geometry, insets model.Insets) float64 {
	if l.settings.InsetMode == model.InsetModeEdges {
		return g.CellWidth
	}
	return g.CellWidth - 2*insets.Left
}

func (l *Layout) estimatedHeight(path model.IndexPath) float64 {
	if l.estimate != nil {
		if h, ok := l.estimate(path); ok && h >= 0 && !math.IsInf(h, 0) {
			return h
		}
	}
	if l.settings.EstimatedRowHeight > 0 {
		return l.settings.EstimatedRowHeight
	}
	return model.DefaultEstimatedRowHeight
}

// Prepare builds the layout if it is empty and the viewport can hold at least
// one column. It is a no-op otherwise.
func (l *Layout) Prepare() {
	if l.state == StateBuilt {
		return
	}
	l.build()
}

func (l *Layout) build() {
	v := l.currentViewport()
	g := ComputeGeometry(v, l.settings.InsetMode)
	if g.IsDegenerate() || l.source == nil {
		return
	}

	legacy := l.settings.InsetMode != model.InsetModeEdges
	insets := v.Insets

	xOffset := make([]float64, g.Columns)
	yOffset := make([]float64, g.Columns)
	for c := range xOffset {
		xOffset[c] = float64(c) * g.ColumnWidth
		if !legacy {
			xOffset[c] += insets.Left
		}
		yOffset[c] = insets.Top
	}

	generation := l.generation + 1
	records := make([]model.ItemRecord, 0, l.countItems())
	contentHeight := insets.Top
	column := 0

	for group := 0; group < l.source.GroupCount(); group++ {
		for item := 0; item < l.source.ItemCount(group); item++ {
			path := model.IndexPath{Group: group, Item: item}
			height := l.estimatedHeight(path)

			frame := model.NewRect(xOffset[column], yOffset[column], g.CellWidth, height)
			if legacy {
				frame = frame.InsetBy(insets.Left, insets.Top)
			}

			records = append(records, model.ItemRecord{
				Index:      len(records),
				Path:       path,
				Column:     column,
				Frame:      frame,
				Generation: generation,
			})

			contentHeight = math.Max(contentHeight, frame.MaxY())
			yOffset[column] += height

			column++
			if column == g.Columns {
				column = 0
			}
		}
	}

	l.records = records
	l.contentHeight = contentHeight + insets.Bottom
	l.geometry = g
	l.insets = insets
	l.generation = generation
	l.state = StateBuilt

	l.logger.Debug("Built grid layout",
		"generation", generation,
		"items", len(records),
		"columns", g.Columns,
		"cell_width", g.CellWidth,
		"content_height", l.contentHeight,
	)
}

func (l *Layout) countItems() int {
	n := 0
	for g := 0; g < l.source.GroupCount(); g++ {
		n += l.source.ItemCount(g)
	}
	return n
}

// ContentSize returns the scrollable content size, building first if needed.
// A degenerate viewport yields a zero size.
func (l *Layout) ContentSize() model.Size {
	l.Prepare()
	if l.state != StateBuilt {
		return model.Size{}
	}
	return model.Size{
		Width:  l.currentViewport().ContentWidth(),
		Height: l.contentHeight,
	}
}

// Record returns the record at a flattened index, building first if needed.
func (l *Layout) Record(index int) (model.ItemRecord, error) {
	l.Prepare()
	if index < 0 || index >= len(l.records) {
		return model.ItemRecord{}, fmt.Errorf("record %d of %d: %w", index, len(l.records), ErrIndexOutOfRange)
	}
	return l.records[index], nil
}

// Frame returns the frame of the item at a flattened index.
func (l *Layout) Frame(index int) (model.Rect, error) {
	rec, err := l.Record(index)
	if err != nil {
		return model.Rect{}, err
	}
	return rec.Frame, nil
}

// Records returns a copy of every record, building first if needed.
func (l *Layout) Records() []model.ItemRecord {
	l.Prepare()
	out := make([]model.ItemRecord, len(l.records))
	copy(out, l.records)
	return out
}

// ItemsIntersecting returns, in index order, every item whose frame overlaps
// rect. It never builds: an empty layout answers with no items.
func (l *Layout) ItemsIntersecting(rect model.Rect) []int {
	if l.state != StateBuilt {
		return nil
	}
	var visible []int
	for _, rec := range l.records {
		if rec.Frame.Intersects(rect) {
			visible = append(visible, rec.Index)
		}
	}
	return visible
}

// IndexAt returns the first item whose frame contains p. It never builds.
func (l *Layout) IndexAt(p model.Point) (int, bool) {
	if l.state != StateBuilt {
		return 0, false
	}
	for _, rec := range l.records {
		if rec.Frame.Contains(p) {
			return rec.Index, true
		}
	}
	return 0, false
}

// ShouldInvalidateForBounds reports whether a container resize from prev to
// next requires a rebuild.
func ShouldInvalidateForBounds(prev, next model.Size) bool {
	return prev != next
}

// Invalidate discards every record. The content height is left stale until
// the next build. The layout does not try to keep the scroll position; hosts
// that want to should remember an anchor index before calling Invalidate.
func (l *Layout) Invalidate(boundsChanged bool) model.InvalidationRequest {
	reason := "everything"
	if boundsChanged {
		reason = "bounds"
	}
	l.logger.Debug("Invalidated grid layout",
		"reason", reason,
		"generation", l.generation,
		"items", len(l.records),
	)

	l.records = nil
	l.state = StateEmpty

	return model.InvalidationRequest{
		BoundsChanged: boundsChanged,
		Generation:    l.generation,
	}
}
