package widgets

import (
	"errors"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/gridflow/internal/engine"
	"github.com/piwi3910/gridflow/internal/measure"
	"github.com/piwi3910/gridflow/internal/model"
)

// GridView shows a catalog as a self-sizing multi-column grid inside a
// vertical scroll container. Cards start at the estimated height and are
// measured in the background as they scroll into view; each measurement is
// applied back on the UI goroutine against the build it was taken from.
type GridView struct {
	widget.BaseWidget

	// OnChanged is called after every rebuild or applied correction.
	OnChanged func(model.InvalidationRequest)

	catalog  model.Catalog
	settings model.LayoutSettings
	insets   model.Insets
	measurer measure.Measurer
	logger   *slog.Logger

	layout   *engine.Layout
	viewport model.Viewport

	scroll  *container.Scroll
	content *gridContent
	visible []int

	measuredLayout *engine.Layout
	measuredGen    model.Generation
	dispatched     map[int]bool

	// schedule runs measurement work, deliver hands results to the UI goroutine.
	schedule func(func())
	deliver  func(func())
}

// NewGridView creates a grid for catalog using settings and content insets.
func NewGridView(catalog model.Catalog, settings model.LayoutSettings, insets model.Insets, logger *slog.Logger) *GridView {
	if logger == nil {
		logger = slog.Default()
	}
	g := &GridView{
		catalog:    catalog,
		settings:   settings,
		insets:     insets,
		measurer:   measure.New(settings.SizeCategory),
		logger:     logger,
		dispatched: map[int]bool{},
		schedule:   func(f func()) { go f() },
		deliver:    fyne.Do,
	}
	g.viewport = model.Viewport{Insets: insets, MinimumCellWidth: settings.SizeCategory.MinimumCellWidth()}
	g.layout = g.newLayout()

	g.content = newGridContent(g)
	g.scroll = container.NewVScroll(g.content)
	g.scroll.OnScrolled = func(fyne.Position) { g.updateVisible() }

	g.ExtendBaseWidget(g)
	return g
}

func (g *GridView) newLayout() *engine.Layout {
	return engine.New(g.catalog, func() model.Viewport { return g.viewport },
		engine.WithSettings(g.settings),
		engine.WithEstimator(g.catalog.Estimate),
		engine.WithLogger(g.logger),
	)
}

func (g *GridView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(g.scroll)
}

// Engine returns the layout engine behind the view.
func (g *GridView) Engine() *engine.Layout {
	return g.layout
}

// Catalog returns the catalog being shown.
func (g *GridView) Catalog() model.Catalog {
	return g.catalog
}

// Settings returns the active layout settings.
func (g *GridView) Settings() model.LayoutSettings {
	return g.settings
}

// Viewport returns the viewport the layout is currently built against.
func (g *GridView) Viewport() model.Viewport {
	return g.viewport
}

// VisibleItems returns the indices currently drawn.
func (g *GridView) VisibleItems() []int {
	return append([]int(nil), g.visible...)
}

// SetCatalog replaces the catalog and scrolls back to the top.
func (g *GridView) SetCatalog(catalog model.Catalog) {
	g.catalog = catalog
	g.replaceLayout(Anchor{})
}

// SetSettings rebuilds the grid for new settings, keeping the top item in view.
func (g *GridView) SetSettings(settings model.LayoutSettings) {
	anchor := CaptureAnchor(g.layout, float64(g.scroll.Offset.Y), g.viewport.Width)
	g.settings = settings
	g.measurer = measure.New(settings.SizeCategory)
	g.viewport.MinimumCellWidth = settings.SizeCategory.MinimumCellWidth()
	g.replaceLayout(anchor)
}

// SetInsets changes the content insets and rebuilds.
func (g *GridView) SetInsets(insets model.Insets) {
	anchor := CaptureAnchor(g.layout, float64(g.scroll.Offset.Y), g.viewport.Width)
	g.insets = insets
	g.viewport.Insets = insets
	req := g.layout.Invalidate(true)
	g.reload(anchor, req.BoundsChanged)
}

// replaceLayout swaps in a fresh engine. Measurements still in flight hold a
// pointer to the old one and are dropped on delivery.
func (g *GridView) replaceLayout(anchor Anchor) {
	g.layout = g.newLayout()
	g.reload(anchor, false)
}

// Resize invalidates the layout when the bounds change and restores the
// scroll position to the item that was at the top.
func (g *GridView) Resize(size fyne.Size) {
	prev := g.Size()
	g.BaseWidget.Resize(size)

	if !engine.ShouldInvalidateForBounds(toModelSize(prev), toModelSize(size)) {
		return
	}
	anchor := CaptureAnchor(g.layout, float64(g.scroll.Offset.Y), g.viewport.Width)
	g.viewport.Width = float64(size.Width)
	req := g.layout.Invalidate(true)
	g.reload(anchor, req.BoundsChanged)
}

func (g *GridView) reload(anchor Anchor, boundsChanged bool) {
	g.layout.Prepare()
	g.content.Refresh()
	g.scroll.Refresh()

	offset := anchor.Restore(g.layout, float64(g.Size().Height))
	g.scroll.Offset = fyne.NewPos(0, float32(offset))
	g.scroll.Refresh()

	g.notify(model.InvalidationRequest{
		BoundsChanged: boundsChanged,
		Generation:    g.layout.Generation(),
	})
	g.updateVisible()
}

// updateVisible queries the items in the scroll viewport, redraws them and
// starts measuring the ones not yet measured for this build.
func (g *GridView) updateVisible() {
	viewport := model.NewRect(0, float64(g.scroll.Offset.Y), g.viewport.Width, float64(g.Size().Height))
	g.visible = g.layout.ItemsIntersecting(viewport)
	g.content.Refresh()
	g.measureVisible()
}

func (g *GridView) measureVisible() {
	l := g.layout
	gen := l.Generation()
	// A replaced layout restarts its generation count, so both must match.
	if l != g.measuredLayout || gen != g.measuredGen {
		g.measuredLayout = l
		g.measuredGen = gen
		g.dispatched = map[int]bool{}
	}

	m := g.measurer
	for _, index := range g.visible {
		if g.dispatched[index] {
			continue
		}
		rec, err := l.Record(index)
		if err != nil {
			continue
		}
		item, ok := g.catalog.Item(rec.Path)
		if !ok {
			continue
		}
		g.dispatched[index] = true

		width := rec.Frame.Width
		g.schedule(func() {
			height := m.Height(item, width)
			g.deliver(func() { g.applyMeasurement(l, gen, index, height) })
		})
	}
}

// applyMeasurement runs on the UI goroutine.
func (g *GridView) applyMeasurement(l *engine.Layout, gen model.Generation, index int, height float64) {
	if l != g.layout {
		return
	}
	if !l.NeedsCorrection(index, height) {
		return
	}

	req, err := l.ApplyCorrection(gen, index, height)
	if err != nil {
		if errors.Is(err, engine.ErrStaleGeneration) {
			g.logger.Debug("Dropped stale measurement", "index", index, "generation", gen)
			return
		}
		g.logger.Warn("Failed to apply measurement", "index", index, "error", err)
		return
	}

	g.scroll.Refresh()
	g.updateVisible()
	g.notify(req)
}

func (g *GridView) notify(req model.InvalidationRequest) {
	if g.OnChanged != nil {
		g.OnChanged(req)
	}
}

func toModelSize(s fyne.Size) model.Size {
	return model.Size{Width: float64(s.Width), Height: float64(s.Height)}
}
