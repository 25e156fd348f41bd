package widgets

import (
	"log/slog"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/gridflow/internal/model"
)

// newTestGridView returns a view that measures and delivers synchronously.
func newTestGridView(t *testing.T) *GridView {
	t.Helper()
	test.NewTempApp(t)

	g := NewGridView(model.DemoCatalog(), model.DefaultLayoutSettings(), model.Insets{}, slog.New(slog.DiscardHandler))
	g.schedule = func(f func()) { f() }
	g.deliver = func(f func()) { f() }
	return g
}

func TestGridView_ResizeBuildsAndMeasuresVisible(t *testing.T) {
	g := newTestGridView(t)

	var changes []model.InvalidationRequest
	g.OnChanged = func(req model.InvalidationRequest) { changes = append(changes, req) }

	g.Resize(fyne.NewSize(640, 700))

	l := g.Engine()
	require.Equal(t, 2, l.Geometry().Columns)
	require.NotEmpty(t, g.VisibleItems())
	require.Greater(t, len(changes), 1)
	assert.True(t, changes[0].BoundsChanged, "the rebuild is announced before any correction")
	assert.Empty(t, changes[0].ItemsToRefresh)
	for _, req := range changes[1:] {
		assert.False(t, req.BoundsChanged)
		assert.NotEmpty(t, req.ItemsToRefresh)
	}

	for _, i := range g.VisibleItems() {
		rec, err := l.Record(i)
		require.NoError(t, err)
		item, _ := g.Catalog().ItemAt(i)
		assert.Equal(t, g.measurer.Height(item, rec.Frame.Width), rec.Frame.Height, "item %d", i)
	}
	assert.Less(t, l.ContentSize().Height, 5500.0, "measured cards are shorter than the estimate")
}

func TestGridView_StaleMeasurementDropped(t *testing.T) {
	g := newTestGridView(t)
	g.schedule = func(func()) {} // keep measurements from landing

	g.Resize(fyne.NewSize(640, 700))
	oldGen := g.Engine().Generation()

	g.Resize(fyne.NewSize(1000, 700))
	require.NotEqual(t, oldGen, g.Engine().Generation())

	before, err := g.Engine().Frame(0)
	require.NoError(t, err)

	g.applyMeasurement(g.Engine(), oldGen, 0, 123)

	after, err := g.Engine().Frame(0)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestGridView_ReplacedLayoutIgnoresOldMeasurements(t *testing.T) {
	g := newTestGridView(t)
	g.schedule = func(func()) {}
	g.Resize(fyne.NewSize(640, 700))

	old := g.Engine()
	gen := old.Generation()
	g.SetCatalog(model.DemoCatalog())

	g.applyMeasurement(old, gen, 0, 123)
	f, err := g.Engine().Frame(0)
	require.NoError(t, err)
	assert.Equal(t, 500.0, f.Height)
}

func TestGridView_SizeCategoryChangesColumns(t *testing.T) {
	g := newTestGridView(t)
	g.Resize(fyne.NewSize(1000, 700))
	require.Equal(t, 3, g.Engine().Geometry().Columns)

	settings := g.Settings()
	settings.SizeCategory = model.SizeCategoryAccessibilityExtraExtraExtraLarge
	g.SetSettings(settings)

	assert.Equal(t, 2, g.Engine().Geometry().Columns)
	assert.Equal(t, model.SizeCategoryAccessibilityExtraExtraExtraLarge, g.Engine().Settings().SizeCategory)
}

func TestGridView_SameSizeDoesNotRebuild(t *testing.T) {
	g := newTestGridView(t)
	g.Resize(fyne.NewSize(640, 700))
	gen := g.Engine().Generation()

	g.Resize(fyne.NewSize(640, 700))
	assert.Equal(t, gen, g.Engine().Generation())
}

// assertVisibleMeasured checks that every drawn card carries its measured height.
func assertVisibleMeasured(t *testing.T, g *GridView) {
	t.Helper()
	l := g.Engine()
	require.NotEmpty(t, g.VisibleItems())
	for _, i := range g.VisibleItems() {
		rec, err := l.Record(i)
		require.NoError(t, err)
		item, _ := g.Catalog().ItemAt(i)
		assert.Equal(t, g.measurer.Height(item, rec.Frame.Width), rec.Frame.Height, "item %d", i)
	}
}

func TestGridView_SetSettingsMeasuresNewLayout(t *testing.T) {
	g := newTestGridView(t)
	g.Resize(fyne.NewSize(1000, 700))
	require.Equal(t, model.Generation(1), g.Engine().Generation())

	settings := g.Settings()
	settings.SizeCategory = model.SizeCategoryAccessibilityExtraExtraExtraLarge
	g.SetSettings(settings)

	// The fresh layout starts over at generation 1 too.
	require.Equal(t, model.Generation(1), g.Engine().Generation())
	assertVisibleMeasured(t, g)
}

func TestGridView_SetCatalogMeasuresNewLayout(t *testing.T) {
	g := newTestGridView(t)
	g.Resize(fyne.NewSize(640, 700))

	g.SetCatalog(model.DemoCatalog())
	assertVisibleMeasured(t, g)
}
