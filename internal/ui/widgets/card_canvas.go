package widgets

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/gridflow/internal/measure"
	"github.com/piwi3910/gridflow/internal/model"
)

// Column colors, cycled for visual distinction.
var columnColors = []color.NRGBA{
	{R: 76, G: 175, B: 80, A: 200},  // green
	{R: 33, G: 150, B: 243, A: 200}, // blue
	{R: 255, G: 152, B: 0, A: 200},  // orange
	{R: 156, G: 39, B: 176, A: 200}, // purple
	{R: 0, G: 188, B: 212, A: 200},  // cyan
	{R: 244, G: 67, B: 54, A: 200},  // red
	{R: 255, G: 235, B: 59, A: 200}, // yellow
	{R: 121, G: 85, B: 72, A: 200},  // brown
}

// gridContent is the scrollable surface of a GridView. Its minimum size is
// the layout's content size and it draws only the visible cards.
type gridContent struct {
	widget.BaseWidget
	view *GridView
}

func newGridContent(view *GridView) *gridContent {
	c := &gridContent{view: view}
	c.ExtendBaseWidget(c)
	return c
}

func (c *gridContent) CreateRenderer() fyne.WidgetRenderer {
	return newCardCanvasRenderer(c)
}

type cardCanvasRenderer struct {
	content *gridContent
	objects []fyne.CanvasObject
}

func newCardCanvasRenderer(c *gridContent) *cardCanvasRenderer {
	r := &cardCanvasRenderer{content: c}
	r.rebuild()
	return r
}

func (r *cardCanvasRenderer) rebuild() {
	r.objects = nil

	v := r.content.view
	for _, index := range v.visible {
		rec, err := v.layout.Record(index)
		if err != nil {
			continue
		}
		item, _ := v.catalog.Item(rec.Path)
		r.drawCard(rec, item, v.measurer)
	}
}

func (r *cardCanvasRenderer) drawCard(rec model.ItemRecord, item model.Item, m measure.Measurer) {
	f := rec.Frame
	px, py := float32(f.X), float32(f.Y)
	pw, ph := float32(f.Width), float32(f.Height)

	bg := canvas.NewRectangle(color.NRGBA{R: 250, G: 250, B: 250, A: 255})
	bg.Resize(fyne.NewSize(pw, ph))
	bg.Move(fyne.NewPos(px, py))
	r.objects = append(r.objects, bg)

	card := m.Card(item, f.Width)

	// Image placeholder, tinted by column.
	img := card.Image
	if img.Height > f.Height {
		img.Height = f.Height
	}
	swatch := canvas.NewRectangle(columnColors[rec.Column%len(columnColors)])
	swatch.Resize(fyne.NewSize(float32(img.Width), float32(img.Height)))
	swatch.Move(fyne.NewPos(px, py))
	r.objects = append(r.objects, swatch)

	pad := float32(measure.Padding())
	for _, line := range card.Lines {
		if line.Y+line.Size > f.Height {
			break
		}
		text := canvas.NewText(line.Text, color.Black)
		text.TextSize = float32(line.Size)
		text.TextStyle = fyne.TextStyle{Bold: line.Bold}
		text.Move(fyne.NewPos(px+pad, py+float32(line.Y)))
		r.objects = append(r.objects, text)
	}

	index := canvas.NewText(fmt.Sprintf("#%d", rec.Index), color.White)
	index.TextSize = 10
	index.TextStyle = fyne.TextStyle{Bold: true}
	index.Move(fyne.NewPos(px+4, py+2))
	r.objects = append(r.objects, index)

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.NRGBA{R: 30, G: 30, B: 30, A: 255}
	border.StrokeWidth = 1
	border.Resize(fyne.NewSize(pw, ph))
	border.Move(fyne.NewPos(px, py))
	r.objects = append(r.objects, border)
}

func (r *cardCanvasRenderer) Layout(size fyne.Size)        {}
func (r *cardCanvasRenderer) Refresh()                     { r.rebuild() }
func (r *cardCanvasRenderer) Destroy()                     {}
func (r *cardCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *cardCanvasRenderer) MinSize() fyne.Size {
	v := r.content.view
	size := v.layout.ContentSize()
	width := size.Width
	if v.viewport.Width > width {
		width = v.viewport.Width
	}
	return fyne.NewSize(float32(width), float32(size.Height))
}
