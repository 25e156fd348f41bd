package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
)

// DXF layer names.
const (
	LayerBounds = "BOUNDS"
	LayerCards  = "CARDS"
	LayerLabels = "LABELS"
)

const dxfTextHeight = 12.0

// ExportDXF writes the card frames as closed polylines, one label per card,
// and the content bounds. DXF is y-up, so y is mirrored around the content height.
func ExportDXF(path string, snap Snapshot) error {
	if err := snap.validate(); err != nil {
		return err
	}

	d := dxf.NewDrawing()
	layers := []struct {
		name  string
		color color.ColorNumber
	}{
		{LayerBounds, color.White},
		{LayerCards, color.Cyan},
		{LayerLabels, color.Yellow},
	}
	for _, l := range layers {
		if _, err := d.AddLayer(l.name, l.color, dxf.DefaultLineType, false); err != nil {
			return fmt.Errorf("failed to add layer %s: %w", l.name, err)
		}
	}

	top := snap.ContentSize.Height
	flip := func(y float64) float64 { return top - y }

	width := snap.Viewport.Width
	if width <= 0 {
		width = snap.ContentSize.Width
	}
	if err := d.ChangeLayer(LayerBounds); err != nil {
		return err
	}
	if _, err := d.LwPolyline(true,
		[]float64{0, 0, 0},
		[]float64{width, 0, 0},
		[]float64{width, top, 0},
		[]float64{0, top, 0},
	); err != nil {
		return fmt.Errorf("failed to draw bounds: %w", err)
	}

	for _, rec := range snap.Records {
		f := rec.Frame
		if err := d.ChangeLayer(LayerCards); err != nil {
			return err
		}
		if _, err := d.LwPolyline(true,
			[]float64{f.MinX(), flip(f.MaxY()), 0},
			[]float64{f.MaxX(), flip(f.MaxY()), 0},
			[]float64{f.MaxX(), flip(f.MinY()), 0},
			[]float64{f.MinX(), flip(f.MinY()), 0},
		); err != nil {
			return fmt.Errorf("failed to draw card %d: %w", rec.Index, err)
		}

		if err := d.ChangeLayer(LayerLabels); err != nil {
			return err
		}
		text := fmt.Sprintf("%d %s", rec.Index, snap.Item(rec).Title)
		if _, err := d.Text(text, f.MinX()+4, flip(f.MinY())-4-dxfTextHeight, 0, dxfTextHeight); err != nil {
			return fmt.Errorf("failed to label card %d: %w", rec.Index, err)
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save drawing: %w", err)
	}
	return nil
}
