// Package export writes built grid layouts to PDF, label sheets, Excel
// workbooks and DXF drawings.
package export

import (
	"errors"

	"github.com/piwi3910/gridflow/internal/engine"
	"github.com/piwi3910/gridflow/internal/model"
)

// ErrEmptyLayout is returned when there is nothing to export.
var ErrEmptyLayout = errors.New("layout has no items")

// Snapshot is a frozen copy of a built layout together with the items it
// positions. Exporters work from a snapshot so a later rebuild cannot change
// the output halfway through.
type Snapshot struct {
	Catalog     model.Catalog
	Records     []model.ItemRecord
	ContentSize model.Size
	Geometry    engine.Geometry
	Settings    model.LayoutSettings
	Viewport    model.Viewport
}

// NewSnapshot builds the layout if needed and copies out its current state.
func NewSnapshot(l *engine.Layout, catalog model.Catalog, viewport model.Viewport) Snapshot {
	l.Prepare()
	return Snapshot{
		Catalog:     catalog,
		Records:     l.Records(),
		ContentSize: l.ContentSize(),
		Geometry:    l.Geometry(),
		Settings:    l.Settings(),
		Viewport:    viewport,
	}
}

// Item returns the catalog item for a record.
func (s Snapshot) Item(rec model.ItemRecord) model.Item {
	item, _ := s.Catalog.Item(rec.Path)
	return item
}

// GroupTitle returns the title of the group a record belongs to.
func (s Snapshot) GroupTitle(rec model.ItemRecord) string {
	if rec.Path.Group < 0 || rec.Path.Group >= len(s.Catalog.Groups) {
		return ""
	}
	return s.Catalog.Groups[rec.Path.Group].Title
}

// ColumnStats summarizes one column of the snapshot.
type ColumnStats struct {
	Column int
	Items  int
	Bottom float64 // largest frame MaxY in the column
}

// Columns returns per-column item counts and bottoms in column order.
func (s Snapshot) Columns() []ColumnStats {
	stats := make([]ColumnStats, s.Geometry.Columns)
	for i := range stats {
		stats[i].Column = i
	}
	for _, rec := range s.Records {
		if rec.Column < 0 || rec.Column >= len(stats) {
			continue
		}
		st := &stats[rec.Column]
		st.Items++
		if b := rec.Frame.MaxY(); b > st.Bottom {
			st.Bottom = b
		}
	}
	return stats
}

func (s Snapshot) validate() error {
	if len(s.Records) == 0 {
		return ErrEmptyLayout
	}
	return nil
}
