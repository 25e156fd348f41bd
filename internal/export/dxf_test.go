package export

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

func TestExportDXF_ReadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.dxf")
	snap := buildTestSnapshot(t)

	if err := ExportDXF(path, snap); err != nil {
		t.Fatalf("ExportDXF returned error: %v", err)
	}

	drawing, err := dxf.Open(path)
	if err != nil {
		t.Fatalf("failed to reopen drawing: %v", err)
	}

	var polylines, texts int
	var first *entity.LwPolyline
	for _, ent := range drawing.Entities() {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			polylines++
			if polylines == 2 {
				first = e
			}
		case *entity.Text:
			texts++
			if texts == 1 && !strings.HasPrefix(e.Value, "0 ") {
				t.Errorf("expected first label to start with the index, got %q", e.Value)
			}
		}
	}

	// Bounds plus one outline per card.
	if polylines != 22 {
		t.Errorf("expected 22 polylines, got %d", polylines)
	}
	if texts != 21 {
		t.Errorf("expected 21 labels, got %d", texts)
	}

	if first == nil || len(first.Vertices) != 4 {
		t.Fatalf("expected a four-vertex outline for the first card")
	}
	// Card 0 spans y 0..500 in layout space, so 5000..5500 once mirrored.
	minY, maxY := first.Vertices[0][1], first.Vertices[0][1]
	for _, v := range first.Vertices {
		if v[1] < minY {
			minY = v[1]
		}
		if v[1] > maxY {
			maxY = v[1]
		}
	}
	if minY != 5000 || maxY != 5500 {
		t.Errorf("expected mirrored y range 5000..5500, got %f..%f", minY, maxY)
	}
}

func TestExportDXF_EmptySnapshot(t *testing.T) {
	if err := ExportDXF(filepath.Join(t.TempDir(), "x.dxf"), Snapshot{}); err == nil {
		t.Fatal("expected error for empty snapshot, got nil")
	}
}
