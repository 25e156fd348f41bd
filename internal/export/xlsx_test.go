package export

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/gridflow/internal/model"
)

func TestExportXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.xlsx")
	snap := buildTestSnapshot(t)

	if err := ExportXLSX(path, snap); err != nil {
		t.Fatalf("ExportXLSX returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("failed to reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(layoutSheet)
	if err != nil {
		t.Fatalf("failed to read layout sheet: %v", err)
	}
	if len(rows) != 22 {
		t.Fatalf("expected header plus 21 rows, got %d", len(rows))
	}
	if rows[0][0] != "Index" || rows[0][9] != "Height" {
		t.Errorf("unexpected header %v", rows[0])
	}
	// Item 3 sits in column 1, second row.
	want := []string{"3", "Recipes", "3", model.DemoTitle(3), "50 mins", "1", "320", "500", "318", "500", "1"}
	for i, w := range want {
		if rows[4][i] != w {
			t.Errorf("cell %d: expected %q, got %q", i, w, rows[4][i])
		}
	}

	columns, err := f.GetCellValue(summarySheet, "B4")
	if err != nil {
		t.Fatal(err)
	}
	if columns != "2" {
		t.Errorf("expected 2 columns in summary, got %q", columns)
	}
}

func TestExportXLSX_EmptySnapshot(t *testing.T) {
	if err := ExportXLSX(filepath.Join(t.TempDir(), "x.xlsx"), Snapshot{}); err == nil {
		t.Fatal("expected error for empty snapshot, got nil")
	}
}
