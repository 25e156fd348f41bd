package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter(t *testing.T) {
	tests := []struct {
		name string
		data string
		want rune
	}{
		{"comma", "Title,Subtitle\nSoup,10 mins\nStew,2 hrs\n", ','},
		{"semicolon", "Title;Subtitle\nSoup;10 mins\nStew;2 hrs\n", ';'},
		{"tab", "Title\tSubtitle\nSoup\t10 mins\nStew\t2 hrs\n", '\t'},
		{"pipe", "Title|Subtitle\nSoup|10 mins\nStew|2 hrs\n", '|'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectCSVDelimiter([]byte(tt.data)); got != tt.want {
				t.Errorf("expected %q delimiter, got %q", tt.want, got)
			}
		})
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Title", "Subtitle", "Group", "Height"})

	if !isHeader {
		t.Error("expected header to be detected")
	}
	want := ColumnMapping{Title: 0, Subtitle: 1, Group: 2, Height: 3}
	if mapping != want {
		t.Errorf("expected %+v, got %+v", want, mapping)
	}
}

func TestDetectColumns_AliasesAndCase(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"SECTION", "Recipe", "Time"})

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Group != 0 || mapping.Title != 1 || mapping.Subtitle != 2 {
		t.Errorf("unexpected mapping %+v", mapping)
	}
	if mapping.Height != -1 {
		t.Errorf("expected no height column, got %d", mapping.Height)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Mac and cheese", "20 mins"})

	if isHeader {
		t.Error("expected no header")
	}
	if mapping.Title != 0 || mapping.Subtitle != 1 || mapping.Group != 2 || mapping.Height != 3 {
		t.Errorf("expected positional mapping, got %+v", mapping)
	}
}

// ─── ImportCSVFromReader Tests ─────────────────────────────

func TestImportCSVFromReader_GroupsInFirstSeenOrder(t *testing.T) {
	data := "Title,Subtitle,Group\n" +
		"Mac and cheese,20 mins,Pasta\n" +
		"Meatballs,50 mins,Mains\n" +
		"Linguine,15 mins,Pasta\n"

	result := ImportCSVFromReader("dinner", strings.NewReader(data), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	c := result.Catalog
	if c.Name != "dinner" {
		t.Errorf("expected name dinner, got %s", c.Name)
	}
	if c.GroupCount() != 2 {
		t.Fatalf("expected 2 groups, got %d", c.GroupCount())
	}
	if c.Groups[0].Title != "Pasta" || c.Groups[1].Title != "Mains" {
		t.Errorf("unexpected group order: %s, %s", c.Groups[0].Title, c.Groups[1].Title)
	}
	if c.ItemCount(0) != 2 || c.Groups[0].Items[1].Title != "Linguine" {
		t.Errorf("unexpected Pasta items: %+v", c.Groups[0].Items)
	}
	if result.ItemCount() != 3 {
		t.Errorf("expected 3 items, got %d", result.ItemCount())
	}
}

func TestImportCSVFromReader_WithoutHeaders(t *testing.T) {
	data := "Soup,10 mins\nStew,2 hrs\n"

	result := ImportCSVFromReader("x", strings.NewReader(data), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if result.Catalog.GroupCount() != 1 || result.Catalog.Groups[0].Title != DefaultGroupTitle {
		t.Fatalf("expected a single default group, got %+v", result.Catalog.Groups)
	}
	item, _ := result.Catalog.ItemAt(1)
	if item.Title != "Stew" || item.Subtitle != "2 hrs" {
		t.Errorf("unexpected item %+v", item)
	}
}

func TestImportCSVFromReader_Heights(t *testing.T) {
	data := "Title,Height\nA,420\nB,abc\nC,-5\nD,\n"

	result := ImportCSVFromReader("x", strings.NewReader(data), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	items := result.Catalog.Groups[0].Items
	if len(items) != 4 {
		t.Fatalf("expected 4 items, got %d", len(items))
	}
	if items[0].EstimatedHeight != 420 {
		t.Errorf("expected height 420, got %f", items[0].EstimatedHeight)
	}
	for _, it := range items[1:] {
		if it.EstimatedHeight != 0 {
			t.Errorf("expected %s to fall back to the layout estimate, got %f", it.Title, it.EstimatedHeight)
		}
	}

	warnings := strings.Join(result.Warnings, "\n")
	if !strings.Contains(warnings, "Line 3: Invalid height 'abc'") {
		t.Errorf("expected invalid height warning, got %v", result.Warnings)
	}
	if !strings.Contains(warnings, "Line 4: Height must be positive") {
		t.Errorf("expected non-positive height warning, got %v", result.Warnings)
	}
}

func TestImportCSVFromReader_MissingTitle(t *testing.T) {
	data := "Title,Subtitle\n,orphan\nSoup,10 mins\n"

	result := ImportCSVFromReader("x", strings.NewReader(data), ',')

	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Line 2") {
		t.Errorf("expected one error on line 2, got %v", result.Errors)
	}
	if result.ItemCount() != 1 {
		t.Errorf("expected the valid row to import, got %d items", result.ItemCount())
	}
}

func TestImportCSVFromReader_HeaderWithoutTitleColumn(t *testing.T) {
	data := "Subtitle,Group\n10 mins,Soups\n"

	result := ImportCSVFromReader("x", strings.NewReader(data), ',')

	if len(result.Errors) == 0 || !strings.Contains(result.Errors[0], "Title") {
		t.Errorf("expected missing title column error, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_EmptyInput(t *testing.T) {
	result := ImportCSVFromReader("x", strings.NewReader(""), ',')
	if len(result.Errors) == 0 {
		t.Error("expected error for empty input")
	}
}

func TestImportCSVFromReader_OnlyHeaders(t *testing.T) {
	result := ImportCSVFromReader("x", strings.NewReader("Title,Subtitle\n"), ',')
	if len(result.Errors) == 0 {
		t.Error("expected error for header-only input")
	}
}

func TestImportCSVFromReader_SkipsEmptyRows(t *testing.T) {
	data := "Title\nSoup\n\n , \nStew\n"

	result := ImportCSVFromReader("x", strings.NewReader(data), ',')

	if result.ItemCount() != 2 {
		t.Errorf("expected 2 items, got %d (errors: %v)", result.ItemCount(), result.Errors)
	}
}

// ─── File Import Tests ─────────────────────────────────────

func TestImportCSV_SemicolonFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weeknight.csv")
	content := "Title;Subtitle\nSoup;10 mins\nStew;2 hrs\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	result := Import(path)

	if result.ItemCount() != 2 {
		t.Errorf("expected 2 items, got %d (errors: %v)", result.ItemCount(), result.Errors)
	}
	if result.Catalog.Name != "weeknight" {
		t.Errorf("expected catalog named after the file, got %s", result.Catalog.Name)
	}

	hasSemicolonWarning := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "semicolon") {
			hasSemicolonWarning = true
		}
	}
	if !hasSemicolonWarning {
		t.Error("expected warning about semicolon delimiter detection")
	}
}

func TestImportCSV_FileNotFound(t *testing.T) {
	result := ImportCSV("/nonexistent/path/file.csv")
	if len(result.Errors) == 0 {
		t.Error("expected error for nonexistent file")
	}
}

func TestImportCSV_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, []byte("  \n"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	result := ImportCSV(path)
	if len(result.Errors) == 0 {
		t.Error("expected error for empty file")
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recipes.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, cellRef, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestImportExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Category", "Name", "Details", "Estimate"},
		{"Pasta", "Mac and cheese", "20 mins", 380},
		{"Mains", "Meatballs", "50 mins", 510},
	})

	result := Import(path)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if result.Catalog.Name != "recipes" {
		t.Errorf("expected catalog name recipes, got %s", result.Catalog.Name)
	}
	if result.Catalog.GroupCount() != 2 {
		t.Fatalf("expected 2 groups, got %d", result.Catalog.GroupCount())
	}
	item, _ := result.Catalog.ItemAt(1)
	if item.Title != "Meatballs" || item.Subtitle != "50 mins" || item.EstimatedHeight != 510 {
		t.Errorf("unexpected item %+v", item)
	}
}

func TestImportExcel_WithoutHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Soup", "10 mins"},
		{"Stew", "2 hrs"},
	})

	result := ImportExcel(path)

	if result.ItemCount() != 2 {
		t.Fatalf("expected 2 items, got %d (errors: %v)", result.ItemCount(), result.Errors)
	}
}

func TestImportExcel_FileNotFound(t *testing.T) {
	result := ImportExcel("/nonexistent/file.xlsx")
	if len(result.Errors) == 0 {
		t.Error("expected error for nonexistent file")
	}
}
