// Package importer provides CSV and Excel import functionality for item
// catalogs. It supports automatic delimiter detection, flexible column
// mapping, and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/gridflow/internal/model"
)

// DefaultGroupTitle names the group that collects rows without a group cell.
const DefaultGroupTitle = "Items"

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Catalog  model.Catalog
	Errors   []string
	Warnings []string
}

// ItemCount returns the number of imported items across all groups.
func (r ImportResult) ItemCount() int {
	return r.Catalog.Len()
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Title    int
	Subtitle int
	Group    int
	Height   int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"title":    {"title", "name", "label", "item", "recipe", "heading"},
	"subtitle": {"subtitle", "detail", "details", "description", "desc", "caption", "time"},
	"group":    {"group", "section", "category", "collection"},
	"height":   {"height", "h", "estimated height", "estimate", "row height"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each column role.
// Returns the mapping and true if a header was detected, or the positional
// mapping (Title, Subtitle, Group, Height) and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Title: -1, Subtitle: -1, Group: -1, Height: -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "title":
					if mapping.Title == -1 {
						mapping.Title = i
					}
				case "subtitle":
					if mapping.Subtitle == -1 {
						mapping.Subtitle = i
					}
				case "group":
					if mapping.Group == -1 {
						mapping.Group = i
					}
				case "height":
					if mapping.Height == -1 {
						mapping.Height = i
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{Title: 0, Subtitle: 1, Group: 2, Height: 3}, false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts an item and its group title from a row.
// Returns the item, the group title, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (model.Item, string, string, string) {
	title := getCell(row, mapping.Title)
	if title == "" {
		return model.Item{}, "", fmt.Sprintf("%s: Missing title", rowLabel), ""
	}

	item := model.NewItem(title, getCell(row, mapping.Subtitle))

	group := getCell(row, mapping.Group)
	if group == "" {
		group = DefaultGroupTitle
	}

	var warning string
	if heightStr := getCell(row, mapping.Height); heightStr != "" {
		height, err := strconv.ParseFloat(heightStr, 64)
		switch {
		case err != nil:
			warning = fmt.Sprintf("%s: Invalid height '%s', using the layout estimate", rowLabel, heightStr)
		case height <= 0:
			warning = fmt.Sprintf("%s: Height must be positive, using the layout estimate", rowLabel)
		default:
			item.EstimatedHeight = height
		}
	}

	return item, group, "", warning
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func catalogName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ImportCSV imports a catalog from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(catalogName(path), records, "Line", result.Warnings)
}

// ImportCSVFromReader imports a catalog from a CSV reader with a specific delimiter.
func ImportCSVFromReader(name string, reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(name, records, "Line", nil)
}

// ImportExcel imports a catalog from an Excel (.xlsx) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	return importFromRows(catalogName(path), rows, "Row", nil)
}

// Import dispatches on the file extension.
func Import(path string) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ImportExcel(path)
	default:
		return ImportCSV(path)
	}
}

// importFromRows is the shared import logic for both CSV and Excel data.
// Groups keep the order in which they first appear.
func importFromRows(name string, rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Catalog:  model.NewCatalog(name),
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
		if mapping.Title == -1 {
			result.Errors = append(result.Errors, "Required columns not found in header: Title")
			return result
		}
	}

	groupIndex := map[string]int{}
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		item, group, errMsg, warning := parseRow(row, mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		g, ok := groupIndex[group]
		if !ok {
			g = len(result.Catalog.Groups)
			groupIndex[group] = g
			result.Catalog.Groups = append(result.Catalog.Groups, model.NewGroup(group))
		}
		result.Catalog.Groups[g].Items = append(result.Catalog.Groups[g].Items, item)
	}

	if result.Catalog.Len() == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
	}
	return result
}
