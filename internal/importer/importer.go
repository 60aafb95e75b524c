// Package importer loads shape catalogs from text, Excel and DXF files.
// Problems are collected per line or entity rather than aborting the import,
// so a catalog with a few bad entries still yields the good ones.
package importer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/piwi3910/ShapeFill/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Shapes   []model.ShapeDef
	Errors   []string
	Warnings []string
}

// Err folds the collected errors into a single error, or nil if there were none.
func (r ImportResult) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return fmt.Errorf("%d catalog error(s): %s", len(r.Errors), strings.Join(r.Errors, "; "))
}

// pairPattern matches the innermost parenthesised groups of a vertex list.
var pairPattern = regexp.MustCompile(`\(([^()]*)\)`)

// ParseVertices reads a vertex list of the form ((x1, y1), (x2, y2), ...).
func ParseVertices(s string) (model.Outline, error) {
	var outline model.Outline
	for _, m := range pairPattern.FindAllStringSubmatch(s, -1) {
		fields := strings.Split(m[1], ",")
		if len(fields) != 2 {
			return nil, fmt.Errorf("vertex %q: expected x, y", strings.TrimSpace(m[0]))
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("vertex %q: invalid x", strings.TrimSpace(m[0]))
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("vertex %q: invalid y", strings.TrimSpace(m[0]))
		}
		outline = append(outline, model.Point2D{X: x, Y: y})
	}
	return outline, nil
}

// parseEntry turns one name/vertex-list pair into a shape definition.
// Returns the definition, any error message, and any warning message.
func parseEntry(name, vertices, rowLabel string, seen map[string]bool) (model.ShapeDef, string, string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.ShapeDef{}, fmt.Sprintf("%s: Missing shape name", rowLabel), ""
	}

	outline, err := ParseVertices(vertices)
	if err != nil {
		return model.ShapeDef{}, fmt.Sprintf("%s: %v", rowLabel, err), ""
	}
	if len(outline) < 3 {
		return model.ShapeDef{}, "", fmt.Sprintf("%s: Skipped '%s' with %d vertices, need at least 3", rowLabel, name, len(outline))
	}

	var warning string
	if seen[name] {
		warning = fmt.Sprintf("%s: Duplicate shape name '%s'", rowLabel, name)
	}
	seen[name] = true

	return model.ShapeDef{Name: name, Outline: outline}, "", warning
}

// ImportCatalogFromReader reads a text catalog with one shape per line:
//
//	name: ((x1, y1), (x2, y2), ...)
//
// Lines without a colon are ignored.
func ImportCatalogFromReader(r io.Reader) ImportResult {
	result := ImportResult{}
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		name, vertices, found := strings.Cut(scanner.Text(), ":")
		if !found {
			continue
		}

		def, errMsg, warning := parseEntry(name, vertices, fmt.Sprintf("Line %d", lineNum), seen)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
		if def.Name != "" {
			result.Shapes = append(result.Shapes, def)
		}
	}
	if err := scanner.Err(); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read catalog: %v", err))
	}

	if len(result.Shapes) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "No shapes found in catalog")
	}
	return result
}

// ImportCatalog imports shape definitions from a text catalog file.
func ImportCatalog(path string) ImportResult {
	f, err := os.Open(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot open file: %v", err)}}
	}
	defer f.Close()
	return ImportCatalogFromReader(f)
}

// ImportExcel imports shape definitions from the first sheet of a workbook.
// Column A holds the name and column B the vertex list; a leading row whose
// first cell reads "name" is treated as a header.
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

	seen := make(map[string]bool)
	for i, row := range rows {
		if isEmptyRow(row) {
			continue
		}
		if i == 0 && strings.EqualFold(getCell(row, 0), "name") {
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
			continue
		}

		def, errMsg, warning := parseEntry(getCell(row, 0), getCell(row, 1), fmt.Sprintf("Row %d", i+1), seen)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
		if def.Name != "" {
			result.Shapes = append(result.Shapes, def)
		}
	}

	if len(result.Shapes) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
	}
	return result
}

// ImportFile picks an importer from the file extension. Anything that is not
// DXF or Excel is read as a text catalog.
func ImportFile(path string) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".dxf":
		return ImportDXF(path)
	case ".xlsx", ".xlsm":
		return ImportExcel(path)
	default:
		return ImportCatalog(path)
	}
}

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
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
